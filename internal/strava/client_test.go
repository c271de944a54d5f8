package strava

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func testClient(server *httptest.Server) *Client {
	return &Client{
		ClientID:      "123",
		ClientSecret:  "secret",
		RedirectURI:   "http://localhost:8501",
		HTTP:          server.Client(),
		authURL:       server.URL + "/oauth/authorize",
		tokenURL:      server.URL + "/oauth/token",
		activitiesURL: server.URL + "/athlete/activities",
	}
}

func TestAuthURL(t *testing.T) {
	Convey("Given a configured client", t, func() {
		c := &Client{
			ClientID:    "123",
			RedirectURI: "http://localhost:8501",
			authURL:     defaultAuthURL,
		}

		raw := c.AuthURL("patient-1")
		parsed, err := url.Parse(raw)

		Convey("Then the consent URL carries the OAuth parameters", func() {
			So(err, ShouldBeNil)
			q := parsed.Query()
			So(q.Get("client_id"), ShouldEqual, "123")
			So(q.Get("response_type"), ShouldEqual, "code")
			So(q.Get("scope"), ShouldEqual, "activity:read_all")
			So(q.Get("state"), ShouldEqual, "patient-1")
		})
	})
}

func TestExchangeCode(t *testing.T) {
	Convey("Given a token endpoint", t, func() {
		var gotGrant, gotCode string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.ParseForm()
			gotGrant = r.FormValue("grant_type")
			gotCode = r.FormValue("code")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"access_token": "at-1",
				"refresh_token": "rt-1",
				"expires_at": 1767225600,
				"scope": "activity:read_all",
				"athlete": {"id": 42}
			}`))
		}))
		defer server.Close()

		c := testClient(server)
		tok, err := c.ExchangeCode(context.Background(), "code-xyz")

		Convey("Then the code exchange parses the full token payload", func() {
			So(err, ShouldBeNil)
			So(gotGrant, ShouldEqual, "authorization_code")
			So(gotCode, ShouldEqual, "code-xyz")
			So(tok.AccessToken, ShouldEqual, "at-1")
			So(tok.RefreshToken, ShouldEqual, "rt-1")
			So(tok.ExpiresAt, ShouldEqual, 1767225600)
			So(tok.Athlete.ID, ShouldEqual, 42)
		})
	})
}

func TestEnsureFresh(t *testing.T) {
	Convey("Given stored tokens", t, func() {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token": "at-new", "refresh_token": "rt-new", "expires_at": 9999999999}`))
		}))
		defer server.Close()

		c := testClient(server)

		Convey("When the access token is still fresh", func() {
			expires := time.Now().Add(1 * time.Hour).Unix()
			tok, refreshed, err := c.EnsureFresh(context.Background(), "at-old", "rt-old", expires)

			Convey("Then no refresh happens", func() {
				So(err, ShouldBeNil)
				So(refreshed, ShouldBeFalse)
				So(tok.AccessToken, ShouldEqual, "at-old")
				So(calls, ShouldEqual, 0)
			})
		})

		Convey("When the access token expires within the leeway", func() {
			expires := time.Now().Add(30 * time.Second).Unix()
			tok, refreshed, err := c.EnsureFresh(context.Background(), "at-old", "rt-old", expires)

			Convey("Then the refresh grant runs", func() {
				So(err, ShouldBeNil)
				So(refreshed, ShouldBeTrue)
				So(tok.AccessToken, ShouldEqual, "at-new")
				So(calls, ShouldEqual, 1)
			})
		})
	})
}

func TestListActivities(t *testing.T) {
	Convey("Given an activities endpoint", t, func() {
		var gotAuth, gotPage string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotPage = r.URL.Query().Get("page")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{"id": 1, "name": "Morning Ride", "sport_type": "Ride",
				 "start_date_local": "2026-08-03T07:00:00Z", "distance": 42000, "elapsed_time": 5400},
				{"id": 2, "name": "Old Run", "type": "Run",
				 "start_date_local": "2026-08-04T07:00:00Z", "distance": 10000, "elapsed_time": 3000}
			]`))
		}))
		defer server.Close()

		c := testClient(server)
		acts, err := c.ListActivities(context.Background(), "at-1", 0, 50, 2)

		Convey("Then activities decode with bearer auth and paging", func() {
			So(err, ShouldBeNil)
			So(gotAuth, ShouldEqual, "Bearer at-1")
			So(gotPage, ShouldEqual, "2")
			So(acts, ShouldHaveLength, 2)
			So(acts[0].Sport(), ShouldEqual, "Ride")
			So(acts[0].DistanceM, ShouldAlmostEqual, 42000.0, 0.0001)
		})

		Convey("And the legacy type field backs up sport_type", func() {
			So(acts[1].Sport(), ShouldEqual, "Run")
		})
	})
}
