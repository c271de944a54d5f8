package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAuthURL       = "https://www.strava.com/oauth/authorize"
	defaultTokenURL      = "https://www.strava.com/api/v3/oauth/token"
	defaultActivitiesURL = "https://www.strava.com/api/v3/athlete/activities"

	// Refresh when the access token expires within this window.
	refreshLeeway = 120 * time.Second
)

// Client talks to the Strava v3 API with app credentials from the
// environment: STRAVA_CLIENT_ID, STRAVA_CLIENT_SECRET, STRAVA_REDIRECT_URI.
type Client struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	HTTP         *http.Client

	authURL       string
	tokenURL      string
	activitiesURL string
}

func NewClient() (*Client, error) {
	id := os.Getenv("STRAVA_CLIENT_ID")
	secret := os.Getenv("STRAVA_CLIENT_SECRET")
	if id == "" || secret == "" {
		return nil, fmt.Errorf("STRAVA_CLIENT_ID and STRAVA_CLIENT_SECRET must be set")
	}

	return &Client{
		ClientID:      id,
		ClientSecret:  secret,
		RedirectURI:   os.Getenv("STRAVA_REDIRECT_URI"),
		HTTP:          &http.Client{Timeout: 20 * time.Second},
		authURL:       defaultAuthURL,
		tokenURL:      defaultTokenURL,
		activitiesURL: defaultActivitiesURL,
	}, nil
}

// AuthURL builds the OAuth consent URL. The activity:read_all scope is
// required to see "Only Me" activities.
func (c *Client) AuthURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.ClientID)
	params.Set("redirect_uri", c.RedirectURI)
	params.Set("response_type", "code")
	params.Set("approval_prompt", "auto")
	params.Set("scope", "activity:read_all")
	params.Set("state", state)
	return c.authURL + "?" + params.Encode()
}

// TokenResponse is the token endpoint payload for both the code exchange
// and the refresh grant.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	Scope        string `json:"scope"`
	Athlete      struct {
		ID int64 `json:"id"`
	} `json:"athlete"`
}

func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	return c.token(ctx, url.Values{
		"client_id":     {c.ClientID},
		"client_secret": {c.ClientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
	})
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	return c.token(ctx, url.Values{
		"client_id":     {c.ClientID},
		"client_secret": {c.ClientSecret},
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	})
}

func (c *Client) token(ctx context.Context, form url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Failed to call Strava token endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Strava token endpoint returned %s", resp.Status)
	}

	var tok TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("Failed to decode Strava token response: %w", err)
	}

	return &tok, nil
}

// EnsureFresh refreshes the access token when it is close to expiry. The
// second return reports whether a refresh happened and new tokens should
// be persisted.
func (c *Client) EnsureFresh(ctx context.Context, accessToken, refreshToken string, expiresAt int64) (*TokenResponse, bool, error) {
	if expiresAt > 0 && time.Now().Add(refreshLeeway).Unix() < expiresAt {
		return &TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    expiresAt,
		}, false, nil
	}

	tok, err := c.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, false, err
	}
	return tok, true, nil
}

// Activity is the subset of a Strava activity the sync cares about.
type Activity struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	SportType      string  `json:"sport_type"`
	Type           string  `json:"type"`
	StartDateLocal string  `json:"start_date_local"` // RFC3339, local to the athlete
	DistanceM      float64 `json:"distance"`
	ElapsedSec     float64 `json:"elapsed_time"`
}

// Sport returns sport_type with the legacy type field as fallback.
func (a Activity) Sport() string {
	if a.SportType != "" {
		return a.SportType
	}
	return a.Type
}

// ListActivities fetches one page of the athlete's activities.
func (c *Client) ListActivities(ctx context.Context, accessToken string, afterEpoch int64, perPage, page int) ([]Activity, error) {
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))
	if afterEpoch > 0 {
		params.Set("after", strconv.FormatInt(afterEpoch, 10))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.activitiesURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Failed to list Strava activities: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Strava activities endpoint returned %s", resp.Status)
	}

	var acts []Activity
	if err := json.NewDecoder(resp.Body).Decode(&acts); err != nil {
		return nil, fmt.Errorf("Failed to decode Strava activities: %w", err)
	}

	return acts, nil
}
