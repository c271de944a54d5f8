package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/technique-ps/technique/internal/models"
	"github.com/technique-ps/technique/internal/storage"
	"github.com/technique-ps/technique/internal/strava"
	"github.com/technique-ps/technique/internal/utils"
)

var rideSports = map[string]bool{
	"Ride":             true,
	"VirtualRide":      true,
	"EBikeRide":        true,
	"GravelRide":       true,
	"MountainBikeRide": true,
}

// ConnectStrava exchanges an OAuth code and stores the tokens for the
// patient.
func ConnectStrava(ctx context.Context, st *storage.Storage, client *strava.Client, userID, patientID, code string) error {
	if err := st.EnsurePatientAccess(userID, patientID); err != nil {
		return err
	}

	tok, err := client.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}

	return st.SaveStravaTokens(stravaTokens(patientID, tok))
}

// SyncStravaRides imports ride activities from the last daysBack days into
// the ride log. Activities already imported are skipped, so the sync can
// run repeatedly.
func SyncStravaRides(ctx context.Context, st *storage.Storage, client *strava.Client, userID, patientID string, daysBack int) (int, error) {
	if err := st.EnsurePatientAccess(userID, patientID); err != nil {
		return 0, err
	}

	stored, err := st.GetStravaTokens(patientID)
	if err != nil {
		return 0, fmt.Errorf("Failed to load Strava tokens, connect first: %w", err)
	}

	tok, refreshed, err := client.EnsureFresh(ctx, stored.AccessToken, stored.RefreshToken, stored.ExpiresAt)
	if err != nil {
		return 0, err
	}
	if refreshed {
		if err := st.SaveStravaTokens(stravaTokens(patientID, tok)); err != nil {
			return 0, err
		}
	}

	after := time.Now().Add(-time.Duration(daysBack) * 24 * time.Hour).Unix()

	imported := 0
	for page := 1; ; page++ {
		acts, err := client.ListActivities(ctx, tok.AccessToken, after, 50, page)
		if err != nil {
			return imported, err
		}
		if len(acts) == 0 {
			break
		}

		for _, a := range acts {
			if !rideSports[a.Sport()] {
				continue
			}

			synced, err := st.IsActivitySynced(patientID, a.ID)
			if err != nil {
				return imported, err
			}
			if synced {
				continue
			}

			ride, err := rideFromActivity(patientID, a)
			if err != nil {
				return imported, err
			}
			if err := st.CreateRide(ride); err != nil {
				return imported, err
			}
			if err := st.MarkActivitySynced(patientID, a.ID); err != nil {
				return imported, err
			}
			imported++
		}
	}

	return imported, nil
}

func rideFromActivity(patientID string, a strava.Activity) (models.Ride, error) {
	if len(a.StartDateLocal) < 10 {
		return models.Ride{}, fmt.Errorf("activity %d has no usable start date", a.ID)
	}
	rideDate, err := utils.ParseDate(a.StartDateLocal[:10])
	if err != nil {
		return models.Ride{}, err
	}

	name := a.Name
	if name == "" {
		name = "Strava ride"
	}

	return models.Ride{
		ID:          uuid.New().String(),
		PatientID:   patientID,
		RideDate:    rideDate,
		DistanceKm:  a.DistanceM / 1000.0,
		DurationMin: int(math.Round(a.ElapsedSec / 60.0)),
		Notes:       fmt.Sprintf("[Strava] %s", name),
		CreatedAt:   time.Now(),
	}, nil
}

func stravaTokens(patientID string, tok *strava.TokenResponse) models.StravaTokens {
	t := models.StravaTokens{
		PatientID:    patientID,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.ExpiresAt,
		Scope:        tok.Scope,
	}
	if tok.Athlete.ID != 0 {
		id := tok.Athlete.ID
		t.AthleteID = &id
	}
	return t
}
