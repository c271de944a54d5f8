package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/technique-ps/technique/internal/models"
)

func (s *Storage) SaveStravaTokens(t models.StravaTokens) error {
	_, err := s.DB.Exec(
		`INSERT INTO strava_tokens (patient_id, access_token, refresh_token, expires_at, athlete_id, scope)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(patient_id) DO UPDATE SET
				access_token = excluded.access_token,
				refresh_token = excluded.refresh_token,
				expires_at = excluded.expires_at,
				athlete_id = excluded.athlete_id,
				scope = excluded.scope`,
		t.PatientID,
		t.AccessToken,
		t.RefreshToken,
		t.ExpiresAt,
		t.AthleteID,
		t.Scope,
	)
	if err != nil {
		return fmt.Errorf("Failed to save Strava tokens: %w", err)
	}
	return nil
}

func (s *Storage) GetStravaTokens(patientID string) (*models.StravaTokens, error) {
	var t models.StravaTokens

	err := s.DB.QueryRow(
		`SELECT patient_id, access_token, refresh_token, expires_at, athlete_id, COALESCE(scope, '')
		FROM strava_tokens WHERE patient_id = ?`,
		patientID,
	).Scan(&t.PatientID, &t.AccessToken, &t.RefreshToken, &t.ExpiresAt, &t.AthleteID, &t.Scope)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (s *Storage) IsActivitySynced(patientID string, activityID int64) (bool, error) {
	var n int
	err := s.DB.QueryRow(
		`SELECT COUNT(*) FROM strava_synced WHERE patient_id = ? AND activity_id = ?`,
		patientID, activityID,
	).Scan(&n)
	return n > 0, err
}

func (s *Storage) MarkActivitySynced(patientID string, activityID int64) error {
	_, err := s.DB.Exec(
		`INSERT INTO strava_synced (patient_id, activity_id) VALUES (?, ?)
			ON CONFLICT(patient_id, activity_id) DO NOTHING`,
		patientID, activityID,
	)
	return err
}
