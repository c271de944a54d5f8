package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/technique-ps/technique/internal/models"
	"github.com/technique-ps/technique/internal/utils"
)

var sessionLabels = []string{"A", "B", "C"}

// CreateBlock writes the block plus its week and session skeleton in one
// transaction: one week row per week with the deload flagged, and one
// session per label per week.
func (s *Storage) CreateBlock(b models.Block) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sc_blocks
			(id, patient_id, start_date, weeks, model, deload_week, sessions_per_week, goal, notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		b.PatientID,
		b.StartDate.Format(utils.DateLayout),
		b.Weeks,
		b.Model,
		b.DeloadWeek,
		b.SessionsPerWeek,
		b.Goal,
		b.Notes,
		b.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("Failed to create block: %w", err)
	}

	for wk := 1; wk <= b.Weeks; wk++ {
		weekID := uuid.New().String()
		weekStart := b.StartDate.AddDate(0, 0, 7*(wk-1))
		deload := wk == b.DeloadWeek

		focus := "progression"
		if deload {
			focus = "deload"
		}

		_, err = tx.Exec(
			`INSERT INTO sc_weeks (id, block_id, week_no, week_start, focus, deload_flag, notes)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
			weekID,
			b.ID,
			wk,
			weekStart.Format(utils.DateLayout),
			focus,
			utils.BoolToInt(deload),
			"",
		)
		if err != nil {
			return fmt.Errorf("Failed to create week %d: %w", wk, err)
		}

		for i := 0; i < b.SessionsPerWeek; i++ {
			_, err = tx.Exec(
				`INSERT INTO sc_sessions (id, week_id, session_label, day_hint, notes)
					VALUES (?, ?, ?, ?, ?)`,
				uuid.New().String(),
				weekID,
				sessionLabels[i],
				"",
				"",
			)
			if err != nil {
				return fmt.Errorf("Failed to create session %s for week %d: %w", sessionLabels[i], wk, err)
			}
		}
	}

	return tx.Commit()
}

func (s *Storage) scanBlock(row *sql.Row) (*models.Block, error) {
	var b models.Block
	var startDate, createdAt string

	err := row.Scan(
		&b.ID,
		&b.PatientID,
		&startDate,
		&b.Weeks,
		&b.Model,
		&b.DeloadWeek,
		&b.SessionsPerWeek,
		&b.Goal,
		&b.Notes,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	b.StartDate, _ = time.Parse(utils.DateLayout, startDate)
	b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &b, nil
}

func (s *Storage) GetBlock(id string) (*models.Block, error) {
	row := s.DB.QueryRow(
		`SELECT id, patient_id, start_date, weeks, model, deload_week, sessions_per_week,
			COALESCE(goal, ''), COALESCE(notes, ''), created_at
		FROM sc_blocks WHERE id = ?`,
		id,
	)
	return s.scanBlock(row)
}

// GetLatestBlock returns the most recently created block for a patient.
func (s *Storage) GetLatestBlock(patientID string) (*models.Block, error) {
	row := s.DB.QueryRow(
		`SELECT id, patient_id, start_date, weeks, model, deload_week, sessions_per_week,
			COALESCE(goal, ''), COALESCE(notes, ''), created_at
		FROM sc_blocks WHERE patient_id = ?
		ORDER BY created_at DESC LIMIT 1`,
		patientID,
	)
	return s.scanBlock(row)
}
