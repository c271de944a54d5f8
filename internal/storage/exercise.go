package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/technique-ps/technique/internal/engine"
	"github.com/technique-ps/technique/internal/models"
)

func (s *Storage) CreateExercise(ex models.Exercise) error {
	ctx := context.Background()

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO exercises
			(id, name, category, laterality, implement, primary_muscles, notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				category = excluded.category,
				laterality = excluded.laterality,
				implement = excluded.implement,
				primary_muscles = excluded.primary_muscles,
				notes = excluded.notes`,
		ex.ID,
		ex.Name,
		ex.Category,
		ex.Laterality,
		ex.Implement,
		ex.PrimaryMuscles,
		ex.Notes,
		ex.CreatedAt.Format(time.RFC3339),
	)
	return err
}

func (s *Storage) scanExercise(row *sql.Row) (*models.Exercise, error) {
	var ex models.Exercise
	var createdAt string

	err := row.Scan(
		&ex.ID,
		&ex.Name,
		&ex.Category,
		&ex.Laterality,
		&ex.Implement,
		&ex.PrimaryMuscles,
		&ex.Notes,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	ex.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &ex, nil
}

func (s *Storage) GetExerciseByName(name string) (*models.Exercise, error) {
	row := s.DB.QueryRow(
		`SELECT id, name, COALESCE(category, ''), laterality, COALESCE(implement, ''),
			COALESCE(primary_muscles, ''), COALESCE(notes, ''), created_at
		FROM exercises WHERE name = ?`,
		name,
	)
	return s.scanExercise(row)
}

func (s *Storage) GetExerciseByID(id string) (*models.Exercise, error) {
	row := s.DB.QueryRow(
		`SELECT id, name, COALESCE(category, ''), laterality, COALESCE(implement, ''),
			COALESCE(primary_muscles, ''), COALESCE(notes, ''), created_at
		FROM exercises WHERE id = ?`,
		id,
	)
	return s.scanExercise(row)
}

func (s *Storage) ListExercises() ([]models.Exercise, error) {
	rows, err := s.DB.Query(
		`SELECT id, name, COALESCE(category, ''), laterality, COALESCE(implement, ''),
			COALESCE(primary_muscles, ''), COALESCE(notes, ''), created_at
		FROM exercises ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to list exercises: %w", err)
	}
	defer rows.Close()

	var out []models.Exercise
	for rows.Next() {
		var ex models.Exercise
		var createdAt string
		if err := rows.Scan(
			&ex.ID,
			&ex.Name,
			&ex.Category,
			&ex.Laterality,
			&ex.Implement,
			&ex.PrimaryMuscles,
			&ex.Notes,
			&createdAt,
		); err != nil {
			return nil, err
		}
		ex.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, ex)
	}

	return out, rows.Err()
}

func (s *Storage) UpsertNormStandard(n models.NormativeStandard) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}

	_, err := s.DB.Exec(
		`INSERT INTO norm_strength_standards
			(id, exercise_id, sex, age_min, age_max, metric, poor, fair, good, excellent, source, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(exercise_id, sex, age_min, age_max, metric) DO UPDATE SET
				poor = excluded.poor,
				fair = excluded.fair,
				good = excluded.good,
				excellent = excluded.excellent,
				source = excluded.source,
				notes = excluded.notes`,
		n.ID,
		n.ExerciseID,
		n.Sex,
		n.AgeMin,
		n.AgeMax,
		n.Metric,
		n.Poor,
		n.Fair,
		n.Good,
		n.Excellent,
		n.Source,
		n.Notes,
	)
	return err
}

// LookupNormBand finds the age band covering the given age for an
// exercise/sex/metric. When bands overlap the one starting latest wins.
// A missing band is not an error: the estimator reports it as a method.
func (s *Storage) LookupNormBand(exerciseID, sex, metric string, age int) (*engine.Band, error) {
	var b engine.Band

	err := s.DB.QueryRow(
		`SELECT poor, fair, good, excellent, age_min, age_max,
			COALESCE(source, ''), COALESCE(notes, '')
		FROM norm_strength_standards
		WHERE exercise_id = ? AND sex = ? AND metric = ?
			AND age_min <= ? AND age_max >= ?
		ORDER BY age_min DESC
		LIMIT 1`,
		exerciseID, sex, metric, age, age,
	).Scan(
		&b.Poor,
		&b.Fair,
		&b.Good,
		&b.Excellent,
		&b.AgeMin,
		&b.AgeMax,
		&b.Source,
		&b.Notes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to look up norm band: %w", err)
	}

	return &b, nil
}

func (s *Storage) CountNormStandards() (int, error) {
	var n int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM norm_strength_standards`).Scan(&n)
	return n, err
}

func (s *Storage) UpsertRepScheme(r models.RepScheme) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	_, err := s.DB.Exec(
		`INSERT INTO rep_schemes
			(id, goal, phase, reps_min, reps_max, sets_min, sets_max,
			 pct_1rm_min, pct_1rm_max, rpe_min, rpe_max, rest_sec_min, rest_sec_max, intent)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(goal, phase) DO UPDATE SET
				reps_min = excluded.reps_min,
				reps_max = excluded.reps_max,
				sets_min = excluded.sets_min,
				sets_max = excluded.sets_max,
				pct_1rm_min = excluded.pct_1rm_min,
				pct_1rm_max = excluded.pct_1rm_max,
				rpe_min = excluded.rpe_min,
				rpe_max = excluded.rpe_max,
				rest_sec_min = excluded.rest_sec_min,
				rest_sec_max = excluded.rest_sec_max,
				intent = excluded.intent`,
		r.ID,
		r.Goal,
		r.Phase,
		r.RepsMin,
		r.RepsMax,
		r.SetsMin,
		r.SetsMax,
		r.Pct1RMMin,
		r.Pct1RMMax,
		r.RPEMin,
		r.RPEMax,
		r.RestMin,
		r.RestMax,
		r.Intent,
	)
	return err
}

func (s *Storage) ListRepSchemes() ([]models.RepScheme, error) {
	rows, err := s.DB.Query(
		`SELECT id, goal, phase, reps_min, reps_max, sets_min, sets_max,
			pct_1rm_min, pct_1rm_max, rpe_min, rpe_max, rest_sec_min, rest_sec_max,
			COALESCE(intent, '')
		FROM rep_schemes ORDER BY goal`,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to list rep schemes: %w", err)
	}
	defer rows.Close()

	var out []models.RepScheme
	for rows.Next() {
		var r models.RepScheme
		if err := rows.Scan(
			&r.ID,
			&r.Goal,
			&r.Phase,
			&r.RepsMin,
			&r.RepsMax,
			&r.SetsMin,
			&r.SetsMax,
			&r.Pct1RMMin,
			&r.Pct1RMMax,
			&r.RPEMin,
			&r.RPEMax,
			&r.RestMin,
			&r.RestMax,
			&r.Intent,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, rows.Err()
}
