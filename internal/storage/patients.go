package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/technique-ps/technique/internal/models"
)

func (s *Storage) CreatePatient(p models.Patient) error {
	_, err := s.DB.Exec(
		`INSERT INTO patients (id, name, owner_user_id, created_at)
			VALUES (?, ?, ?, ?)`,
		p.ID,
		p.Name,
		p.OwnerUserID,
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("Failed to create patient: %w", err)
	}
	return nil
}

func (s *Storage) GetPatient(id string) (*models.Patient, error) {
	var p models.Patient
	var createdAt string

	err := s.DB.QueryRow(
		`SELECT id, name, owner_user_id, created_at FROM patients WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &p.OwnerUserID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &p, nil
}

func (s *Storage) ListPatients() ([]models.Patient, error) {
	rows, err := s.DB.Query(
		`SELECT id, name, owner_user_id, created_at FROM patients ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to list patients: %w", err)
	}
	defer rows.Close()

	var out []models.Patient
	for rows.Next() {
		var p models.Patient
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.OwnerUserID, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, p)
	}

	return out, rows.Err()
}

func (s *Storage) UpsertPatientProfile(p models.PatientProfile) error {
	_, err := s.DB.Exec(
		`INSERT INTO patient_profiles (patient_id, sex, dob, bodyweight_kg, presumed_level)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(patient_id) DO UPDATE SET
				sex = excluded.sex,
				dob = excluded.dob,
				bodyweight_kg = excluded.bodyweight_kg,
				presumed_level = excluded.presumed_level`,
		p.PatientID,
		p.Sex,
		p.DOB,
		p.BodyweightKg,
		p.PresumedLevel,
	)
	if err != nil {
		return fmt.Errorf("Failed to save patient profile: %w", err)
	}
	return nil
}

func (s *Storage) GetPatientProfile(patientID string) (*models.PatientProfile, error) {
	var p models.PatientProfile

	err := s.DB.QueryRow(
		`SELECT patient_id, COALESCE(sex, ''), COALESCE(dob, ''), bodyweight_kg, presumed_level
		FROM patient_profiles WHERE patient_id = ?`,
		patientID,
	).Scan(&p.PatientID, &p.Sex, &p.DOB, &p.BodyweightKg, &p.PresumedLevel)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// SaveStrengthEstimate overwrites the single audit row per
// patient/exercise pair.
func (s *Storage) SaveStrengthEstimate(e models.StrengthEstimate) error {
	_, err := s.DB.Exec(
		`INSERT INTO strength_estimates
			(patient_id, exercise_id, as_of_date, estimated_1rm_kg, estimated_rel_1rm_bw,
			 level_used, sex_used, age_used, bw_used, method, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(patient_id, exercise_id) DO UPDATE SET
				as_of_date = excluded.as_of_date,
				estimated_1rm_kg = excluded.estimated_1rm_kg,
				estimated_rel_1rm_bw = excluded.estimated_rel_1rm_bw,
				level_used = excluded.level_used,
				sex_used = excluded.sex_used,
				age_used = excluded.age_used,
				bw_used = excluded.bw_used,
				method = excluded.method,
				notes = excluded.notes`,
		e.PatientID,
		e.ExerciseID,
		e.AsOfDate.Format(time.RFC3339),
		e.Estimated1RMKg,
		e.EstimatedRelBW,
		e.LevelUsed,
		e.SexUsed,
		e.AgeUsed,
		e.BodyweightUsed,
		e.Method,
		e.Notes,
	)
	if err != nil {
		return fmt.Errorf("Failed to save strength estimate: %w", err)
	}
	return nil
}

func (s *Storage) GetStrengthEstimate(patientID, exerciseID string) (*models.StrengthEstimate, error) {
	var e models.StrengthEstimate
	var asOf string

	err := s.DB.QueryRow(
		`SELECT patient_id, exercise_id, as_of_date, estimated_1rm_kg, estimated_rel_1rm_bw,
			COALESCE(level_used, ''), COALESCE(sex_used, ''), COALESCE(age_used, 0),
			bw_used, method, COALESCE(notes, '')
		FROM strength_estimates WHERE patient_id = ? AND exercise_id = ?`,
		patientID, exerciseID,
	).Scan(
		&e.PatientID,
		&e.ExerciseID,
		&asOf,
		&e.Estimated1RMKg,
		&e.EstimatedRelBW,
		&e.LevelUsed,
		&e.SexUsed,
		&e.AgeUsed,
		&e.BodyweightUsed,
		&e.Method,
		&e.Notes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	e.AsOfDate, _ = time.Parse(time.RFC3339, asOf)
	return &e, nil
}
