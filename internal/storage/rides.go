package storage

import (
	"fmt"
	"time"

	"github.com/technique-ps/technique/internal/models"
	"github.com/technique-ps/technique/internal/utils"
)

func (s *Storage) CreateRide(r models.Ride) error {
	_, err := s.DB.Exec(
		`INSERT INTO rides (id, patient_id, ride_date, distance_km, duration_min, rpe, notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.PatientID,
		r.RideDate.Format(utils.DateLayout),
		r.DistanceKm,
		r.DurationMin,
		r.RPE,
		r.Notes,
		r.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("Failed to log ride: %w", err)
	}
	return nil
}

func (s *Storage) ListRides(patientID string) ([]models.Ride, error) {
	rows, err := s.DB.Query(
		`SELECT id, patient_id, ride_date, distance_km, duration_min, rpe, COALESCE(notes, ''), created_at
		FROM rides WHERE patient_id = ? ORDER BY ride_date`,
		patientID,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to list rides: %w", err)
	}
	defer rows.Close()

	var out []models.Ride
	for rows.Next() {
		var r models.Ride
		var rideDate, createdAt string
		if err := rows.Scan(&r.ID, &r.PatientID, &rideDate, &r.DistanceKm, &r.DurationMin, &r.RPE, &r.Notes, &createdAt); err != nil {
			return nil, err
		}
		r.RideDate, _ = utils.ParseDate(rideDate)
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, r)
	}

	return out, rows.Err()
}

func (s *Storage) UpsertWeekPlan(p models.WeekPlan) error {
	_, err := s.DB.Exec(
		`INSERT INTO weekly_plan (patient_id, week_start, planned_km, planned_hours, phase, notes)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(patient_id, week_start) DO UPDATE SET
				planned_km = excluded.planned_km,
				planned_hours = excluded.planned_hours,
				phase = excluded.phase,
				notes = excluded.notes`,
		p.PatientID,
		p.WeekStart.Format(utils.DateLayout),
		p.PlannedKm,
		p.PlannedHours,
		p.Phase,
		p.Notes,
	)
	if err != nil {
		return fmt.Errorf("Failed to save week plan: %w", err)
	}
	return nil
}

func (s *Storage) ListWeekPlans(patientID string) ([]models.WeekPlan, error) {
	rows, err := s.DB.Query(
		`SELECT patient_id, week_start, planned_km, planned_hours, COALESCE(phase, ''), COALESCE(notes, '')
		FROM weekly_plan WHERE patient_id = ? ORDER BY week_start`,
		patientID,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to list week plans: %w", err)
	}
	defer rows.Close()

	var out []models.WeekPlan
	for rows.Next() {
		var p models.WeekPlan
		var weekStart string
		if err := rows.Scan(&p.PatientID, &weekStart, &p.PlannedKm, &p.PlannedHours, &p.Phase, &p.Notes); err != nil {
			return nil, err
		}
		p.WeekStart, _ = utils.ParseDate(weekStart)
		out = append(out, p)
	}

	return out, rows.Err()
}
