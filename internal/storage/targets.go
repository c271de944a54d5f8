package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/technique-ps/technique/internal/engine"
	"github.com/technique-ps/technique/internal/models"
	"github.com/technique-ps/technique/internal/utils"
)

// PlannedRow pairs one template row with its computed weekly targets.
type PlannedRow struct {
	TemplateExerciseID string
	Targets            []engine.PlannedTarget
}

// UpsertPlannedTargets writes the planned columns for every given row and
// week in a single transaction. Only planned fields are touched: actuals
// already logged against a (row, week) pair are preserved.
func (s *Storage) UpsertPlannedTargets(rows []PlannedRow) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO sc_week_targets
			(id, template_exercise_id, week_no, sets, reps, time_sec, pct_1rm, load_kg,
			 rpe_target, rest_sec, intent, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(template_exercise_id, week_no) DO UPDATE SET
				sets = excluded.sets,
				reps = excluded.reps,
				time_sec = excluded.time_sec,
				pct_1rm = excluded.pct_1rm,
				load_kg = excluded.load_kg,
				rpe_target = excluded.rpe_target,
				rest_sec = excluded.rest_sec,
				intent = excluded.intent,
				notes = excluded.notes`,
	)
	if err != nil {
		return fmt.Errorf("Failed to prepare target upsert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		for _, t := range row.Targets {
			_, err = stmt.Exec(
				uuid.New().String(),
				row.TemplateExerciseID,
				t.WeekNo,
				t.Sets,
				t.Reps,
				t.TimeSec,
				t.Pct1RM,
				t.LoadKg,
				t.RPETarget,
				t.RestSec,
				t.Intent,
				t.Notes,
			)
			if err != nil {
				return fmt.Errorf("Failed to upsert target for week %d: %w", t.WeekNo, err)
			}
		}
	}

	return tx.Commit()
}

// ActualsUpdate carries the logged values for one target. Nil fields are
// left as they were.
type ActualsUpdate struct {
	Sets      *int
	Reps      *int
	TimeSec   *int
	LoadKg    *float64
	Completed *bool
	Notes     *string
}

// Validate rejects values that cannot describe a performed set.
func (a ActualsUpdate) Validate() error {
	if a.Sets != nil && *a.Sets < 0 {
		return fmt.Errorf("%w: sets must be non-negative", ErrInvalidInput)
	}
	if a.Reps != nil && *a.Reps < 0 {
		return fmt.Errorf("%w: reps must be non-negative", ErrInvalidInput)
	}
	if a.TimeSec != nil && *a.TimeSec < 0 {
		return fmt.Errorf("%w: time must be non-negative", ErrInvalidInput)
	}
	if a.LoadKg != nil && *a.LoadKg < 0 {
		return fmt.Errorf("%w: load must be non-negative", ErrInvalidInput)
	}
	return nil
}

func (s *Storage) UpdateActuals(templateExerciseID string, weekNo int, a ActualsUpdate) error {
	if err := a.Validate(); err != nil {
		return err
	}

	var completed *int
	if a.Completed != nil {
		v := utils.BoolToInt(*a.Completed)
		completed = &v
	}

	res, err := s.DB.Exec(
		`UPDATE sc_week_targets SET
			actual_sets = COALESCE(?, actual_sets),
			actual_reps = COALESCE(?, actual_reps),
			actual_time_sec = COALESCE(?, actual_time_sec),
			actual_load_kg = COALESCE(?, actual_load_kg),
			completed_flag = COALESCE(?, completed_flag),
			actual_notes = COALESCE(?, actual_notes)
		WHERE template_exercise_id = ? AND week_no = ?`,
		a.Sets,
		a.Reps,
		a.TimeSec,
		a.LoadKg,
		completed,
		a.Notes,
		templateExerciseID, weekNo,
	)
	if err != nil {
		return fmt.Errorf("Failed to update actuals: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: no target for row %s week %d", ErrNotFound, templateExerciseID, weekNo)
	}

	return nil
}

// FindTemplateExerciseID resolves a template row from the coach-facing
// coordinates: block, session label and exercise name.
func (s *Storage) FindTemplateExerciseID(blockID, sessionLabel, exerciseName string) (string, error) {
	var id string
	err := s.DB.QueryRow(
		`SELECT te.id
		FROM sc_template_exercises te
		JOIN sc_session_templates st ON st.id = te.template_id
		JOIN exercises e ON e.id = te.exercise_id
		WHERE st.block_id = ? AND st.session_label = ? AND e.name = ?
		ORDER BY te.sort_order LIMIT 1`,
		blockID, sessionLabel, exerciseName,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: no row for %s in session %s", ErrNotFound, exerciseName, sessionLabel)
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetBlockDetail assembles the whole block for display: every week, every
// session, every target row with planned and actual values side by side.
func (s *Storage) GetBlockDetail(blockID string) (*models.BlockDetail, error) {
	block, err := s.GetBlock(blockID)
	if err != nil {
		return nil, err
	}

	weeks, err := s.listWeeks(blockID)
	if err != nil {
		return nil, err
	}

	detail := models.BlockDetail{Block: *block}
	for _, wk := range weeks {
		wd := models.WeekDetail{Week: wk}

		byLabel, labels, err := s.listWeekRows(blockID, wk.WeekNo)
		if err != nil {
			return nil, err
		}
		for _, label := range labels {
			wd.Sessions = append(wd.Sessions, models.SessionDetail{
				Label: label,
				Rows:  byLabel[label],
			})
		}

		detail.Weeks = append(detail.Weeks, wd)
	}

	return &detail, nil
}

func (s *Storage) listWeeks(blockID string) ([]models.Week, error) {
	rows, err := s.DB.Query(
		`SELECT id, block_id, week_no, week_start, COALESCE(focus, ''), deload_flag, COALESCE(notes, '')
		FROM sc_weeks WHERE block_id = ? ORDER BY week_no`,
		blockID,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to list weeks: %w", err)
	}
	defer rows.Close()

	var out []models.Week
	for rows.Next() {
		var w models.Week
		var weekStart string
		var deload int
		if err := rows.Scan(&w.ID, &w.BlockID, &w.WeekNo, &weekStart, &w.Focus, &deload, &w.Notes); err != nil {
			return nil, err
		}
		w.WeekStart, _ = utils.ParseDate(weekStart)
		w.Deload = deload != 0
		out = append(out, w)
	}

	return out, rows.Err()
}

func (s *Storage) listWeekRows(blockID string, weekNo int) (map[string][]models.TargetRow, []string, error) {
	rows, err := s.DB.Query(
		`SELECT t.id, t.template_exercise_id, t.week_no, t.sets, t.reps, t.time_sec,
			t.pct_1rm, t.load_kg, t.rpe_target, t.rest_sec,
			COALESCE(t.intent, ''), COALESCE(t.notes, ''),
			t.actual_sets, t.actual_reps, t.actual_time_sec, t.actual_load_kg,
			t.completed_flag, COALESCE(t.actual_notes, ''),
			te.sort_order, COALESCE(te.group_key, ''), te.group_order, te.mode,
			st.session_label, e.name, COALESCE(e.implement, '')
		FROM sc_week_targets t
		JOIN sc_template_exercises te ON te.id = t.template_exercise_id
		JOIN sc_session_templates st ON st.id = te.template_id
		JOIN exercises e ON e.id = te.exercise_id
		WHERE st.block_id = ? AND t.week_no = ?
		ORDER BY st.session_label, te.sort_order`,
		blockID, weekNo,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("Failed to list week targets: %w", err)
	}
	defer rows.Close()

	byLabel := map[string][]models.TargetRow{}
	var labels []string
	for rows.Next() {
		var r models.TargetRow
		var label string
		var completed int
		if err := rows.Scan(
			&r.Target.ID,
			&r.Target.TemplateExerciseID,
			&r.Target.WeekNo,
			&r.Target.Sets,
			&r.Target.Reps,
			&r.Target.TimeSec,
			&r.Target.Pct1RM,
			&r.Target.LoadKg,
			&r.Target.RPETarget,
			&r.Target.RestSec,
			&r.Target.Intent,
			&r.Target.Notes,
			&r.Target.ActualSets,
			&r.Target.ActualReps,
			&r.Target.ActualTimeSec,
			&r.Target.ActualLoadKg,
			&completed,
			&r.Target.ActualNotes,
			&r.SortOrder,
			&r.GroupKey,
			&r.GroupOrder,
			&r.Mode,
			&label,
			&r.ExerciseName,
			&r.Implement,
		); err != nil {
			return nil, nil, err
		}
		r.Target.Completed = completed != 0

		if _, seen := byLabel[label]; !seen {
			labels = append(labels, label)
		}
		byLabel[label] = append(byLabel[label], r)
	}

	return byLabel, labels, rows.Err()
}
