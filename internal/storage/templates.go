package storage

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/technique-ps/technique/internal/models"
)

// UpsertSessionTemplate writes a template and its rows for one session
// label of a block. Re-importing matches existing rows by exercise and
// sort order so their ids (and therefore any logged actuals hanging off
// the week targets) survive; rows dropped from the import are removed.
func (s *Storage) UpsertSessionTemplate(t models.SessionTemplate) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if t.ID == "" {
		t.ID = uuid.New().String()
	}

	_, err = tx.Exec(
		`INSERT INTO sc_session_templates (id, block_id, session_label, title, notes)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(block_id, session_label) DO UPDATE SET
				title = excluded.title,
				notes = excluded.notes`,
		t.ID,
		t.BlockID,
		t.Label,
		t.Title,
		t.Notes,
	)
	if err != nil {
		return fmt.Errorf("Failed to upsert session template: %w", err)
	}

	// The upsert may have kept a pre-existing template id.
	var templateID string
	err = tx.QueryRow(
		`SELECT id FROM sc_session_templates WHERE block_id = ? AND session_label = ?`,
		t.BlockID, t.Label,
	).Scan(&templateID)
	if err != nil {
		return err
	}

	existing := map[string]string{}
	rows, err := tx.Query(
		`SELECT id, exercise_id, sort_order FROM sc_template_exercises WHERE template_id = ?`,
		templateID,
	)
	if err != nil {
		return err
	}
	for rows.Next() {
		var id, exerciseID string
		var sortOrder int
		if err := rows.Scan(&id, &exerciseID, &sortOrder); err != nil {
			rows.Close()
			return err
		}
		existing[fmt.Sprintf("%s/%d", exerciseID, sortOrder)] = id
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	kept := map[string]bool{}
	for _, r := range t.Rows {
		key := fmt.Sprintf("%s/%d", r.ExerciseID, r.SortOrder)
		rowID, ok := existing[key]
		if !ok {
			rowID = uuid.New().String()
		}
		kept[rowID] = true

		var anchor any
		if r.AnchorExerciseID != "" {
			anchor = r.AnchorExerciseID
		}

		_, err = tx.Exec(
			`INSERT INTO sc_template_exercises
				(id, template_id, sort_order, group_key, group_order, exercise_id, anchor_exercise_id,
				 mode, sets, reps_start, reps_step, reps_cap,
				 time_start_sec, time_step_sec, time_cap_sec,
				 pct_1rm_start, pct_1rm_step, pct_1rm_cap,
				 load_start_kg, load_increment_kg,
				 rpe_target, rest_sec, intent, notes)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					sort_order = excluded.sort_order,
					group_key = excluded.group_key,
					group_order = excluded.group_order,
					anchor_exercise_id = excluded.anchor_exercise_id,
					mode = excluded.mode,
					sets = excluded.sets,
					reps_start = excluded.reps_start,
					reps_step = excluded.reps_step,
					reps_cap = excluded.reps_cap,
					time_start_sec = excluded.time_start_sec,
					time_step_sec = excluded.time_step_sec,
					time_cap_sec = excluded.time_cap_sec,
					pct_1rm_start = excluded.pct_1rm_start,
					pct_1rm_step = excluded.pct_1rm_step,
					pct_1rm_cap = excluded.pct_1rm_cap,
					load_start_kg = excluded.load_start_kg,
					load_increment_kg = excluded.load_increment_kg,
					rpe_target = excluded.rpe_target,
					rest_sec = excluded.rest_sec,
					intent = excluded.intent,
					notes = excluded.notes`,
			rowID,
			templateID,
			r.SortOrder,
			r.GroupKey,
			r.GroupOrder,
			r.ExerciseID,
			anchor,
			r.Mode,
			r.Sets,
			r.RepsStart,
			r.RepsStep,
			r.RepsCap,
			r.TimeStartSec,
			r.TimeStepSec,
			r.TimeCapSec,
			r.Pct1RMStart,
			r.Pct1RMStep,
			r.Pct1RMCap,
			r.LoadStartKg,
			r.LoadIncrementKg,
			r.RPETarget,
			r.RestSec,
			r.Intent,
			r.Notes,
		)
		if err != nil {
			return fmt.Errorf("Failed to upsert template row %d: %w", r.SortOrder, err)
		}
	}

	for _, id := range existing {
		if !kept[id] {
			if _, err := tx.Exec(`DELETE FROM sc_template_exercises WHERE id = ?`, id); err != nil {
				return fmt.Errorf("Failed to remove dropped template row: %w", err)
			}
		}
	}

	return tx.Commit()
}

// ListSessionTemplates returns all templates of a block with their rows in
// display order.
func (s *Storage) ListSessionTemplates(blockID string) ([]models.SessionTemplate, error) {
	rows, err := s.DB.Query(
		`SELECT id, block_id, session_label, COALESCE(title, ''), COALESCE(notes, '')
		FROM sc_session_templates WHERE block_id = ? ORDER BY session_label`,
		blockID,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to list session templates: %w", err)
	}
	defer rows.Close()

	var out []models.SessionTemplate
	for rows.Next() {
		var t models.SessionTemplate
		if err := rows.Scan(&t.ID, &t.BlockID, &t.Label, &t.Title, &t.Notes); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		tmplRows, err := s.listTemplateRows(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Rows = tmplRows
	}

	return out, nil
}

func (s *Storage) listTemplateRows(templateID string) ([]models.TemplateExerciseRow, error) {
	rows, err := s.DB.Query(
		`SELECT id, template_id, sort_order, COALESCE(group_key, ''), group_order,
			exercise_id, COALESCE(anchor_exercise_id, ''),
			mode, sets, reps_start, reps_step, reps_cap,
			time_start_sec, time_step_sec, time_cap_sec,
			pct_1rm_start, pct_1rm_step, pct_1rm_cap,
			load_start_kg, load_increment_kg,
			rpe_target, rest_sec, COALESCE(intent, ''), COALESCE(notes, '')
		FROM sc_template_exercises WHERE template_id = ? ORDER BY sort_order`,
		templateID,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to list template rows: %w", err)
	}
	defer rows.Close()

	var out []models.TemplateExerciseRow
	for rows.Next() {
		var r models.TemplateExerciseRow
		if err := rows.Scan(
			&r.ID,
			&r.TemplateID,
			&r.SortOrder,
			&r.GroupKey,
			&r.GroupOrder,
			&r.ExerciseID,
			&r.AnchorExerciseID,
			&r.Mode,
			&r.Sets,
			&r.RepsStart,
			&r.RepsStep,
			&r.RepsCap,
			&r.TimeStartSec,
			&r.TimeStepSec,
			&r.TimeCapSec,
			&r.Pct1RMStart,
			&r.Pct1RMStep,
			&r.Pct1RMCap,
			&r.LoadStartKg,
			&r.LoadIncrementKg,
			&r.RPETarget,
			&r.RestSec,
			&r.Intent,
			&r.Notes,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, rows.Err()
}
