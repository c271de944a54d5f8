package engine

import "github.com/technique-ps/technique/internal/models"

// ApplyStyleDefaults fills the editable default suggestion layer for a
// template row: mode, steps and caps that were not set explicitly get
// the typical value for the exercise's progression style. Explicit
// values always win.
func ApplyStyleDefaults(row *models.TemplateExerciseRow, style string) {
	if row.Mode == "" {
		switch style {
		case StyleIsometric, StyleConditioning:
			row.Mode = models.ModeTime
		default:
			row.Mode = models.ModeReps
		}
	}

	if row.Sets <= 0 {
		row.Sets = 3
	}
	if row.LoadIncrementKg <= 0 {
		row.LoadIncrementKg = 2.5
	}

	if row.Mode == models.ModeTime {
		if row.TimeStartSec == nil {
			start := 30
			row.TimeStartSec = &start
		}
		if row.TimeStepSec == 0 {
			switch style {
			case StyleConditioning:
				row.TimeStepSec = 60 // +1 min/week
			default:
				row.TimeStepSec = 10
			}
		}
		return
	}

	if row.RepsStart == nil {
		start := 8
		row.RepsStart = &start
	}
	// Barbell rows progress load, not reps, so their step stays at 0.
	if row.RepsStep == 0 && style != StyleBarbell {
		switch style {
		case StyleIsometric, StyleBodyweight:
			row.RepsStep = 5
		default:
			row.RepsStep = 1
		}
	}
	if style == StyleDBKB && row.RepsCap == nil {
		cap := 12
		row.RepsCap = &cap
	}
}
