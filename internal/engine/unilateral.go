package engine

import (
	"strings"

	"github.com/technique-ps/technique/internal/models"
)

// Movement keys for unilateral anchor scaling.
const (
	MovementBSS    = "bss"    // Bulgarian split squat, anchored to squat
	MovementStepUp = "stepup" // anchored to squat
	MovementSLRDL  = "sl_rdl" // single-leg RDL, anchored to deadlift
)

// ScaleUnilateral derives a per-limb load equivalent from a bilateral
// lift's e1RM. The result is a derived proxy for % prescriptions, not a
// literal single-rep max. A nil input propagates as nil.
func ScaleUnilateral(bilateralE1RMKg *float64, movement, presumedLevel string) *float64 {
	if bilateralE1RMKg == nil {
		return nil
	}

	var base float64
	switch movement {
	case MovementBSS, MovementStepUp:
		base = 0.40
		switch presumedLevel {
		case models.LevelNovice:
			base = 0.35
		case models.LevelAdvanced:
			base = 0.45
		case models.LevelExpert:
			base = 0.50
		}
	case MovementSLRDL:
		base = 0.35
		switch presumedLevel {
		case models.LevelNovice:
			base = 0.30
		case models.LevelAdvanced:
			base = 0.40
		case models.LevelExpert:
			base = 0.45
		}
	default:
		base = 0.35
	}

	scaled := *bilateralE1RMKg * base
	return &scaled
}

// MovementKey classifies an exercise name into a unilateral movement key,
// or "" when the name matches none.
func MovementKey(exerciseName string) string {
	name := strings.ToLower(exerciseName)
	switch {
	case strings.Contains(name, "bulgarian") || strings.Contains(name, "split squat"):
		return MovementBSS
	case strings.Contains(name, "step-up") || strings.Contains(name, "step up"):
		return MovementStepUp
	case strings.Contains(name, "single-leg rdl") || strings.Contains(name, "single leg rdl") || strings.Contains(name, "sl rdl"):
		return MovementSLRDL
	}
	return ""
}
