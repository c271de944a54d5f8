package engine

import (
	"strings"

	"github.com/technique-ps/technique/internal/models"
)

// Progression styles, decided from catalog metadata.
const (
	StyleIsometric    = "isometric"
	StyleConditioning = "conditioning"
	StyleDBKB         = "db_kb"
	StyleBarbell      = "barbell"
	StyleBodyweight   = "bodyweight"
	StyleGeneric      = "generic"
)

// ClassifyStyle picks the progression style for an exercise. The cascade
// is order-sensitive: isometric and conditioning matches win over the
// implement-based checks (an isometric dumbbell hold is still isometric).
func ClassifyStyle(ex models.Exercise) string {
	name := strings.ToLower(ex.Name)
	category := strings.ToLower(ex.Category)
	implement := strings.ToLower(ex.Implement)
	notes := strings.ToLower(ex.Notes)

	if strings.Contains(name, "isometric") || strings.Contains(notes, "isometric") ||
		strings.Contains(name, "wall sit") || strings.Contains(name, "plank") {
		return StyleIsometric
	}

	if category == "conditioning" || strings.Contains(name, "erg") {
		return StyleConditioning
	}

	switch implement {
	case models.ImplementDumbbell, models.ImplementKettlebell, models.ImplementBand:
		return StyleDBKB
	case models.ImplementBarbell:
		return StyleBarbell
	case models.ImplementBodyweight:
		return StyleBodyweight
	}

	return StyleGeneric
}

// MetricForExercise returns the normative metric used for an exercise.
// Pull-up variants are tracked as rep counts, everything else as a
// bodyweight-relative 1RM.
func MetricForExercise(name string) string {
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "pull-up") || strings.HasPrefix(lower, "pullup") {
		return models.MetricPullupReps
	}
	return models.MetricRel1RMBW
}
