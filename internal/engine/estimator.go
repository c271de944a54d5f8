package engine

import (
	"fmt"

	"github.com/technique-ps/technique/internal/models"
)

// Estimation method tags, kept stable because they are stored on the
// strength_estimates audit rows.
const (
	MethodNormLevelBand     = "norm_level_band_v1"
	MethodNotApplicable     = "not_applicable_pullup"
	MethodMissingBodyweight = "missing_bodyweight"
	MethodNoNormFound       = "no_norm_found"
)

// Band is one normative age band resolved for a patient.
type Band struct {
	Poor      float64
	Fair      float64
	Good      float64
	Excellent float64
	AgeMin    int
	AgeMax    int
	Source    string
	Notes     string
}

// EstimateResult carries a nullable e1RM: "no estimate available" is a
// normal outcome here, not an error.
type EstimateResult struct {
	E1RMKg   *float64
	RelRatio *float64
	Method   string
	BandUsed string
	Notes    string
}

// levelTargetRatio maps a presumed level onto a point within the
// poor/fair/good/excellent scale. Unknown levels fall back to the
// intermediate rule.
func levelTargetRatio(b Band, level string) float64 {
	switch level {
	case models.LevelNovice:
		return b.Fair
	case models.LevelIntermediate:
		return (b.Fair + b.Good) / 2.0
	case models.LevelAdvanced:
		return b.Good
	case models.LevelExpert:
		return (b.Good + b.Excellent) / 2.0
	}
	return (b.Fair + b.Good) / 2.0
}

// Estimate converts a normative band plus profile inputs into an e1RM.
// band is nil when no normative standard matched the patient's age; the
// result then signals "no estimate" instead of failing.
func Estimate(metric string, bodyweightKg float64, presumedLevel string, band *Band) EstimateResult {
	if metric == models.MetricPullupReps {
		return EstimateResult{
			Method: MethodNotApplicable,
			Notes:  "Pull-ups prescribed via reps/sets; no 1RM estimate.",
		}
	}

	if bodyweightKg <= 0 {
		return EstimateResult{
			Method: MethodMissingBodyweight,
			Notes:  "Bodyweight is required to estimate 1RM from relative norms.",
		}
	}

	if band == nil {
		return EstimateResult{
			Method: MethodNoNormFound,
			Notes:  "No normative standard found for this exercise/sex/age/metric.",
		}
	}

	ratio := levelTargetRatio(*band, presumedLevel)
	e1rm := ratio * bodyweightKg

	return EstimateResult{
		E1RMKg:   &e1rm,
		RelRatio: &ratio,
		Method:   MethodNormLevelBand,
		BandUsed: fmt.Sprintf("%d-%d", band.AgeMin, band.AgeMax),
		Notes:    fmt.Sprintf("Norms: %s %s", band.Source, band.Notes),
	}
}
