package models

import "time"

const (
	LateralityBilateral  = "bilateral"
	LateralityUnilateral = "unilateral"
)

const (
	ImplementBarbell    = "barbell"
	ImplementDumbbell   = "dumbbell"
	ImplementKettlebell = "kettlebell"
	ImplementBodyweight = "bodyweight"
	ImplementBand       = "band"
	ImplementMachine    = "machine"
)

// Normative standard metrics.
const (
	MetricRel1RMBW   = "rel_1rm_bw"  // 1RM expressed as a multiple of bodyweight.
	MetricPullupReps = "pullup_reps" // prescribed via reps/sets, no load estimate.
)

type Exercise struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`   // squat/hinge/push/pull/conditioning etc.
	Laterality     string    `json:"laterality"` // bilateral/unilateral
	Implement      string    `json:"implement"`
	PrimaryMuscles string    `json:"primary_muscles"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// NormativeStandard holds one age band of strength thresholds for an
// exercise/sex/metric. Thresholds are ordered poor < fair < good < excellent.
type NormativeStandard struct {
	ID         string  `json:"id"`
	ExerciseID string  `json:"exercise_id"`
	Sex        string  `json:"sex"` // male/female
	AgeMin     int     `json:"age_min"`
	AgeMax     int     `json:"age_max"`
	Metric     string  `json:"metric"`
	Poor       float64 `json:"poor"`
	Fair       float64 `json:"fair"`
	Good       float64 `json:"good"`
	Excellent  float64 `json:"excellent"`
	Source     string  `json:"source"`
	Notes      string  `json:"notes"`
}

type RepScheme struct {
	ID        string   `json:"id"`
	Goal      string   `json:"goal"`  // endurance/hypertrophy/strength/power
	Phase     string   `json:"phase"` // base/build/peak
	RepsMin   int      `json:"reps_min"`
	RepsMax   int      `json:"reps_max"`
	SetsMin   int      `json:"sets_min"`
	SetsMax   int      `json:"sets_max"`
	Pct1RMMin *float64 `json:"pct_1rm_min,omitempty"`
	Pct1RMMax *float64 `json:"pct_1rm_max,omitempty"`
	RPEMin    *int     `json:"rpe_min,omitempty"`
	RPEMax    *int     `json:"rpe_max,omitempty"`
	RestMin   *int     `json:"rest_sec_min,omitempty"`
	RestMax   *int     `json:"rest_sec_max,omitempty"`
	Intent    string   `json:"intent"`
}

//
// For TOML parsing only
//

type ExerciseDefTOML struct {
	Name           string `toml:"name"`
	Category       string `toml:"category"`
	Laterality     string `toml:"laterality"`
	Implement      string `toml:"implement"`
	PrimaryMuscles string `toml:"primary_muscles"`
	Notes          string `toml:"notes,omitempty"`
}

type ExerciseImport struct {
	Exercises []ExerciseDefTOML `toml:"exercise"`
}
