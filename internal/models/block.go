package models

import "time"

// Prescription modes for a template row.
const (
	ModeReps = "reps"
	ModeTime = "time"
)

// Block is a multi-week training block with a fixed deload week.
type Block struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patient_id"`
	StartDate       time.Time `json:"start_date"` // week boundary, Monday recommended
	Weeks           int       `json:"weeks"`
	Model           string    `json:"model"` // e.g. "hybrid_v1"
	DeloadWeek      int       `json:"deload_week"`
	SessionsPerWeek int       `json:"sessions_per_week"` // 1-3 -> labels A/B/C
	Goal            string    `json:"goal"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

type Week struct {
	ID        string    `json:"id"`
	BlockID   string    `json:"block_id"`
	WeekNo    int       `json:"week_no"`
	WeekStart time.Time `json:"week_start"`
	Focus     string    `json:"focus"`
	Deload    bool      `json:"deload"`
	Notes     string    `json:"notes"`
}

type Session struct {
	ID      string `json:"id"`
	WeekID  string `json:"week_id"`
	Label   string `json:"session_label"` // A/B/C
	DayHint string `json:"day_hint"`
	Notes   string `json:"notes"`
}

// SessionTemplate is the reusable recipe for one session label across all
// weeks of a block: the week-1 values plus a progression rule per row.
type SessionTemplate struct {
	ID      string                `json:"id"`
	BlockID string                `json:"block_id"`
	Label   string                `json:"session_label"`
	Title   string                `json:"title"`
	Notes   string                `json:"notes"`
	Rows    []TemplateExerciseRow `json:"rows"`
}

// TemplateExerciseRow defines one exercise slot of a session template.
// Superset grouping is display metadata only and never affects targets.
type TemplateExerciseRow struct {
	ID         string `json:"id"`
	TemplateID string `json:"template_id"`
	SortOrder  int    `json:"sort_order"`
	GroupKey   string `json:"group_key,omitempty"`
	GroupOrder *int   `json:"group_order,omitempty"`

	ExerciseID string `json:"exercise_id"`

	// Unilateral rows can anchor their %1RM to a bilateral lift; the
	// scaled per-limb equivalent is used in place of a direct e1RM.
	AnchorExerciseID string `json:"anchor_exercise_id,omitempty"`

	Mode string `json:"mode"` // reps or time
	Sets int    `json:"sets"`

	RepsStart *int `json:"reps_start,omitempty"`
	RepsStep  int  `json:"reps_step"`
	RepsCap   *int `json:"reps_cap,omitempty"`

	TimeStartSec *int `json:"time_start_sec,omitempty"`
	TimeStepSec  int  `json:"time_step_sec"`
	TimeCapSec   *int `json:"time_cap_sec,omitempty"`

	Pct1RMStart *float64 `json:"pct_1rm_start,omitempty"` // 0..1
	Pct1RMStep  float64  `json:"pct_1rm_step"`
	Pct1RMCap   *float64 `json:"pct_1rm_cap,omitempty"`

	// Direct-load path for rows without a %1RM schedule.
	LoadStartKg     *float64 `json:"load_start_kg,omitempty"`
	LoadIncrementKg float64  `json:"load_increment_kg"`

	RPETarget *int   `json:"rpe_target,omitempty"`
	RestSec   *int   `json:"rest_sec,omitempty"`
	Intent    string `json:"intent"`
	Notes     string `json:"notes"`
}

// WeekTarget is the materialized prescription for one template row in one
// week. Planned fields are rewritten on regeneration; actual fields are
// written only by the actuals tracker and never touched by regeneration.
type WeekTarget struct {
	ID                 string `json:"id"`
	TemplateExerciseID string `json:"template_exercise_id"`
	WeekNo             int    `json:"week_no"`

	Sets      int      `json:"sets"`
	Reps      *int     `json:"reps,omitempty"`
	TimeSec   *int     `json:"time_sec,omitempty"`
	Pct1RM    *float64 `json:"pct_1rm,omitempty"`
	LoadKg    *float64 `json:"load_kg,omitempty"`
	RPETarget *int     `json:"rpe_target,omitempty"`
	RestSec   *int     `json:"rest_sec,omitempty"`
	Intent    string   `json:"intent"`
	Notes     string   `json:"notes"`

	ActualSets    *int     `json:"actual_sets,omitempty"`
	ActualReps    *int     `json:"actual_reps,omitempty"`
	ActualTimeSec *int     `json:"actual_time_sec,omitempty"`
	ActualLoadKg  *float64 `json:"actual_load_kg,omitempty"`
	Completed     bool     `json:"completed"`
	ActualNotes   string   `json:"actual_notes"`
}

//
// Nested block detail for display
//

type BlockDetail struct {
	Block Block        `json:"block"`
	Weeks []WeekDetail `json:"weeks"`
}

type WeekDetail struct {
	Week     Week            `json:"week"`
	Sessions []SessionDetail `json:"sessions"`
}

type SessionDetail struct {
	Label string      `json:"session_label"`
	Rows  []TargetRow `json:"rows"`
}

// TargetRow is one exercise row of one session in one week, planned and
// actual values side by side.
type TargetRow struct {
	Target       WeekTarget `json:"target"`
	ExerciseName string     `json:"exercise_name"`
	Implement    string     `json:"implement"`
	Mode         string     `json:"mode"`
	GroupKey     string     `json:"group_key,omitempty"`
	GroupOrder   *int       `json:"group_order,omitempty"`
	SortOrder    int        `json:"sort_order"`
}

//
// For TOML parsing only
//

type TemplateImportTOML struct {
	Sessions []SessionTemplateTOML `toml:"session"`
}

type SessionTemplateTOML struct {
	Label     string             `toml:"label"`
	Title     string             `toml:"title"`
	Notes     string             `toml:"notes,omitempty"`
	Exercises []TemplateRowTOML `toml:"exercise"`
}

type TemplateRowTOML struct {
	Name            string   `toml:"name"`
	Anchor          string   `toml:"anchor,omitempty"` // bilateral lift name for unilateral rows
	Group           string   `toml:"group,omitempty"`
	GroupOrder      *int     `toml:"group_order,omitempty"`
	Mode            string   `toml:"mode,omitempty"`
	Sets            int      `toml:"sets"`
	RepsStart       *int     `toml:"reps_start,omitempty"`
	RepsStep        *int     `toml:"reps_step,omitempty"`
	RepsCap         *int     `toml:"reps_cap,omitempty"`
	TimeStartSec    *int     `toml:"time_start_sec,omitempty"`
	TimeStepSec     *int     `toml:"time_step_sec,omitempty"`
	TimeCapSec      *int     `toml:"time_cap_sec,omitempty"`
	Pct1RMStart     *float64 `toml:"pct_1rm_start,omitempty"`
	Pct1RMStep      *float64 `toml:"pct_1rm_step,omitempty"`
	Pct1RMCap       *float64 `toml:"pct_1rm_cap,omitempty"`
	LoadStartKg     *float64 `toml:"load_start_kg,omitempty"`
	LoadIncrementKg *float64 `toml:"load_increment_kg,omitempty"`
	TargetRPE       *int     `toml:"target_rpe,omitempty"`
	RestSec         *int     `toml:"rest_sec,omitempty"`
	Intent          string   `toml:"intent,omitempty"`
	Notes           string   `toml:"notes,omitempty"`
}
