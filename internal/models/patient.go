package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleCoach  = "coach"
	RoleClient = "client"
)

const (
	SexMale   = "male"
	SexFemale = "female"
)

// Presumed training levels, ordered weakest to strongest.
const (
	LevelNovice       = "novice"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelExpert       = "expert"
)

type Patient struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	OwnerUserID string    `json:"owner_user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// PatientProfile drives the auto-estimates: the normative standards are
// bodyweight-relative, so sex, age and bodyweight are all inputs.
type PatientProfile struct {
	PatientID     string   `json:"patient_id"`
	Sex           string   `json:"sex"`
	DOB           string   `json:"dob"` // YYYY-MM-DD, optional
	BodyweightKg  *float64 `json:"bodyweight_kg,omitempty"`
	PresumedLevel string   `json:"presumed_level"`
}

// StrengthEstimate is the audit record for a saved e1RM estimate. One row
// per (patient, exercise); saving again overwrites the previous value.
type StrengthEstimate struct {
	PatientID      string    `json:"patient_id"`
	ExerciseID     string    `json:"exercise_id"`
	AsOfDate       time.Time `json:"as_of_date"`
	Estimated1RMKg *float64  `json:"estimated_1rm_kg,omitempty"` // null for rep-based exercises
	EstimatedRelBW *float64  `json:"estimated_rel_1rm_bw,omitempty"`
	LevelUsed      string    `json:"level_used"`
	SexUsed        string    `json:"sex_used"`
	AgeUsed        int       `json:"age_used"`
	BodyweightUsed *float64  `json:"bw_used,omitempty"`
	Method         string    `json:"method"`
	Notes          string    `json:"notes"`
}
