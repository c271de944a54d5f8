package models

import "time"

type Ride struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	RideDate    time.Time `json:"ride_date"`
	DistanceKm  float64   `json:"distance_km"`
	DurationMin int       `json:"duration_min"`
	RPE         *int      `json:"rpe,omitempty"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// WeekPlan is the coach-entered endurance plan for one week (Monday start).
type WeekPlan struct {
	PatientID    string    `json:"patient_id"`
	WeekStart    time.Time `json:"week_start"`
	PlannedKm    *float64  `json:"planned_km,omitempty"`
	PlannedHours *float64  `json:"planned_hours,omitempty"`
	Phase        string    `json:"phase"`
	Notes        string    `json:"notes"`
}

// WeeklySummary is a derived plan-vs-actual row, never stored.
type WeeklySummary struct {
	WeekStart     time.Time `json:"week_start"`
	PlannedKm     float64   `json:"planned_km"`
	PlannedHours  float64   `json:"planned_hours"`
	ActualKm      float64   `json:"actual_km"`
	ActualHours   float64   `json:"actual_hours"`
	RidesCount    int       `json:"rides_count"`
	KmVariance    float64   `json:"km_variance"`
	HoursVariance float64   `json:"hours_variance"`
	Phase         string    `json:"phase"`
}

type StravaTokens struct {
	PatientID    string `json:"patient_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // epoch seconds
	AthleteID    *int64 `json:"athlete_id,omitempty"`
	Scope        string `json:"scope"`
}
