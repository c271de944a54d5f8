package storage

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/technique-ps/technique/internal/models"
)

const normSource = "Internal endurance-athlete benchmarks (v1)"

// Seed populates the initial exercise library, rep schemes and normative
// strength standards. It is a no-op when standards already exist, so
// running init twice is safe.
func (s *Storage) Seed() error {
	n, err := s.CountNormStandards()
	if err != nil {
		return fmt.Errorf("Failed to count norm standards: %w", err)
	}
	if n > 0 {
		return nil
	}

	ids, err := s.seedExercises()
	if err != nil {
		return err
	}
	if err := s.seedRepSchemes(); err != nil {
		return err
	}
	return s.seedNormStandards(ids)
}

func (s *Storage) seedExercises() (map[string]string, error) {
	now := time.Now()
	defs := []models.Exercise{
		{Name: "Back Squat", Category: "squat", Laterality: models.LateralityBilateral, Implement: models.ImplementBarbell, PrimaryMuscles: "quads/glutes", Notes: "Use low-bar or high-bar as per athlete tolerance."},
		{Name: "Deadlift", Category: "hinge", Laterality: models.LateralityBilateral, Implement: models.ImplementBarbell, PrimaryMuscles: "posterior chain", Notes: "Trap bar can be substituted."},
		{Name: "Bench Press", Category: "push", Laterality: models.LateralityBilateral, Implement: models.ImplementBarbell, PrimaryMuscles: "pecs/triceps"},
		{Name: "Overhead Press", Category: "push", Laterality: models.LateralityBilateral, Implement: models.ImplementBarbell, PrimaryMuscles: "shoulders/triceps"},
		{Name: "Pull-Up", Category: "pull", Laterality: models.LateralityBilateral, Implement: models.ImplementBodyweight, PrimaryMuscles: "lats/upper back", Notes: "Metric recorded as reps, not 1RM."},
		{Name: "Bulgarian Split Squat", Category: "squat", Laterality: models.LateralityUnilateral, Implement: models.ImplementDumbbell, PrimaryMuscles: "quads/glutes", Notes: "Rear-foot elevated split squat."},
		{Name: "Single-Leg RDL", Category: "hinge", Laterality: models.LateralityUnilateral, Implement: models.ImplementDumbbell, PrimaryMuscles: "hamstrings/glutes"},
		{Name: "Step-Up", Category: "squat", Laterality: models.LateralityUnilateral, Implement: models.ImplementDumbbell, PrimaryMuscles: "quads/glutes", Notes: "Use step height near knee level for strength standardisation."},
	}

	ids := make(map[string]string, len(defs))
	for _, def := range defs {
		def.ID = uuid.New().String()
		def.CreatedAt = now
		if err := s.CreateExercise(def); err != nil {
			return nil, fmt.Errorf("Failed to seed exercise %s: %w", def.Name, err)
		}
		// CreateExercise upserts by name, re-read to get the real id.
		ex, err := s.GetExerciseByName(def.Name)
		if err != nil {
			return nil, err
		}
		ids[def.Name] = ex.ID
	}

	return ids, nil
}

func (s *Storage) seedRepSchemes() error {
	schemes := []models.RepScheme{
		{Goal: "endurance", Phase: "base", RepsMin: 12, RepsMax: 20, SetsMin: 2, SetsMax: 4, Pct1RMMin: fptr(0.55), Pct1RMMax: fptr(0.70), RPEMin: iptr(5), RPEMax: iptr(7), RestMin: iptr(45), RestMax: iptr(90), Intent: "Controlled; continuous tension"},
		{Goal: "hypertrophy", Phase: "base", RepsMin: 8, RepsMax: 12, SetsMin: 3, SetsMax: 5, Pct1RMMin: fptr(0.65), Pct1RMMax: fptr(0.80), RPEMin: iptr(6), RPEMax: iptr(8), RestMin: iptr(60), RestMax: iptr(120), Intent: "Controlled eccentric; crisp concentric"},
		{Goal: "strength", Phase: "build", RepsMin: 3, RepsMax: 6, SetsMin: 3, SetsMax: 6, Pct1RMMin: fptr(0.80), Pct1RMMax: fptr(0.92), RPEMin: iptr(7), RPEMax: iptr(9), RestMin: iptr(120), RestMax: iptr(240), Intent: "Max intent; full rest"},
		{Goal: "power", Phase: "peak", RepsMin: 2, RepsMax: 5, SetsMin: 3, SetsMax: 6, Pct1RMMin: fptr(0.30), Pct1RMMax: fptr(0.60), RPEMin: iptr(5), RPEMax: iptr(7), RestMin: iptr(90), RestMax: iptr(180), Intent: "Explosive concentric; stop before speed drops"},
	}

	for _, r := range schemes {
		if err := s.UpsertRepScheme(r); err != nil {
			return fmt.Errorf("Failed to seed rep scheme %s/%s: %w", r.Goal, r.Phase, err)
		}
	}

	return nil
}

func (s *Storage) seedNormStandards(ids map[string]string) error {
	type bench struct {
		exercise string
		sex      string
		metric   string
		p, f     float64
		g, e     float64
	}

	// Pragmatic endurance-athlete oriented thresholds, not powerlifting norms.
	benches := []bench{
		{"Back Squat", models.SexMale, models.MetricRel1RMBW, 0.8, 1.0, 1.2, 1.5},
		{"Deadlift", models.SexMale, models.MetricRel1RMBW, 1.0, 1.2, 1.5, 1.8},
		{"Bench Press", models.SexMale, models.MetricRel1RMBW, 0.6, 0.8, 1.0, 1.25},
		{"Overhead Press", models.SexMale, models.MetricRel1RMBW, 0.4, 0.5, 0.65, 0.8},
		{"Pull-Up", models.SexMale, models.MetricPullupReps, 1, 5, 10, 15},

		{"Back Squat", models.SexFemale, models.MetricRel1RMBW, 0.6, 0.8, 1.0, 1.25},
		{"Deadlift", models.SexFemale, models.MetricRel1RMBW, 0.8, 1.0, 1.2, 1.5},
		{"Bench Press", models.SexFemale, models.MetricRel1RMBW, 0.35, 0.5, 0.65, 0.85},
		{"Overhead Press", models.SexFemale, models.MetricRel1RMBW, 0.25, 0.35, 0.45, 0.6},
		{"Pull-Up", models.SexFemale, models.MetricPullupReps, 0, 1, 5, 9},
	}

	for _, b := range benches {
		exID, ok := ids[b.exercise]
		if !ok {
			return fmt.Errorf("Failed to seed norms: unknown exercise %s", b.exercise)
		}
		if err := s.addAgeBands(exID, b.sex, b.metric, b.p, b.f, b.g, b.e); err != nil {
			return fmt.Errorf("Failed to seed norms for %s (%s): %w", b.exercise, b.sex, err)
		}
	}

	return nil
}

// addAgeBands writes the 18-39 baseline plus age-adjusted 40-54 and 55-65
// bands. Load metrics shift down ~10%/~20%; pull-up reps shift by whole reps.
func (s *Storage) addAgeBands(exerciseID, sex, metric string, p, f, g, e float64) error {
	write := func(ageMin, ageMax int, p, f, g, e float64, notes string) error {
		return s.UpsertNormStandard(models.NormativeStandard{
			ExerciseID: exerciseID,
			Sex:        sex,
			AgeMin:     ageMin,
			AgeMax:     ageMax,
			Metric:     metric,
			Poor:       p,
			Fair:       f,
			Good:       g,
			Excellent:  e,
			Source:     normSource,
			Notes:      notes,
		})
	}

	if err := write(18, 39, p, f, g, e, ""); err != nil {
		return err
	}

	if metric == models.MetricRel1RMBW {
		if err := write(40, 54, p*0.90, f*0.90, g*0.90, e*0.90, "Adjusted ~10% for age."); err != nil {
			return err
		}
		return write(55, 65, p*0.80, f*0.80, g*0.80, e*0.80, "Adjusted ~20% for age.")
	}

	if err := write(40, 54, math.Max(0, p-1), math.Max(0, f-1), math.Max(0, g-1), math.Max(0, e-2), "Adjusted reps for age."); err != nil {
		return err
	}
	return write(55, 65, math.Max(0, p-2), math.Max(0, f-2), math.Max(0, g-2), math.Max(0, e-3), "Adjusted reps for age.")
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
