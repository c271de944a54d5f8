package service_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/technique-ps/technique/internal/engine"
	"github.com/technique-ps/technique/internal/models"
	"github.com/technique-ps/technique/internal/service"
	"github.com/technique-ps/technique/internal/storage"
)

type fakeStore struct {
	denyAccess bool
	blocks     map[string]models.Block
	profile    *models.PatientProfile
	profileErr error
	templates  []models.SessionTemplate
	exercises  map[string]models.Exercise
	bands      map[string]*engine.Band
	bandErr    error

	created   []models.Block
	planned   []storage.PlannedRow
	targets   map[string]*fakeTarget
	estimates []models.StrengthEstimate
}

// fakeTarget mirrors one sc_week_targets row: generation may rewrite the
// planned half, logged actuals belong to the other half.
type fakeTarget struct {
	Planned      engine.PlannedTarget
	ActualReps   *int
	ActualLoadKg *float64
	Completed    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		blocks:    map[string]models.Block{},
		exercises: map[string]models.Exercise{},
		bands:     map[string]*engine.Band{},
		targets:   map[string]*fakeTarget{},
	}
}

func targetKey(rowID string, weekNo int) string {
	return fmt.Sprintf("%s/%d", rowID, weekNo)
}

func (f *fakeStore) EnsurePatientAccess(userID, patientID string) error {
	if f.denyAccess {
		return storage.ErrPermissionDenied
	}
	return nil
}

func (f *fakeStore) CreateBlock(b models.Block) error {
	f.created = append(f.created, b)
	f.blocks[b.ID] = b
	return nil
}

func (f *fakeStore) GetBlock(id string) (*models.Block, error) {
	b, ok := f.blocks[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &b, nil
}

func (f *fakeStore) GetPatientProfile(patientID string) (*models.PatientProfile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	if f.profile == nil {
		return nil, storage.ErrNotFound
	}
	return f.profile, nil
}

func (f *fakeStore) ListSessionTemplates(blockID string) ([]models.SessionTemplate, error) {
	return f.templates, nil
}

func (f *fakeStore) GetExerciseByID(id string) (*models.Exercise, error) {
	ex, ok := f.exercises[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &ex, nil
}

func (f *fakeStore) LookupNormBand(exerciseID, sex, metric string, age int) (*engine.Band, error) {
	if f.bandErr != nil {
		return nil, f.bandErr
	}
	return f.bands[exerciseID], nil
}

func (f *fakeStore) GetExerciseByName(name string) (*models.Exercise, error) {
	for _, ex := range f.exercises {
		if ex.Name == name {
			ex := ex
			return &ex, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) SaveStrengthEstimate(e models.StrengthEstimate) error {
	f.estimates = append(f.estimates, e)
	return nil
}

func (f *fakeStore) UpsertPlannedTargets(rows []storage.PlannedRow) error {
	f.planned = rows
	for _, row := range rows {
		for _, t := range row.Targets {
			key := targetKey(row.TemplateExerciseID, t.WeekNo)
			stored, ok := f.targets[key]
			if !ok {
				stored = &fakeTarget{}
				f.targets[key] = stored
			}
			stored.Planned = t
		}
	}
	return nil
}

func TestCreateBlock(t *testing.T) {
	Convey("Given a block request", t, func() {
		store := newFakeStore()
		base := models.Block{
			PatientID:       "patient-1",
			StartDate:       time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), // a Wednesday
			Weeks:           6,
			DeloadWeek:      4,
			SessionsPerWeek: 2,
		}

		Convey("When the parameters are valid", func() {
			block, err := service.CreateBlock(store, "coach-1", base)

			Convey("Then the block persists with a Monday start and default model", func() {
				So(err, ShouldBeNil)
				So(block.ID, ShouldNotBeEmpty)
				So(block.StartDate.Weekday(), ShouldEqual, time.Monday)
				So(block.StartDate.Format("2006-01-02"), ShouldEqual, "2026-03-02")
				So(block.Model, ShouldEqual, "hybrid_v1")
				So(store.created, ShouldHaveLength, 1)
			})
		})

		Convey("When the deload week falls outside the block", func() {
			bad := base
			bad.DeloadWeek = 7
			_, err := service.CreateBlock(store, "coach-1", bad)

			So(errors.Is(err, storage.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("When weeks is zero", func() {
			bad := base
			bad.Weeks = 0
			_, err := service.CreateBlock(store, "coach-1", bad)

			So(errors.Is(err, storage.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("When sessions per week is out of range", func() {
			bad := base
			bad.SessionsPerWeek = 4
			_, err := service.CreateBlock(store, "coach-1", bad)

			So(errors.Is(err, storage.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("When the user has no access to the patient", func() {
			store.denyAccess = true
			_, err := service.CreateBlock(store, "stranger", base)

			So(errors.Is(err, storage.ErrPermissionDenied), ShouldBeTrue)
		})
	})
}

func TestGenerateTargets(t *testing.T) {
	Convey("Given a 6-week block with a barbell and an anchored unilateral row", t, func() {
		store := newFakeStore()

		bw := 80.0
		store.profile = &models.PatientProfile{
			PatientID:     "patient-1",
			Sex:           models.SexMale,
			BodyweightKg:  &bw,
			PresumedLevel: models.LevelIntermediate,
		}

		store.blocks["block-1"] = models.Block{
			ID:              "block-1",
			PatientID:       "patient-1",
			Weeks:           6,
			DeloadWeek:      4,
			SessionsPerWeek: 2,
		}

		store.exercises["squat"] = models.Exercise{
			ID:         "squat",
			Name:       "Back Squat",
			Category:   "squat",
			Laterality: models.LateralityBilateral,
			Implement:  models.ImplementBarbell,
		}
		store.exercises["bss"] = models.Exercise{
			ID:         "bss",
			Name:       "Bulgarian Split Squat",
			Category:   "squat",
			Laterality: models.LateralityUnilateral,
			Implement:  models.ImplementDumbbell,
		}
		store.bands["squat"] = &engine.Band{
			Poor: 0.8, Fair: 1.0, Good: 1.2, Excellent: 1.5,
			AgeMin: 18, AgeMax: 39,
		}

		reps := 5
		pctStart := 0.70
		bssReps := 8
		bssPct := 0.60
		store.templates = []models.SessionTemplate{{
			ID:      "tmpl-a",
			BlockID: "block-1",
			Label:   "A",
			Rows: []models.TemplateExerciseRow{
				{
					ID:              "row-squat",
					ExerciseID:      "squat",
					Sets:            4,
					RepsStart:       &reps,
					Pct1RMStart:     &pctStart,
					Pct1RMStep:      0.02,
					LoadIncrementKg: 2.5,
				},
				{
					ID:               "row-bss",
					ExerciseID:       "bss",
					AnchorExerciseID: "squat",
					Sets:             3,
					RepsStart:        &bssReps,
					Pct1RMStart:      &bssPct,
					LoadIncrementKg:  2.5,
				},
			},
		}}

		Convey("When targets are generated", func() {
			count, err := service.GenerateTargets(store, "coach-1", "block-1")

			Convey("Then every row gets one target per week", func() {
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 12)
				So(store.planned, ShouldHaveLength, 2)
			})

			Convey("And the barbell row is driven by the normative e1RM", func() {
				squatTargets := store.planned[0].Targets
				So(store.planned[0].TemplateExerciseID, ShouldEqual, "row-squat")
				So(*squatTargets[0].LoadKg, ShouldAlmostEqual, 62.5, 0.0001)
				So(*squatTargets[0].Pct1RM, ShouldAlmostEqual, 0.70, 0.0001)
			})

			Convey("And the unilateral row scales off its anchor", func() {
				bssTargets := store.planned[1].Targets
				So(store.planned[1].TemplateExerciseID, ShouldEqual, "row-bss")
				// 88kg squat e1RM * 0.40 per-limb * 60%, rounded to 2.5.
				So(*bssTargets[0].LoadKg, ShouldAlmostEqual, 20.0, 0.0001)
			})

			Convey("And running it again produces identical plans", func() {
				first := store.planned
				_, err := service.GenerateTargets(store, "coach-1", "block-1")
				So(err, ShouldBeNil)
				So(store.planned, ShouldResemble, first)
			})
		})

		Convey("When actuals were logged before a regeneration", func() {
			loggedReps := 5
			loggedLoad := 60.0
			store.targets[targetKey("row-squat", 3)] = &fakeTarget{
				ActualReps:   &loggedReps,
				ActualLoadKg: &loggedLoad,
				Completed:    true,
			}

			_, err := service.GenerateTargets(store, "coach-1", "block-1")

			Convey("Then the planned half is rewritten and the actuals survive", func() {
				So(err, ShouldBeNil)
				stored := store.targets[targetKey("row-squat", 3)]
				So(*stored.Planned.LoadKg, ShouldAlmostEqual, 65.0, 0.0001)
				So(*stored.ActualReps, ShouldEqual, 5)
				So(*stored.ActualLoadKg, ShouldAlmostEqual, 60.0, 0.0001)
				So(stored.Completed, ShouldBeTrue)
			})
		})

		Convey("When the profile read fails outright", func() {
			store.profileErr = errors.New("connection reset")
			_, err := service.GenerateTargets(store, "coach-1", "block-1")

			Convey("Then the error propagates instead of silently degrading", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "connection reset")
			})
		})

		Convey("When the patient has no profile", func() {
			store.profile = nil
			count, err := service.GenerateTargets(store, "coach-1", "block-1")

			Convey("Then generation still succeeds without loads", func() {
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 12)
				So(store.planned[0].Targets[0].LoadKg, ShouldBeNil)
				So(*store.planned[0].Targets[0].Reps, ShouldEqual, 5)
			})
		})

		Convey("When access is denied", func() {
			store.denyAccess = true
			_, err := service.GenerateTargets(store, "stranger", "block-1")

			So(errors.Is(err, storage.ErrPermissionDenied), ShouldBeTrue)
		})
	})
}
