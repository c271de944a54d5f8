package service_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/technique-ps/technique/internal/engine"
	"github.com/technique-ps/technique/internal/models"
	"github.com/technique-ps/technique/internal/service"
)

func TestEstimateExercise(t *testing.T) {
	Convey("Given a patient with a profile and a normed exercise", t, func() {
		store := newFakeStore()

		bw := 80.0
		store.profile = &models.PatientProfile{
			PatientID:     "patient-1",
			Sex:           models.SexMale,
			BodyweightKg:  &bw,
			PresumedLevel: models.LevelIntermediate,
		}
		store.exercises["squat"] = models.Exercise{
			ID:         "squat",
			Name:       "Back Squat",
			Category:   "squat",
			Laterality: models.LateralityBilateral,
			Implement:  models.ImplementBarbell,
		}
		store.bands["squat"] = &engine.Band{
			Poor: 0.8, Fair: 1.0, Good: 1.2, Excellent: 1.5,
			AgeMin: 18, AgeMax: 39,
		}

		Convey("When the estimate is saved", func() {
			est, err := service.EstimateExercise(store, "coach-1", "patient-1", "Back Squat", true)

			Convey("Then the normative e1RM comes out with an audit row", func() {
				So(err, ShouldBeNil)
				So(*est.Result.E1RMKg, ShouldAlmostEqual, 88.0, 0.0001)
				So(est.Result.Method, ShouldEqual, "norm_level_band_v1")
				So(store.estimates, ShouldHaveLength, 1)
				So(store.estimates[0].ExerciseID, ShouldEqual, "squat")
			})
		})

		Convey("When the band lookup fails", func() {
			store.bandErr = errors.New("connection reset")
			_, err := service.EstimateExercise(store, "coach-1", "patient-1", "Back Squat", false)

			Convey("Then the error propagates instead of reading as no norm", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "connection reset")
			})
		})
	})
}

func TestEstimateUnilateral(t *testing.T) {
	Convey("Given a unilateral exercise anchored to a normed lift", t, func() {
		store := newFakeStore()

		bw := 80.0
		store.profile = &models.PatientProfile{
			PatientID:     "patient-1",
			Sex:           models.SexMale,
			BodyweightKg:  &bw,
			PresumedLevel: models.LevelIntermediate,
		}
		store.exercises["squat"] = models.Exercise{
			ID:         "squat",
			Name:       "Back Squat",
			Laterality: models.LateralityBilateral,
			Implement:  models.ImplementBarbell,
		}
		store.exercises["bss"] = models.Exercise{
			ID:         "bss",
			Name:       "Bulgarian Split Squat",
			Laterality: models.LateralityUnilateral,
			Implement:  models.ImplementDumbbell,
		}
		store.bands["squat"] = &engine.Band{
			Poor: 0.8, Fair: 1.0, Good: 1.2, Excellent: 1.5,
			AgeMin: 18, AgeMax: 39,
		}

		Convey("When the per-limb estimate runs", func() {
			est, err := service.EstimateUnilateral(store, "coach-1", "patient-1", "Bulgarian Split Squat", "Back Squat", false)

			Convey("Then the anchor's e1RM scales to the per-limb equivalent", func() {
				So(err, ShouldBeNil)
				So(*est.Result.E1RMKg, ShouldAlmostEqual, 35.2, 0.0001)
				So(est.Result.Notes, ShouldContainSubstring, "Back Squat")
			})
		})

		Convey("When the band lookup fails", func() {
			store.bandErr = errors.New("connection reset")
			_, err := service.EstimateUnilateral(store, "coach-1", "patient-1", "Bulgarian Split Squat", "Back Squat", false)

			So(err, ShouldNotBeNil)
		})
	})
}
