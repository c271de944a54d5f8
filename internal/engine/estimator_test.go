package engine_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/technique-ps/technique/internal/engine"
	"github.com/technique-ps/technique/internal/models"
)

func TestEstimate(t *testing.T) {
	band := engine.Band{
		Poor:      0.8,
		Fair:      1.0,
		Good:      1.2,
		Excellent: 1.5,
		AgeMin:    18,
		AgeMax:    39,
		Source:    "internal benchmarks v1",
	}

	Convey("Given a squat normative band for a male aged 18-39", t, func() {
		Convey("When estimating for an 80kg intermediate athlete", func() {
			res := engine.Estimate(models.MetricRel1RMBW, 80, models.LevelIntermediate, &band)

			Convey("Then the target ratio is the fair/good midpoint", func() {
				So(res.RelRatio, ShouldNotBeNil)
				So(*res.RelRatio, ShouldAlmostEqual, 1.10, 0.0001)
			})

			Convey("And the e1RM is ratio times bodyweight", func() {
				So(res.E1RMKg, ShouldNotBeNil)
				So(*res.E1RMKg, ShouldAlmostEqual, 88.0, 0.0001)
				So(res.Method, ShouldEqual, engine.MethodNormLevelBand)
				So(res.BandUsed, ShouldEqual, "18-39")
			})
		})

		Convey("When estimating across all presumed levels", func() {
			levels := []string{
				models.LevelNovice,
				models.LevelIntermediate,
				models.LevelAdvanced,
				models.LevelExpert,
			}

			Convey("Then estimates are ordered weakest to strongest", func() {
				prev := 0.0
				for _, level := range levels {
					res := engine.Estimate(models.MetricRel1RMBW, 80, level, &band)
					So(res.E1RMKg, ShouldNotBeNil)
					So(*res.E1RMKg, ShouldBeGreaterThanOrEqualTo, prev)
					prev = *res.E1RMKg
				}
			})

			Convey("And an unknown level falls back to the intermediate rule", func() {
				res := engine.Estimate(models.MetricRel1RMBW, 80, "elite", &band)
				So(res.E1RMKg, ShouldNotBeNil)
				So(*res.E1RMKg, ShouldAlmostEqual, 88.0, 0.0001)
			})
		})

		Convey("When the metric is rep based", func() {
			res := engine.Estimate(models.MetricPullupReps, 80, models.LevelAdvanced, &band)

			Convey("Then no e1RM is produced regardless of other inputs", func() {
				So(res.E1RMKg, ShouldBeNil)
				So(res.RelRatio, ShouldBeNil)
				So(res.Method, ShouldEqual, engine.MethodNotApplicable)
			})
		})

		Convey("When bodyweight is missing or non-positive", func() {
			Convey("Then estimation signals missing bodyweight", func() {
				for _, bw := range []float64{0, -5} {
					res := engine.Estimate(models.MetricRel1RMBW, bw, models.LevelNovice, &band)
					So(res.E1RMKg, ShouldBeNil)
					So(res.Method, ShouldEqual, engine.MethodMissingBodyweight)
				}
			})
		})
	})

	Convey("Given no normative band matched the athlete's age", t, func() {
		res := engine.Estimate(models.MetricRel1RMBW, 80, models.LevelIntermediate, nil)

		Convey("Then estimation signals no norm found, without failing", func() {
			So(res.E1RMKg, ShouldBeNil)
			So(res.Method, ShouldEqual, engine.MethodNoNormFound)
		})
	})
}

func TestEpleyOneRM(t *testing.T) {
	Convey("Given a logged set", t, func() {
		Convey("Then the Epley estimate follows weight * (1 + reps/30)", func() {
			So(engine.EpleyOneRM(100, 5), ShouldAlmostEqual, 116.6667, 0.001)
			So(engine.EpleyOneRM(60, 1), ShouldAlmostEqual, 62.0, 0.0001)
		})

		Convey("And zero reps yields zero", func() {
			So(engine.EpleyOneRM(100, 0), ShouldEqual, 0)
		})
	})
}
