package engine_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/technique-ps/technique/internal/engine"
	"github.com/technique-ps/technique/internal/models"
)

func TestScaleUnilateral(t *testing.T) {
	squat := 100.0

	Convey("Given a 100kg bilateral squat e1RM", t, func() {
		Convey("When scaling a Bulgarian split squat by level", func() {
			cases := map[string]float64{
				models.LevelNovice:       35,
				models.LevelIntermediate: 40,
				models.LevelAdvanced:     45,
				models.LevelExpert:       50,
			}
			for level, want := range cases {
				got := engine.ScaleUnilateral(&squat, engine.MovementBSS, level)
				So(got, ShouldNotBeNil)
				So(*got, ShouldAlmostEqual, want, 0.0001)
			}
		})

		Convey("When scaling a single-leg RDL by level", func() {
			cases := map[string]float64{
				models.LevelNovice:       30,
				models.LevelIntermediate: 35,
				models.LevelAdvanced:     40,
				models.LevelExpert:       45,
			}
			for level, want := range cases {
				got := engine.ScaleUnilateral(&squat, engine.MovementSLRDL, level)
				So(got, ShouldNotBeNil)
				So(*got, ShouldAlmostEqual, want, 0.0001)
			}
		})

		Convey("When the movement key is unknown", func() {
			got := engine.ScaleUnilateral(&squat, "pistol_squat", models.LevelAdvanced)

			Convey("Then the conservative fallback fraction applies", func() {
				So(got, ShouldNotBeNil)
				So(*got, ShouldAlmostEqual, 35, 0.0001)
			})
		})

		Convey("Then every defined movement stays strictly below the bilateral input", func() {
			movements := []string{engine.MovementBSS, engine.MovementStepUp, engine.MovementSLRDL}
			levels := []string{
				models.LevelNovice,
				models.LevelIntermediate,
				models.LevelAdvanced,
				models.LevelExpert,
			}
			for _, mv := range movements {
				for _, lvl := range levels {
					got := engine.ScaleUnilateral(&squat, mv, lvl)
					So(*got, ShouldBeLessThan, squat)
				}
			}
		})
	})

	Convey("Given no bilateral estimate", t, func() {
		Convey("Then the unknown propagates as nil", func() {
			So(engine.ScaleUnilateral(nil, engine.MovementBSS, models.LevelExpert), ShouldBeNil)
		})
	})
}

func TestMovementKey(t *testing.T) {
	Convey("Given catalog exercise names", t, func() {
		Convey("Then unilateral movements map to their anchor keys", func() {
			So(engine.MovementKey("Bulgarian Split Squat"), ShouldEqual, engine.MovementBSS)
			So(engine.MovementKey("Step-Up"), ShouldEqual, engine.MovementStepUp)
			So(engine.MovementKey("Single-Leg RDL"), ShouldEqual, engine.MovementSLRDL)
		})

		Convey("And bilateral lifts map to no key", func() {
			So(engine.MovementKey("Back Squat"), ShouldEqual, "")
			So(engine.MovementKey("Deadlift"), ShouldEqual, "")
		})
	})
}
