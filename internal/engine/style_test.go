package engine_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/technique-ps/technique/internal/engine"
	"github.com/technique-ps/technique/internal/models"
)

func TestClassifyStyle(t *testing.T) {
	Convey("Given exercises from the catalog", t, func() {
		Convey("Then each classifies into its progression style", func() {
			cases := []struct {
				ex   models.Exercise
				want string
			}{
				{models.Exercise{Name: "Wall Sit", Implement: models.ImplementBodyweight}, engine.StyleIsometric},
				{models.Exercise{Name: "Plank", Implement: models.ImplementBodyweight}, engine.StyleIsometric},
				{models.Exercise{Name: "Row Erg Intervals", Category: "strength"}, engine.StyleConditioning},
				{models.Exercise{Name: "Bike", Category: "conditioning"}, engine.StyleConditioning},
				{models.Exercise{Name: "Goblet Squat", Implement: models.ImplementDumbbell}, engine.StyleDBKB},
				{models.Exercise{Name: "KB Swing", Implement: models.ImplementKettlebell}, engine.StyleDBKB},
				{models.Exercise{Name: "Pallof Press", Implement: models.ImplementBand}, engine.StyleDBKB},
				{models.Exercise{Name: "Back Squat", Implement: models.ImplementBarbell}, engine.StyleBarbell},
				{models.Exercise{Name: "Pull-Up", Implement: models.ImplementBodyweight}, engine.StyleBodyweight},
				{models.Exercise{Name: "Leg Press", Implement: "machine"}, engine.StyleGeneric},
			}
			for _, c := range cases {
				So(engine.ClassifyStyle(c.ex), ShouldEqual, c.want)
			}
		})

		Convey("And the isometric check beats the implement check", func() {
			ex := models.Exercise{
				Name:      "Isometric Mid-Thigh Pull",
				Implement: models.ImplementBarbell,
			}
			So(engine.ClassifyStyle(ex), ShouldEqual, engine.StyleIsometric)
		})

		Convey("And an isometric mention in the notes is enough", func() {
			ex := models.Exercise{
				Name:      "Split Squat Hold",
				Implement: models.ImplementDumbbell,
				Notes:     "isometric, bottom position",
			}
			So(engine.ClassifyStyle(ex), ShouldEqual, engine.StyleIsometric)
		})
	})
}

func TestMetricForExercise(t *testing.T) {
	Convey("Given exercise names", t, func() {
		Convey("Then pull-up variants use the rep count metric", func() {
			So(engine.MetricForExercise("Pull-Up"), ShouldEqual, models.MetricPullupReps)
			So(engine.MetricForExercise("Pullup (weighted)"), ShouldEqual, models.MetricPullupReps)
		})

		Convey("And everything else uses relative 1RM", func() {
			So(engine.MetricForExercise("Back Squat"), ShouldEqual, models.MetricRel1RMBW)
			So(engine.MetricForExercise("Bench Press"), ShouldEqual, models.MetricRel1RMBW)
		})
	})
}
