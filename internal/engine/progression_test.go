package engine_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/technique-ps/technique/internal/engine"
	"github.com/technique-ps/technique/internal/models"
)

func ip(v int) *int         { return &v }
func fp(v float64) *float64 { return &v }

func TestGenerateWeekTargetsPctSchedule(t *testing.T) {
	Convey("Given a barbell row at 70% of an 88kg e1RM, +2%/week, 6 weeks with a week-4 deload", t, func() {
		p := engine.RowParams{
			Weeks:           6,
			DeloadWeek:      4,
			Style:           engine.StyleBarbell,
			Mode:            models.ModeReps,
			Sets:            4,
			RepsStart:       ip(5),
			Pct1RMStart:     fp(0.70),
			Pct1RMStep:      0.02,
			LoadIncrementKg: 2.5,
			E1RMKg:          fp(88),
		}
		targets := engine.GenerateWeekTargets(p)

		Convey("Then one target per week comes back", func() {
			So(len(targets), ShouldEqual, 6)
			for i, tgt := range targets {
				So(tgt.WeekNo, ShouldEqual, i+1)
			}
		})

		Convey("And loads round to the 2.5kg increment", func() {
			So(*targets[0].Pct1RM, ShouldAlmostEqual, 0.70, 0.0001)
			So(*targets[0].LoadKg, ShouldAlmostEqual, 62.5, 0.0001)
			So(*targets[2].LoadKg, ShouldAlmostEqual, 65.0, 0.0001)
			So(*targets[5].Pct1RM, ShouldAlmostEqual, 0.80, 0.0001)
			So(*targets[5].LoadKg, ShouldAlmostEqual, 70.0, 0.0001)
		})

		Convey("And the deload week backs everything off", func() {
			dl := targets[3]
			So(dl.Sets, ShouldEqual, 3)
			So(*dl.Reps, ShouldEqual, 4)
			So(*dl.Pct1RM, ShouldAlmostEqual, 0.684, 0.0001)
			So(*dl.LoadKg, ShouldAlmostEqual, 60.0, 0.0001)
			So(dl.Intent, ShouldEqual, "easy / recovery")
			So(dl.Notes, ShouldEqual, "Deload")

			Convey("With less load than the week before", func() {
				So(*dl.LoadKg, ShouldBeLessThan, *targets[2].LoadKg)
			})
		})

		Convey("And regenerating with the same inputs is byte-identical", func() {
			So(engine.GenerateWeekTargets(p), ShouldResemble, targets)
		})
	})

	Convey("Given a pct schedule that would exceed 100%", t, func() {
		p := engine.RowParams{
			Weeks:           3,
			DeloadWeek:      0,
			Style:           engine.StyleBarbell,
			Mode:            models.ModeReps,
			Sets:            3,
			RepsStart:       ip(3),
			Pct1RMStart:     fp(0.95),
			Pct1RMStep:      0.05,
			LoadIncrementKg: 2.5,
			E1RMKg:          fp(100),
		}
		targets := engine.GenerateWeekTargets(p)

		Convey("Then the pct clamps at 1.0", func() {
			So(*targets[2].Pct1RM, ShouldAlmostEqual, 1.0, 0.0001)
			So(*targets[2].LoadKg, ShouldAlmostEqual, 100.0, 0.0001)
		})
	})
}

func TestGenerateWeekTargetsRepsAndTime(t *testing.T) {
	Convey("Given a bodyweight row adding 5 reps a week", t, func() {
		p := engine.RowParams{
			Weeks:      6,
			DeloadWeek: 4,
			Style:      engine.StyleBodyweight,
			Mode:       models.ModeReps,
			Sets:       3,
			RepsStart:  ip(10),
			RepsStep:   5,
		}
		targets := engine.GenerateWeekTargets(p)

		Convey("Then non-deload weeks only ever climb", func() {
			nonDeload := []int{0, 1, 2, 4, 5}
			prev := 0
			for _, i := range nonDeload {
				So(*targets[i].Reps, ShouldBeGreaterThan, prev)
				prev = *targets[i].Reps
			}
		})

		Convey("And deload volume drops below the prior week", func() {
			So(targets[3].Sets, ShouldEqual, 2)
			So(*targets[3].Reps, ShouldEqual, 21)
			deloadVolume := targets[3].Sets * *targets[3].Reps
			priorVolume := targets[2].Sets * *targets[2].Reps
			So(deloadVolume, ShouldBeLessThan, priorVolume)
		})

		Convey("And no load is prescribed", func() {
			for _, tgt := range targets {
				So(tgt.LoadKg, ShouldBeNil)
				So(tgt.Pct1RM, ShouldBeNil)
			}
		})
	})

	Convey("Given a timed conditioning row with a cap", t, func() {
		p := engine.RowParams{
			Weeks:        4,
			DeloadWeek:   4,
			Style:        engine.StyleConditioning,
			Mode:         models.ModeTime,
			Sets:         1,
			TimeStartSec: ip(60),
			TimeStepSec:  30,
			TimeCapSec:   ip(120),
		}
		targets := engine.GenerateWeekTargets(p)

		Convey("Then time climbs to the cap and deloads off the capped value", func() {
			So(*targets[0].TimeSec, ShouldEqual, 60)
			So(*targets[1].TimeSec, ShouldEqual, 90)
			So(*targets[2].TimeSec, ShouldEqual, 120)
			So(*targets[3].TimeSec, ShouldEqual, 102)
		})
	})
}

func TestGenerateWeekTargetsDoubleProgression(t *testing.T) {
	Convey("Given a dumbbell row on double progression, 8-12 reps from 10kg", t, func() {
		p := engine.RowParams{
			Weeks:           8,
			DeloadWeek:      8,
			Style:           engine.StyleDBKB,
			Mode:            models.ModeReps,
			Sets:            3,
			RepsStart:       ip(8),
			RepsStep:        1,
			RepsCap:         ip(12),
			LoadStartKg:     fp(10),
			LoadIncrementKg: 2.5,
		}
		targets := engine.GenerateWeekTargets(p)

		Convey("Then reps climb to the cap at the starting load", func() {
			for wk := 1; wk <= 5; wk++ {
				So(*targets[wk-1].Reps, ShouldEqual, 7+wk)
				So(*targets[wk-1].LoadKg, ShouldAlmostEqual, 10.0, 0.0001)
			}
		})

		Convey("And crossing the cap resets reps and adds one increment", func() {
			So(*targets[5].Reps, ShouldEqual, 8)
			So(*targets[5].LoadKg, ShouldAlmostEqual, 12.5, 0.0001)
			So(*targets[6].Reps, ShouldEqual, 9)
			So(*targets[6].LoadKg, ShouldAlmostEqual, 12.5, 0.0001)
		})

		Convey("And the deload reduces the emitted week without touching the progression", func() {
			So(*targets[7].Reps, ShouldEqual, 9)
			So(*targets[7].LoadKg, ShouldAlmostEqual, 11.3, 0.0001)
			So(targets[7].Sets, ShouldEqual, 2)
		})
	})

	Convey("Given a dumbbell row with neither a start load nor an e1RM", t, func() {
		p := engine.RowParams{
			Weeks:      2,
			DeloadWeek: 0,
			Style:      engine.StyleDBKB,
			Mode:       models.ModeReps,
			Sets:       3,
			RepsStart:  ip(8),
			RepsStep:   1,
		}
		targets := engine.GenerateWeekTargets(p)

		Convey("Then reps still progress but no load is invented", func() {
			So(*targets[1].Reps, ShouldEqual, 9)
			So(targets[0].LoadKg, ShouldBeNil)
			So(targets[1].LoadKg, ShouldBeNil)
		})
	})
}

func TestRoundToIncrement(t *testing.T) {
	Convey("Given loads and plate increments", t, func() {
		So(engine.RoundToIncrement(61.6, 2.5), ShouldAlmostEqual, 62.5, 0.0001)
		So(engine.RoundToIncrement(60.192, 2.5), ShouldAlmostEqual, 60.0, 0.0001)
		So(engine.RoundToIncrement(43.7, 1.0), ShouldAlmostEqual, 44.0, 0.0001)

		Convey("And a zero increment leaves the load alone", func() {
			So(engine.RoundToIncrement(61.6, 0), ShouldAlmostEqual, 61.6, 0.0001)
		})
	})
}
