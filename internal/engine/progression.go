package engine

import (
	"math"

	"github.com/technique-ps/technique/internal/models"
)

// Deload rule set. Earlier generations of this engine disagreed on the
// exact reductions; these are the ones kept, applied after cap clamping.
const (
	deloadRepsTimeFactor = 0.85
	deloadPctFactor      = 0.90
	deloadLoadFactor     = 0.90
	deloadPctFloor       = 0.30
	deloadIntent         = "easy / recovery"
)

// RowParams is everything needed to materialize one template row across
// a block: the week-1 values, the per-week steps and caps, and the e1RM
// baseline when the row is %1RM-driven.
type RowParams struct {
	Weeks      int
	DeloadWeek int
	Style      string
	Mode       string // reps or time
	Sets       int

	RepsStart *int
	RepsStep  int
	RepsCap   *int

	TimeStartSec *int
	TimeStepSec  int
	TimeCapSec   *int

	Pct1RMStart *float64
	Pct1RMStep  float64
	Pct1RMCap   *float64

	LoadStartKg     *float64
	LoadIncrementKg float64

	E1RMKg *float64 // nil when no estimate is available

	RPETarget *int
	RestSec   *int
	Intent    string
}

// PlannedTarget is the computed prescription for one week.
type PlannedTarget struct {
	WeekNo    int
	Sets      int
	Reps      *int
	TimeSec   *int
	Pct1RM    *float64
	LoadKg    *float64
	RPETarget *int
	RestSec   *int
	Intent    string
	Notes     string
}

// GenerateWeekTargets computes one target per week 1..Weeks. It is a pure
// function of its parameters: regenerating with unchanged inputs yields
// identical output.
//
// Load handling, in priority order:
//   - %1RM schedule when both an e1RM and a starting pct are present
//     (load = e1RM x pct, rounded to the row's increment);
//   - DB/KB double progression when a direct start load is set: reps
//     climb to the cap, then reset to the start and the load gains one
//     increment;
//   - barbell direct load: one increment per week;
//   - otherwise no load is prescribed.
func GenerateWeekTargets(p RowParams) []PlannedTarget {
	out := make([]PlannedTarget, 0, p.Weeks)

	pctBased := p.E1RMKg != nil && *p.E1RMKg > 0 && p.Pct1RMStart != nil
	doubleProg := !pctBased && p.Style == StyleDBKB && p.Mode != models.ModeTime && p.LoadStartKg != nil

	// Running state for double progression. A deload week reduces the
	// emitted values only; the underlying progression keeps moving so
	// the following week resumes where it should.
	dpReps := intOr(p.RepsStart, 8)
	var dpLoad float64
	if doubleProg {
		dpLoad = *p.LoadStartKg
	}

	for wk := 1; wk <= p.Weeks; wk++ {
		deload := wk == p.DeloadWeek

		sets := p.Sets
		if deload {
			sets = max(1, sets-1)
		}

		t := PlannedTarget{
			WeekNo:    wk,
			Sets:      sets,
			RPETarget: p.RPETarget,
			RestSec:   p.RestSec,
			Intent:    p.Intent,
		}

		if p.Mode == models.ModeTime {
			v := intOr(p.TimeStartSec, 30) + p.TimeStepSec*(wk-1)
			if p.TimeCapSec != nil && v > *p.TimeCapSec {
				v = *p.TimeCapSec
			}
			if deload {
				v = max(10, int(math.Round(float64(v)*deloadRepsTimeFactor)))
			}
			t.TimeSec = &v
		} else {
			var r int
			if doubleProg {
				if wk > 1 {
					dpReps += p.RepsStep
					if p.RepsCap != nil && dpReps > *p.RepsCap {
						dpReps = intOr(p.RepsStart, 8)
						dpLoad += p.LoadIncrementKg
					}
				}
				r = dpReps
			} else {
				r = intOr(p.RepsStart, 8) + p.RepsStep*(wk-1)
				if p.RepsCap != nil && r > *p.RepsCap {
					r = *p.RepsCap
				}
			}
			if deload {
				r = max(1, int(math.Round(float64(r)*deloadRepsTimeFactor)))
			}
			t.Reps = &r
		}

		switch {
		case pctBased:
			pct := *p.Pct1RMStart + p.Pct1RMStep*float64(wk-1)
			if p.Pct1RMCap != nil && pct > *p.Pct1RMCap {
				pct = *p.Pct1RMCap
			}
			if deload {
				pct = math.Max(deloadPctFloor, pct*deloadPctFactor)
			}
			pct = clampPct(pct)
			load := RoundToIncrement(*p.E1RMKg*pct, p.LoadIncrementKg)
			t.Pct1RM = &pct
			t.LoadKg = &load

		case doubleProg:
			load := dpLoad
			if deload {
				load = roundKg(load * deloadLoadFactor)
			}
			t.LoadKg = &load

		case p.Style == StyleBarbell && p.LoadStartKg != nil:
			load := roundKg(*p.LoadStartKg + p.LoadIncrementKg*float64(wk-1))
			if deload {
				load = roundKg(load * deloadLoadFactor)
			}
			t.LoadKg = &load
		}

		if deload {
			t.Intent = deloadIntent
			t.Notes = "Deload"
		}

		out = append(out, t)
	}

	return out
}

// RoundToIncrement rounds a load to the nearest plate increment.
func RoundToIncrement(loadKg, incrementKg float64) float64 {
	if incrementKg <= 0 {
		return loadKg
	}
	return math.Round(loadKg/incrementKg) * incrementKg
}

func clampPct(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func roundKg(v float64) float64 {
	return math.Round(v*10) / 10
}

func intOr(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}
