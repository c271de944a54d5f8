package service

import (
	"sort"
	"time"

	"github.com/technique-ps/technique/internal/models"
	"github.com/technique-ps/technique/internal/utils"
)

// WeeklyPlanVsActual merges the coach-entered weekly plan with logged
// rides into one row per week. Weeks appearing on either side are
// included; variances are actual minus planned.
func WeeklyPlanVsActual(plans []models.WeekPlan, rides []models.Ride) []models.WeeklySummary {
	byWeek := map[time.Time]*models.WeeklySummary{}

	week := func(t time.Time) *models.WeeklySummary {
		monday := utils.ToMonday(t)
		if s, ok := byWeek[monday]; ok {
			return s
		}
		s := &models.WeeklySummary{WeekStart: monday}
		byWeek[monday] = s
		return s
	}

	for _, p := range plans {
		s := week(p.WeekStart)
		if p.PlannedKm != nil {
			s.PlannedKm = *p.PlannedKm
		}
		if p.PlannedHours != nil {
			s.PlannedHours = *p.PlannedHours
		}
		s.Phase = p.Phase
	}

	for _, r := range rides {
		s := week(r.RideDate)
		s.ActualKm += r.DistanceKm
		s.ActualHours += float64(r.DurationMin) / 60.0
		s.RidesCount++
	}

	out := make([]models.WeeklySummary, 0, len(byWeek))
	for _, s := range byWeek {
		s.KmVariance = s.ActualKm - s.PlannedKm
		s.HoursVariance = s.ActualHours - s.PlannedHours
		out = append(out, *s)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].WeekStart.Before(out[j].WeekStart)
	})

	return out
}
