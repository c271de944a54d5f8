package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("Failed to parse date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// ToMonday snaps a date back to the Monday of its ISO week. Weekly plans
// and summaries key on that Monday.
func ToMonday(t time.Time) time.Time {
	day := t.Truncate(24 * time.Hour)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// AgeYears computes whole years between a YYYY-MM-DD birth date and the
// reference time. An unparseable or empty birth date yields the fallback.
func AgeYears(dob string, at time.Time, fallback int) int {
	born, err := time.Parse(DateLayout, dob)
	if err != nil {
		return fallback
	}
	years := at.Year() - born.Year()
	if at.Month() < born.Month() || (at.Month() == born.Month() && at.Day() < born.Day()) {
		years--
	}
	return years
}
