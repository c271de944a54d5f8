package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/technique-ps/technique/internal/models"
	"github.com/technique-ps/technique/internal/storage"
	"github.com/technique-ps/technique/internal/utils"
)

// ImportPlanCSV loads a weekly plan file and upserts one row per week.
// Expected header: week_start (YYYY-MM-DD) plus any of planned_km,
// planned_hours, phase, notes. Week starts are snapped to Monday.
func ImportPlanCSV(st *storage.Storage, userID, patientID, path string) (int, error) {
	if err := st.EnsurePatientAccess(userID, patientID); err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("Failed to open plan file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("Failed to read plan header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := cols["week_start"]; !ok {
		return 0, fmt.Errorf("%w: plan CSV must include a week_start column", storage.ErrInvalidInput)
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("Failed to read plan row: %w", err)
		}

		weekStart, err := utils.ParseDate(field(record, "week_start"))
		if err != nil {
			return count, err
		}

		plan := models.WeekPlan{
			PatientID: patientID,
			WeekStart: utils.ToMonday(weekStart),
			Phase:     field(record, "phase"),
			Notes:     field(record, "notes"),
		}
		if v := field(record, "planned_km"); v != "" {
			km, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return count, fmt.Errorf("%w: bad planned_km %q", storage.ErrInvalidInput, v)
			}
			plan.PlannedKm = &km
		}
		if v := field(record, "planned_hours"); v != "" {
			h, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return count, fmt.Errorf("%w: bad planned_hours %q", storage.ErrInvalidInput, v)
			}
			plan.PlannedHours = &h
		}

		if err := st.UpsertWeekPlan(plan); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}
