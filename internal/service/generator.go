package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/technique-ps/technique/internal/engine"
	"github.com/technique-ps/technique/internal/models"
	"github.com/technique-ps/technique/internal/storage"
	"github.com/technique-ps/technique/internal/utils"
)

// Store is the persistence surface the block generator needs.
type Store interface {
	EnsurePatientAccess(userID, patientID string) error
	CreateBlock(b models.Block) error
	GetBlock(id string) (*models.Block, error)
	GetPatientProfile(patientID string) (*models.PatientProfile, error)
	ListSessionTemplates(blockID string) ([]models.SessionTemplate, error)
	GetExerciseByID(id string) (*models.Exercise, error)
	LookupNormBand(exerciseID, sex, metric string, age int) (*engine.Band, error)
	UpsertPlannedTargets(rows []storage.PlannedRow) error
}

// CreateBlock validates and persists a new block with its week and
// session skeleton. The start date is snapped to the Monday of its week.
func CreateBlock(store Store, userID string, b models.Block) (*models.Block, error) {
	if b.Weeks < 1 {
		return nil, fmt.Errorf("%w: weeks must be at least 1", storage.ErrInvalidInput)
	}
	if b.DeloadWeek < 1 || b.DeloadWeek > b.Weeks {
		return nil, fmt.Errorf("%w: deload_week must be between 1 and %d", storage.ErrInvalidInput, b.Weeks)
	}
	if b.SessionsPerWeek < 1 || b.SessionsPerWeek > 3 {
		return nil, fmt.Errorf("%w: sessions_per_week must be 1, 2 or 3", storage.ErrInvalidInput)
	}

	if err := store.EnsurePatientAccess(userID, b.PatientID); err != nil {
		return nil, err
	}

	b.ID = uuid.New().String()
	b.StartDate = utils.ToMonday(b.StartDate)
	b.CreatedAt = time.Now()
	if b.Model == "" {
		b.Model = "hybrid_v1"
	}

	if err := store.CreateBlock(b); err != nil {
		return nil, err
	}

	return &b, nil
}

// GenerateTargets materializes week targets for every template row of a
// block. It is idempotent: planned columns are recomputed from the
// templates and profile, actuals are never touched. The returned count is
// the number of (row, week) targets written.
func GenerateTargets(store Store, userID, blockID string) (int, error) {
	block, err := store.GetBlock(blockID)
	if err != nil {
		return 0, err
	}
	if err := store.EnsurePatientAccess(userID, block.PatientID); err != nil {
		return 0, err
	}

	profile, err := store.GetPatientProfile(block.PatientID)
	if errors.Is(err, storage.ErrNotFound) {
		// Without a profile every estimate degrades to "no data", the
		// reps/time progressions still generate.
		profile = &models.PatientProfile{
			PatientID:     block.PatientID,
			PresumedLevel: models.LevelIntermediate,
		}
	} else if err != nil {
		return 0, err
	}

	templates, err := store.ListSessionTemplates(blockID)
	if err != nil {
		return 0, err
	}

	gen := targetGenerator{
		store:   store,
		profile: profile,
		e1rms:   map[string]*float64{},
	}

	var planned []storage.PlannedRow
	count := 0
	for _, tmpl := range templates {
		for _, row := range tmpl.Rows {
			targets, err := gen.rowTargets(block, row)
			if err != nil {
				return 0, fmt.Errorf("Failed to generate targets for row %d of session %s: %w", row.SortOrder, tmpl.Label, err)
			}
			planned = append(planned, storage.PlannedRow{
				TemplateExerciseID: row.ID,
				Targets:            targets,
			})
			count += len(targets)
		}
	}

	if err := store.UpsertPlannedTargets(planned); err != nil {
		return 0, err
	}

	return count, nil
}

type targetGenerator struct {
	store   Store
	profile *models.PatientProfile
	e1rms   map[string]*float64 // exercise id -> bilateral e1RM, nil cached too
}

func (g *targetGenerator) rowTargets(block *models.Block, row models.TemplateExerciseRow) ([]engine.PlannedTarget, error) {
	ex, err := g.store.GetExerciseByID(row.ExerciseID)
	if err != nil {
		return nil, err
	}

	style := engine.ClassifyStyle(*ex)
	engine.ApplyStyleDefaults(&row, style)

	var e1rm *float64
	if row.Pct1RMStart != nil {
		e1rm, err = g.rowE1RM(ex, row)
		if err != nil {
			return nil, err
		}
	}

	params := engine.RowParams{
		Weeks:           block.Weeks,
		DeloadWeek:      block.DeloadWeek,
		Style:           style,
		Mode:            row.Mode,
		Sets:            row.Sets,
		RepsStart:       row.RepsStart,
		RepsStep:        row.RepsStep,
		RepsCap:         row.RepsCap,
		TimeStartSec:    row.TimeStartSec,
		TimeStepSec:     row.TimeStepSec,
		TimeCapSec:      row.TimeCapSec,
		Pct1RMStart:     row.Pct1RMStart,
		Pct1RMStep:      row.Pct1RMStep,
		Pct1RMCap:       row.Pct1RMCap,
		LoadStartKg:     row.LoadStartKg,
		LoadIncrementKg: row.LoadIncrementKg,
		E1RMKg:          e1rm,
		RPETarget:       row.RPETarget,
		RestSec:         row.RestSec,
		Intent:          row.Intent,
	}

	return engine.GenerateWeekTargets(params), nil
}

// rowE1RM resolves the e1RM driving a %1RM schedule. Unilateral rows with
// an anchor use the scaled per-limb equivalent of the anchor's estimate.
func (g *targetGenerator) rowE1RM(ex *models.Exercise, row models.TemplateExerciseRow) (*float64, error) {
	if ex.Laterality == models.LateralityUnilateral && row.AnchorExerciseID != "" {
		anchor, err := g.store.GetExerciseByID(row.AnchorExerciseID)
		if err != nil {
			return nil, err
		}
		base, err := g.exerciseE1RM(anchor)
		if err != nil {
			return nil, err
		}
		return engine.ScaleUnilateral(base, engine.MovementKey(ex.Name), g.profile.PresumedLevel), nil
	}

	return g.exerciseE1RM(ex)
}

func (g *targetGenerator) exerciseE1RM(ex *models.Exercise) (*float64, error) {
	if cached, ok := g.e1rms[ex.ID]; ok {
		return cached, nil
	}

	metric := engine.MetricForExercise(ex.Name)

	var bw float64
	if g.profile.BodyweightKg != nil {
		bw = *g.profile.BodyweightKg
	}
	age := utils.AgeYears(g.profile.DOB, time.Now(), 30)

	var band *engine.Band
	if g.profile.Sex != "" {
		var err error
		band, err = g.store.LookupNormBand(ex.ID, g.profile.Sex, metric, age)
		if err != nil {
			return nil, err
		}
	}

	res := engine.Estimate(metric, bw, g.profile.PresumedLevel, band)
	g.e1rms[ex.ID] = res.E1RMKg
	return res.E1RMKg, nil
}
