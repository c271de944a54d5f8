package service

import (
	"fmt"
	"time"

	"github.com/technique-ps/technique/internal/engine"
	"github.com/technique-ps/technique/internal/models"
	"github.com/technique-ps/technique/internal/utils"
)

// EstimateStore is the persistence surface the estimators need.
type EstimateStore interface {
	EnsurePatientAccess(userID, patientID string) error
	GetExerciseByName(name string) (*models.Exercise, error)
	GetPatientProfile(patientID string) (*models.PatientProfile, error)
	LookupNormBand(exerciseID, sex, metric string, age int) (*engine.Band, error)
	SaveStrengthEstimate(e models.StrengthEstimate) error
}

// Estimation is the coach-facing result of an estimate run.
type Estimation struct {
	Exercise models.Exercise
	Result   engine.EstimateResult
	Profile  models.PatientProfile
	AgeUsed  int
}

// EstimateExercise computes the normative e1RM for one patient/exercise
// pair and optionally saves the audit row.
func EstimateExercise(st EstimateStore, userID, patientID, exerciseName string, save bool) (*Estimation, error) {
	if err := st.EnsurePatientAccess(userID, patientID); err != nil {
		return nil, err
	}

	ex, err := st.GetExerciseByName(exerciseName)
	if err != nil {
		return nil, err
	}

	profile, err := st.GetPatientProfile(patientID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load patient profile: %w", err)
	}

	est, err := estimate(st, profile, ex)
	if err != nil {
		return nil, err
	}

	if save {
		if err := saveEstimate(st, patientID, ex.ID, profile, est); err != nil {
			return nil, err
		}
	}

	return &Estimation{
		Exercise: *ex,
		Result:   est.Result,
		Profile:  *profile,
		AgeUsed:  est.AgeUsed,
	}, nil
}

// EstimateUnilateral scales a bilateral anchor's estimate down to a
// per-limb equivalent for a unilateral exercise.
func EstimateUnilateral(st EstimateStore, userID, patientID, exerciseName, anchorName string, save bool) (*Estimation, error) {
	if err := st.EnsurePatientAccess(userID, patientID); err != nil {
		return nil, err
	}

	ex, err := st.GetExerciseByName(exerciseName)
	if err != nil {
		return nil, err
	}
	anchor, err := st.GetExerciseByName(anchorName)
	if err != nil {
		return nil, err
	}

	profile, err := st.GetPatientProfile(patientID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load patient profile: %w", err)
	}

	base, err := estimate(st, profile, anchor)
	if err != nil {
		return nil, err
	}
	scaled := engine.ScaleUnilateral(base.Result.E1RMKg, engine.MovementKey(ex.Name), profile.PresumedLevel)

	res := base.Result
	res.E1RMKg = scaled
	res.RelRatio = nil
	if scaled != nil {
		res.Notes = fmt.Sprintf("Per-limb equivalent scaled from %s. %s", anchor.Name, base.Result.Notes)
	}

	if save {
		if err := saveEstimate(st, patientID, ex.ID, profile, estimated{Result: res, AgeUsed: base.AgeUsed}); err != nil {
			return nil, err
		}
	}

	return &Estimation{
		Exercise: *ex,
		Result:   res,
		Profile:  *profile,
		AgeUsed:  base.AgeUsed,
	}, nil
}

type estimated struct {
	Result  engine.EstimateResult
	AgeUsed int
}

func estimate(st EstimateStore, profile *models.PatientProfile, ex *models.Exercise) (estimated, error) {
	metric := engine.MetricForExercise(ex.Name)
	age := utils.AgeYears(profile.DOB, time.Now(), 30)

	var bw float64
	if profile.BodyweightKg != nil {
		bw = *profile.BodyweightKg
	}

	var band *engine.Band
	if profile.Sex != "" {
		var err error
		band, err = st.LookupNormBand(ex.ID, profile.Sex, metric, age)
		if err != nil {
			return estimated{}, err
		}
	}

	return estimated{
		Result:  engine.Estimate(metric, bw, profile.PresumedLevel, band),
		AgeUsed: age,
	}, nil
}

func saveEstimate(st EstimateStore, patientID, exerciseID string, profile *models.PatientProfile, est estimated) error {
	return st.SaveStrengthEstimate(models.StrengthEstimate{
		PatientID:      patientID,
		ExerciseID:     exerciseID,
		AsOfDate:       time.Now(),
		Estimated1RMKg: est.Result.E1RMKg,
		EstimatedRelBW: est.Result.RelRatio,
		LevelUsed:      profile.PresumedLevel,
		SexUsed:        profile.Sex,
		AgeUsed:        est.AgeUsed,
		BodyweightUsed: profile.BodyweightKg,
		Method:         est.Result.Method,
		Notes:          est.Result.Notes,
	})
}
