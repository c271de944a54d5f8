package service

import (
	"github.com/technique-ps/technique/internal/engine"
	"github.com/technique-ps/technique/internal/storage"
)

// LogActual records what the athlete actually did against one planned
// target. The returned e1RM is an Epley estimate from the logged load and
// reps, zero when either is missing.
func LogActual(st *storage.Storage, userID, blockID, sessionLabel, exerciseName string, weekNo int, upd storage.ActualsUpdate) (float64, error) {
	block, err := st.GetBlock(blockID)
	if err != nil {
		return 0, err
	}
	if err := st.EnsurePatientAccess(userID, block.PatientID); err != nil {
		return 0, err
	}

	rowID, err := st.FindTemplateExerciseID(blockID, sessionLabel, exerciseName)
	if err != nil {
		return 0, err
	}

	if err := st.UpdateActuals(rowID, weekNo, upd); err != nil {
		return 0, err
	}

	if upd.LoadKg != nil && upd.Reps != nil {
		return engine.EpleyOneRM(*upd.LoadKg, *upd.Reps), nil
	}
	return 0, nil
}
