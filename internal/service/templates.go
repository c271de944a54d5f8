package service

import (
	"fmt"

	"github.com/technique-ps/technique/internal/models"
	"github.com/technique-ps/technique/internal/storage"
)

// ImportTemplates resolves a parsed TOML template file against the
// exercise catalog and upserts one session template per [[session]].
// Exercise and anchor names must already exist. Returns the number of
// rows imported.
func ImportTemplates(st *storage.Storage, userID, blockID string, imp *models.TemplateImportTOML) (int, error) {
	block, err := st.GetBlock(blockID)
	if err != nil {
		return 0, err
	}
	if err := st.EnsurePatientAccess(userID, block.PatientID); err != nil {
		return 0, err
	}

	count := 0
	for _, session := range imp.Sessions {
		if session.Label == "" {
			return 0, fmt.Errorf("%w: session label is required", storage.ErrInvalidInput)
		}

		tmpl := models.SessionTemplate{
			BlockID: blockID,
			Label:   session.Label,
			Title:   session.Title,
			Notes:   session.Notes,
		}

		for i, def := range session.Exercises {
			row, err := resolveTemplateRow(st, def, i)
			if err != nil {
				return 0, fmt.Errorf("Failed to import session %s: %w", session.Label, err)
			}
			tmpl.Rows = append(tmpl.Rows, row)
		}

		if err := st.UpsertSessionTemplate(tmpl); err != nil {
			return 0, err
		}
		count += len(tmpl.Rows)
	}

	return count, nil
}

func resolveTemplateRow(st *storage.Storage, def models.TemplateRowTOML, sortOrder int) (models.TemplateExerciseRow, error) {
	var row models.TemplateExerciseRow

	ex, err := st.GetExerciseByName(def.Name)
	if err != nil {
		return row, fmt.Errorf("unknown exercise %q: %w", def.Name, err)
	}

	row = models.TemplateExerciseRow{
		SortOrder:    sortOrder,
		GroupKey:     def.Group,
		GroupOrder:   def.GroupOrder,
		ExerciseID:   ex.ID,
		Mode:         def.Mode,
		Sets:         def.Sets,
		RepsStart:    def.RepsStart,
		RepsCap:      def.RepsCap,
		TimeStartSec: def.TimeStartSec,
		TimeCapSec:   def.TimeCapSec,
		Pct1RMStart:  def.Pct1RMStart,
		Pct1RMCap:    def.Pct1RMCap,
		LoadStartKg:  def.LoadStartKg,
		RPETarget:    def.TargetRPE,
		RestSec:      def.RestSec,
		Intent:       def.Intent,
		Notes:        def.Notes,
	}

	if def.RepsStep != nil {
		row.RepsStep = *def.RepsStep
	}
	if def.TimeStepSec != nil {
		row.TimeStepSec = *def.TimeStepSec
	}
	if def.Pct1RMStep != nil {
		row.Pct1RMStep = *def.Pct1RMStep
	}
	if def.LoadIncrementKg != nil {
		row.LoadIncrementKg = *def.LoadIncrementKg
	}

	if def.Anchor != "" {
		anchor, err := st.GetExerciseByName(def.Anchor)
		if err != nil {
			return row, fmt.Errorf("unknown anchor exercise %q: %w", def.Anchor, err)
		}
		row.AnchorExerciseID = anchor.ID
	}

	return row, nil
}
