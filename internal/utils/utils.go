package utils

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/technique-ps/technique/internal/models"
)

func ParseExercisesFromTOML(path string) (*models.ExerciseImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var imp models.ExerciseImport
	if err := toml.Unmarshal(data, &imp); err != nil {
		return nil, err
	}

	return &imp, nil
}

func ParseTemplatesFromTOML(path string) (*models.TemplateImportTOML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var imp models.TemplateImportTOML
	if err := toml.Unmarshal(data, &imp); err != nil {
		return nil, err
	}

	return &imp, nil
}

func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
