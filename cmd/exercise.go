package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/technique-ps/technique/internal/models"
	"github.com/technique-ps/technique/internal/storage"
	"github.com/technique-ps/technique/internal/utils"
)

var (
	exerciseName       string
	exerciseCategory   string
	exerciseLaterality string
	exerciseImplement  string
	exerciseMuscles    string
	exerciseNotes      string
)

var addExerciseCmd = &cobra.Command{
	Use:   "add-exercise",
	Short: "Create a new exercise in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		exercise := models.Exercise{
			ID:             uuid.New().String(),
			Name:           exerciseName,
			Category:       exerciseCategory,
			Laterality:     exerciseLaterality,
			Implement:      exerciseImplement,
			PrimaryMuscles: exerciseMuscles,
			Notes:          exerciseNotes,
			CreatedAt:      time.Now().UTC(),
		}

		if err := st.CreateExercise(exercise); err != nil {
			return fmt.Errorf("Failed to create exercise: %w", err)
		}

		fmt.Printf("✅ Created exercise: %s\n", exercise.Name)
		return nil
	},
}

var importExercisesCmd = &cobra.Command{
	Use:   "import-exercises [file]",
	Short: "Import exercises from TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		importData, err := utils.ParseExercisesFromTOML(args[0])
		if err != nil {
			return fmt.Errorf("invalid TOML format: %w", err)
		}

		for _, exTOML := range importData.Exercises {
			laterality := exTOML.Laterality
			if laterality == "" {
				laterality = models.LateralityBilateral
			}

			ex := models.Exercise{
				ID:             uuid.New().String(),
				Name:           exTOML.Name,
				Category:       exTOML.Category,
				Laterality:     laterality,
				Implement:      exTOML.Implement,
				PrimaryMuscles: exTOML.PrimaryMuscles,
				Notes:          exTOML.Notes,
				CreatedAt:      time.Now().UTC(),
			}

			if err := st.CreateExercise(ex); err != nil {
				return fmt.Errorf("failed to create exercise %s: %w", ex.Name, err)
			}
		}

		fmt.Printf("✅ Imported %d exercises\n", len(importData.Exercises))
		return nil
	},
}

var listExercisesCmd = &cobra.Command{
	Use:   "list-exercises",
	Short: "List the exercise catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		exercises, err := st.ListExercises()
		if err != nil {
			return err
		}

		for _, ex := range exercises {
			fmt.Printf("%-28s %-12s %-10s %s\n", ex.Name, ex.Category, ex.Laterality, ex.Implement)
		}
		return nil
	},
}

func init() {
	addExerciseCmd.Flags().StringVarP(&exerciseName, "name", "n", "", "Exercise name")
	addExerciseCmd.Flags().StringVarP(&exerciseCategory, "category", "c", "", "Category (squat/hinge/push/pull/conditioning)")
	addExerciseCmd.Flags().StringVar(&exerciseLaterality, "laterality", models.LateralityBilateral, "bilateral or unilateral")
	addExerciseCmd.Flags().StringVarP(&exerciseImplement, "implement", "i", "", "Implement (barbell/dumbbell/kettlebell/bodyweight/band/machine)")
	addExerciseCmd.Flags().StringVarP(&exerciseMuscles, "muscles", "m", "", "Primary muscles")
	addExerciseCmd.Flags().StringVar(&exerciseNotes, "notes", "", "Notes")

	addExerciseCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(addExerciseCmd)
	rootCmd.AddCommand(importExercisesCmd)
	rootCmd.AddCommand(listExercisesCmd)
}
