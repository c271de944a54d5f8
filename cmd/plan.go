package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/technique-ps/technique/internal/models"
	"github.com/technique-ps/technique/internal/service"
	"github.com/technique-ps/technique/internal/storage"
	"github.com/technique-ps/technique/internal/utils"
)

var (
	planPatientID string
	planWeekStart string
	planKm        float64
	planHours     float64
	planPhase     string
	planNotes     string
)

var setWeekPlanCmd = &cobra.Command{
	Use:   "set-week-plan",
	Short: "Set the planned riding volume for one week",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		if err := st.EnsurePatientAccess(userID(), planPatientID); err != nil {
			return err
		}

		weekStart, err := utils.ParseDate(planWeekStart)
		if err != nil {
			return err
		}

		plan := models.WeekPlan{
			PatientID: planPatientID,
			WeekStart: utils.ToMonday(weekStart),
			Phase:     planPhase,
			Notes:     planNotes,
		}
		if cmd.Flags().Changed("km") {
			plan.PlannedKm = &planKm
		}
		if cmd.Flags().Changed("hours") {
			plan.PlannedHours = &planHours
		}

		if err := st.UpsertWeekPlan(plan); err != nil {
			return err
		}

		fmt.Printf("✅ Plan saved for week of %s\n", plan.WeekStart.Format(utils.DateLayout))
		return nil
	},
}

var importPlanCmd = &cobra.Command{
	Use:   "import-plan [file]",
	Short: "Import a weekly riding plan from CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		count, err := service.ImportPlanCSV(st, userID(), planPatientID, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("✅ Imported %d plan weeks\n", count)
		return nil
	},
}

func init() {
	setWeekPlanCmd.Flags().StringVarP(&planPatientID, "patient", "p", "", "Patient id")
	setWeekPlanCmd.Flags().StringVar(&planWeekStart, "week", "", "Week start (YYYY-MM-DD, snapped to Monday)")
	setWeekPlanCmd.Flags().Float64Var(&planKm, "km", 0, "Planned distance in km")
	setWeekPlanCmd.Flags().Float64Var(&planHours, "hours", 0, "Planned hours")
	setWeekPlanCmd.Flags().StringVar(&planPhase, "phase", "", "Training phase")
	setWeekPlanCmd.Flags().StringVar(&planNotes, "notes", "", "Notes")
	setWeekPlanCmd.MarkFlagRequired("patient")
	setWeekPlanCmd.MarkFlagRequired("week")

	importPlanCmd.Flags().StringVarP(&planPatientID, "patient", "p", "", "Patient id")
	importPlanCmd.MarkFlagRequired("patient")

	rootCmd.AddCommand(setWeekPlanCmd)
	rootCmd.AddCommand(importPlanCmd)
}
