package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/technique-ps/technique/internal/service"
	"github.com/technique-ps/technique/internal/storage"
	"github.com/technique-ps/technique/internal/utils"
)

var statusPatientID string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show weekly plan vs actual riding volume for a patient",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		if err := st.EnsurePatientAccess(userID(), statusPatientID); err != nil {
			return err
		}

		plans, err := st.ListWeekPlans(statusPatientID)
		if err != nil {
			return err
		}
		rides, err := st.ListRides(statusPatientID)
		if err != nil {
			return err
		}

		summaries := service.WeeklyPlanVsActual(plans, rides)
		if len(summaries) == 0 {
			fmt.Println("No plan or rides yet.")
			return nil
		}

		header := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Println(header(fmt.Sprintf("%-12s %-10s %9s %9s %9s %9s %6s",
			"Week", "Phase", "Plan km", "Act km", "Plan h", "Act h", "Rides")))

		for _, s := range summaries {
			line := fmt.Sprintf("%-12s %-10s %9.1f %9.1f %9.1f %9.1f %6d",
				s.WeekStart.Format(utils.DateLayout), s.Phase,
				s.PlannedKm, s.ActualKm, s.PlannedHours, s.ActualHours, s.RidesCount)

			// Flag weeks landing under 80% of planned distance.
			if s.PlannedKm > 0 && s.ActualKm < 0.8*s.PlannedKm {
				line = color.New(color.FgYellow).Sprint(line)
			}
			fmt.Println(line)
		}

		return nil
	},
}

func init() {
	statusCmd.Flags().StringVarP(&statusPatientID, "patient", "p", "", "Patient id")
	statusCmd.MarkFlagRequired("patient")

	rootCmd.AddCommand(statusCmd)
}
