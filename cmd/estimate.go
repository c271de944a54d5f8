package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/technique-ps/technique/internal/service"
	"github.com/technique-ps/technique/internal/storage"
)

var (
	estimatePatientID string
	estimateExercise  string
	estimateAnchor    string
	estimateSave      bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate a patient's e1RM for an exercise from normative standards",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		est, err := service.EstimateExercise(st, userID(), estimatePatientID, estimateExercise, estimateSave)
		if err != nil {
			return err
		}

		printEstimation(est)
		if estimateSave {
			fmt.Println("✅ Estimate saved")
		}
		return nil
	},
}

var estimateUnilateralCmd = &cobra.Command{
	Use:   "estimate-unilateral",
	Short: "Estimate a per-limb load for a unilateral exercise from its bilateral anchor",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		est, err := service.EstimateUnilateral(st, userID(), estimatePatientID, estimateExercise, estimateAnchor, estimateSave)
		if err != nil {
			return err
		}

		printEstimation(est)
		if estimateSave {
			fmt.Println("✅ Estimate saved")
		}
		return nil
	},
}

func printEstimation(est *service.Estimation) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Printf("%s\n", bold(est.Exercise.Name))

	if est.Result.E1RMKg != nil {
		green := color.New(color.FgGreen, color.Bold).SprintFunc()
		fmt.Printf("  e1RM: %s\n", green(fmt.Sprintf("%.1f kg", *est.Result.E1RMKg)))
		if est.Result.RelRatio != nil {
			fmt.Printf("  Relative: %.2f x BW\n", *est.Result.RelRatio)
		}
	} else {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Printf("  e1RM: %s\n", yellow("no estimate"))
	}

	fmt.Printf("  Method: %s\n", est.Result.Method)
	if est.Result.BandUsed != "" {
		fmt.Printf("  Age band: %s (age %d)\n", est.Result.BandUsed, est.AgeUsed)
	}
	if est.Result.Notes != "" {
		fmt.Printf("  %s\n", est.Result.Notes)
	}
}

func init() {
	for _, c := range []*cobra.Command{estimateCmd, estimateUnilateralCmd} {
		c.Flags().StringVarP(&estimatePatientID, "patient", "p", "", "Patient id")
		c.Flags().StringVarP(&estimateExercise, "exercise", "e", "", "Exercise name")
		c.Flags().BoolVar(&estimateSave, "save", false, "Save the estimate to the audit table")
		c.MarkFlagRequired("patient")
		c.MarkFlagRequired("exercise")
	}

	estimateUnilateralCmd.Flags().StringVarP(&estimateAnchor, "anchor", "a", "", "Bilateral anchor exercise name")
	estimateUnilateralCmd.MarkFlagRequired("anchor")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(estimateUnilateralCmd)
}
