package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/technique-ps/technique/internal/models"
	"github.com/technique-ps/technique/internal/storage"
)

var (
	profilePatientID  string
	profileSex        string
	profileDOB        string
	profileBodyweight float64
	profileLevel      string
)

var setProfileCmd = &cobra.Command{
	Use:   "set-profile",
	Short: "Set a patient's profile (sex, birth date, bodyweight, presumed level)",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		if err := st.EnsurePatientAccess(userID(), profilePatientID); err != nil {
			return err
		}

		profile := models.PatientProfile{
			PatientID:     profilePatientID,
			Sex:           profileSex,
			DOB:           profileDOB,
			PresumedLevel: profileLevel,
		}
		if profileBodyweight > 0 {
			profile.BodyweightKg = &profileBodyweight
		}

		if err := st.UpsertPatientProfile(profile); err != nil {
			return err
		}

		fmt.Printf("✅ Profile saved for patient %s\n", profilePatientID)
		return nil
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show-profile [patient-id]",
	Short: "Show a patient's profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		if err := st.EnsurePatientAccess(userID(), args[0]); err != nil {
			return err
		}

		patient, err := st.GetPatient(args[0])
		if err != nil {
			return err
		}
		profile, err := st.GetPatientProfile(args[0])
		if err != nil {
			return fmt.Errorf("Failed to load profile, set one first: %w", err)
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%s\n", bold(patient.Name))
		fmt.Printf("  Sex: %s\n", profile.Sex)
		fmt.Printf("  Born: %s\n", profile.DOB)
		if profile.BodyweightKg != nil {
			fmt.Printf("  Bodyweight: %.1f kg\n", *profile.BodyweightKg)
		} else {
			fmt.Println("  Bodyweight: not set")
		}
		fmt.Printf("  Presumed level: %s\n", profile.PresumedLevel)
		return nil
	},
}

func init() {
	setProfileCmd.Flags().StringVarP(&profilePatientID, "patient", "p", "", "Patient id")
	setProfileCmd.Flags().StringVar(&profileSex, "sex", "", "male or female")
	setProfileCmd.Flags().StringVar(&profileDOB, "dob", "", "Birth date (YYYY-MM-DD)")
	setProfileCmd.Flags().Float64Var(&profileBodyweight, "bodyweight", 0, "Bodyweight in kg")
	setProfileCmd.Flags().StringVar(&profileLevel, "level", models.LevelIntermediate, "Presumed level: novice/intermediate/advanced/expert")
	setProfileCmd.MarkFlagRequired("patient")

	rootCmd.AddCommand(setProfileCmd)
	rootCmd.AddCommand(showProfileCmd)
}
