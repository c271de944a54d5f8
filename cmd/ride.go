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
	ridePatientID string
	rideDate      string
	rideKm        float64
	rideMinutes   int
	rideRPE       int
	rideNotes     string
)

var logRideCmd = &cobra.Command{
	Use:   "log-ride",
	Short: "Log a ride for a patient",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		if err := st.EnsurePatientAccess(userID(), ridePatientID); err != nil {
			return err
		}

		date, err := utils.ParseDate(rideDate)
		if err != nil {
			return err
		}

		ride := models.Ride{
			ID:          uuid.New().String(),
			PatientID:   ridePatientID,
			RideDate:    date,
			DistanceKm:  rideKm,
			DurationMin: rideMinutes,
			Notes:       rideNotes,
			CreatedAt:   time.Now().UTC(),
		}
		if cmd.Flags().Changed("rpe") {
			ride.RPE = &rideRPE
		}

		if err := st.CreateRide(ride); err != nil {
			return err
		}

		fmt.Printf("✅ Logged ride: %.1f km in %d min on %s\n", rideKm, rideMinutes, rideDate)
		return nil
	},
}

var listRidesCmd = &cobra.Command{
	Use:   "list-rides [patient-id]",
	Short: "List a patient's rides",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		if err := st.EnsurePatientAccess(userID(), args[0]); err != nil {
			return err
		}

		rides, err := st.ListRides(args[0])
		if err != nil {
			return err
		}

		for _, r := range rides {
			rpe := "-"
			if r.RPE != nil {
				rpe = fmt.Sprintf("%d", *r.RPE)
			}
			fmt.Printf("%s  %6.1f km  %4d min  RPE %-2s %s\n",
				r.RideDate.Format(utils.DateLayout), r.DistanceKm, r.DurationMin, rpe, r.Notes)
		}
		return nil
	},
}

func init() {
	logRideCmd.Flags().StringVarP(&ridePatientID, "patient", "p", "", "Patient id")
	logRideCmd.Flags().StringVar(&rideDate, "date", "", "Ride date (YYYY-MM-DD)")
	logRideCmd.Flags().Float64Var(&rideKm, "km", 0, "Distance in km")
	logRideCmd.Flags().IntVar(&rideMinutes, "minutes", 0, "Duration in minutes")
	logRideCmd.Flags().IntVar(&rideRPE, "rpe", 0, "Session RPE (1-10)")
	logRideCmd.Flags().StringVar(&rideNotes, "notes", "", "Notes")

	logRideCmd.MarkFlagRequired("patient")
	logRideCmd.MarkFlagRequired("date")

	rootCmd.AddCommand(logRideCmd)
	rootCmd.AddCommand(listRidesCmd)
}
