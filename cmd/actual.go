package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/technique-ps/technique/internal/service"
	"github.com/technique-ps/technique/internal/storage"
)

var (
	actualBlockID   string
	actualSession   string
	actualExercise  string
	actualWeek      int
	actualSets      int
	actualReps      int
	actualTimeSec   int
	actualLoadKg    float64
	actualCompleted bool
	actualNotes     string
)

var logActualCmd = &cobra.Command{
	Use:   "log-actual",
	Short: "Log what was actually performed against a planned target",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		upd := storage.ActualsUpdate{}
		if cmd.Flags().Changed("sets") {
			upd.Sets = &actualSets
		}
		if cmd.Flags().Changed("reps") {
			upd.Reps = &actualReps
		}
		if cmd.Flags().Changed("time") {
			upd.TimeSec = &actualTimeSec
		}
		if cmd.Flags().Changed("load") {
			upd.LoadKg = &actualLoadKg
		}
		if cmd.Flags().Changed("done") {
			upd.Completed = &actualCompleted
		}
		if cmd.Flags().Changed("notes") {
			upd.Notes = &actualNotes
		}

		epley, err := service.LogActual(st, userID(), actualBlockID, actualSession, actualExercise, actualWeek, upd)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Logged actuals for %s, week %d\n", actualExercise, actualWeek)
		if epley > 0 {
			fmt.Printf("   Estimated 1RM from this set: %.1f kg\n", epley)
		}
		return nil
	},
}

func init() {
	logActualCmd.Flags().StringVarP(&actualBlockID, "block", "b", "", "Block id")
	logActualCmd.Flags().StringVarP(&actualSession, "session", "s", "", "Session label (A/B/C)")
	logActualCmd.Flags().StringVarP(&actualExercise, "exercise", "e", "", "Exercise name")
	logActualCmd.Flags().IntVarP(&actualWeek, "week", "w", 0, "Week number")
	logActualCmd.Flags().IntVar(&actualSets, "sets", 0, "Sets performed")
	logActualCmd.Flags().IntVar(&actualReps, "reps", 0, "Reps per set performed")
	logActualCmd.Flags().IntVar(&actualTimeSec, "time", 0, "Seconds held/worked")
	logActualCmd.Flags().Float64Var(&actualLoadKg, "load", 0, "Load in kg")
	logActualCmd.Flags().BoolVar(&actualCompleted, "done", false, "Mark the target completed")
	logActualCmd.Flags().StringVar(&actualNotes, "notes", "", "Notes")

	logActualCmd.MarkFlagRequired("block")
	logActualCmd.MarkFlagRequired("session")
	logActualCmd.MarkFlagRequired("exercise")
	logActualCmd.MarkFlagRequired("week")

	rootCmd.AddCommand(logActualCmd)
}
