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
	blockPatientID string
	blockStart     string
	blockWeeks     int
	blockDeload    int
	blockSessions  int
	blockGoal      string
	blockNotes     string
)

var createBlockCmd = &cobra.Command{
	Use:   "create-block",
	Short: "Create a training block with its week and session skeleton",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		startDate, err := utils.ParseDate(blockStart)
		if err != nil {
			return err
		}

		block, err := service.CreateBlock(st, userID(), models.Block{
			PatientID:       blockPatientID,
			StartDate:       startDate,
			Weeks:           blockWeeks,
			DeloadWeek:      blockDeload,
			SessionsPerWeek: blockSessions,
			Goal:            blockGoal,
			Notes:           blockNotes,
		})
		if err != nil {
			return err
		}

		fmt.Printf("✅ Created block %s: %d weeks from %s, deload week %d, %d sessions/week\n",
			block.ID, block.Weeks, block.StartDate.Format(utils.DateLayout), block.DeloadWeek, block.SessionsPerWeek)
		return nil
	},
}

func init() {
	createBlockCmd.Flags().StringVarP(&blockPatientID, "patient", "p", "", "Patient id")
	createBlockCmd.Flags().StringVar(&blockStart, "start", "", "Start date (YYYY-MM-DD, snapped to Monday)")
	createBlockCmd.Flags().IntVar(&blockWeeks, "weeks", 6, "Block length in weeks")
	createBlockCmd.Flags().IntVar(&blockDeload, "deload-week", 4, "Deload week number")
	createBlockCmd.Flags().IntVar(&blockSessions, "sessions", 2, "Sessions per week (1-3)")
	createBlockCmd.Flags().StringVar(&blockGoal, "goal", "", "Block goal")
	createBlockCmd.Flags().StringVar(&blockNotes, "notes", "", "Notes")

	createBlockCmd.MarkFlagRequired("patient")
	createBlockCmd.MarkFlagRequired("start")

	rootCmd.AddCommand(createBlockCmd)
}
