package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/technique-ps/technique/internal/service"
	"github.com/technique-ps/technique/internal/storage"
)

var generateBlockID string

var generateTargetsCmd = &cobra.Command{
	Use:   "generate-targets",
	Short: "Recompute planned week targets for a block (actuals are preserved)",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		count, err := service.GenerateTargets(st, userID(), generateBlockID)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Generated %d week targets\n", count)
		return nil
	},
}

func init() {
	generateTargetsCmd.Flags().StringVarP(&generateBlockID, "block", "b", "", "Block id")
	generateTargetsCmd.MarkFlagRequired("block")

	rootCmd.AddCommand(generateTargetsCmd)
}
