package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/technique-ps/technique/internal/service"
	"github.com/technique-ps/technique/internal/storage"
	"github.com/technique-ps/technique/internal/utils"
)

var templateBlockID string

var importTemplateCmd = &cobra.Command{
	Use:   "import-template [file]",
	Short: "Import session templates for a block from TOML and regenerate its targets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		importData, err := utils.ParseTemplatesFromTOML(args[0])
		if err != nil {
			return fmt.Errorf("invalid TOML format: %w", err)
		}

		rows, err := service.ImportTemplates(st, userID(), templateBlockID, importData)
		if err != nil {
			return err
		}

		targets, err := service.GenerateTargets(st, userID(), templateBlockID)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Imported %d template rows, generated %d week targets\n", rows, targets)
		return nil
	},
}

func init() {
	importTemplateCmd.Flags().StringVarP(&templateBlockID, "block", "b", "", "Block id")
	importTemplateCmd.MarkFlagRequired("block")

	rootCmd.AddCommand(importTemplateCmd)
}
