package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/technique-ps/technique/internal/storage"
)

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database schema and seed the exercise library and strength norms",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		if err := st.Seed(); err != nil {
			return fmt.Errorf("Failed to seed database: %w", err)
		}

		fmt.Println("✅ Database initialized and seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
}
