package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var currentUser string

var rootCmd = &cobra.Command{
	Use:   "technique",
	Short: "S&C block programming and ride tracking for coached endurance athletes",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&currentUser, "user", "u", "", "Acting user id (defaults to TECHNIQUE_USER)")
}

// userID resolves the acting user for access checks.
func userID() string {
	if currentUser != "" {
		return currentUser
	}
	return os.Getenv("TECHNIQUE_USER")
}
