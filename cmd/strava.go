package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/technique-ps/technique/internal/service"
	"github.com/technique-ps/technique/internal/storage"
	"github.com/technique-ps/technique/internal/strava"
)

var (
	stravaPatientID string
	stravaCode      string
	stravaDaysBack  int
)

var stravaConnectCmd = &cobra.Command{
	Use:   "strava-connect",
	Short: "Connect a patient's Strava account",
	Long: `Without --code, prints the OAuth consent URL to open in a browser.
With --code, exchanges the callback code for tokens and stores them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		client, err := strava.NewClient()
		if err != nil {
			return err
		}

		if stravaCode == "" {
			if err := st.EnsurePatientAccess(userID(), stravaPatientID); err != nil {
				return err
			}
			fmt.Println("Open this URL to authorize access, then re-run with --code:")
			fmt.Println(client.AuthURL(stravaPatientID))
			return nil
		}

		if err := service.ConnectStrava(context.Background(), st, client, userID(), stravaPatientID, stravaCode); err != nil {
			return err
		}

		fmt.Println("✅ Strava connected")
		return nil
	},
}

var stravaSyncCmd = &cobra.Command{
	Use:   "strava-sync",
	Short: "Import recent Strava rides into the ride log",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		client, err := strava.NewClient()
		if err != nil {
			return err
		}

		imported, err := service.SyncStravaRides(context.Background(), st, client, userID(), stravaPatientID, stravaDaysBack)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Imported %d new Strava rides\n", imported)
		return nil
	},
}

func init() {
	stravaConnectCmd.Flags().StringVarP(&stravaPatientID, "patient", "p", "", "Patient id")
	stravaConnectCmd.Flags().StringVar(&stravaCode, "code", "", "OAuth callback code")
	stravaConnectCmd.MarkFlagRequired("patient")

	stravaSyncCmd.Flags().StringVarP(&stravaPatientID, "patient", "p", "", "Patient id")
	stravaSyncCmd.Flags().IntVar(&stravaDaysBack, "days", 30, "How many days back to sync")
	stravaSyncCmd.MarkFlagRequired("patient")

	rootCmd.AddCommand(stravaConnectCmd)
	rootCmd.AddCommand(stravaSyncCmd)
}
