package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/technique-ps/technique/internal/models"
	"github.com/technique-ps/technique/internal/storage"
)

var (
	patientName   string
	grantUserID   string
	grantRoleName string
	assignCoachID string
	assignPatient string
	linkClientID  string
	linkPatientID string
)

var addPatientCmd = &cobra.Command{
	Use:   "add-patient",
	Short: "Create a new patient owned by the acting user",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		patient := models.Patient{
			ID:          uuid.New().String(),
			Name:        patientName,
			OwnerUserID: userID(),
			CreatedAt:   time.Now().UTC(),
		}

		if err := st.CreatePatient(patient); err != nil {
			return err
		}

		fmt.Printf("✅ Created patient %s (%s)\n", patient.Name, patient.ID)
		return nil
	},
}

var listPatientsCmd = &cobra.Command{
	Use:   "list-patients",
	Short: "List patients",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		patients, err := st.ListPatients()
		if err != nil {
			return err
		}

		for _, p := range patients {
			fmt.Printf("%s  %s\n", p.ID, p.Name)
		}
		return nil
	},
}

var grantRoleCmd = &cobra.Command{
	Use:   "grant-role",
	Short: "Grant a role (admin/coach/client) to a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		// The very first grant bootstraps the admin; after that only
		// admins may hand out roles.
		existing, err := st.CountRoles()
		if err != nil {
			return err
		}
		if existing > 0 {
			admin, err := st.HasRole(userID(), models.RoleAdmin)
			if err != nil {
				return err
			}
			if !admin {
				return fmt.Errorf("%w: only admins can grant roles", storage.ErrPermissionDenied)
			}
		}

		if err := st.GrantRole(grantUserID, grantRoleName); err != nil {
			return err
		}

		fmt.Printf("✅ Granted %s to %s\n", grantRoleName, grantUserID)
		return nil
	},
}

var assignPatientCmd = &cobra.Command{
	Use:   "assign-patient",
	Short: "Assign a patient to a coach",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		if err := st.EnsurePatientAccess(userID(), assignPatient); err != nil {
			return err
		}
		if err := st.AssignPatientToCoach(assignCoachID, assignPatient); err != nil {
			return err
		}

		fmt.Printf("✅ Assigned patient %s to coach %s\n", assignPatient, assignCoachID)
		return nil
	},
}

var linkClientCmd = &cobra.Command{
	Use:   "link-client",
	Short: "Link a client user to their patient record",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		if err := st.EnsurePatientAccess(userID(), linkPatientID); err != nil {
			return err
		}
		if err := st.LinkClientToPatient(linkClientID, linkPatientID); err != nil {
			return err
		}

		fmt.Printf("✅ Linked client %s to patient %s\n", linkClientID, linkPatientID)
		return nil
	},
}

func init() {
	addPatientCmd.Flags().StringVarP(&patientName, "name", "n", "", "Patient name")
	addPatientCmd.MarkFlagRequired("name")

	grantRoleCmd.Flags().StringVar(&grantUserID, "to", "", "User id to grant the role to")
	grantRoleCmd.Flags().StringVar(&grantRoleName, "role", "", "Role: admin, coach or client")
	grantRoleCmd.MarkFlagRequired("to")
	grantRoleCmd.MarkFlagRequired("role")

	assignPatientCmd.Flags().StringVar(&assignCoachID, "coach", "", "Coach user id")
	assignPatientCmd.Flags().StringVar(&assignPatient, "patient", "", "Patient id")
	assignPatientCmd.MarkFlagRequired("coach")
	assignPatientCmd.MarkFlagRequired("patient")

	linkClientCmd.Flags().StringVar(&linkClientID, "client", "", "Client user id")
	linkClientCmd.Flags().StringVar(&linkPatientID, "patient", "", "Patient id")
	linkClientCmd.MarkFlagRequired("client")
	linkClientCmd.MarkFlagRequired("patient")

	rootCmd.AddCommand(addPatientCmd)
	rootCmd.AddCommand(listPatientsCmd)
	rootCmd.AddCommand(grantRoleCmd)
	rootCmd.AddCommand(assignPatientCmd)
	rootCmd.AddCommand(linkClientCmd)
}
