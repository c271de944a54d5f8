package storage

import (
	"fmt"

	"github.com/technique-ps/technique/internal/models"
)

func (s *Storage) GrantRole(userID, role string) error {
	switch role {
	case models.RoleAdmin, models.RoleCoach, models.RoleClient:
	default:
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	_, err := s.DB.Exec(
		`INSERT INTO user_roles (user_id, role) VALUES (?, ?)
			ON CONFLICT(user_id, role) DO NOTHING`,
		userID, role,
	)
	return err
}

func (s *Storage) HasRole(userID, role string) (bool, error) {
	var n int
	err := s.DB.QueryRow(
		`SELECT COUNT(*) FROM user_roles WHERE user_id = ? AND role = ?`,
		userID, role,
	).Scan(&n)
	return n > 0, err
}

// CountRoles reports how many role grants exist at all. Zero means the
// database is fresh and the first admin can bootstrap itself.
func (s *Storage) CountRoles() (int, error) {
	var n int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM user_roles`).Scan(&n)
	return n, err
}

func (s *Storage) AssignPatientToCoach(coachUserID, patientID string) error {
	_, err := s.DB.Exec(
		`INSERT INTO coach_patients (coach_user_id, patient_id) VALUES (?, ?)
			ON CONFLICT(coach_user_id, patient_id) DO NOTHING`,
		coachUserID, patientID,
	)
	return err
}

func (s *Storage) LinkClientToPatient(clientUserID, patientID string) error {
	_, err := s.DB.Exec(
		`INSERT INTO client_links (client_user_id, patient_id) VALUES (?, ?)
			ON CONFLICT(client_user_id, patient_id) DO NOTHING`,
		clientUserID, patientID,
	)
	return err
}

// EnsurePatientAccess fails closed: unless the user is an admin, owns the
// patient record, coaches the patient or is linked to it as a client, the
// result is ErrPermissionDenied.
func (s *Storage) EnsurePatientAccess(userID, patientID string) error {
	if userID == "" {
		return fmt.Errorf("%w: no user given", ErrPermissionDenied)
	}

	admin, err := s.HasRole(userID, models.RoleAdmin)
	if err != nil {
		return err
	}
	if admin {
		return nil
	}

	var n int
	err = s.DB.QueryRow(
		`SELECT
			(SELECT COUNT(*) FROM patients WHERE id = ? AND owner_user_id = ?) +
			(SELECT COUNT(*) FROM coach_patients WHERE patient_id = ? AND coach_user_id = ?) +
			(SELECT COUNT(*) FROM client_links WHERE patient_id = ? AND client_user_id = ?)`,
		patientID, userID, patientID, userID, patientID, userID,
	).Scan(&n)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: user %s has no access to patient %s", ErrPermissionDenied, userID, patientID)
	}

	return nil
}
