package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/wellpath/portal/internal/model"
)

// AssignmentRepository stores which patients a provider may see. Rows are
// written by operators, never by the providers or patients themselves.
type AssignmentRepository interface {
	Assign(ctx context.Context, providerID, patientID string) error
	Unassign(ctx context.Context, providerID, patientID string) error
	PatientIDs(ctx context.Context, providerID string) ([]string, error)
	IsAssigned(ctx context.Context, providerID, patientID string) (bool, error)
}

type assignmentRepository struct {
	db *sqlx.DB
}

func NewAssignmentRepository(db *sqlx.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

// Assign is a no-op when the pair already exists.
func (r *assignmentRepository) Assign(ctx context.Context, providerID, patientID string) error {
	query := `INSERT INTO provider_patients (provider_id, patient_id, created_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (provider_id, patient_id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, providerID, patientID, time.Now())
	return err
}

func (r *assignmentRepository) Unassign(ctx context.Context, providerID, patientID string) error {
	query := `DELETE FROM provider_patients WHERE provider_id = $1 AND patient_id = $2`

	_, err := r.db.ExecContext(ctx, query, providerID, patientID)
	return err
}

// PatientIDs returns assigned patients in assignment order, skipping any
// reference whose user is not a patient.
func (r *assignmentRepository) PatientIDs(ctx context.Context, providerID string) ([]string, error) {
	ids := []string{}
	query := `SELECT pp.patient_id FROM provider_patients pp
	          JOIN users u ON u.id = pp.patient_id
	          WHERE pp.provider_id = $1 AND u.role = $2
	          ORDER BY pp.created_at ASC, pp.patient_id ASC`

	err := r.db.SelectContext(ctx, &ids, query, providerID, string(model.RolePatient))
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *assignmentRepository) IsAssigned(ctx context.Context, providerID, patientID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM provider_patients WHERE provider_id = $1 AND patient_id = $2`

	err := r.db.QueryRowContext(ctx, query, providerID, patientID).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
