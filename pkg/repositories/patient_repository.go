// Package repositories provides PostgreSQL data access for patients, vitals
// logs, and Knowledge Hub articles. The plan engine only reads through these
// during computation; writes come from the submission endpoints and seeder.
package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/apperrors"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/database"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
)

// PatientRepository defines patient data access.
type PatientRepository interface {
	// GetPatient returns the patient or apperrors.ErrNotFound.
	GetPatient(ctx context.Context, id string) (*models.Patient, error)

	// UpsertPatient creates or replaces a patient record. Used by seeding.
	UpsertPatient(ctx context.Context, patient *models.Patient) error
}

type patientRepository struct {
	db *database.DB
}

// NewPatientRepository creates a new patient repository.
func NewPatientRepository(db *database.DB) PatientRepository {
	return &patientRepository{db: db}
}

var _ PatientRepository = (*patientRepository)(nil)

func (r *patientRepository) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	query := `SELECT id, name, age, condition, medications FROM patients WHERE id = $1`

	var p models.Patient
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Age, &p.Condition, &p.Medications)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("patient %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("query patient: %w", err)
	}
	return &p, nil
}

func (r *patientRepository) UpsertPatient(ctx context.Context, patient *models.Patient) error {
	query := `
		INSERT INTO patients (id, name, age, condition, medications)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			age = EXCLUDED.age,
			condition = EXCLUDED.condition,
			medications = EXCLUDED.medications`

	_, err := r.db.Exec(ctx, query,
		patient.ID, patient.Name, patient.Age, patient.Condition, patient.Medications)
	if err != nil {
		return fmt.Errorf("upsert patient: %w", err)
	}
	return nil
}
