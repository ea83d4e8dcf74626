package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository"
)

type patientRepository struct {
	db sqlx.ExtContext
}

// Exists takes a key-share lock on the row so it cannot be deleted before
// the enclosing transaction commits.
func (r *patientRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var found uuid.UUID
	err := sqlx.GetContext(ctx, r.db, &found, `SELECT id FROM patients WHERE id = $1 FOR KEY SHARE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, mapError(err, "check patient")
	}
	return true, nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `
		SELECT id, first_name, last_name, date_of_birth, gender, phone_number,
			address, created_at, updated_at
		FROM patients
		WHERE id = $1
	`
	var patient model.Patient
	if err := sqlx.GetContext(ctx, r.db, &patient, query, id); err != nil {
		return nil, mapError(err, "get patient")
	}
	return &patient, nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, r.db, "delete patient", `DELETE FROM patients WHERE id = $1`, id)
}

var _ repository.PatientRepository = (*patientRepository)(nil)
