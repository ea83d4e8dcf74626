package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
)

type prescriptionRepository struct {
	db sqlx.ExtContext
}

const prescriptionColumns = `id, patient_id, drug_name, dosage, drug_type, start_date, period,
	note, created_at, updated_at`

func (r *prescriptionRepository) Create(ctx context.Context, p *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (` + prescriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.PatientID,
		p.DrugName,
		p.Dosage,
		p.DrugType,
		p.StartDate,
		p.Period,
		p.Note,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return mapError(err, "create prescription")
}

func (r *prescriptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	var p model.Prescription
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE id = $1 FOR UPDATE`
	if err := sqlx.GetContext(ctx, r.db, &p, query, id); err != nil {
		return nil, mapError(err, "get prescription")
	}
	return &p, nil
}

func (r *prescriptionRepository) Update(ctx context.Context, p *model.Prescription) error {
	query := `
		UPDATE prescriptions
		SET drug_name = $1, dosage = $2, drug_type = $3, start_date = $4, period = $5,
			note = $6, updated_at = $7
		WHERE id = $8
	`
	return execOne(ctx, r.db, "update prescription", query,
		p.DrugName,
		p.Dosage,
		p.DrugType,
		p.StartDate,
		p.Period,
		p.Note,
		p.UpdatedAt,
		p.ID,
	)
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Prescription, error) {
	list := make([]*model.Prescription, 0)
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE patient_id = $1 ORDER BY start_date DESC`
	if err := sqlx.SelectContext(ctx, r.db, &list, query, patientID); err != nil {
		return nil, mapError(err, "list prescriptions")
	}
	return list, nil
}

func (r *prescriptionRepository) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	_, err := execAffected(ctx, r.db, "delete prescriptions", `DELETE FROM prescriptions WHERE patient_id = $1`, patientID)
	return err
}
