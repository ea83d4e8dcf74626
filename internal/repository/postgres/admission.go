package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
)

type admissionRepository struct {
	db sqlx.ExtContext
}

const admissionColumns = `id, patient_id, admitted_on, discharged_on, room_number, bed_number,
	is_discharged, created_at, updated_at`

func (r *admissionRepository) Create(ctx context.Context, rec *model.AdmissionRecord) error {
	query := `
		INSERT INTO admission_records (` + admissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.PatientID,
		rec.AdmittedOn,
		rec.DischargedOn,
		rec.RoomNumber,
		rec.BedNumber,
		rec.IsDischarged,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return mapError(err, "create admission record")
}

func (r *admissionRepository) Get(ctx context.Context, id uuid.UUID) (*model.AdmissionRecord, error) {
	var rec model.AdmissionRecord
	query := `SELECT ` + admissionColumns + ` FROM admission_records WHERE id = $1 FOR UPDATE`
	if err := sqlx.GetContext(ctx, r.db, &rec, query, id); err != nil {
		return nil, mapError(err, "get admission record")
	}
	return &rec, nil
}

func (r *admissionRepository) Update(ctx context.Context, rec *model.AdmissionRecord) error {
	query := `
		UPDATE admission_records
		SET admitted_on = $1, discharged_on = $2, room_number = $3, bed_number = $4,
			is_discharged = $5, updated_at = $6
		WHERE id = $7
	`
	return execOne(ctx, r.db, "update admission record", query,
		rec.AdmittedOn,
		rec.DischargedOn,
		rec.RoomNumber,
		rec.BedNumber,
		rec.IsDischarged,
		rec.UpdatedAt,
		rec.ID,
	)
}

func (r *admissionRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := execAffected(ctx, r.db, "delete admission record", `DELETE FROM admission_records WHERE id = $1`, id)
	return n > 0, err
}

func (r *admissionRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AdmissionRecord, error) {
	records := make([]*model.AdmissionRecord, 0)
	query := `SELECT ` + admissionColumns + ` FROM admission_records WHERE patient_id = $1 ORDER BY admitted_on DESC`
	if err := sqlx.SelectContext(ctx, r.db, &records, query, patientID); err != nil {
		return nil, mapError(err, "list admission records")
	}
	return records, nil
}

func (r *admissionRepository) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	_, err := execAffected(ctx, r.db, "delete admission records", `DELETE FROM admission_records WHERE patient_id = $1`, patientID)
	return err
}
