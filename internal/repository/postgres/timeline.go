package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
)

type timelineRepository struct {
	db sqlx.ExtContext
}

func (r *timelineRepository) Create(ctx context.Context, e *model.TimelineEntry) error {
	query := `
		INSERT INTO timeline_entries (id, patient_id, title, note, occurred_on, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.PatientID,
		e.Title,
		e.Note,
		e.OccurredOn,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return mapError(err, "create timeline entry")
}

func (r *timelineRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.TimelineEntry, error) {
	entries := make([]*model.TimelineEntry, 0)
	query := `
		SELECT id, patient_id, title, note, occurred_on, created_at, updated_at
		FROM timeline_entries
		WHERE patient_id = $1
		ORDER BY occurred_on DESC
	`
	if err := sqlx.SelectContext(ctx, r.db, &entries, query, patientID); err != nil {
		return nil, mapError(err, "list timeline entries")
	}
	return entries, nil
}

func (r *timelineRepository) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	_, err := execAffected(ctx, r.db, "delete timeline entries", `DELETE FROM timeline_entries WHERE patient_id = $1`, patientID)
	return err
}
