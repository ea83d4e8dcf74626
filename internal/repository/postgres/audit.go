package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
)

type auditRepository struct {
	db sqlx.ExtContext
}

func (r *auditRepository) Create(ctx context.Context, log *model.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, actor_email, action, entity_type, entity_id, changes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.ActorEmail,
		log.Action,
		log.EntityType,
		log.EntityID,
		jsonText(log.Changes),
		log.CreatedAt,
	)
	return mapError(err, "create audit log")
}

func (r *auditRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*model.AuditLog, error) {
	logs := make([]*model.AuditLog, 0)
	query := `
		SELECT id, actor_email, action, entity_type, entity_id, changes, created_at
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at ASC
	`
	if err := sqlx.SelectContext(ctx, r.db, &logs, query, entityType, entityID); err != nil {
		return nil, mapError(err, "list audit logs")
	}
	return logs, nil
}

func (r *auditRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return execAffected(ctx, r.db, "delete audit logs", `DELETE FROM audit_logs WHERE created_at < $1`, cutoff)
}

// jsonText passes JSON to lib/pq as text; a []byte would be sent as bytea.
func jsonText(b []byte) interface{} {
	if b == nil {
		return nil
	}
	return string(b)
}
