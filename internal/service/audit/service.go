package audit

import (
	"context"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/service/guard"
	apperrors "github.com/Maxfurry/Hospital-Managment-Software/pkg/errors"
)

var opListByEntity = guard.Operation{
	Name:           "list_audit_logs",
	Role:           model.RoleAdmin,
	FailureMessage: "Could not fetch audit logs",
}

var entityTypes = map[string]bool{
	model.AuditEntityAdmission:       true,
	model.AuditEntityEmployee:        true,
	model.AuditEntityEmployeeDetails: true,
	model.AuditEntityPatient:         true,
	model.AuditEntityPrescription:    true,
	model.AuditEntityTimeline:        true,
}

type AuditServicer interface {
	ListByEntity(ctx context.Context, caller *model.Claims, entityType, entityID string) ([]*model.AuditLog, error)
}

// Service exposes the audit trail written by guarded operations.
type Service struct {
	guard *guard.Guard
}

var _ AuditServicer = (*Service)(nil)

func NewService(g *guard.Guard) *Service {
	return &Service{guard: g}
}

// ListByEntity returns the audit rows of one entity, oldest first. Rows
// outlive the entity they describe.
func (s *Service) ListByEntity(ctx context.Context, caller *model.Claims, entityType, entityID string) ([]*model.AuditLog, error) {
	if !entityTypes[entityType] {
		return nil, apperrors.Validation("entityType is required or Invalid")
	}
	id, err := guard.ParseID(entityID, "entityId")
	if err != nil {
		return nil, err
	}

	return guard.Read(ctx, s.guard, opListByEntity, caller, nil, func(ctx context.Context, r repository.Repositories) ([]*model.AuditLog, error) {
		logs, err := r.Audit().ListByEntity(ctx, entityType, id)
		if err != nil {
			return nil, err
		}
		if logs == nil {
			logs = []*model.AuditLog{}
		}
		return logs, nil
	})
}
