package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	ActorEmail string          `json:"actorEmail" db:"actor_email"`
	Action     string          `json:"action" db:"action"`
	EntityType string          `json:"entityType" db:"entity_type"`
	EntityID   uuid.UUID       `json:"entityId" db:"entity_id"`
	Changes    json.RawMessage `json:"changes" db:"changes"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
}

const (
	// Action types
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"

	// Entity types
	AuditEntityAdmission       = "admission_record"
	AuditEntityEmployee        = "employee"
	AuditEntityEmployeeDetails = "employee_details"
	AuditEntityPatient         = "patient"
	AuditEntityPrescription    = "prescription"
	AuditEntityTimeline        = "timeline_entry"
)
