package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusProcessed OutboxStatus = "processed"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// Event types written to the outbox
const (
	EventAdmissionCreated       = "ADMISSION_CREATED"
	EventAdmissionUpdated       = "ADMISSION_UPDATED"
	EventAdmissionDeleted       = "ADMISSION_DELETED"
	EventEmployeeCreated        = "EMPLOYEE_CREATED"
	EventEmployeeDetailsUpdated = "EMPLOYEE_DETAILS_UPDATED"
	EventPatientDeleted         = "PATIENT_DELETED"
	EventPrescriptionCreated    = "PRESCRIPTION_CREATED"
	EventPrescriptionUpdated    = "PRESCRIPTION_UPDATED"
	EventTimelineCreated        = "TIMELINE_CREATED"
)

type OutboxEvent struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	EventType    string          `db:"event_type" json:"eventType"`
	Payload      json.RawMessage `db:"payload" json:"payload"`
	Status       OutboxStatus    `db:"status" json:"status"`
	ErrorMessage *string         `db:"error_message" json:"errorMessage,omitempty"`
	RetryCount   int             `db:"retry_count" json:"retryCount"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`
	ProcessedAt  *time.Time      `db:"processed_at" json:"processedAt,omitempty"`
}
