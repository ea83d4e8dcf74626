package model

import (
	"time"

	"github.com/google/uuid"
)

// TimelineEntry is a dated clinical note on a patient's chart
type TimelineEntry struct {
	Base
	PatientID  uuid.UUID `db:"patient_id" json:"patientId"`
	Title      string    `db:"title" json:"title"`
	Note       string    `db:"note" json:"note"`
	OccurredOn time.Time `db:"occurred_on" json:"occurredOn"`
}

type CreateTimelineRequest struct {
	PatientID  string `json:"patientId" validate:"required,uuid"`
	Title      string `json:"title" validate:"required,max=200"`
	Note       string `json:"note" validate:"required"`
	OccurredOn *Date  `json:"occurredOn"`
}
