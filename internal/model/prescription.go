package model

import (
	"time"

	"github.com/google/uuid"
)

type Prescription struct {
	Base
	PatientID uuid.UUID `db:"patient_id" json:"patientId"`
	DrugName  string    `db:"drug_name" json:"drugName"`
	Dosage    string    `db:"dosage" json:"dosage"`
	DrugType  string    `db:"drug_type" json:"drugType"`
	StartDate time.Time `db:"start_date" json:"startDate"`
	Period    string    `db:"period" json:"period"`
	Note      string    `db:"note" json:"note"`
}

type CreatePrescriptionRequest struct {
	PatientID string `json:"patientId" validate:"required,uuid"`
	DrugName  string `json:"drugName" validate:"required"`
	Dosage    string `json:"dosage" validate:"required"`
	DrugType  string `json:"drugType" validate:"required"`
	StartDate *Date  `json:"startDate" validate:"required"`
	Period    string `json:"period" validate:"required"`
	Note      string `json:"note"`
}

type UpdatePrescriptionRequest struct {
	DrugName  *string `json:"drugName" validate:"omitempty,min=1"`
	Dosage    *string `json:"dosage" validate:"omitempty,min=1"`
	DrugType  *string `json:"drugType" validate:"omitempty,min=1"`
	StartDate *Date   `json:"startDate"`
	Period    *string `json:"period" validate:"omitempty,min=1"`
	Note      *string `json:"note"`
}

// Apply patches p in place with the fields present in r.
func (r *UpdatePrescriptionRequest) Apply(p *Prescription) {
	if r.DrugName != nil {
		p.DrugName = *r.DrugName
	}
	if r.Dosage != nil {
		p.Dosage = *r.Dosage
	}
	if r.DrugType != nil {
		p.DrugType = *r.DrugType
	}
	if r.StartDate != nil {
		p.StartDate = r.StartDate.Time
	}
	if r.Period != nil {
		p.Period = *r.Period
	}
	if r.Note != nil {
		p.Note = *r.Note
	}
}
