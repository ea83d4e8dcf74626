package model

import (
	"time"

	"github.com/google/uuid"
)

type AdmissionRecord struct {
	Base
	PatientID    uuid.UUID  `db:"patient_id" json:"patientId"`
	AdmittedOn   time.Time  `db:"admitted_on" json:"admittedOn"`
	DischargedOn *time.Time `db:"discharged_on" json:"dischargedOn,omitempty"`
	RoomNumber   string     `db:"room_number" json:"roomNumber"`
	BedNumber    string     `db:"bed_number" json:"bedNumber"`
	IsDischarged bool       `db:"is_discharged" json:"isDischarged"`
}

type AdmitPatientRequest struct {
	PatientID    string `json:"patientId" validate:"required,uuid"`
	AdmittedOn   *Date  `json:"admittedOn" validate:"required"`
	DischargedOn *Date  `json:"dischargedOn"`
	RoomNumber   string `json:"roomNumber" validate:"required,min=1"`
	BedNumber    string `json:"bedNumber" validate:"required,min=1"`
	IsDischarged bool   `json:"isDischarged"`
}

type UpdateAdmissionRequest struct {
	AdmittedOn   *Date   `json:"admittedOn"`
	DischargedOn *Date   `json:"dischargedOn"`
	RoomNumber   *string `json:"roomNumber" validate:"omitempty,min=1"`
	BedNumber    *string `json:"bedNumber" validate:"omitempty,min=1"`
	IsDischarged *bool   `json:"isDischarged"`
}

// Apply patches a in place with the fields present in r.
func (r *UpdateAdmissionRequest) Apply(a *AdmissionRecord) {
	if r.AdmittedOn != nil {
		a.AdmittedOn = r.AdmittedOn.Time
	}
	if r.DischargedOn != nil {
		a.DischargedOn = r.DischargedOn.TimePtr()
	}
	if r.RoomNumber != nil {
		a.RoomNumber = *r.RoomNumber
	}
	if r.BedNumber != nil {
		a.BedNumber = *r.BedNumber
	}
	if r.IsDischarged != nil {
		a.IsDischarged = *r.IsDischarged
	}
}
