package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	apperrors "github.com/Maxfurry/Hospital-Managment-Software/pkg/errors"
)

func validAdmission() *model.AdmitPatientRequest {
	return &model.AdmitPatientRequest{
		PatientID:  "7f1d2c8e-3b0a-4c55-9e77-2a6b1f0d9c41",
		AdmittedOn: model.NewDate(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
		RoomNumber: "12",
		BedNumber:  "B",
	}
}

func TestValidate_Admission(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		mutate  func(r *model.AdmitPatientRequest)
		message string
	}{
		{"valid", func(r *model.AdmitPatientRequest) {}, ""},
		{"missing patient", func(r *model.AdmitPatientRequest) { r.PatientID = "" }, "patientId is required"},
		{"short patient id", func(r *model.AdmitPatientRequest) { r.PatientID = "1234" }, "patientId is required or Invalid"},
		{"missing admitted on", func(r *model.AdmitPatientRequest) { r.AdmittedOn = nil }, "admittedOn is required"},
		{"empty room", func(r *model.AdmitPatientRequest) { r.RoomNumber = "" }, "roomNumber is required"},
		{"empty bed", func(r *model.AdmitPatientRequest) { r.BedNumber = "" }, "bedNumber is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validAdmission()
			tt.mutate(req)

			err := v.Validate(req)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}

			appErr, ok := apperrors.As(err)
			if assert.True(t, ok) {
				assert.Equal(t, apperrors.KindValidation, appErr.Kind)
				assert.Equal(t, tt.message, appErr.Message)
			}
		})
	}
}

func TestValidate_ReportsFirstViolationOnly(t *testing.T) {
	err := New().Validate(&model.AdmitPatientRequest{})

	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, "patientId is required", appErr.Message)
}

func TestValidate_EmployeeRole(t *testing.T) {
	req := &model.CreateEmployeeRequest{
		Email:       "nurse@hospital.io",
		Password:    "password123",
		FirstName:   "Ada",
		LastName:    "Obi",
		Role:        "nurse",
		DateOfBirth: model.NewDate(time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)),
		Gender:      "female",
		PhoneNumber: "08031234567",
		Address:     "1 Ward Road",
	}
	assert.NoError(t, New().Validate(req))

	req.Role = "janitor"
	err := New().Validate(req)
	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, "role must be one of [ADMIN STAFF DOCTOR NURSE]", appErr.Message)
}

func TestValidate_NilPayload(t *testing.T) {
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(New().Validate(nil)))
}
