package prescription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository/memory"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/service/guard"
	apperrors "github.com/Maxfurry/Hospital-Managment-Software/pkg/errors"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/metrics"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/validator"
)

var (
	admin  = &model.Claims{Email: "admin@hospital.io", Role: model.RoleAdmin}
	doctor = &model.Claims{Email: "doctor@hospital.io", Role: model.RoleDoctor}
)

func setup(t *testing.T) (*memory.Store, *model.Patient) {
	t.Helper()
	store := memory.NewStore()
	patient := &model.Patient{Base: model.Base{ID: uuid.New()}}
	store.SeedPatients(patient)
	return store, patient
}

func newService(store repository.Store) *Service {
	return NewService(guard.New(store, validator.New(), metrics.NewNop()))
}

func createRequest(patientID string) *model.CreatePrescriptionRequest {
	return &model.CreatePrescriptionRequest{
		PatientID: patientID,
		DrugName:  "Amoxicillin",
		Dosage:    "500mg",
		DrugType:  "capsule",
		StartDate: model.NewDate(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)),
		Period:    "7 days",
		Note:      "after meals",
	}
}

func TestCreate(t *testing.T) {
	store, patient := setup(t)
	svc := newService(store)

	p, err := svc.Create(context.Background(), admin, createRequest(patient.ID.String()))
	require.NoError(t, err)
	assert.Equal(t, patient.ID, p.PatientID)
	assert.Equal(t, "Amoxicillin", p.DrugName)
	assert.Equal(t, 1, store.Counts().Prescriptions)
	assert.Equal(t, 1, store.Counts().OutboxEvents)
}

func TestCreate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		caller  *model.Claims
		req     func(patientID string) *model.CreatePrescriptionRequest
		kind    apperrors.Kind
		message string
	}{
		{
			name:    "non admin",
			caller:  doctor,
			req:     createRequest,
			kind:    apperrors.KindAuthorization,
			message: "Route restricted to admin only",
		},
		{
			name:   "unknown patient",
			caller: admin,
			req: func(string) *model.CreatePrescriptionRequest {
				return createRequest(uuid.NewString())
			},
			kind:    apperrors.KindNotFound,
			message: "Patient not found",
		},
		{
			name:   "missing drug name",
			caller: admin,
			req: func(id string) *model.CreatePrescriptionRequest {
				r := createRequest(id)
				r.DrugName = ""
				return r
			},
			kind:    apperrors.KindValidation,
			message: "drugName is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, patient := setup(t)
			svc := newService(store)

			_, err := svc.Create(context.Background(), tt.caller, tt.req(patient.ID.String()))
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, appErr.Kind)
			assert.Equal(t, tt.message, appErr.Message)
			assert.Equal(t, memory.Counts{Patients: 1}, store.Counts())
		})
	}
}

func TestCreate_MidWriteFailureRollsBack(t *testing.T) {
	store, patient := setup(t)
	svc := newService(memory.NewFaultyStore(store, map[string]error{
		memory.FaultPrescriptionCreate: errors.New("connection reset"),
	}))

	_, err := svc.Create(context.Background(), admin, createRequest(patient.ID.String()))
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
	assert.Equal(t, memory.Counts{Patients: 1}, store.Counts())
}

func TestUpdate(t *testing.T) {
	store, patient := setup(t)
	svc := newService(store)
	ctx := context.Background()

	p, err := svc.Create(ctx, admin, createRequest(patient.ID.String()))
	require.NoError(t, err)

	dosage := "250mg"
	updated, err := svc.Update(ctx, admin, p.ID.String(), &model.UpdatePrescriptionRequest{Dosage: &dosage})
	require.NoError(t, err)
	assert.Equal(t, "250mg", updated.Dosage)
	assert.Equal(t, "Amoxicillin", updated.DrugName)

	_, err = svc.Update(ctx, doctor, p.ID.String(), &model.UpdatePrescriptionRequest{Dosage: &dosage})
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))

	_, err = svc.Update(ctx, admin, uuid.NewString(), &model.UpdatePrescriptionRequest{Dosage: &dosage})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.Equal(t, "Prescription not found", appErr.Message)
}
