package patient

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
	admin = &model.Claims{Email: "admin@hospital.io", Role: model.RoleAdmin}
	staff = &model.Claims{Email: "staff@hospital.io", Role: model.RoleStaff}
)

func seeded(t *testing.T) (*memory.Store, *model.Patient) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	patient := &model.Patient{Base: model.Base{ID: uuid.New()}, FirstName: "Jane", LastName: "Doe"}
	store.SeedPatients(patient)

	require.NoError(t, store.Admissions().Create(ctx, &model.AdmissionRecord{
		Base: model.Base{ID: uuid.New()}, PatientID: patient.ID, AdmittedOn: time.Now().UTC(), RoomNumber: "1", BedNumber: "1",
	}))
	require.NoError(t, store.Prescriptions().Create(ctx, &model.Prescription{
		Base: model.Base{ID: uuid.New()}, PatientID: patient.ID, DrugName: "Amoxicillin",
	}))
	require.NoError(t, store.Timelines().Create(ctx, &model.TimelineEntry{
		Base: model.Base{ID: uuid.New()}, PatientID: patient.ID, Title: "Admitted",
	}))
	return store, patient
}

func newService(store repository.Store) *Service {
	return NewService(guard.New(store, validator.New(), metrics.NewNop()))
}

func TestGet(t *testing.T) {
	store, patient := seeded(t)
	svc := newService(store)

	got, err := svc.Get(context.Background(), staff, patient.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)

	_, err = svc.Get(context.Background(), staff, uuid.NewString())
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.Equal(t, "Patient not found", appErr.Message)

	_, err = svc.Get(context.Background(), nil, patient.ID.String())
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))
}

func TestDelete_RemovesDependents(t *testing.T) {
	store, patient := seeded(t)
	svc := newService(store)

	require.NoError(t, svc.Delete(context.Background(), admin, patient.ID.String()))

	counts := store.Counts()
	assert.Zero(t, counts.Patients)
	assert.Zero(t, counts.Admissions)
	assert.Zero(t, counts.Prescriptions)
	assert.Zero(t, counts.Timelines)
	assert.Equal(t, 1, counts.AuditLogs)
	assert.Equal(t, 1, counts.OutboxEvents)
}

func TestDelete_RequiresAdmin(t *testing.T) {
	store, patient := seeded(t)
	svc := newService(store)

	err := svc.Delete(context.Background(), staff, patient.ID.String())
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindAuthorization, appErr.Kind)
	assert.Equal(t, 403, appErr.StatusCode())
	assert.Equal(t, 1, store.Counts().Patients)
}

func TestDelete_UnknownPatient(t *testing.T) {
	store, _ := seeded(t)
	svc := newService(store)

	err := svc.Delete(context.Background(), admin, uuid.NewString())
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.Equal(t, "Patient not found", appErr.Message)
}

func TestDelete_FailureKeepsDependents(t *testing.T) {
	store, patient := seeded(t)
	before := store.Counts()
	svc := newService(memory.NewFaultyStore(store, map[string]error{
		memory.FaultPatientDelete: errors.New("lock timeout"),
	}))

	err := svc.Delete(context.Background(), admin, patient.ID.String())
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindInternal, appErr.Kind)
	assert.Equal(t, "Could not delete patient", appErr.Message)
	assert.Equal(t, before, store.Counts())
}
