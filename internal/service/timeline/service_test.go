package timeline

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
	nurse = &model.Claims{Email: "nurse@hospital.io", Role: model.RoleNurse}
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

func TestCreate(t *testing.T) {
	store, patient := setup(t)
	svc := newService(store)
	occurred := time.Date(2024, 3, 3, 9, 30, 0, 0, time.UTC)

	entry, err := svc.Create(context.Background(), admin, &model.CreateTimelineRequest{
		PatientID:  patient.ID.String(),
		Title:      "Vitals",
		Note:       "BP 120/80",
		OccurredOn: model.NewDate(occurred),
	})
	require.NoError(t, err)
	assert.Equal(t, occurred, entry.OccurredOn)
	assert.Equal(t, 1, store.Counts().Timelines)

	list, err := store.Timelines().ListByPatient(context.Background(), patient.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Vitals", list[0].Title)
}

func TestCreate_DefaultsOccurredOn(t *testing.T) {
	store, patient := setup(t)
	svc := newService(store)

	entry, err := svc.Create(context.Background(), admin, &model.CreateTimelineRequest{
		PatientID: patient.ID.String(),
		Title:     "Vitals",
		Note:      "BP 120/80",
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), entry.OccurredOn, time.Minute)
}

func TestCreate_RequiresAdmin(t *testing.T) {
	store, patient := setup(t)
	svc := newService(store)

	_, err := svc.Create(context.Background(), nurse, &model.CreateTimelineRequest{
		PatientID: patient.ID.String(),
		Title:     "Vitals",
		Note:      "BP 120/80",
	})
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))
	assert.Zero(t, store.Counts().Timelines)
}

func TestCreate_UnknownPatient(t *testing.T) {
	store, _ := setup(t)
	svc := newService(store)

	_, err := svc.Create(context.Background(), admin, &model.CreateTimelineRequest{
		PatientID: uuid.NewString(),
		Title:     "Vitals",
		Note:      "BP 120/80",
	})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Zero(t, store.Counts().Timelines)
}

func TestCreate_MidWriteFailureRollsBack(t *testing.T) {
	store, patient := setup(t)
	svc := newService(memory.NewFaultyStore(store, map[string]error{
		memory.FaultTimelineCreate: errors.New("connection reset"),
	}))

	_, err := svc.Create(context.Background(), admin, &model.CreateTimelineRequest{
		PatientID: patient.ID.String(),
		Title:     "Vitals",
		Note:      "BP 120/80",
	})
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
	assert.Equal(t, memory.Counts{Patients: 1}, store.Counts())
}
