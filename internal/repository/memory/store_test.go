package memory

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
)

func newPatient() *model.Patient {
	return &model.Patient{
		Base:      model.Base{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func newAdmission(patientID uuid.UUID) *model.AdmissionRecord {
	return &model.AdmissionRecord{
		Base:       model.Base{ID: uuid.New()},
		PatientID:  patientID,
		AdmittedOn: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		RoomNumber: "4",
		BedNumber:  "2",
	}
}

func TestWithTx_CommitsOnNil(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := newPatient()
	s.SeedPatients(p)

	err := s.WithTx(ctx, func(r repository.Repositories) error {
		return r.Admissions().Create(ctx, newAdmission(p.ID))
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Counts().Admissions)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := newPatient()
	s.SeedPatients(p)
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(r repository.Repositories) error {
		require.NoError(t, r.Admissions().Create(ctx, newAdmission(p.ID)))

		// visible inside the transaction
		list, err := r.Admissions().ListByPatient(ctx, p.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.Counts().Admissions)
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := newPatient()
	s.SeedPatients(p)

	assert.Panics(t, func() {
		_ = s.WithTx(ctx, func(r repository.Repositories) error {
			_ = r.Admissions().Create(ctx, newAdmission(p.ID))
			panic("write exploded")
		})
	})
	assert.Equal(t, 0, s.Counts().Admissions)

	// the writer lock was released
	require.NoError(t, s.WithTx(ctx, func(r repository.Repositories) error { return nil }))
}

func TestWithTx_CancelledContextDoesNotCommit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewStore()
	p := newPatient()
	s.SeedPatients(p)

	err := s.WithTx(ctx, func(r repository.Repositories) error {
		cancel()
		return r.Admissions().Create(ctx, newAdmission(p.ID))
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, s.Counts().Admissions)
}

func TestEmployees_EmailUniqueCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	first := &model.Employee{Base: model.Base{ID: uuid.New()}, Email: "Ada@Hospital.io"}
	require.NoError(t, s.Employees().Create(ctx, first))

	dup := &model.Employee{Base: model.Base{ID: uuid.New()}, Email: "ada@hospital.io"}
	assert.ErrorIs(t, s.Employees().Create(ctx, dup), repository.ErrDuplicate)

	exists, err := s.Employees().ExistsByEmail(ctx, "ADA@hospital.io")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEmployeeDetails_OnePerEmployee(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	employeeID := uuid.New()

	require.NoError(t, s.EmployeeDetails().Create(ctx, &model.EmployeeDetails{Base: model.Base{ID: uuid.New()}, EmployeeID: employeeID}))
	err := s.EmployeeDetails().Create(ctx, &model.EmployeeDetails{Base: model.Base{ID: uuid.New()}, EmployeeID: employeeID})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestAdmissions_DeleteReportsRemoval(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	rec := newAdmission(uuid.New())
	require.NoError(t, s.Admissions().Create(ctx, rec))

	removed, err := s.Admissions().Delete(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Admissions().Delete(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	rec := newAdmission(uuid.New())
	require.NoError(t, s.Admissions().Create(ctx, rec))

	got, err := s.Admissions().Get(ctx, rec.ID)
	require.NoError(t, err)
	got.RoomNumber = "changed"

	again, err := s.Admissions().Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "4", again.RoomNumber)
}

func TestOutbox_PendingAndStatus(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		require.NoError(t, s.Outbox().Create(ctx, &model.OutboxEvent{ID: id, EventType: model.EventAdmissionCreated, Status: model.OutboxStatusPending}))
	}

	pending, err := s.Outbox().GetPendingEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, ids[0], pending[0].ID)

	require.NoError(t, s.Outbox().UpdateStatus(ctx, ids[0], model.OutboxStatusProcessed, nil))
	msg := "redis down"
	require.NoError(t, s.Outbox().UpdateStatus(ctx, ids[1], model.OutboxStatusFailed, &msg))

	pending, err = s.Outbox().GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ids[2], pending[0].ID)

	assert.ErrorIs(t, s.Outbox().UpdateStatus(ctx, uuid.New(), model.OutboxStatusProcessed, nil), repository.ErrNotFound)
}

func TestAudit_DeleteBefore(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now().UTC()

	require.NoError(t, s.Audit().Create(ctx, &model.AuditLog{ID: uuid.New(), CreatedAt: now.AddDate(0, 0, -100)}))
	require.NoError(t, s.Audit().Create(ctx, &model.AuditLog{ID: uuid.New(), CreatedAt: now}))

	removed, err := s.Audit().DeleteBefore(ctx, now.AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
	assert.Equal(t, 1, s.Counts().AuditLogs)
}

func TestClose(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())
	assert.Error(t, s.Ping(context.Background()))
	assert.Error(t, s.WithTx(context.Background(), func(repository.Repositories) error { return nil }))
}
