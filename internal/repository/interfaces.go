package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// All repository interfaces in one file
type (
	PatientRepository interface {
		Exists(ctx context.Context, id uuid.UUID) (bool, error)
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Delete(ctx context.Context, id uuid.UUID) error
	}

	AdmissionRepository interface {
		Create(ctx context.Context, record *model.AdmissionRecord) error
		Get(ctx context.Context, id uuid.UUID) (*model.AdmissionRecord, error)
		Update(ctx context.Context, record *model.AdmissionRecord) error
		// Delete reports whether a row was removed.
		Delete(ctx context.Context, id uuid.UUID) (bool, error)
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AdmissionRecord, error)
		DeleteByPatient(ctx context.Context, patientID uuid.UUID) error
	}

	EmployeeRepository interface {
		Create(ctx context.Context, employee *model.Employee) error
		GetByEmail(ctx context.Context, email string) (*model.Employee, error)
		ExistsByEmail(ctx context.Context, email string) (bool, error)
		List(ctx context.Context) ([]*model.Employee, error)
	}

	EmployeeDetailsRepository interface {
		Create(ctx context.Context, details *model.EmployeeDetails) error
		Get(ctx context.Context, id uuid.UUID) (*model.EmployeeDetails, error)
		GetByEmployee(ctx context.Context, employeeID uuid.UUID) (*model.EmployeeDetails, error)
		Update(ctx context.Context, details *model.EmployeeDetails) error
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, prescription *model.Prescription) error
		Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
		Update(ctx context.Context, prescription *model.Prescription) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Prescription, error)
		DeleteByPatient(ctx context.Context, patientID uuid.UUID) error
	}

	TimelineRepository interface {
		Create(ctx context.Context, entry *model.TimelineEntry) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.TimelineEntry, error)
		DeleteByPatient(ctx context.Context, patientID uuid.UUID) error
	}

	AuditRepository interface {
		Create(ctx context.Context, log *model.AuditLog) error
		ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*model.AuditLog, error)
		DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		// GetPendingEvents locks the returned rows for the life of the
		// enclosing transaction; concurrent workers skip them.
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
	}

	// Repositories groups the repositories bound to one connection or
	// transaction.
	Repositories interface {
		Patients() PatientRepository
		Admissions() AdmissionRepository
		Employees() EmployeeRepository
		EmployeeDetails() EmployeeDetailsRepository
		Prescriptions() PrescriptionRepository
		Timelines() TimelineRepository
		Audit() AuditRepository
		Outbox() OutboxRepository
	}

	// Store is the transactional record store. WithTx commits only when fn
	// returns nil; an error or panic rolls every write in fn back.
	Store interface {
		Repositories
		WithTx(ctx context.Context, fn func(Repositories) error) error
		Ping(ctx context.Context) error
		Close() error
	}
)
