package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository"
)

// Fault points understood by FaultyStore.
const (
	FaultAdmissionCreate       = "admissions.create"
	FaultEmployeeDetailsCreate = "employee_details.create"
	FaultPrescriptionCreate    = "prescriptions.create"
	FaultTimelineCreate        = "timelines.create"
	FaultPatientDelete         = "patients.delete"
	FaultOutboxCreate          = "outbox.create"
)

// FaultyStore fails selected writes made inside transactions. The write
// happens first, so the failure always arrives mid-transaction.
type FaultyStore struct {
	*Store
	Faults map[string]error
}

func NewFaultyStore(s *Store, faults map[string]error) *FaultyStore {
	return &FaultyStore{Store: s, Faults: faults}
}

func (f *FaultyStore) WithTx(ctx context.Context, fn func(repository.Repositories) error) error {
	return f.Store.WithTx(ctx, func(r repository.Repositories) error {
		return fn(faultyRepos{Repositories: r, faults: f.Faults})
	})
}

type faultyRepos struct {
	repository.Repositories
	faults map[string]error
}

func (r faultyRepos) Patients() repository.PatientRepository {
	return faultyPatients{r.Repositories.Patients(), r.faults[FaultPatientDelete]}
}

func (r faultyRepos) Admissions() repository.AdmissionRepository {
	return faultyAdmissions{r.Repositories.Admissions(), r.faults[FaultAdmissionCreate]}
}

func (r faultyRepos) EmployeeDetails() repository.EmployeeDetailsRepository {
	return faultyDetails{r.Repositories.EmployeeDetails(), r.faults[FaultEmployeeDetailsCreate]}
}

func (r faultyRepos) Prescriptions() repository.PrescriptionRepository {
	return faultyPrescriptions{r.Repositories.Prescriptions(), r.faults[FaultPrescriptionCreate]}
}

func (r faultyRepos) Timelines() repository.TimelineRepository {
	return faultyTimelines{r.Repositories.Timelines(), r.faults[FaultTimelineCreate]}
}

func (r faultyRepos) Outbox() repository.OutboxRepository {
	return faultyOutbox{r.Repositories.Outbox(), r.faults[FaultOutboxCreate]}
}

type faultyPatients struct {
	repository.PatientRepository
	err error
}

func (p faultyPatients) Delete(ctx context.Context, id uuid.UUID) error {
	if err := p.PatientRepository.Delete(ctx, id); err != nil {
		return err
	}
	return p.err
}

type faultyAdmissions struct {
	repository.AdmissionRepository
	err error
}

func (a faultyAdmissions) Create(ctx context.Context, rec *model.AdmissionRecord) error {
	if err := a.AdmissionRepository.Create(ctx, rec); err != nil {
		return err
	}
	return a.err
}

type faultyDetails struct {
	repository.EmployeeDetailsRepository
	err error
}

func (d faultyDetails) Create(ctx context.Context, details *model.EmployeeDetails) error {
	if err := d.EmployeeDetailsRepository.Create(ctx, details); err != nil {
		return err
	}
	return d.err
}

type faultyPrescriptions struct {
	repository.PrescriptionRepository
	err error
}

func (p faultyPrescriptions) Create(ctx context.Context, rx *model.Prescription) error {
	if err := p.PrescriptionRepository.Create(ctx, rx); err != nil {
		return err
	}
	return p.err
}

type faultyTimelines struct {
	repository.TimelineRepository
	err error
}

func (t faultyTimelines) Create(ctx context.Context, e *model.TimelineEntry) error {
	if err := t.TimelineRepository.Create(ctx, e); err != nil {
		return err
	}
	return t.err
}

type faultyOutbox struct {
	repository.OutboxRepository
	err error
}

func (o faultyOutbox) Create(ctx context.Context, e *model.OutboxEvent) error {
	if err := o.OutboxRepository.Create(ctx, e); err != nil {
		return err
	}
	return o.err
}
