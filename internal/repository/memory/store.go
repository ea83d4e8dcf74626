// Package memory is an in-process implementation of repository.Store. A
// transaction works on a private copy of the data and publishes it on commit,
// so a failed transaction leaves nothing behind.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository"
)

type state struct {
	patients      map[uuid.UUID]model.Patient
	admissions    map[uuid.UUID]model.AdmissionRecord
	employees     map[uuid.UUID]model.Employee
	details       map[uuid.UUID]model.EmployeeDetails
	prescriptions map[uuid.UUID]model.Prescription
	timelines     map[uuid.UUID]model.TimelineEntry
	audit         []model.AuditLog
	outbox        []model.OutboxEvent
}

func newState() *state {
	return &state{
		patients:      make(map[uuid.UUID]model.Patient),
		admissions:    make(map[uuid.UUID]model.AdmissionRecord),
		employees:     make(map[uuid.UUID]model.Employee),
		details:       make(map[uuid.UUID]model.EmployeeDetails),
		prescriptions: make(map[uuid.UUID]model.Prescription),
		timelines:     make(map[uuid.UUID]model.TimelineEntry),
	}
}

func (s *state) clone() *state {
	c := &state{
		patients:      make(map[uuid.UUID]model.Patient, len(s.patients)),
		admissions:    make(map[uuid.UUID]model.AdmissionRecord, len(s.admissions)),
		employees:     make(map[uuid.UUID]model.Employee, len(s.employees)),
		details:       make(map[uuid.UUID]model.EmployeeDetails, len(s.details)),
		prescriptions: make(map[uuid.UUID]model.Prescription, len(s.prescriptions)),
		timelines:     make(map[uuid.UUID]model.TimelineEntry, len(s.timelines)),
		audit:         append([]model.AuditLog(nil), s.audit...),
		outbox:        append([]model.OutboxEvent(nil), s.outbox...),
	}
	for k, v := range s.patients {
		c.patients[k] = v
	}
	for k, v := range s.admissions {
		c.admissions[k] = v
	}
	for k, v := range s.employees {
		c.employees[k] = v
	}
	for k, v := range s.details {
		c.details[k] = v
	}
	for k, v := range s.prescriptions {
		c.prescriptions[k] = v
	}
	for k, v := range s.timelines {
		c.timelines[k] = v
	}
	return c
}

// access runs repository callbacks against some state. The committed store
// and an open transaction provide different implementations.
type access interface {
	read(fn func(*state))
	write(fn func(*state) error) error
}

// Store is a repository.Store held in memory.
type Store struct {
	writer sync.Mutex // held by the single active writer
	mu     sync.RWMutex
	data   *state
	closed bool
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{data: newState()}
}

func (s *Store) read(fn func(*state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// write applies a single-statement change outside a transaction.
func (s *Store) write(fn func(*state) error) error {
	s.writer.Lock()
	defer s.writer.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (s *Store) WithTx(ctx context.Context, fn func(repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.writer.Lock()
	defer s.writer.Unlock()

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return fmt.Errorf("memory store is closed")
	}
	tx := &txAccess{snapshot: s.data.clone()}
	s.mu.RUnlock()

	// A panic in fn unwinds past the commit below, dropping the snapshot.
	if err := fn(repos{tx}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit aborted: %w", err)
	}

	s.mu.Lock()
	s.data = tx.snapshot
	s.mu.Unlock()
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("memory store is closed")
	}
	return ctx.Err()
}

func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func (s *Store) Patients() repository.PatientRepository     { return patientRepo{s} }
func (s *Store) Admissions() repository.AdmissionRepository { return admissionRepo{s} }
func (s *Store) Employees() repository.EmployeeRepository   { return employeeRepo{s} }
func (s *Store) EmployeeDetails() repository.EmployeeDetailsRepository {
	return detailsRepo{s}
}
func (s *Store) Prescriptions() repository.PrescriptionRepository { return prescriptionRepo{s} }
func (s *Store) Timelines() repository.TimelineRepository         { return timelineRepo{s} }
func (s *Store) Audit() repository.AuditRepository                { return auditRepo{s} }
func (s *Store) Outbox() repository.OutboxRepository              { return outboxRepo{s} }

// SeedPatients inserts patients directly. Patients are registered by another
// system, so the service itself never creates them.
func (s *Store) SeedPatients(patients ...*model.Patient) {
	_ = s.write(func(st *state) error {
		for _, p := range patients {
			st.patients[p.ID] = *p
		}
		return nil
	})
}

// Counts reports the number of committed rows per table.
type Counts struct {
	Patients        int
	Admissions      int
	Employees       int
	EmployeeDetails int
	Prescriptions   int
	Timelines       int
	AuditLogs       int
	OutboxEvents    int
}

func (s *Store) Counts() Counts {
	var c Counts
	s.read(func(st *state) {
		c = Counts{
			Patients:        len(st.patients),
			Admissions:      len(st.admissions),
			Employees:       len(st.employees),
			EmployeeDetails: len(st.details),
			Prescriptions:   len(st.prescriptions),
			Timelines:       len(st.timelines),
			AuditLogs:       len(st.audit),
			OutboxEvents:    len(st.outbox),
		}
	})
	return c
}

type txAccess struct {
	snapshot *state
}

func (t *txAccess) read(fn func(*state)) {
	fn(t.snapshot)
}

func (t *txAccess) write(fn func(*state) error) error {
	return fn(t.snapshot)
}

// repos binds every repository to one access path.
type repos struct {
	a access
}

func (r repos) Patients() repository.PatientRepository     { return patientRepo{r.a} }
func (r repos) Admissions() repository.AdmissionRepository { return admissionRepo{r.a} }
func (r repos) Employees() repository.EmployeeRepository   { return employeeRepo{r.a} }
func (r repos) EmployeeDetails() repository.EmployeeDetailsRepository {
	return detailsRepo{r.a}
}
func (r repos) Prescriptions() repository.PrescriptionRepository { return prescriptionRepo{r.a} }
func (r repos) Timelines() repository.TimelineRepository         { return timelineRepo{r.a} }
func (r repos) Audit() repository.AuditRepository                { return auditRepo{r.a} }
func (r repos) Outbox() repository.OutboxRepository              { return outboxRepo{r.a} }
