package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository"
)

type patientRepo struct{ a access }

func (r patientRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	r.a.read(func(st *state) { _, ok = st.patients[id] })
	return ok, nil
}

func (r patientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	var (
		p  model.Patient
		ok bool
	)
	r.a.read(func(st *state) { p, ok = st.patients[id] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r patientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.patients[id]; !ok {
			return repository.ErrNotFound
		}
		delete(st.patients, id)
		return nil
	})
}

type admissionRepo struct{ a access }

func (r admissionRepo) Create(ctx context.Context, rec *model.AdmissionRecord) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.admissions[rec.ID]; ok {
			return repository.ErrDuplicate
		}
		st.admissions[rec.ID] = *rec
		return nil
	})
}

func (r admissionRepo) Get(ctx context.Context, id uuid.UUID) (*model.AdmissionRecord, error) {
	var (
		rec model.AdmissionRecord
		ok  bool
	)
	r.a.read(func(st *state) { rec, ok = st.admissions[id] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (r admissionRepo) Update(ctx context.Context, rec *model.AdmissionRecord) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.admissions[rec.ID]; !ok {
			return repository.ErrNotFound
		}
		st.admissions[rec.ID] = *rec
		return nil
	})
}

func (r admissionRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var removed bool
	err := r.a.write(func(st *state) error {
		_, removed = st.admissions[id]
		delete(st.admissions, id)
		return nil
	})
	return removed, err
}

func (r admissionRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AdmissionRecord, error) {
	records := make([]*model.AdmissionRecord, 0)
	r.a.read(func(st *state) {
		for _, rec := range st.admissions {
			if rec.PatientID == patientID {
				rec := rec
				records = append(records, &rec)
			}
		}
	})
	sort.Slice(records, func(i, j int) bool {
		return records[i].AdmittedOn.After(records[j].AdmittedOn)
	})
	return records, nil
}

func (r admissionRepo) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	return r.a.write(func(st *state) error {
		for id, rec := range st.admissions {
			if rec.PatientID == patientID {
				delete(st.admissions, id)
			}
		}
		return nil
	})
}

type employeeRepo struct{ a access }

func (r employeeRepo) Create(ctx context.Context, e *model.Employee) error {
	return r.a.write(func(st *state) error {
		for _, existing := range st.employees {
			if existing.ID == e.ID || strings.EqualFold(existing.Email, e.Email) {
				return repository.ErrDuplicate
			}
		}
		st.employees[e.ID] = *e
		return nil
	})
}

func (r employeeRepo) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var (
		found model.Employee
		ok    bool
	)
	r.a.read(func(st *state) {
		for _, e := range st.employees {
			if strings.EqualFold(e.Email, email) {
				found, ok = e, true
				return
			}
		}
	})
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &found, nil
}

func (r employeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == repository.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r employeeRepo) List(ctx context.Context) ([]*model.Employee, error) {
	employees := make([]*model.Employee, 0)
	r.a.read(func(st *state) {
		for _, e := range st.employees {
			e := e
			employees = append(employees, &e)
		}
	})
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].CreatedAt.Before(employees[j].CreatedAt)
	})
	return employees, nil
}

type detailsRepo struct{ a access }

func (r detailsRepo) Create(ctx context.Context, d *model.EmployeeDetails) error {
	return r.a.write(func(st *state) error {
		for _, existing := range st.details {
			if existing.ID == d.ID || existing.EmployeeID == d.EmployeeID {
				return repository.ErrDuplicate
			}
		}
		st.details[d.ID] = *d
		return nil
	})
}

func (r detailsRepo) Get(ctx context.Context, id uuid.UUID) (*model.EmployeeDetails, error) {
	var (
		d  model.EmployeeDetails
		ok bool
	)
	r.a.read(func(st *state) { d, ok = st.details[id] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (r detailsRepo) GetByEmployee(ctx context.Context, employeeID uuid.UUID) (*model.EmployeeDetails, error) {
	var (
		found model.EmployeeDetails
		ok    bool
	)
	r.a.read(func(st *state) {
		for _, d := range st.details {
			if d.EmployeeID == employeeID {
				found, ok = d, true
				return
			}
		}
	})
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &found, nil
}

func (r detailsRepo) Update(ctx context.Context, d *model.EmployeeDetails) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.details[d.ID]; !ok {
			return repository.ErrNotFound
		}
		st.details[d.ID] = *d
		return nil
	})
}

type prescriptionRepo struct{ a access }

func (r prescriptionRepo) Create(ctx context.Context, p *model.Prescription) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.prescriptions[p.ID]; ok {
			return repository.ErrDuplicate
		}
		st.prescriptions[p.ID] = *p
		return nil
	})
}

func (r prescriptionRepo) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	var (
		p  model.Prescription
		ok bool
	)
	r.a.read(func(st *state) { p, ok = st.prescriptions[id] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r prescriptionRepo) Update(ctx context.Context, p *model.Prescription) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.prescriptions[p.ID]; !ok {
			return repository.ErrNotFound
		}
		st.prescriptions[p.ID] = *p
		return nil
	})
}

func (r prescriptionRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Prescription, error) {
	list := make([]*model.Prescription, 0)
	r.a.read(func(st *state) {
		for _, p := range st.prescriptions {
			if p.PatientID == patientID {
				p := p
				list = append(list, &p)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool {
		return list[i].StartDate.After(list[j].StartDate)
	})
	return list, nil
}

func (r prescriptionRepo) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	return r.a.write(func(st *state) error {
		for id, p := range st.prescriptions {
			if p.PatientID == patientID {
				delete(st.prescriptions, id)
			}
		}
		return nil
	})
}

type timelineRepo struct{ a access }

func (r timelineRepo) Create(ctx context.Context, e *model.TimelineEntry) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.timelines[e.ID]; ok {
			return repository.ErrDuplicate
		}
		st.timelines[e.ID] = *e
		return nil
	})
}

func (r timelineRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.TimelineEntry, error) {
	list := make([]*model.TimelineEntry, 0)
	r.a.read(func(st *state) {
		for _, e := range st.timelines {
			if e.PatientID == patientID {
				e := e
				list = append(list, &e)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool {
		return list[i].OccurredOn.After(list[j].OccurredOn)
	})
	return list, nil
}

func (r timelineRepo) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	return r.a.write(func(st *state) error {
		for id, e := range st.timelines {
			if e.PatientID == patientID {
				delete(st.timelines, id)
			}
		}
		return nil
	})
}

type auditRepo struct{ a access }

func (r auditRepo) Create(ctx context.Context, log *model.AuditLog) error {
	return r.a.write(func(st *state) error {
		st.audit = append(st.audit, *log)
		return nil
	})
}

func (r auditRepo) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*model.AuditLog, error) {
	logs := make([]*model.AuditLog, 0)
	r.a.read(func(st *state) {
		for _, l := range st.audit {
			if l.EntityType == entityType && l.EntityID == entityID {
				l := l
				logs = append(logs, &l)
			}
		}
	})
	return logs, nil
}

func (r auditRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	err := r.a.write(func(st *state) error {
		kept := st.audit[:0]
		for _, l := range st.audit {
			if l.CreatedAt.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, l)
		}
		st.audit = kept
		return nil
	})
	return removed, err
}

type outboxRepo struct{ a access }

func (r outboxRepo) Create(ctx context.Context, event *model.OutboxEvent) error {
	return r.a.write(func(st *state) error {
		st.outbox = append(st.outbox, *event)
		return nil
	})
}

func (r outboxRepo) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	events := make([]*model.OutboxEvent, 0, limit)
	r.a.read(func(st *state) {
		for _, e := range st.outbox {
			if len(events) == limit {
				return
			}
			if e.Status == model.OutboxStatusPending {
				e := e
				events = append(events, &e)
			}
		}
	})
	return events, nil
}

func (r outboxRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error {
	return r.a.write(func(st *state) error {
		for i := range st.outbox {
			if st.outbox[i].ID != id {
				continue
			}
			now := time.Now().UTC()
			e := &st.outbox[i]
			e.Status = status
			e.ErrorMessage = errMsg
			e.UpdatedAt = now
			switch status {
			case model.OutboxStatusProcessed:
				e.ProcessedAt = &now
			case model.OutboxStatusFailed:
				e.RetryCount++
			}
			return nil
		}
		return repository.ErrNotFound
	})
}
