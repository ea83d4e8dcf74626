package admission

import (
	"context"

	"github.com/google/uuid"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/service/guard"
)

const msgPatientNotFound = "Patient not found"

var (
	opAdmit = guard.Operation{
		Name:            "admit_patient",
		NotFoundMessage: msgPatientNotFound,
		FailureMessage:  "Could not admit patient",
	}
	opUpdate = guard.Operation{
		Name:            "update_admission",
		NotFoundMessage: "Admission record not found",
		FailureMessage:  "Could not update admission record",
	}
	opDelete = guard.Operation{
		Name:           "delete_admission",
		FailureMessage: "Could not delete admission record",
	}
	opList = guard.Operation{
		Name:           "list_admissions",
		FailureMessage: "Could not fetch admission records",
	}
)

type AdmissionServicer interface {
	Admit(ctx context.Context, caller *model.Claims, req *model.AdmitPatientRequest) (*model.AdmissionRecord, error)
	Update(ctx context.Context, caller *model.Claims, recordID string, req *model.UpdateAdmissionRequest) (*model.AdmissionRecord, error)
	Delete(ctx context.Context, caller *model.Claims, recordID string) error
	ListByPatient(ctx context.Context, caller *model.Claims, patientID string) ([]*model.AdmissionRecord, error)
}

type Service struct {
	guard *guard.Guard
}

var _ AdmissionServicer = (*Service)(nil)

func NewService(g *guard.Guard) *Service {
	return &Service{guard: g}
}

// Admit inserts an admission record for an existing patient.
func (s *Service) Admit(ctx context.Context, caller *model.Claims, req *model.AdmitPatientRequest) (*model.AdmissionRecord, error) {
	// validated as a UUID before Apply runs
	patientID, _ := uuid.Parse(req.PatientID)

	return guard.Run(ctx, s.guard, guard.Request[*model.AdmissionRecord]{
		Op:           opAdmit,
		Caller:       caller,
		Input:        req,
		Precondition: guard.MustExist(guard.PatientExists(patientID), msgPatientNotFound),
		Apply: func(ctx context.Context, r repository.Repositories) (*model.AdmissionRecord, []guard.Change, error) {
			now := s.guard.Now()
			record := &model.AdmissionRecord{
				Base:         model.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
				PatientID:    patientID,
				AdmittedOn:   req.AdmittedOn.Time,
				DischargedOn: req.DischargedOn.TimePtr(),
				RoomNumber:   req.RoomNumber,
				BedNumber:    req.BedNumber,
				IsDischarged: req.IsDischarged,
			}
			if err := r.Admissions().Create(ctx, record); err != nil {
				return nil, nil, err
			}

			return record, []guard.Change{{
				Action:     model.AuditActionCreate,
				EntityType: model.AuditEntityAdmission,
				EntityID:   record.ID,
				EventType:  model.EventAdmissionCreated,
				Payload:    record,
			}}, nil
		},
	})
}

func (s *Service) Update(ctx context.Context, caller *model.Claims, recordID string, req *model.UpdateAdmissionRequest) (*model.AdmissionRecord, error) {
	id, err := guard.ParseID(recordID, "recordId")
	if err != nil {
		return nil, err
	}

	return guard.Run(ctx, s.guard, guard.Request[*model.AdmissionRecord]{
		Op:     opUpdate,
		Caller: caller,
		Input:  req,
		Apply: func(ctx context.Context, r repository.Repositories) (*model.AdmissionRecord, []guard.Change, error) {
			record, err := r.Admissions().Get(ctx, id)
			if err != nil {
				return nil, nil, err
			}

			req.Apply(record)
			record.UpdatedAt = s.guard.Now()
			if err := r.Admissions().Update(ctx, record); err != nil {
				return nil, nil, err
			}

			return record, []guard.Change{{
				Action:     model.AuditActionUpdate,
				EntityType: model.AuditEntityAdmission,
				EntityID:   record.ID,
				EventType:  model.EventAdmissionUpdated,
				Payload:    req,
			}}, nil
		},
	})
}

// Delete removes the record when present. Deleting an unknown record
// succeeds and leaves no audit trail.
func (s *Service) Delete(ctx context.Context, caller *model.Claims, recordID string) error {
	id, err := guard.ParseID(recordID, "recordId")
	if err != nil {
		return err
	}

	_, err = guard.Run(ctx, s.guard, guard.Request[bool]{
		Op:     opDelete,
		Caller: caller,
		Apply: func(ctx context.Context, r repository.Repositories) (bool, []guard.Change, error) {
			removed, err := r.Admissions().Delete(ctx, id)
			if err != nil || !removed {
				return false, nil, err
			}

			return true, []guard.Change{{
				Action:     model.AuditActionDelete,
				EntityType: model.AuditEntityAdmission,
				EntityID:   id,
				EventType:  model.EventAdmissionDeleted,
				Payload:    map[string]string{"id": id.String()},
			}}, nil
		},
	})
	return err
}

// ListByPatient returns the patient's admission records, empty when there
// are none.
func (s *Service) ListByPatient(ctx context.Context, caller *model.Claims, patientID string) ([]*model.AdmissionRecord, error) {
	id, err := guard.ParseID(patientID, "patientId")
	if err != nil {
		return nil, err
	}

	return guard.Read(ctx, s.guard, opList, caller, nil, func(ctx context.Context, r repository.Repositories) ([]*model.AdmissionRecord, error) {
		return r.Admissions().ListByPatient(ctx, id)
	})
}
