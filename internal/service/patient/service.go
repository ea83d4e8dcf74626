package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/service/guard"
)

const msgPatientNotFound = "Patient not found"

var (
	opGet = guard.Operation{
		Name:            "get_patient",
		NotFoundMessage: msgPatientNotFound,
		FailureMessage:  "Could not fetch patient",
	}
	opDelete = guard.Operation{
		Name:            "delete_patient",
		Role:            model.RoleAdmin,
		NotFoundMessage: msgPatientNotFound,
		FailureMessage:  "Could not delete patient",
	}
)

type PatientServicer interface {
	Get(ctx context.Context, caller *model.Claims, patientID string) (*model.Patient, error)
	Delete(ctx context.Context, caller *model.Claims, patientID string) error
}

type Service struct {
	guard *guard.Guard
}

var _ PatientServicer = (*Service)(nil)

func NewService(g *guard.Guard) *Service {
	return &Service{guard: g}
}

func (s *Service) Get(ctx context.Context, caller *model.Claims, patientID string) (*model.Patient, error) {
	id, err := guard.ParseID(patientID, "patientId")
	if err != nil {
		return nil, err
	}

	return guard.Read(ctx, s.guard, opGet, caller, nil, func(ctx context.Context, r repository.Repositories) (*model.Patient, error) {
		return r.Patients().Get(ctx, id)
	})
}

// Delete removes the patient together with its admission records,
// prescriptions and timeline entries.
func (s *Service) Delete(ctx context.Context, caller *model.Claims, patientID string) error {
	id, err := guard.ParseID(patientID, "patientId")
	if err != nil {
		return err
	}

	_, err = guard.Run(ctx, s.guard, guard.Request[uuid.UUID]{
		Op:           opDelete,
		Caller:       caller,
		Precondition: guard.MustExist(guard.PatientExists(id), msgPatientNotFound),
		Apply: func(ctx context.Context, r repository.Repositories) (uuid.UUID, []guard.Change, error) {
			if err := r.Admissions().DeleteByPatient(ctx, id); err != nil {
				return uuid.Nil, nil, err
			}
			if err := r.Prescriptions().DeleteByPatient(ctx, id); err != nil {
				return uuid.Nil, nil, err
			}
			if err := r.Timelines().DeleteByPatient(ctx, id); err != nil {
				return uuid.Nil, nil, err
			}
			if err := r.Patients().Delete(ctx, id); err != nil {
				return uuid.Nil, nil, err
			}

			return id, []guard.Change{{
				Action:     model.AuditActionDelete,
				EntityType: model.AuditEntityPatient,
				EntityID:   id,
				EventType:  model.EventPatientDeleted,
				Payload:    map[string]string{"id": id.String()},
			}}, nil
		},
	})
	return err
}
