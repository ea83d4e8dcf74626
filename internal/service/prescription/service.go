package prescription

import (
	"context"

	"github.com/google/uuid"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/service/guard"
)

const msgPatientNotFound = "Patient not found"

var (
	opCreate = guard.Operation{
		Name:            "create_prescription",
		Role:            model.RoleAdmin,
		NotFoundMessage: msgPatientNotFound,
		FailureMessage:  "Could not create prescription",
	}
	opUpdate = guard.Operation{
		Name:            "update_prescription",
		Role:            model.RoleAdmin,
		NotFoundMessage: "Prescription not found",
		FailureMessage:  "Could not update prescription",
	}
)

type PrescriptionServicer interface {
	Create(ctx context.Context, caller *model.Claims, req *model.CreatePrescriptionRequest) (*model.Prescription, error)
	Update(ctx context.Context, caller *model.Claims, prescriptionID string, req *model.UpdatePrescriptionRequest) (*model.Prescription, error)
}

type Service struct {
	guard *guard.Guard
}

var _ PrescriptionServicer = (*Service)(nil)

func NewService(g *guard.Guard) *Service {
	return &Service{guard: g}
}

func (s *Service) Create(ctx context.Context, caller *model.Claims, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	patientID, _ := uuid.Parse(req.PatientID)

	return guard.Run(ctx, s.guard, guard.Request[*model.Prescription]{
		Op:           opCreate,
		Caller:       caller,
		Input:        req,
		Precondition: guard.MustExist(guard.PatientExists(patientID), msgPatientNotFound),
		Apply: func(ctx context.Context, r repository.Repositories) (*model.Prescription, []guard.Change, error) {
			now := s.guard.Now()
			p := &model.Prescription{
				Base:      model.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
				PatientID: patientID,
				DrugName:  req.DrugName,
				Dosage:    req.Dosage,
				DrugType:  req.DrugType,
				StartDate: req.StartDate.Time,
				Period:    req.Period,
				Note:      req.Note,
			}
			if err := r.Prescriptions().Create(ctx, p); err != nil {
				return nil, nil, err
			}

			return p, []guard.Change{{
				Action:     model.AuditActionCreate,
				EntityType: model.AuditEntityPrescription,
				EntityID:   p.ID,
				EventType:  model.EventPrescriptionCreated,
				Payload:    p,
			}}, nil
		},
	})
}

// Update patches a prescription. The patient reference is never changed, so
// only the prescription itself has to exist.
func (s *Service) Update(ctx context.Context, caller *model.Claims, prescriptionID string, req *model.UpdatePrescriptionRequest) (*model.Prescription, error) {
	id, err := guard.ParseID(prescriptionID, "prescriptionId")
	if err != nil {
		return nil, err
	}

	return guard.Run(ctx, s.guard, guard.Request[*model.Prescription]{
		Op:     opUpdate,
		Caller: caller,
		Input:  req,
		Apply: func(ctx context.Context, r repository.Repositories) (*model.Prescription, []guard.Change, error) {
			p, err := r.Prescriptions().Get(ctx, id)
			if err != nil {
				return nil, nil, err
			}

			req.Apply(p)
			p.UpdatedAt = s.guard.Now()
			if err := r.Prescriptions().Update(ctx, p); err != nil {
				return nil, nil, err
			}

			return p, []guard.Change{{
				Action:     model.AuditActionUpdate,
				EntityType: model.AuditEntityPrescription,
				EntityID:   p.ID,
				EventType:  model.EventPrescriptionUpdated,
				Payload:    req,
			}}, nil
		},
	})
}
