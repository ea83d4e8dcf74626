package timeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/service/guard"
)

const msgPatientNotFound = "Patient not found"

var opCreate = guard.Operation{
	Name:            "create_timeline",
	Role:            model.RoleAdmin,
	NotFoundMessage: msgPatientNotFound,
	FailureMessage:  "Could not create timeline entry",
}

type TimelineServicer interface {
	Create(ctx context.Context, caller *model.Claims, req *model.CreateTimelineRequest) (*model.TimelineEntry, error)
}

type Service struct {
	guard *guard.Guard
}

var _ TimelineServicer = (*Service)(nil)

func NewService(g *guard.Guard) *Service {
	return &Service{guard: g}
}

// Create adds an entry to a patient's timeline. OccurredOn defaults to now.
func (s *Service) Create(ctx context.Context, caller *model.Claims, req *model.CreateTimelineRequest) (*model.TimelineEntry, error) {
	patientID, _ := uuid.Parse(req.PatientID)

	return guard.Run(ctx, s.guard, guard.Request[*model.TimelineEntry]{
		Op:           opCreate,
		Caller:       caller,
		Input:        req,
		Precondition: guard.MustExist(guard.PatientExists(patientID), msgPatientNotFound),
		Apply: func(ctx context.Context, r repository.Repositories) (*model.TimelineEntry, []guard.Change, error) {
			now := s.guard.Now()
			entry := &model.TimelineEntry{
				Base:       model.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
				PatientID:  patientID,
				Title:      req.Title,
				Note:       req.Note,
				OccurredOn: now,
			}
			if req.OccurredOn != nil {
				entry.OccurredOn = req.OccurredOn.Time
			}
			if err := r.Timelines().Create(ctx, entry); err != nil {
				return nil, nil, err
			}

			return entry, []guard.Change{{
				Action:     model.AuditActionCreate,
				EntityType: model.AuditEntityTimeline,
				EntityID:   entry.ID,
				EventType:  model.EventTimelineCreated,
				Payload:    entry,
			}}, nil
		},
	})
}
