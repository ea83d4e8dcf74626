package employee

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/service/guard"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/security"
)

const msgEmailTaken = "Email already exist"

var (
	opCreate = guard.Operation{
		Name:            "create_employee",
		Role:            model.RoleAdmin,
		ConflictMessage: msgEmailTaken,
		FailureMessage:  "Could not create employee",
	}
	opBootstrap = guard.Operation{
		Name:            "bootstrap_admin",
		Public:          true,
		ConflictMessage: msgEmailTaken,
		FailureMessage:  "Could not create admin",
	}
	opUpdateDetails = guard.Operation{
		Name:            "update_employee_details",
		NotFoundMessage: "Employee details not found",
		FailureMessage:  "Could not update employee details",
	}
	opList = guard.Operation{
		Name:           "list_employees",
		Role:           model.RoleAdmin,
		FailureMessage: "Could not fetch employees",
	}
	opProfile = guard.Operation{
		Name:            "get_profile",
		NotFoundMessage: "Employee not found",
		FailureMessage:  "Could not fetch profile",
	}
)

type EmployeeServicer interface {
	Create(ctx context.Context, caller *model.Claims, req *model.CreateEmployeeRequest) (*model.Employee, error)
	UpdateDetails(ctx context.Context, caller *model.Claims, detailsID string, req *model.UpdateEmployeeDetailsRequest) (*model.EmployeeDetails, error)
	List(ctx context.Context, caller *model.Claims) ([]*model.Employee, error)
	Profile(ctx context.Context, caller *model.Claims) (*model.Profile, error)
}

type Service struct {
	guard  *guard.Guard
	hasher security.PasswordHasher
}

var _ EmployeeServicer = (*Service)(nil)

func NewService(g *guard.Guard, hasher security.PasswordHasher) *Service {
	return &Service{guard: g, hasher: hasher}
}

// Create registers an employee and seeds its details row in one transaction.
func (s *Service) Create(ctx context.Context, caller *model.Claims, req *model.CreateEmployeeRequest) (*model.Employee, error) {
	return s.create(ctx, opCreate, caller, req)
}

// Bootstrap creates an ADMIN without a caller, for provisioning the first
// account of a fresh installation.
func (s *Service) Bootstrap(ctx context.Context, req *model.CreateEmployeeRequest) (*model.Employee, error) {
	req.Role = model.RoleAdmin.String()
	return s.create(ctx, opBootstrap, nil, req)
}

func (s *Service) create(ctx context.Context, op guard.Operation, caller *model.Claims, req *model.CreateEmployeeRequest) (*model.Employee, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	var hash string

	return guard.Run(ctx, s.guard, guard.Request[*model.Employee]{
		Op:     op,
		Caller: caller,
		Input:  req,
		Prepare: func(ctx context.Context) error {
			var err error
			hash, err = s.hasher.Hash(req.Password)
			return err
		},
		Precondition: guard.MustNotExist(func(ctx context.Context, r repository.Repositories) (bool, error) {
			return r.Employees().ExistsByEmail(ctx, email)
		}, msgEmailTaken),
		Apply: func(ctx context.Context, r repository.Repositories) (*model.Employee, []guard.Change, error) {
			role, err := model.ParseRole(req.Role)
			if err != nil {
				return nil, nil, err
			}

			now := s.guard.Now()
			employee := &model.Employee{
				Base:         model.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
				Email:        email,
				PasswordHash: hash,
				FirstName:    req.FirstName,
				LastName:     req.LastName,
				Role:         role,
				Specialty:    req.Specialty,
				DateOfBirth:  req.DateOfBirth.TimePtr(),
				Gender:       req.Gender,
				PhoneNumber:  req.PhoneNumber,
				Address:      req.Address,
			}
			if err := r.Employees().Create(ctx, employee); err != nil {
				return nil, nil, err
			}

			details := &model.EmployeeDetails{
				Base:        model.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
				EmployeeID:  employee.ID,
				FirstName:   employee.FirstName,
				LastName:    employee.LastName,
				DateOfBirth: employee.DateOfBirth,
				Gender:      employee.Gender,
				PhoneNumber: employee.PhoneNumber,
				Address:     employee.Address,
			}
			if err := r.EmployeeDetails().Create(ctx, details); err != nil {
				return nil, nil, err
			}

			return employee, []guard.Change{
				{
					Action:     model.AuditActionCreate,
					EntityType: model.AuditEntityEmployee,
					EntityID:   employee.ID,
					EventType:  model.EventEmployeeCreated,
					Payload:    employee,
				},
				{
					Action:     model.AuditActionCreate,
					EntityType: model.AuditEntityEmployeeDetails,
					EntityID:   details.ID,
					Payload:    details,
				},
			}, nil
		},
	})
}

func (s *Service) UpdateDetails(ctx context.Context, caller *model.Claims, detailsID string, req *model.UpdateEmployeeDetailsRequest) (*model.EmployeeDetails, error) {
	id, err := guard.ParseID(detailsID, "employeeDetailsId")
	if err != nil {
		return nil, err
	}

	return guard.Run(ctx, s.guard, guard.Request[*model.EmployeeDetails]{
		Op:     opUpdateDetails,
		Caller: caller,
		Input:  req,
		Apply: func(ctx context.Context, r repository.Repositories) (*model.EmployeeDetails, []guard.Change, error) {
			details, err := r.EmployeeDetails().Get(ctx, id)
			if err != nil {
				return nil, nil, err
			}

			req.Apply(details)
			details.UpdatedAt = s.guard.Now()
			if err := r.EmployeeDetails().Update(ctx, details); err != nil {
				return nil, nil, err
			}

			return details, []guard.Change{{
				Action:     model.AuditActionUpdate,
				EntityType: model.AuditEntityEmployeeDetails,
				EntityID:   details.ID,
				EventType:  model.EventEmployeeDetailsUpdated,
				Payload:    req,
			}}, nil
		},
	})
}

func (s *Service) List(ctx context.Context, caller *model.Claims) ([]*model.Employee, error) {
	return guard.Read(ctx, s.guard, opList, caller, nil, func(ctx context.Context, r repository.Repositories) ([]*model.Employee, error) {
		return r.Employees().List(ctx)
	})
}

// Profile returns the caller's own record. A missing details row yields
// the "no data" marker rather than an error.
func (s *Service) Profile(ctx context.Context, caller *model.Claims) (*model.Profile, error) {
	return guard.Read(ctx, s.guard, opProfile, caller, nil, func(ctx context.Context, r repository.Repositories) (*model.Profile, error) {
		employee, err := r.Employees().GetByEmail(ctx, caller.Email)
		if err != nil {
			return nil, err
		}

		profile := &model.Profile{Profile: employee, ProfileDetails: model.NoData}
		details, err := r.EmployeeDetails().GetByEmployee(ctx, employee.ID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
		case err != nil:
			return nil, err
		default:
			profile.ProfileDetails = details
		}
		return profile, nil
	})
}
