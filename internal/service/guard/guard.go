// Package guard runs every state-changing operation through one pipeline:
// validate the input, authorize the caller, then check preconditions and
// apply the writes inside a single transaction. Each committed write also
// records an audit row and an outbox event in the same transaction.
package guard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/auth"
	apperrors "github.com/Maxfurry/Hospital-Managment-Software/pkg/errors"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/metrics"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/validator"
)

// SystemActor is recorded in the audit log for writes with no caller.
const SystemActor = "system"

const (
	msgAuthRequired = "Authentication required"
	msgAdminOnly    = "Route restricted to admin only"
	msgRoleDenied   = "Route restricted to %s only"
)

// Operation describes one guarded operation.
type Operation struct {
	Name string
	// Role restricts the operation; empty allows any authenticated caller.
	Role model.Role
	// Public operations run without a caller.
	Public bool

	NotFoundMessage string
	ConflictMessage string
	FailureMessage  string
}

// Change is reported by a write for the audit log and the outbox.
type Change struct {
	Action     string
	EntityType string
	EntityID   uuid.UUID
	// EventType is left empty when no event should be published.
	EventType string
	Payload   interface{}
}

// Precondition runs inside the transaction before any write.
type Precondition func(ctx context.Context, r repository.Repositories) error

// Existence reports whether a referenced entity is present.
type Existence func(ctx context.Context, r repository.Repositories) (bool, error)

// Apply performs the writes of an operation.
type Apply[T any] func(ctx context.Context, r repository.Repositories) (T, []Change, error)

// Request bundles one guarded write.
type Request[T any] struct {
	Op     Operation
	Caller *model.Claims
	Input  interface{}
	// Prepare runs after the checks and before the transaction opens, for
	// slow work such as password hashing.
	Prepare      func(ctx context.Context) error
	Precondition Precondition
	Apply        Apply[T]
}

type Guard struct {
	store     repository.Store
	validator validator.Validator
	metrics   *metrics.Metrics
	now       func() time.Time
}

func New(store repository.Store, v validator.Validator, m *metrics.Metrics) *Guard {
	return &Guard{
		store:     store,
		validator: v,
		metrics:   m,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Now is the clock used for entity timestamps.
func (g *Guard) Now() time.Time {
	return g.now()
}

// Store exposes the underlying store for reads that need no guard.
func (g *Guard) Store() repository.Store {
	return g.store
}

// MustExist fails with NotFound when exists reports false.
func MustExist(exists Existence, message string) Precondition {
	return func(ctx context.Context, r repository.Repositories) error {
		ok, err := exists(ctx, r)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NotFound(message)
		}
		return nil
	}
}

// MustNotExist fails with Conflict when exists reports true.
func MustNotExist(exists Existence, message string) Precondition {
	return func(ctx context.Context, r repository.Repositories) error {
		ok, err := exists(ctx, r)
		if err != nil {
			return err
		}
		if ok {
			return apperrors.Conflict(message, nil)
		}
		return nil
	}
}

// All runs preconditions in order and stops at the first failure.
func All(preconditions ...Precondition) Precondition {
	return func(ctx context.Context, r repository.Repositories) error {
		for _, p := range preconditions {
			if err := p(ctx, r); err != nil {
				return err
			}
		}
		return nil
	}
}

// PatientExists checks the patient row, locking it for the transaction.
func PatientExists(id uuid.UUID) Existence {
	return func(ctx context.Context, r repository.Repositories) (bool, error) {
		return r.Patients().Exists(ctx, id)
	}
}

// ParseID parses a path identifier, failing validation when it is not a UUID.
func ParseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || len(raw) != 36 {
		return uuid.Nil, apperrors.Validation(fmt.Sprintf("%s is required or Invalid", field))
	}
	return id, nil
}

// Run executes req through the full pipeline. A failure at any stage stops
// the later stages; a failure after the transaction opened rolls it back.
func Run[T any](ctx context.Context, g *Guard, req Request[T]) (T, error) {
	var zero T
	op := req.Op
	start := time.Now()
	timer := prometheus.NewTimer(g.metrics.OperationLatency.WithLabelValues(op.Name))
	defer timer.ObserveDuration()

	if err := g.check(op, req.Caller, req.Input); err != nil {
		g.record(op, err)
		return zero, err
	}
	if req.Prepare != nil {
		if err := req.Prepare(ctx); err != nil {
			err = classify(op, err)
			g.record(op, err)
			return zero, err
		}
	}

	var result T
	err := g.store.WithTx(ctx, func(r repository.Repositories) error {
		if req.Precondition != nil {
			if err := req.Precondition(ctx, r); err != nil {
				return err
			}
		}

		out, changes, err := req.Apply(ctx, r)
		if err != nil {
			return err
		}
		if err := g.journal(ctx, r, req.Caller, changes); err != nil {
			return err
		}
		result = out
		return nil
	})
	if err != nil {
		g.metrics.Rollbacks.WithLabelValues(op.Name).Inc()
		err = classify(op, err)
		g.record(op, err)
		if apperrors.KindOf(err) == apperrors.KindInternal {
			log.Error().Err(err).
				Str("operation", op.Name).
				Dur("elapsed", time.Since(start)).
				Msg("guarded write rolled back")
		}
		return zero, err
	}

	g.record(op, nil)
	return result, nil
}

// Read validates and authorizes like Run, then calls fn against the store
// without opening a transaction.
func Read[T any](ctx context.Context, g *Guard, op Operation, caller *model.Claims, input interface{}, fn func(ctx context.Context, r repository.Repositories) (T, error)) (T, error) {
	var zero T
	if err := g.check(op, caller, input); err != nil {
		g.record(op, err)
		return zero, err
	}

	out, err := fn(ctx, g.store)
	if err != nil {
		err = classify(op, err)
		g.record(op, err)
		return zero, err
	}
	g.record(op, nil)
	return out, nil
}

// check is the side-effect free part of the pipeline: validation first,
// then the caller's identity and role.
func (g *Guard) check(op Operation, caller *model.Claims, input interface{}) error {
	if input != nil {
		if err := g.validator.Validate(input); err != nil {
			return err
		}
	}
	if op.Public {
		return nil
	}

	required := op.Role
	if required == "" {
		if caller == nil || caller.Email == "" {
			return g.deny(op, caller, auth.ErrNotAuthenticated)
		}
		return nil
	}
	if err := auth.Authorize(caller, required); err != nil {
		return g.deny(op, caller, err)
	}
	return nil
}

func (g *Guard) deny(op Operation, caller *model.Claims, err error) error {
	event := log.Warn().Str("operation", op.Name)
	if caller != nil {
		event = event.Str("actor", caller.Email).Str("role", caller.Role.String())
	}

	if errors.Is(err, auth.ErrRoleDenied) {
		event.Str("denial", "authorization").Str("required_role", op.Role.String()).Msg("request denied")
		message := msgAdminOnly
		if op.Role != model.RoleAdmin {
			message = fmt.Sprintf(msgRoleDenied, op.Role)
		}
		return apperrors.Forbidden(message, err)
	}

	event.Str("denial", "authentication").Msg("request denied")
	return apperrors.Unauthenticated(msgAuthRequired, err)
}

// journal writes the audit rows and outbox events for changes.
func (g *Guard) journal(ctx context.Context, r repository.Repositories, caller *model.Claims, changes []Change) error {
	actor := SystemActor
	if caller != nil && caller.Email != "" {
		actor = caller.Email
	}
	now := g.now()

	for _, c := range changes {
		payload, err := json.Marshal(c.Payload)
		if err != nil {
			return fmt.Errorf("marshal %s change: %w", c.EntityType, err)
		}

		if err := r.Audit().Create(ctx, &model.AuditLog{
			ID:         uuid.New(),
			ActorEmail: actor,
			Action:     c.Action,
			EntityType: c.EntityType,
			EntityID:   c.EntityID,
			Changes:    payload,
			CreatedAt:  now,
		}); err != nil {
			return err
		}

		if c.EventType == "" {
			continue
		}
		if err := r.Outbox().Create(ctx, &model.OutboxEvent{
			ID:        uuid.New(),
			EventType: c.EventType,
			Payload:   payload,
			Status:    model.OutboxStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}
	}
	return nil
}

// classify maps store errors onto the caller-facing taxonomy. AppErrors
// raised by preconditions pass through untouched.
func classify(op Operation, err error) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}

	switch {
	case errors.Is(err, repository.ErrDuplicate):
		msg := op.ConflictMessage
		if msg == "" {
			msg = "Record already exists"
		}
		return apperrors.Conflict(msg, err)
	case errors.Is(err, repository.ErrNotFound):
		msg := op.NotFoundMessage
		if msg == "" {
			msg = "Record not found"
		}
		return apperrors.NotFound(msg)
	default:
		msg := op.FailureMessage
		if msg == "" {
			msg = "Internal server error"
		}
		return apperrors.Internal(msg, err)
	}
}

func (g *Guard) record(op Operation, err error) {
	outcome := "success"
	if err != nil {
		outcome = apperrors.KindOf(err).String()
	}
	g.metrics.Operations.WithLabelValues(op.Name, outcome).Inc()
}
