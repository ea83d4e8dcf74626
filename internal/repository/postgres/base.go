package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository"
)

const uniqueViolation = pq.ErrorCode("23505")

// Store is the Postgres-backed repository.Store.
type Store struct {
	db *sqlx.DB
	repos
}

var _ repository.Store = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, repos: repos{db: db}}
}

// DB returns the database instance
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// WithTx executes fn within a transaction. fn's repositories share the
// transaction; it commits only when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(repository.Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(repos{db: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to roll back transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapError(err, "commit transaction")
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// repos binds the repositories to a connection pool or a transaction.
type repos struct {
	db sqlx.ExtContext
}

func (r repos) Patients() repository.PatientRepository     { return &patientRepository{db: r.db} }
func (r repos) Admissions() repository.AdmissionRepository { return &admissionRepository{db: r.db} }
func (r repos) Employees() repository.EmployeeRepository   { return &employeeRepository{db: r.db} }
func (r repos) EmployeeDetails() repository.EmployeeDetailsRepository {
	return &employeeDetailsRepository{db: r.db}
}
func (r repos) Prescriptions() repository.PrescriptionRepository {
	return &prescriptionRepository{db: r.db}
}
func (r repos) Timelines() repository.TimelineRepository { return &timelineRepository{db: r.db} }
func (r repos) Audit() repository.AuditRepository        { return &auditRepository{db: r.db} }
func (r repos) Outbox() repository.OutboxRepository      { return &outboxRepository{db: r.db} }

// mapError translates driver errors into repository sentinels.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, repository.ErrDuplicate)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func execAffected(ctx context.Context, db sqlx.ExecerContext, op, query string, args ...interface{}) (int64, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, op)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapError(err, op)
	}
	return n, nil
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, db sqlx.ExecerContext, op, query string, args ...interface{}) error {
	n, err := execAffected(ctx, db, op, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
