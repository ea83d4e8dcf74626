package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// schema is applied in order; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS patients (
		id            UUID PRIMARY KEY,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		date_of_birth DATE,
		gender        TEXT NOT NULL DEFAULT '',
		phone_number  TEXT NOT NULL DEFAULT '',
		address       TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS employees (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('ADMIN', 'STAFF', 'DOCTOR', 'NURSE')),
		specialty     TEXT,
		date_of_birth DATE,
		gender        TEXT NOT NULL DEFAULT '',
		phone_number  TEXT NOT NULL DEFAULT '',
		address       TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS employees_email_lower_idx ON employees (lower(email))`,

	`CREATE TABLE IF NOT EXISTS employee_details (
		id            UUID PRIMARY KEY,
		employee_id   UUID NOT NULL UNIQUE REFERENCES employees (id) ON DELETE CASCADE,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		date_of_birth DATE,
		gender        TEXT NOT NULL DEFAULT '',
		phone_number  TEXT NOT NULL DEFAULT '',
		address       TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS admission_records (
		id            UUID PRIMARY KEY,
		patient_id    UUID NOT NULL REFERENCES patients (id),
		admitted_on   TIMESTAMPTZ NOT NULL,
		discharged_on TIMESTAMPTZ,
		room_number   TEXT NOT NULL CHECK (room_number <> ''),
		bed_number    TEXT NOT NULL CHECK (bed_number <> ''),
		is_discharged BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS admission_records_patient_idx ON admission_records (patient_id)`,

	`CREATE TABLE IF NOT EXISTS prescriptions (
		id         UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES patients (id),
		drug_name  TEXT NOT NULL,
		dosage     TEXT NOT NULL,
		drug_type  TEXT NOT NULL,
		start_date TIMESTAMPTZ NOT NULL,
		period     TEXT NOT NULL,
		note       TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS prescriptions_patient_idx ON prescriptions (patient_id)`,

	`CREATE TABLE IF NOT EXISTS timeline_entries (
		id          UUID PRIMARY KEY,
		patient_id  UUID NOT NULL REFERENCES patients (id),
		title       TEXT NOT NULL,
		note        TEXT NOT NULL,
		occurred_on TIMESTAMPTZ NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS timeline_entries_patient_idx ON timeline_entries (patient_id)`,

	`CREATE TABLE IF NOT EXISTS audit_logs (
		id          UUID PRIMARY KEY,
		actor_email TEXT NOT NULL,
		action      TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id   UUID NOT NULL,
		changes     JSONB,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS audit_logs_entity_idx ON audit_logs (entity_type, entity_id)`,
	`CREATE INDEX IF NOT EXISTS audit_logs_created_at_idx ON audit_logs (created_at)`,

	`CREATE TABLE IF NOT EXISTS outbox_events (
		id            UUID PRIMARY KEY,
		event_type    TEXT NOT NULL,
		payload       JSONB NOT NULL,
		status        TEXT NOT NULL DEFAULT 'pending',
		error_message TEXT,
		retry_count   INTEGER NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		processed_at  TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS outbox_events_pending_idx ON outbox_events (created_at) WHERE status = 'pending'`,
}

// Migrate creates the schema in a single transaction.
func (s *Store) Migrate(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	log.Info().Int("statements", len(schema)).Msg("database schema is up to date")
	return nil
}
