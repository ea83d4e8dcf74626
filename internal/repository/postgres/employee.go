package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
)

type employeeRepository struct {
	db sqlx.ExtContext
}

const employeeColumns = `id, email, password_hash, first_name, last_name, role, specialty,
	date_of_birth, gender, phone_number, address, created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, e *model.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Email,
		e.PasswordHash,
		e.FirstName,
		e.LastName,
		e.Role,
		e.Specialty,
		e.DateOfBirth,
		e.Gender,
		e.PhoneNumber,
		e.Address,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return mapError(err, "create employee")
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var e model.Employee
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE lower(email) = lower($1)`
	if err := sqlx.GetContext(ctx, r.db, &e, query, email); err != nil {
		return nil, mapError(err, "get employee")
	}
	return &e, nil
}

func (r *employeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM employees WHERE lower(email) = lower($1))`
	if err := sqlx.GetContext(ctx, r.db, &exists, query, email); err != nil {
		return false, mapError(err, "check employee email")
	}
	return exists, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]*model.Employee, error) {
	employees := make([]*model.Employee, 0)
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at ASC`
	if err := sqlx.SelectContext(ctx, r.db, &employees, query); err != nil {
		return nil, mapError(err, "list employees")
	}
	return employees, nil
}

type employeeDetailsRepository struct {
	db sqlx.ExtContext
}

const detailsColumns = `id, employee_id, first_name, last_name, date_of_birth, gender,
	phone_number, address, created_at, updated_at`

func (r *employeeDetailsRepository) Create(ctx context.Context, d *model.EmployeeDetails) error {
	query := `
		INSERT INTO employee_details (` + detailsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.EmployeeID,
		d.FirstName,
		d.LastName,
		d.DateOfBirth,
		d.Gender,
		d.PhoneNumber,
		d.Address,
		d.CreatedAt,
		d.UpdatedAt,
	)
	return mapError(err, "create employee details")
}

func (r *employeeDetailsRepository) Get(ctx context.Context, id uuid.UUID) (*model.EmployeeDetails, error) {
	var d model.EmployeeDetails
	query := `SELECT ` + detailsColumns + ` FROM employee_details WHERE id = $1 FOR UPDATE`
	if err := sqlx.GetContext(ctx, r.db, &d, query, id); err != nil {
		return nil, mapError(err, "get employee details")
	}
	return &d, nil
}

func (r *employeeDetailsRepository) GetByEmployee(ctx context.Context, employeeID uuid.UUID) (*model.EmployeeDetails, error) {
	var d model.EmployeeDetails
	query := `SELECT ` + detailsColumns + ` FROM employee_details WHERE employee_id = $1`
	if err := sqlx.GetContext(ctx, r.db, &d, query, employeeID); err != nil {
		return nil, mapError(err, "get employee details")
	}
	return &d, nil
}

func (r *employeeDetailsRepository) Update(ctx context.Context, d *model.EmployeeDetails) error {
	query := `
		UPDATE employee_details
		SET first_name = $1, last_name = $2, date_of_birth = $3, gender = $4,
			phone_number = $5, address = $6, updated_at = $7
		WHERE id = $8
	`
	return execOne(ctx, r.db, "update employee details", query,
		d.FirstName,
		d.LastName,
		d.DateOfBirth,
		d.Gender,
		d.PhoneNumber,
		d.Address,
		d.UpdatedAt,
		d.ID,
	)
}
