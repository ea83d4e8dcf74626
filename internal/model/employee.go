package model

import (
	"time"

	"github.com/google/uuid"
)

// Employee represents a staff account that can log in
type Employee struct {
	Base
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FirstName    string     `json:"firstname" db:"first_name"`
	LastName     string     `json:"lastname" db:"last_name"`
	Role         Role       `json:"role" db:"role"`
	Specialty    *string    `json:"specialty,omitempty" db:"specialty"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Gender       string     `json:"gender" db:"gender"`
	PhoneNumber  string     `json:"phoneNumber" db:"phone_number"`
	Address      string     `json:"address" db:"address"`
}

// Claims builds the token identity for e.
func (e *Employee) Claims() Claims {
	c := Claims{
		Email:     e.Email,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Role:      e.Role,
	}
	if e.Specialty != nil {
		c.Specialty = *e.Specialty
	}
	return c
}

// EmployeeDetails holds the mutable profile of an employee
type EmployeeDetails struct {
	Base
	EmployeeID  uuid.UUID  `json:"employeeId" db:"employee_id"`
	FirstName   string     `json:"firstname" db:"first_name"`
	LastName    string     `json:"lastname" db:"last_name"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Gender      string     `json:"gender" db:"gender"`
	PhoneNumber string     `json:"phoneNumber" db:"phone_number"`
	Address     string     `json:"address" db:"address"`
}

type CreateEmployeeRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	FirstName   string  `json:"firstname" validate:"required"`
	LastName    string  `json:"lastname" validate:"required"`
	Role        string  `json:"role" validate:"required,role"`
	Specialty   *string `json:"specialty"`
	DateOfBirth *Date   `json:"dateOfBirth" validate:"required"`
	Gender      string  `json:"gender" validate:"required,oneof=male female other"`
	PhoneNumber string  `json:"phoneNumber" validate:"required,min=7,max=20"`
	Address     string  `json:"address" validate:"required"`
}

type UpdateEmployeeDetailsRequest struct {
	FirstName   *string `json:"firstname" validate:"omitempty,min=1"`
	LastName    *string `json:"lastname" validate:"omitempty,min=1"`
	DateOfBirth *Date   `json:"dateOfBirth"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=male female other"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,min=7,max=20"`
	Address     *string `json:"address" validate:"omitempty,min=1"`
}

// Apply patches d in place with the fields present in r.
func (r *UpdateEmployeeDetailsRequest) Apply(d *EmployeeDetails) {
	if r.FirstName != nil {
		d.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		d.LastName = *r.LastName
	}
	if r.DateOfBirth != nil {
		d.DateOfBirth = r.DateOfBirth.TimePtr()
	}
	if r.Gender != nil {
		d.Gender = *r.Gender
	}
	if r.PhoneNumber != nil {
		d.PhoneNumber = *r.PhoneNumber
	}
	if r.Address != nil {
		d.Address = *r.Address
	}
}

// Profile is the caller's own employee record. ProfileDetails is either an
// *EmployeeDetails or the NoData marker.
type Profile struct {
	Profile        *Employee   `json:"profile"`
	ProfileDetails interface{} `json:"profileDetails"`
}
