package model

import (
	"errors"
	"strings"
	"time"
)

// Role is the closed set of employee roles.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleStaff  Role = "STAFF"
	RoleDoctor Role = "DOCTOR"
	RoleNurse  Role = "NURSE"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole normalizes s and maps it onto a known Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleStaff, RoleDoctor, RoleNurse:
		return r, nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) String() string {
	return string(r)
}

// Claims is the identity carried by a session token.
type Claims struct {
	Email     string `json:"email"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Role      Role   `json:"role"`
	Specialty string `json:"specialty,omitempty"`
	// Set on verified tokens only; Issue computes its own.
	IssuedAt  *time.Time `json:"iat,omitempty"`
	ExpiresAt *time.Time `json:"exp,omitempty"`
}

// LoginRequest types
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User  *Employee `json:"user"`
	Token string    `json:"token"`
}
