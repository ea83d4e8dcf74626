package model

import (
	"time"
)

// Patient is owned by the registration system; this service reads and
// deletes it only.
type Patient struct {
	Base
	FirstName   string     `db:"first_name" json:"firstname"`
	LastName    string     `db:"last_name" json:"lastname"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"dateOfBirth,omitempty"`
	Gender      string     `db:"gender" json:"gender"`
	PhoneNumber string     `db:"phone_number" json:"phoneNumber"`
	Address     string     `db:"address" json:"address"`
}
