package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen is the shortest password accepted for a new employee.
const MinPasswordLen = 8

var (
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	ErrHashingFailed    = errors.New("password hashing failed")
	ErrMismatch         = errors.New("password does not match")
)

// PasswordHasher produces and checks one-way password verifiers.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}

type bcryptHasher struct {
	cost int
	// compared against when the account is unknown so both paths cost the same
	decoy []byte
}

// NewBcryptHasher creates a new password hasher using bcrypt. Out-of-range
// costs fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	decoy, _ := bcrypt.GenerateFromPassword([]byte("decoy-password"), cost)
	return &bcryptHasher{cost: cost, decoy: decoy}
}

func (b *bcryptHasher) Hash(password string) (string, error) {
	if len(password) < MinPasswordLen {
		return "", ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashingFailed, err)
	}
	return string(hashed), nil
}

// Compare returns ErrMismatch for a wrong password. An empty hash is checked
// against a decoy so callers can run it for unknown accounts.
func (b *bcryptHasher) Compare(hashedPassword, password string) error {
	target := []byte(hashedPassword)
	if hashedPassword == "" {
		target = b.decoy
	}

	err := bcrypt.CompareHashAndPassword(target, []byte(password))
	switch {
	case err == nil && hashedPassword != "":
		return nil
	case err == nil, errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("compare password: %w", err)
	}
}
