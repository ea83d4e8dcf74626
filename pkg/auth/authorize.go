package auth

import (
	"errors"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrRoleDenied       = errors.New("role not permitted")
)

// Authorize reports whether claims satisfy the required role. A missing
// identity is distinct from an identity with the wrong role.
func Authorize(claims *model.Claims, required model.Role) error {
	if claims == nil || claims.Email == "" {
		return ErrNotAuthenticated
	}
	if claims.Role != required {
		return ErrRoleDenied
	}
	return nil
}
