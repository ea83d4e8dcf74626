package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_StatusCode(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"validation", Validation("roomNumber is required"), http.StatusBadRequest},
		{"conflict", Conflict("Email already exist", nil), http.StatusBadRequest},
		{"bad credentials", BadRequest("Incorrect email or password", nil), http.StatusBadRequest},
		{"authentication", Unauthenticated("invalid token", nil), http.StatusForbidden},
		{"authorization", Forbidden("Route restricted to admin only", nil), http.StatusForbidden},
		{"not found", NotFound("Patient not found"), http.StatusNotFound},
		{"internal", Internal("Could not admit patient", errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode())
		})
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("admit: %w", NotFound("Patient not found"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "Patient not found", appErr.Message)
}

func TestAppError_ErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("Could not create employee", cause)

	assert.Equal(t, "Could not create employee: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
}
