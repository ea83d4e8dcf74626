package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/service/guard"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/auth"
	apperrors "github.com/Maxfurry/Hospital-Managment-Software/pkg/errors"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/metrics"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/security"
)

const (
	msgBadCredentials = "Incorrect email or password"
	msgLockedOut      = "Too many failed login attempts, try again later"
	msgInvalidToken   = "Invalid or expired token"
)

var opLogin = guard.Operation{
	Name:           "login",
	Public:         true,
	FailureMessage: "Could not log in",
}

// Tokens issues and verifies session tokens.
type Tokens interface {
	auth.TokenIssuer
	auth.TokenVerifier
}

type Service struct {
	guard    *guard.Guard
	tokens   Tokens
	hasher   security.PasswordHasher
	throttle *Throttle
	metrics  *metrics.Metrics
}

func NewService(g *guard.Guard, tokens Tokens, hasher security.PasswordHasher, throttle *Throttle, m *metrics.Metrics) *Service {
	return &Service{
		guard:    g,
		tokens:   tokens,
		hasher:   hasher,
		throttle: throttle,
		metrics:  m,
	}
}

// Login checks the employee's password and issues a session token.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	return guard.Read(ctx, s.guard, opLogin, nil, req, func(ctx context.Context, r repository.Repositories) (*model.LoginResponse, error) {
		if s.throttle.Locked(req.Email) {
			s.metrics.LoginAttempts.WithLabelValues("locked").Inc()
			log.Warn().Str("email", req.Email).Msg("login rejected, account locked out")
			return nil, apperrors.BadRequest(msgLockedOut, nil)
		}

		employee, err := r.Employees().GetByEmail(ctx, req.Email)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		hash := ""
		if employee != nil {
			hash = employee.PasswordHash
		}
		err = s.hasher.Compare(hash, req.Password)
		if err != nil && !errors.Is(err, security.ErrMismatch) {
			return nil, err
		}
		if err != nil || employee == nil {
			s.throttle.Fail(req.Email)
			s.metrics.LoginAttempts.WithLabelValues("rejected").Inc()
			return nil, apperrors.BadRequest(msgBadCredentials, nil)
		}

		token, err := s.tokens.Issue(employee.Claims())
		if err != nil {
			return nil, fmt.Errorf("issue token: %w", err)
		}

		s.throttle.Reset(req.Email)
		s.metrics.LoginAttempts.WithLabelValues("success").Inc()
		log.Info().Str("email", employee.Email).Str("role", employee.Role.String()).Msg("employee logged in")

		return &model.LoginResponse{User: employee, Token: token}, nil
	})
}

// Authenticate resolves a bearer token into the caller's claims.
func (s *Service) Authenticate(token string) (*model.Claims, error) {
	if token == "" {
		return nil, apperrors.Unauthenticated("Authentication required", auth.ErrNotAuthenticated)
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.Unauthenticated(msgInvalidToken, err)
	}
	return claims, nil
}
