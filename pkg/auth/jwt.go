package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
)

// DefaultTokenTTL is the validity window of a session token.
const DefaultTokenTTL = 30 * 24 * time.Hour

var (
	ErrMissingSecret    = errors.New("jwt secret is required")
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrTokenExpired     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrUnknownRole      = errors.New("token carries an unknown role")
)

// TokenIssuer signs identity claims.
type TokenIssuer interface {
	Issue(claims model.Claims) (string, error)
}

// TokenVerifier resolves a token back into identity claims.
type TokenVerifier interface {
	Verify(token string) (*model.Claims, error)
}

type tokenUser struct {
	Email     string `json:"email"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

type tokenClaims struct {
	jwt.RegisteredClaims
	User      tokenUser `json:"user"`
	Role      string    `json:"role"`
	Specialty string    `json:"specialty,omitempty"`
}

// TokenAuthority issues and verifies HS256 session tokens.
type TokenAuthority struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*TokenAuthority)

// WithClock replaces time.Now for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(a *TokenAuthority) {
		a.now = now
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(a *TokenAuthority) {
		if ttl > 0 {
			a.ttl = ttl
		}
	}
}

func NewTokenAuthority(secret string, opts ...Option) (*TokenAuthority, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	a := &TokenAuthority{
		secret: []byte(secret),
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *TokenAuthority) Issue(claims model.Claims) (string, error) {
	now := a.now()
	tc := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
		User: tokenUser{
			Email:     claims.Email,
			FirstName: claims.FirstName,
			LastName:  claims.LastName,
		},
		Role:      claims.Role.String(),
		Specialty: claims.Specialty,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (a *TokenAuthority) Verify(token string) (*model.Claims, error) {
	tc := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, tc, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
	}

	role, err := model.ParseRole(tc.Role)
	if err != nil {
		return nil, ErrUnknownRole
	}

	return &model.Claims{
		Email:     tc.User.Email,
		FirstName: tc.User.FirstName,
		LastName:  tc.User.LastName,
		Role:      role,
		Specialty: tc.Specialty,
		IssuedAt:  numericTime(tc.IssuedAt),
		ExpiresAt: numericTime(tc.ExpiresAt),
	}, nil
}

func numericTime(d *jwt.NumericDate) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time.UTC()
	return &t
}
