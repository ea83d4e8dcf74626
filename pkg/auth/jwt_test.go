package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
)

const testSecret = "test-secret-key"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func doctorClaims() model.Claims {
	return model.Claims{
		Email:     "house@hospital.io",
		FirstName: "Gregory",
		LastName:  "House",
		Role:      model.RoleDoctor,
		Specialty: "diagnostics",
	}
}

func TestNewTokenAuthority_RequiresSecret(t *testing.T) {
	_, err := NewTokenAuthority("")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestTokenAuthority_RoundTrip(t *testing.T) {
	issuedAt := time.Now().UTC().Truncate(time.Second)
	a, err := NewTokenAuthority(testSecret, WithClock(fixedClock(issuedAt)), WithTTL(time.Hour))
	require.NoError(t, err)

	token, err := a.Issue(doctorClaims())
	require.NoError(t, err)

	claims, err := a.Verify(token)
	require.NoError(t, err)

	expiresAt := issuedAt.Add(time.Hour)
	want := doctorClaims()
	want.IssuedAt = &issuedAt
	want.ExpiresAt = &expiresAt
	assert.Equal(t, want, *claims)
}

func TestTokenAuthority_Expired(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer, err := NewTokenAuthority(testSecret, WithClock(fixedClock(issuedAt)))
	require.NoError(t, err)

	token, err := issuer.Issue(doctorClaims())
	require.NoError(t, err)

	verifier, err := NewTokenAuthority(testSecret, WithClock(fixedClock(issuedAt.Add(DefaultTokenTTL+time.Minute))))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	stillValid, err := NewTokenAuthority(testSecret, WithClock(fixedClock(issuedAt.Add(DefaultTokenTTL-time.Minute))))
	require.NoError(t, err)
	_, err = stillValid.Verify(token)
	assert.NoError(t, err)
}

func TestTokenAuthority_TamperedSignature(t *testing.T) {
	a, err := NewTokenAuthority(testSecret)
	require.NoError(t, err)

	token, err := a.Issue(doctorClaims())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := strings.Join([]string{parts[0], parts[1], string(sig)}, ".")

	_, err = a.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenAuthority_OtherSecret(t *testing.T) {
	a, _ := NewTokenAuthority(testSecret)
	other, _ := NewTokenAuthority("another-secret")

	token, err := other.Issue(doctorClaims())
	require.NoError(t, err)

	_, err = a.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenAuthority_Malformed(t *testing.T) {
	a, _ := NewTokenAuthority(testSecret)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := a.Verify(token)
		assert.ErrorIs(t, err, ErrTokenMalformed, token)
	}
}

func TestTokenAuthority_RejectsOtherAlgorithms(t *testing.T) {
	a, _ := NewTokenAuthority(testSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user": map[string]string{"email": "x@y.z"},
		"role": "ADMIN",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = a.Verify(signed)
	assert.Error(t, err)
}

func TestTokenAuthority_UnknownRole(t *testing.T) {
	a, _ := NewTokenAuthority(testSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": map[string]string{"email": "x@y.z"},
		"role": "JANITOR",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = a.Verify(signed)
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestTokenAuthority_NormalizesRoleCase(t *testing.T) {
	a, _ := NewTokenAuthority(testSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": map[string]string{"email": "admin@hospital.io"},
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	claims, err := a.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestAuthorize(t *testing.T) {
	admin := &model.Claims{Email: "a@h.io", Role: model.RoleAdmin}
	nurse := &model.Claims{Email: "n@h.io", Role: model.RoleNurse}

	assert.NoError(t, Authorize(admin, model.RoleAdmin))
	assert.ErrorIs(t, Authorize(nurse, model.RoleAdmin), ErrRoleDenied)
	assert.ErrorIs(t, Authorize(nil, model.RoleAdmin), ErrNotAuthenticated)
	assert.ErrorIs(t, Authorize(&model.Claims{Role: model.RoleAdmin}, model.RoleAdmin), ErrNotAuthenticated)
}
