package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/handler"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	apperrors "github.com/Maxfurry/Hospital-Managment-Software/pkg/errors"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/httputil"
)

// Authenticator resolves a bearer token into claims.
type Authenticator interface {
	Authenticate(token string) (*model.Claims, error)
}

type AuthMiddleware struct {
	authService Authenticator
}

func NewAuthMiddleware(authService Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate verifies the bearer token and stores the caller's claims in
// the context. Role checks happen in the service layer.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			deny(c, apperrors.Unauthenticated("Authentication required", nil))
			return
		}

		claims, err := m.authService.Authenticate(token)
		if err != nil {
			deny(c, err)
			return
		}

		handler.SetCaller(c, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func deny(c *gin.Context, err error) {
	log.Warn().Err(err).
		Str("denial", "authentication").
		Str("path", c.FullPath()).
		Str("request_id", c.GetString(ContextRequestID)).
		Msg("request denied")
	httputil.RespondWithError(c, err)
}
