// Package handler holds helpers shared by the HTTP handlers in its
// subpackages.
package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	apperrors "github.com/Maxfurry/Hospital-Managment-Software/pkg/errors"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/httputil"
)

// ContextClaims is the gin context key holding the caller's *model.Claims.
const ContextClaims = "claims"

func SetCaller(c *gin.Context, claims *model.Claims) {
	c.Set(ContextClaims, claims)
}

// Caller returns the authenticated caller, or nil on public routes.
func Caller(c *gin.Context) *model.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*model.Claims)
	return claims
}

// BindJSON decodes the body into dst and writes the error envelope when it
// cannot. Field rules are checked later by the service layer.
func BindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	if errors.Is(err, io.EOF) {
		httputil.RespondWithError(c, apperrors.Validation("request body is required"))
		return false
	}
	httputil.RespondWithError(c, apperrors.Validation("request body is not valid JSON"))
	return false
}
