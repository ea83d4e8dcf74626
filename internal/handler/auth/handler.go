package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/handler"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/httputil"
)

type Service interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public login route.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

// RegisterProtectedRoutes mounts routes that sit behind authentication.
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/auth/verify", h.Verify)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, "Log in Successful!", resp)
}

// Verify echoes the claims of a valid token.
func (h *Handler) Verify(c *gin.Context) {
	httputil.RespondWithSuccess(c, http.StatusOK, "valid", handler.Caller(c))
}
