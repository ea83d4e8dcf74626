package audit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/handler"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/service/audit"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/httputil"
)

type Handler struct {
	service audit.AuditServicer
}

func NewHandler(service audit.AuditServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit/logs/entity/:type/:id", h.GetEntityLogs)
}

func (h *Handler) GetEntityLogs(c *gin.Context) {
	logs, err := h.service.ListByEntity(c.Request.Context(), handler.Caller(c), c.Param("type"), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, "Fetched audit logs successfully", logs)
}
