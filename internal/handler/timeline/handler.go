package timeline

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/handler"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/service/timeline"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/httputil"
)

type Handler struct {
	svc timeline.TimelineServicer
}

func NewHandler(svc timeline.TimelineServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/timelines", h.CreateEntry)
}

func (h *Handler) CreateEntry(c *gin.Context) {
	var req model.CreateTimelineRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	entry, err := h.svc.Create(c.Request.Context(), handler.Caller(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, "Timeline Created Successfully!", entry)
}
