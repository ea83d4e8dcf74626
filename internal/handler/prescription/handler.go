package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/handler"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/service/prescription"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/httputil"
)

type Handler struct {
	svc prescription.PrescriptionServicer
}

func NewHandler(svc prescription.PrescriptionServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.POST("", h.CreatePrescription)
		prescriptions.PUT("/:prescriptionId", h.UpdatePrescription)
	}
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	var req model.CreatePrescriptionRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	p, err := h.svc.Create(c.Request.Context(), handler.Caller(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, "Prescription Created Successfully!", p)
}

func (h *Handler) UpdatePrescription(c *gin.Context) {
	var req model.UpdatePrescriptionRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	p, err := h.svc.Update(c.Request.Context(), handler.Caller(c), c.Param("prescriptionId"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, "Prescription Updated Successfully!", p)
}
