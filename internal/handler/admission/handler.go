package admission

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/handler"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/service/admission"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/httputil"
)

type Handler struct {
	svc admission.AdmissionServicer
}

func NewHandler(svc admission.AdmissionServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	admissions := r.Group("/admissions")
	{
		admissions.POST("", h.AdmitPatient)
		admissions.PUT("/:recordId", h.UpdateRecord)
		admissions.DELETE("/:recordId", h.DeleteRecord)
	}
	r.GET("/patients/:patientId/admissions", h.ListRecords)
}

func (h *Handler) AdmitPatient(c *gin.Context) {
	var req model.AdmitPatientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	record, err := h.svc.Admit(c.Request.Context(), handler.Caller(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, "Patient Admitted Successfully!", record)
}

func (h *Handler) UpdateRecord(c *gin.Context) {
	var req model.UpdateAdmissionRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	record, err := h.svc.Update(c.Request.Context(), handler.Caller(c), c.Param("recordId"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, "Patient Admission Record Updated Successfully!", record)
}

func (h *Handler) DeleteRecord(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), handler.Caller(c), c.Param("recordId")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, "Patient Admission Record Deleted Successfully!", nil)
}

func (h *Handler) ListRecords(c *gin.Context) {
	records, err := h.svc.ListByPatient(c.Request.Context(), handler.Caller(c), c.Param("patientId"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, "Patient Admission Record fetched Successfully!", records)
}
