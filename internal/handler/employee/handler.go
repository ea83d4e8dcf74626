package employee

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/handler"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/service/employee"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/httputil"
)

type Handler struct {
	svc employee.EmployeeServicer
}

func NewHandler(svc employee.EmployeeServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	employees := r.Group("/employees")
	{
		employees.POST("", h.CreateEmployee)
		employees.GET("", h.ListEmployees)
		employees.GET("/profile", h.GetProfile)
		employees.PUT("/details/:employeeDetailsId", h.UpdateDetails)
	}
}

func (h *Handler) CreateEmployee(c *gin.Context) {
	var req model.CreateEmployeeRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	created, err := h.svc.Create(c.Request.Context(), handler.Caller(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, "Employee Created Successfully!", created)
}

func (h *Handler) ListEmployees(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), handler.Caller(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, "Fetched all employees successfully", list)
}

func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.svc.Profile(c.Request.Context(), handler.Caller(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, "Fetched profile successfully", profile)
}

func (h *Handler) UpdateDetails(c *gin.Context) {
	var req model.UpdateEmployeeDetailsRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	details, err := h.svc.UpdateDetails(c.Request.Context(), handler.Caller(c), c.Param("employeeDetailsId"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, "Employee Details Updated Successfully!", details)
}
