package attendance

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ClockIn(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	var req ClockInRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid request body", err.Error())
			return
		}
	}

	resp, err := h.service.ClockIn(c.Request.Context(), employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) BreakIn(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	resp, err := h.service.BreakIn(c.Request.Context(), employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) BreakOut(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	resp, err := h.service.BreakOut(c.Request.Context(), employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	resp, err := h.service.ClockOut(c.Request.Context(), employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// GetLogs returns the caller's own history unless an admin asks for a
// specific employee via ?employeeId=.
func (h *Handler) GetLogs(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	if target := c.Query("employeeId"); target != "" && c.GetString("role") == "ADMIN" {
		employeeID = target
	}

	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid query parameters", err.Error())
		return
	}

	resp, err := h.service.GetLogs(c.Request.Context(), employeeID, q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) TodayStatus(c *gin.Context) {
	resp, err := h.service.TodayStatus(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.SuccessWithCounts(c, http.StatusOK, resp.Entries, resp.Counts)
}

func (h *Handler) EmployeeDetails(c *gin.Context) {
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid query parameters", err.Error())
		return
	}

	resp, err := h.service.EmployeeAttendanceDetails(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
