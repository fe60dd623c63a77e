package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/scanpoint/attend-backend-go/internal/domain/enrollment"
	"github.com/scanpoint/attend-backend-go/internal/handler/http/response"
)

type EnrollmentHandler interface {
	StartEnroll(w http.ResponseWriter, r *http.Request)
	ResetEnroll(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
}

type enrollmentHandlerImpl struct {
	enrollmentService enrollment.Service
}

func NewEnrollmentHandler(enrollmentService enrollment.Service) EnrollmentHandler {
	return &enrollmentHandlerImpl{
		enrollmentService: enrollmentService,
	}
}

// StartEnroll implements EnrollmentHandler. POST /attendance/start-enroll/{id}
func (h *enrollmentHandlerImpl) StartEnroll(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	result, err := h.enrollmentService.StartEnroll(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Enrollment started", result)
}

// ResetEnroll implements EnrollmentHandler. POST /attendance/reset-enroll
// Clears a pending enrollment that never got a device confirmation.
func (h *enrollmentHandlerImpl) ResetEnroll(w http.ResponseWriter, r *http.Request) {
	h.enrollmentService.ResetEnroll()
	response.SuccessWithMessage(w, "Pending enrollment cleared", nil)
}

// ListEmployees implements EnrollmentHandler. GET /attendance/employees
func (h *enrollmentHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	result, err := h.enrollmentService.ListEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
