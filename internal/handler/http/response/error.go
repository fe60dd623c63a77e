package response

import (
	"errors"
	"net/http"

	"github.com/scanpoint/attend-backend-go/internal/domain/attendance"
	"github.com/scanpoint/attend-backend-go/internal/domain/employee"
	"github.com/scanpoint/attend-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors: business rejections on the manual
	// correction path, never raised by the scan path.
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Employee already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Employee already checked out")
	case errors.Is(err, attendance.ErrNoCheckInFound):
		BadRequest(w, "No check-in found for that day", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Employee directory errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrFingerIDTaken):
		Conflict(w, "Fingerprint ID already assigned to another employee")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
