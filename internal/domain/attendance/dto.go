package attendance

import (
	"time"

	"github.com/scanpoint/attend-backend-go/internal/pkg/validator"
)

// Rejection messages broadcast to monitors. These are informative
// outcomes, not errors: operators see every scan attempt.
const (
	MsgSystemIdle         = "System is IDLE"
	MsgFingerprintUnknown = "Fingerprint not found"
	MsgAlreadyCheckedIn   = "Already checked in today"
	MsgNoCheckInFound     = "No check-in found for today"
	MsgAlreadyCheckedOut  = "Already checked out"
)

// ScanResult is the outcome of one hardware scan, success or rejection.
// It is the payload of the `attendance` event on monitor connections.
type ScanResult struct {
	Success      bool       `json:"success"`
	Message      string     `json:"message,omitempty"`
	EmployeeName string     `json:"employeeName,omitempty"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
	Type         string     `json:"type,omitempty"`
}

type ModeResponse struct {
	Mode Mode `json:"mode"`
}

type ManualAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"` // check-in or check-out
	Date       string `json:"date"` // YYYY-MM-DD
	Time       string `json:"time"` // HH:MM
}

func (r *ManualAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if !validator.IsInSlice(r.Type, []string{TypeCheckIn, TypeCheckOut}) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: check-in, check-out",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsValidClockTime(r.Time) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// At combines the date and time fields into an instant in the fixed zone.
func (r *ManualAttendanceRequest) At() (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", r.Date+" "+r.Time, Location)
}

type AttendanceResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     *string `json:"employee_name,omitempty"`
	EmployeePosition *string `json:"employee_position,omitempty"`
	Date             string  `json:"date"`
	CheckIn          *string `json:"check_in,omitempty"`
	CheckOut         *string `json:"check_out,omitempty"`
	Status           string  `json:"status"`
	WorkHours        float64 `json:"work_hours"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// timePtrToString safely converts a *time.Time to a string in the fixed zone.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.In(Location).Format("2006-01-02 15:04:05")
	return &format
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:               a.ID,
		EmployeeID:       a.EmployeeID,
		EmployeeName:     a.EmployeeName,
		EmployeePosition: a.EmployeePosition,
		Date:             a.Date,
		CheckIn:          timePtrToString(a.CheckIn),
		CheckOut:         timePtrToString(a.CheckOut),
		Status:           a.Status,
		WorkHours:        a.WorkHours.InexactFloat64(),
		CreatedAt:        a.CreatedAt.In(Location).Format("2006-01-02 15:04:05"),
		UpdatedAt:        a.UpdatedAt.In(Location).Format("2006-01-02 15:04:05"),
	}
}

func NewAttendanceResponses(list []Attendance) []AttendanceResponse {
	responses := make([]AttendanceResponse, 0, len(list))
	for _, a := range list {
		responses = append(responses, NewAttendanceResponse(a))
	}
	return responses
}
