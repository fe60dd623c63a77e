package attendance

import "errors"

// Attendance domain errors
var (
	// Business-rule rejections on the manual correction path
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNoCheckInFound    = errors.New("no check-in found for today")
	ErrAlreadyCheckedOut = errors.New("already checked out")

	// Store signals
	ErrDuplicateRecord    = errors.New("attendance record already exists for this day")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
