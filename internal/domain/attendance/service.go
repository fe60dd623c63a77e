package attendance

import (
	"context"
)

// AttendanceService is the scan-processing engine plus the mode state
// machine shared by all connected hardware.
type AttendanceService interface {
	// SetMode stores the new process-wide mode, pushes the matching
	// command event to all device connections and returns the
	// now-current mode.
	SetMode(mode Mode) Mode

	// GetMode returns the current mode with no side effects.
	GetMode() Mode

	// HandleScan resolves a fingerprint ID against the current mode and
	// returns the outcome. Business rejections (idle, unknown finger,
	// duplicate check-in, missing check-in, double check-out) come back
	// as non-success results; only store or directory faults return an
	// error. Every result, success or rejection, is broadcast to
	// monitor connections.
	HandleScan(ctx context.Context, fingerID int) (ScanResult, error)

	// ManualAttendance applies the same day bucketing and idempotency
	// rules as HandleScan, driven by an administrative correction.
	// Rejections surface as domain errors for the HTTP layer to map.
	ManualAttendance(ctx context.Context, req ManualAttendanceRequest) (AttendanceResponse, error)

	List(ctx context.Context) ([]AttendanceResponse, error)
	ListCheckIns(ctx context.Context) ([]AttendanceResponse, error)
	ListCheckOuts(ctx context.Context) ([]AttendanceResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
}
