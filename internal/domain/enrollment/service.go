package enrollment

import (
	"context"

	"github.com/scanpoint/attend-backend-go/internal/domain/employee"
)

// Service coordinates the two-phase handshake binding a fingerprint ID
// to an employee: a cmd_enroll command to hardware, then an
// asynchronous enroll_result confirmation.
//
// At most one enrollment is pending process-wide. Starting a second
// enrollment while one is awaiting the device overwrites the prior
// pending target; the first device confirmation then binds to the new
// target. This mirrors the deployed behavior and is a known limitation.
type Service interface {
	// StartEnroll allocates the next fingerprint ID for the employee,
	// marks it pending and commands all device connections to begin
	// enrollment.
	StartEnroll(ctx context.Context, employeeID string) (StartEnrollResponse, error)

	// FinishEnroll reconciles a device confirmation. Without a pending
	// enrollment it logs and does nothing. On success the fingerprint
	// ID is bound through the directory; on failure it is discarded.
	// The pending slot is cleared either way and monitors receive an
	// enroll_update event.
	FinishEnroll(ctx context.Context, fingerID int, success bool) error

	// ResetEnroll clears a stale pending slot that never received a
	// device confirmation.
	ResetEnroll()

	// ListEmployees returns active employees with their enrollment
	// state, for the console picking whom to enroll next.
	ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error)
}
