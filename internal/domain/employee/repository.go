package employee

import "context"

// EmployeeDirectory is the read/update surface the attendance core
// needs from employee master data. Employee CRUD itself lives outside
// this service.
type EmployeeDirectory interface {
	// GetByID returns ErrEmployeeNotFound when the ID is unknown.
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByFingerID resolves a scanned fingerprint ID to an employee.
	// Returns ErrEmployeeNotFound when no employee carries the ID.
	GetByFingerID(ctx context.Context, fingerID int) (Employee, error)

	// UpdateFingerID binds a fingerprint ID to an employee record.
	UpdateFingerID(ctx context.Context, employeeID string, fingerID int) (Employee, error)

	// MaxAssignedFingerID returns the highest fingerprint ID assigned
	// to any employee, 0 when none is assigned yet. IDs are allocated
	// monotonically and never reused, even after deletions, so a new
	// binding can never collide with a previously deleted employee's slot.
	MaxAssignedFingerID(ctx context.Context) (int, error)

	// List returns active employees, for the console picking whom to
	// enroll next.
	List(ctx context.Context) ([]Employee, error)
}
