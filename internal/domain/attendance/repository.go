package attendance

import (
	"context"
)

// AttendanceRepository defines the day-bucketed record store the engine
// queries. The (employee_id, date) pair is unique; Insert surfaces a
// violation as ErrDuplicateRecord so the engine can treat the conflict
// as the idempotency signal instead of relying on a read-then-write.
type AttendanceRepository interface {
	// FindByEmployeeAndDay returns the record for (employee, day), most
	// recently created first if duplicates somehow exist. Returns
	// (nil, nil) when there is none.
	FindByEmployeeAndDay(ctx context.Context, employeeID string, day string) (*Attendance, error)

	// Insert creates a new record. Returns ErrDuplicateRecord when a
	// record for (employee, day) already exists.
	Insert(ctx context.Context, att Attendance) (Attendance, error)

	// Update persists check-out fields and computed work hours.
	Update(ctx context.Context, att Attendance) error

	// Query surface for the owner dashboard, newest first.
	List(ctx context.Context) ([]Attendance, error)
	ListCheckIns(ctx context.Context) ([]Attendance, error)
	ListCheckOuts(ctx context.Context) ([]Attendance, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
}
