package employee

import "time"

type Employee struct {
	ID       string
	FullName string
	Position *string
	// FingerID is the fingerprint template slot programmed into the
	// scanning hardware, unique across the employee population.
	FingerID  *int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
