package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Attendance struct {
	ID         string
	EmployeeID string
	Date       string // YYYY-MM-DD in the fixed zone, see clock.go
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     string
	WorkHours  decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName     *string
	EmployeePosition *string
}

const StatusPresent = "present"

// Attendance types reported to monitors and used by manual corrections.
const (
	TypeCheckIn  = "check-in"
	TypeCheckOut = "check-out"
)
