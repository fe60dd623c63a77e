package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Location is the fixed +07:00 zone all day bucketing and stored
// timestamps use. The deployment runs against hardware in a single
// region, so a constant offset is used instead of IANA timezone rules.
// This is a deliberate simplification: payroll day cutoffs depend on
// it, so it is intentionally not configurable.
var Location = time.FixedZone("UTC+7", 7*60*60)

// Now returns the current instant shifted into the fixed zone.
func Now() time.Time {
	return time.Now().In(Location)
}

// DayKey buckets an instant into its local calendar date.
func DayKey(t time.Time) string {
	return t.In(Location).Format("2006-01-02")
}

// WorkHours computes the hours between check-in and check-out, rounded
// to two decimal places.
func WorkHours(checkIn, checkOut time.Time) decimal.Decimal {
	return decimal.NewFromFloat(checkOut.Sub(checkIn).Hours()).Round(2)
}
