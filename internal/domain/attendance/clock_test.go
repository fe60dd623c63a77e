package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKey_ShiftsIntoFixedZone(t *testing.T) {
	cases := []struct {
		name    string
		instant time.Time
		want    string
	}{
		{
			name:    "midday utc stays same day",
			instant: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
			want:    "2026-03-15",
		},
		{
			name:    "late utc evening rolls into next local day",
			instant: time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC),
			want:    "2026-03-16",
		},
		{
			name:    "just before local midnight",
			instant: time.Date(2026, 3, 15, 16, 59, 59, 0, time.UTC),
			want:    "2026-03-15",
		},
		{
			name:    "local time is passed through",
			instant: time.Date(2026, 3, 15, 8, 0, 0, 0, Location),
			want:    "2026-03-15",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DayKey(tc.instant))
		})
	}
}

func TestWorkHours(t *testing.T) {
	day := func(hour, min int) time.Time {
		return time.Date(2026, 3, 16, hour, min, 0, 0, Location)
	}

	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     string
	}{
		{"nine hour day", day(8, 0), day(17, 0), "9"},
		{"four hour morning", day(8, 0), day(12, 0), "4"},
		{"half hours kept", day(8, 0), day(12, 30), "4.5"},
		{"rounded to two places", day(8, 0), day(16, 20), "8.33"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WorkHours(tc.checkIn, tc.checkOut).String())
		})
	}
}

func TestModeCommand(t *testing.T) {
	assert.Equal(t, "cmd_checkin", ModeCheckIn.Command())
	assert.Equal(t, "cmd_checkout", ModeCheckOut.Command())
	assert.Equal(t, "cmd_idle", ModeIdle.Command())
}

func TestParseModeAction(t *testing.T) {
	mode, ok := ParseModeAction("check-in")
	assert.True(t, ok)
	assert.Equal(t, ModeCheckIn, mode)

	mode, ok = ParseModeAction("check-out")
	assert.True(t, ok)
	assert.Equal(t, ModeCheckOut, mode)

	mode, ok = ParseModeAction("idle")
	assert.True(t, ok)
	assert.Equal(t, ModeIdle, mode)

	_, ok = ParseModeAction("pause")
	assert.False(t, ok)
}
