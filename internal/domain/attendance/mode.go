package attendance

// Mode is the process-wide setting telling scanning hardware how to
// interpret the next fingerprint match. There is exactly one mode at a
// time; only the latest value matters.
type Mode string

const (
	ModeCheckIn  Mode = "CHECK_IN"
	ModeCheckOut Mode = "CHECK_OUT"
	ModeIdle     Mode = "IDLE"
)

// Command returns the wire event name pushed to device connections for
// this mode.
func (m Mode) Command() string {
	switch m {
	case ModeCheckIn:
		return "cmd_checkin"
	case ModeCheckOut:
		return "cmd_checkout"
	default:
		return "cmd_idle"
	}
}

// ParseModeAction maps the URL action segment used by the owner control
// endpoint (check-in, check-out, idle) to a Mode.
func ParseModeAction(action string) (Mode, bool) {
	switch action {
	case "check-in":
		return ModeCheckIn, true
	case "check-out":
		return ModeCheckOut, true
	case "idle":
		return ModeIdle, true
	default:
		return "", false
	}
}
