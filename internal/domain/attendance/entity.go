package attendance

import (
	"time"
)

const (
	DeviceTagWeb          = "web"
	DeviceTagManualCreate = "MANUAL_CREATE"
)

// Punch is one row of the time clock. Raw times come from the device; the
// adjusted pair is a manager's correction and never replaces the raw pair.
type Punch struct {
	ID               string
	ShiftID          *string
	StaffID          string
	ClockIn          *time.Time
	ClockOut         *time.Time
	AdjustedClockIn  *time.Time
	AdjustedClockOut *time.Time
	AdjustedReason   *string
	AdjustedBy       *string
	AdjustedAt       *time.Time
	DeviceTag        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type State string

const (
	StateNotStarted State = "NOT_STARTED"
	StateOpen       State = "OPEN"
	StateClosed     State = "CLOSED"
)

// State is derived from the raw pair only; adjusting a punch never opens or
// closes it.
func (p Punch) State() State {
	switch {
	case p.ClockIn == nil:
		return StateNotStarted
	case p.ClockOut == nil:
		return StateOpen
	default:
		return StateClosed
	}
}

// IsAdjusted reports whether both adjusted times are present.
func (p Punch) IsAdjusted() bool {
	return p.AdjustedClockIn != nil && p.AdjustedClockOut != nil
}
