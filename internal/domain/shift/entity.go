package shift

import "time"

// Shift is one rostered block of work for one staff member.
type Shift struct {
	ID           string
	StoreID      string
	StaffID      string
	Start        time.Time
	End          time.Time
	BreakMinutes int
	CreatedBy    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasTimes reports whether both scheduled times are set.
func (s Shift) HasTimes() bool {
	return !s.Start.IsZero() && !s.End.IsZero()
}
