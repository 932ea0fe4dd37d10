package attendance

import (
	"context"
	"time"
)

// PunchFilter selects punches whose clock_in_at is in [StartInclusive, EndExclusive).
type PunchFilter struct {
	StaffID        *string
	StartInclusive time.Time
	EndExclusive   time.Time
}

// PunchRepository is the time_clock table.
type PunchRepository interface {
	// ListByClockInRange returns punches ordered by clock_in_at
	ListByClockInRange(ctx context.Context, filter PunchFilter) ([]Punch, error)

	GetByID(ctx context.Context, id string) (Punch, error)

	// GetByShiftID returns the earliest punch linked to the shift, or ErrPunchNotFound
	GetByShiftID(ctx context.Context, shiftID string) (Punch, error)

	// GetOpenByStaff returns the punch with no clock_out_at, or ErrNotClockedIn
	GetOpenByStaff(ctx context.Context, staffID string) (Punch, error)

	// Create returns ErrPunchExistsForShift when a second MANUAL_CREATE punch
	// is inserted for the same shift
	Create(ctx context.Context, p Punch) (Punch, error)

	UpdateClockOut(ctx context.Context, id string, clockOut time.Time) (Punch, error)

	// UpdateAdjustment writes the four adjustment fields. When expectedUpdatedAt
	// is set and no longer matches, ErrPunchVersionConflict is returned.
	UpdateAdjustment(ctx context.Context, p Punch, expectedUpdatedAt *time.Time) (Punch, error)
}
