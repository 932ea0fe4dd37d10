package attendance

import "errors"

// Attendance domain errors
var (
	// Clock errors
	ErrAlreadyClockedIn = errors.New("you are already clocked in")
	ErrNotClockedIn     = errors.New("you are not clocked in")

	// Manual create errors
	ErrPunchExistsForShift = errors.New("shift already has a time clock record")

	// Adjustment errors
	ErrPunchNotFound        = errors.New("time clock record not found")
	ErrPunchVersionConflict = errors.New("time clock record was changed by someone else, reload and try again")
)
