package shift

import "errors"

var (
	ErrShiftNotFound     = errors.New("shift not found")
	ErrInvalidShiftRange = errors.New("shift end must be after shift start")
)
