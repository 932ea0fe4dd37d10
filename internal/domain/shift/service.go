package shift

import "context"

// ShiftService manages the store roster.
type ShiftService interface {
	// ListShifts lists shifts starting inside a local date range
	ListShifts(ctx context.Context, req ListShiftsRequest) ([]ShiftResponse, error)

	// CreateShift adds a shift (manager+ only); unavailability overlaps come back as warnings
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftMutationResponse, error)

	// UpdateShift edits start, end and break (manager+ only)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftMutationResponse, error)

	// DeleteShift removes a shift (manager+ only)
	DeleteShift(ctx context.Context, id string) error
}
