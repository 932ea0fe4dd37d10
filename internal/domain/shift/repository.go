package shift

import (
	"context"
	"time"
)

// ShiftFilter selects shifts whose start falls in [StartInclusive, EndExclusive).
type ShiftFilter struct {
	StoreID        string
	StartInclusive time.Time
	EndExclusive   time.Time
	StaffID        *string
}

type ShiftRepository interface {
	ListByRange(ctx context.Context, filter ShiftFilter) ([]Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	Create(ctx context.Context, newShift Shift) (Shift, error)
	Update(ctx context.Context, s Shift) (Shift, error)
	Delete(ctx context.Context, id string) error
}
