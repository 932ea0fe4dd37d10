package payrate

import "context"

type PayRateRepository interface {
	ListByStore(ctx context.Context, storeID string) ([]PayRate, error)
	GetByStaff(ctx context.Context, storeID, staffID string) (PayRate, error)

	// Upsert inserts or replaces the row keyed by (staff_id, store_id)
	Upsert(ctx context.Context, rate PayRate) (PayRate, error)
}
