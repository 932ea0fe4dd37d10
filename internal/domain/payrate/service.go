package payrate

import "context"

// PayRateService manages the pay rate table (manager+ only).
type PayRateService interface {
	// ListPayRates returns a row per active staff member, with unset rates as null
	ListPayRates(ctx context.Context) ([]PayRateResponse, error)

	UpsertPayRate(ctx context.Context, req UpsertPayRateRequest) (PayRateResponse, error)

	// BulkUpsertPayRates saves many rows in one transaction
	BulkUpsertPayRates(ctx context.Context, req BulkUpsertPayRateRequest) ([]PayRateResponse, error)
}
