package payrate

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpsertPayRateRequest struct {
	StaffID      string           `json:"staff_id"`
	WeekdayRate  *decimal.Decimal `json:"weekday_rate"`
	SaturdayRate *decimal.Decimal `json:"saturday_rate"`
	SundayRate   *decimal.Decimal `json:"sunday_rate"`
}

func (r *UpsertPayRateRequest) Validate() error {
	if errs := r.validate(""); len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpsertPayRateRequest) validate(prefix string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   prefix + "staff_id",
			Message: "staff_id is required",
		})
	}

	rates := []struct {
		field string
		value *decimal.Decimal
	}{
		{"weekday_rate", r.WeekdayRate},
		{"saturday_rate", r.SaturdayRate},
		{"sunday_rate", r.SundayRate},
	}
	for _, rate := range rates {
		if rate.value == nil {
			continue
		}
		if rate.value.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + rate.field,
				Message: fmt.Sprintf("%s must not be negative", rate.field),
			})
			continue
		}
		// Stored as NUMERIC(10, 2); anything finer would be rounded silently.
		if !rate.value.Equal(rate.value.Truncate(2)) {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + rate.field,
				Message: fmt.Sprintf("%s must have at most two decimal places", rate.field),
			})
		}
	}

	return errs
}

// ToPayRate fills missing rates with zero, as the pay rate form does.
func (r *UpsertPayRateRequest) ToPayRate(storeID string) PayRate {
	orZero := func(d *decimal.Decimal) decimal.Decimal {
		if d == nil {
			return decimal.Zero
		}
		return *d
	}
	return PayRate{
		StaffID:      r.StaffID,
		StoreID:      storeID,
		WeekdayRate:  orZero(r.WeekdayRate),
		SaturdayRate: orZero(r.SaturdayRate),
		SundayRate:   orZero(r.SundayRate),
	}
}

type BulkUpsertPayRateRequest struct {
	Rates []UpsertPayRateRequest `json:"rates"`
}

func (r *BulkUpsertPayRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Rates) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "rates",
			Message: "rates must contain at least one entry",
		})
	}

	seen := make(map[string]bool, len(r.Rates))
	for i := range r.Rates {
		prefix := fmt.Sprintf("rates[%d].", i)
		errs = append(errs, r.Rates[i].validate(prefix)...)
		if seen[r.Rates[i].StaffID] {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + "staff_id",
				Message: "staff_id appears more than once",
			})
		}
		seen[r.Rates[i].StaffID] = true
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayRateResponse struct {
	StaffID      string           `json:"staff_id"`
	StaffName    string           `json:"staff_name"`
	WeekdayRate  *decimal.Decimal `json:"weekday_rate"`
	SaturdayRate *decimal.Decimal `json:"saturday_rate"`
	SundayRate   *decimal.Decimal `json:"sunday_rate"`
	UpdatedAt    *time.Time       `json:"updated_at"`
}

func NewPayRateResponse(rate PayRate, staffName string) PayRateResponse {
	updated := rate.UpdatedAt
	return PayRateResponse{
		StaffID:      rate.StaffID,
		StaffName:    staffName,
		WeekdayRate:  &rate.WeekdayRate,
		SaturdayRate: &rate.SaturdayRate,
		SundayRate:   &rate.SundayRate,
		UpdatedAt:    &updated,
	}
}
