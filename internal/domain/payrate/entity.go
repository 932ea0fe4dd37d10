package payrate

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayRate holds one staff member's hourly rates for a store. A staff member
// with no row has unknown pay, which is not the same as a zero rate.
type PayRate struct {
	StaffID      string
	StoreID      string
	WeekdayRate  decimal.Decimal
	SaturdayRate decimal.Decimal
	SundayRate   decimal.Decimal
	UpdatedAt    time.Time
}
