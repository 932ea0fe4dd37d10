package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/payrate"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payRateRepository struct {
	db *database.DB
}

func NewPayRateRepository(db *database.DB) payrate.PayRateRepository {
	return &payRateRepository{db: db}
}

// Rates are read as text so they land in decimal.Decimal without a float
// round trip.
const payRateColumns = `staff_id, store_id, weekday_rate::text, saturday_rate::text, sunday_rate::text, updated_at`

func scanPayRate(row pgx.Row) (payrate.PayRate, error) {
	var r payrate.PayRate
	err := row.Scan(&r.StaffID, &r.StoreID, &r.WeekdayRate, &r.SaturdayRate, &r.SundayRate, &r.UpdatedAt)
	return r, err
}

// ListByStore implements payrate.PayRateRepository.
func (r *payRateRepository) ListByStore(ctx context.Context, storeID string) ([]payrate.PayRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payRateColumns + ` FROM staff_pay_rates WHERE store_id = $1`

	rows, err := q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay rates: %w", err)
	}
	defer rows.Close()

	var rates []payrate.PayRate
	for rows.Next() {
		rate, err := scanPayRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay rate: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pay rates: %w", err)
	}
	return rates, nil
}

// GetByStaff implements payrate.PayRateRepository.
func (r *payRateRepository) GetByStaff(ctx context.Context, storeID, staffID string) (payrate.PayRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payRateColumns + ` FROM staff_pay_rates WHERE store_id = $1 AND staff_id = $2`

	rate, err := scanPayRate(q.QueryRow(ctx, query, storeID, staffID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payrate.PayRate{}, payrate.ErrPayRateNotFound
		}
		return payrate.PayRate{}, fmt.Errorf("failed to get pay rate: %w", err)
	}
	return rate, nil
}

// Upsert implements payrate.PayRateRepository.
func (r *payRateRepository) Upsert(ctx context.Context, rate payrate.PayRate) (payrate.PayRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO staff_pay_rates (staff_id, store_id, weekday_rate, saturday_rate, sunday_rate, updated_at)
		VALUES ($1, $2, $3::numeric, $4::numeric, $5::numeric, NOW())
		ON CONFLICT (staff_id, store_id) DO UPDATE
		SET weekday_rate = EXCLUDED.weekday_rate,
		    saturday_rate = EXCLUDED.saturday_rate,
		    sunday_rate = EXCLUDED.sunday_rate,
		    updated_at = NOW()
		RETURNING ` + payRateColumns

	saved, err := scanPayRate(q.QueryRow(ctx, query,
		rate.StaffID,
		rate.StoreID,
		rate.WeekdayRate.String(),
		rate.SaturdayRate.String(),
		rate.SundayRate.String(),
	))
	if err != nil {
		return payrate.PayRate{}, fmt.Errorf("failed to save pay rate: %w", err)
	}
	return saved, nil
}
