package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/database"
)

// EnsureSchema creates the back-office tables when they do not exist yet.
// Profiles are provisioned by the identity provider; the table here only
// carries the columns this service reads.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id UUID PRIMARY KEY,
			store_id TEXT NOT NULL,
			full_name TEXT,
			preferred_name TEXT,
			role TEXT NOT NULL CHECK (role IN ('OWNER', 'MANAGER', 'STAFF')),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS shifts (
			id UUID PRIMARY KEY,
			store_id TEXT NOT NULL,
			staff_id UUID NOT NULL REFERENCES profiles(id),
			shift_start TIMESTAMPTZ NOT NULL,
			shift_end TIMESTAMPTZ NOT NULL,
			break_minutes INTEGER NOT NULL DEFAULT 0 CHECK (break_minutes >= 0),
			created_by UUID REFERENCES profiles(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (shift_end > shift_start)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_shifts_store_start ON shifts(store_id, shift_start);`,
		`CREATE TABLE IF NOT EXISTS time_clock (
			id UUID PRIMARY KEY,
			shift_id UUID REFERENCES shifts(id) ON DELETE SET NULL,
			staff_id UUID NOT NULL REFERENCES profiles(id),
			clock_in_at TIMESTAMPTZ,
			clock_out_at TIMESTAMPTZ,
			adjusted_clock_in_at TIMESTAMPTZ,
			adjusted_clock_out_at TIMESTAMPTZ,
			adjusted_reason TEXT,
			adjusted_by UUID REFERENCES profiles(id),
			adjusted_at TIMESTAMPTZ,
			device_tag TEXT NOT NULL DEFAULT 'web',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_time_clock_clock_in ON time_clock(clock_in_at);`,
		`CREATE INDEX IF NOT EXISTS idx_time_clock_shift ON time_clock(shift_id);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_time_clock_manual_per_shift ON time_clock(shift_id) WHERE device_tag = 'MANUAL_CREATE';`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_time_clock_open_per_staff ON time_clock(staff_id) WHERE clock_in_at IS NOT NULL AND clock_out_at IS NULL;`,
		`CREATE TABLE IF NOT EXISTS staff_pay_rates (
			staff_id UUID NOT NULL REFERENCES profiles(id),
			store_id TEXT NOT NULL,
			weekday_rate NUMERIC(10, 2) NOT NULL DEFAULT 0 CHECK (weekday_rate >= 0),
			saturday_rate NUMERIC(10, 2) NOT NULL DEFAULT 0 CHECK (saturday_rate >= 0),
			sunday_rate NUMERIC(10, 2) NOT NULL DEFAULT 0 CHECK (sunday_rate >= 0),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (staff_id, store_id)
		);`,
		`CREATE TABLE IF NOT EXISTS staff_unavailability (
			id UUID PRIMARY KEY,
			staff_id UUID NOT NULL REFERENCES profiles(id),
			store_id TEXT NOT NULL,
			start_at TIMESTAMPTZ NOT NULL,
			end_at TIMESTAMPTZ NOT NULL,
			reason TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (end_at > start_at)
		);`,
		`CREATE TABLE IF NOT EXISTS staff_unavailability_recurring (
			id UUID PRIMARY KEY,
			staff_id UUID NOT NULL REFERENCES profiles(id),
			store_id TEXT NOT NULL,
			day_of_week SMALLINT NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
			start_time TIME NOT NULL,
			end_time TIME NOT NULL,
			reason TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS staff_unavailability_recurring_overrides (
			id UUID PRIMARY KEY,
			rule_id UUID NOT NULL REFERENCES staff_unavailability_recurring(id) ON DELETE CASCADE,
			store_id TEXT NOT NULL,
			week_start DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (rule_id, week_start)
		);`,
	}

	q := db.Pool
	for _, stmt := range statements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
