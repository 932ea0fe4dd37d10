package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type punchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) attendance.PunchRepository {
	return &punchRepository{db: db}
}

const punchColumns = `
	id, shift_id, staff_id, clock_in_at, clock_out_at,
	adjusted_clock_in_at, adjusted_clock_out_at, adjusted_reason, adjusted_by, adjusted_at,
	device_tag, created_at, updated_at`

func scanPunch(row pgx.Row) (attendance.Punch, error) {
	var p attendance.Punch
	err := row.Scan(
		&p.ID, &p.ShiftID, &p.StaffID, &p.ClockIn, &p.ClockOut,
		&p.AdjustedClockIn, &p.AdjustedClockOut, &p.AdjustedReason, &p.AdjustedBy, &p.AdjustedAt,
		&p.DeviceTag, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// ListByClockInRange implements attendance.PunchRepository.
func (r *punchRepository) ListByClockInRange(ctx context.Context, filter attendance.PunchFilter) ([]attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM time_clock
		WHERE clock_in_at >= $1
		  AND clock_in_at < $2
	`
	args := []any{filter.StartInclusive, filter.EndExclusive}
	if filter.StaffID != nil {
		query += ` AND staff_id = $3`
		args = append(args, *filter.StaffID)
	}
	query += ` ORDER BY clock_in_at ASC, id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time clock records: %w", err)
	}
	defer rows.Close()

	var punches []attendance.Punch
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time clock record: %w", err)
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time clock records: %w", err)
	}
	return punches, nil
}

// GetByID implements attendance.PunchRepository.
func (r *punchRepository) GetByID(ctx context.Context, id string) (attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + punchColumns + ` FROM time_clock WHERE id = $1`

	p, err := scanPunch(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Punch{}, attendance.ErrPunchNotFound
		}
		return attendance.Punch{}, fmt.Errorf("failed to get time clock record: %w", err)
	}
	return p, nil
}

// GetByShiftID implements attendance.PunchRepository.
func (r *punchRepository) GetByShiftID(ctx context.Context, shiftID string) (attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM time_clock
		WHERE shift_id = $1
		ORDER BY created_at, id
		LIMIT 1
	`

	p, err := scanPunch(q.QueryRow(ctx, query, shiftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Punch{}, attendance.ErrPunchNotFound
		}
		return attendance.Punch{}, fmt.Errorf("failed to get time clock record for shift: %w", err)
	}
	return p, nil
}

// GetOpenByStaff implements attendance.PunchRepository.
func (r *punchRepository) GetOpenByStaff(ctx context.Context, staffID string) (attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM time_clock
		WHERE staff_id = $1
		  AND clock_in_at IS NOT NULL
		  AND clock_out_at IS NULL
		ORDER BY clock_in_at DESC
		LIMIT 1
	`

	p, err := scanPunch(q.QueryRow(ctx, query, staffID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Punch{}, attendance.ErrNotClockedIn
		}
		return attendance.Punch{}, fmt.Errorf("failed to get open time clock record: %w", err)
	}
	return p, nil
}

const manualPerShiftIndex = "uq_time_clock_manual_per_shift"

// Create implements attendance.PunchRepository. A unique violation on the
// open-punch index is returned wrapped so callers can map it.
func (r *punchRepository) Create(ctx context.Context, p attendance.Punch) (attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_clock (id, shift_id, staff_id, clock_in_at, clock_out_at, device_tag)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + punchColumns

	created, err := scanPunch(q.QueryRow(ctx, query,
		uuid.Must(uuid.NewV7()).String(),
		p.ShiftID,
		p.StaffID,
		p.ClockIn,
		p.ClockOut,
		p.DeviceTag,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == manualPerShiftIndex {
			return attendance.Punch{}, attendance.ErrPunchExistsForShift
		}
		return attendance.Punch{}, fmt.Errorf("failed to create time clock record: %w", err)
	}
	return created, nil
}

// UpdateClockOut implements attendance.PunchRepository.
func (r *punchRepository) UpdateClockOut(ctx context.Context, id string, clockOut time.Time) (attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_clock
		SET clock_out_at = $2, updated_at = NOW()
		WHERE id = $1 AND clock_out_at IS NULL
		RETURNING ` + punchColumns

	updated, err := scanPunch(q.QueryRow(ctx, query, id, clockOut))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Punch{}, attendance.ErrNotClockedIn
		}
		return attendance.Punch{}, fmt.Errorf("failed to clock out: %w", err)
	}
	return updated, nil
}

// UpdateAdjustment implements attendance.PunchRepository.
func (r *punchRepository) UpdateAdjustment(ctx context.Context, p attendance.Punch, expectedUpdatedAt *time.Time) (attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_clock
		SET adjusted_clock_in_at = $2,
		    adjusted_clock_out_at = $3,
		    adjusted_reason = $4,
		    adjusted_by = $5,
		    adjusted_at = $6,
		    updated_at = NOW()
		WHERE id = $1
		  AND ($7::timestamptz IS NULL OR date_trunc('milliseconds', updated_at) = date_trunc('milliseconds', $7::timestamptz))
		RETURNING ` + punchColumns

	updated, err := scanPunch(q.QueryRow(ctx, query,
		p.ID,
		p.AdjustedClockIn,
		p.AdjustedClockOut,
		p.AdjustedReason,
		p.AdjustedBy,
		p.AdjustedAt,
		expectedUpdatedAt,
	))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Punch{}, fmt.Errorf("failed to adjust time clock record: %w", err)
	}

	// No row: either the id is unknown or the version check failed.
	if _, getErr := r.GetByID(ctx, p.ID); getErr != nil {
		return attendance.Punch{}, getErr
	}
	return attendance.Punch{}, attendance.ErrPunchVersionConflict
}
