package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `id, store_id, staff_id, shift_start, shift_end, break_minutes, created_by, created_at, updated_at`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(&s.ID, &s.StoreID, &s.StaffID, &s.Start, &s.End, &s.BreakMinutes, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// ListByRange implements shift.ShiftRepository.
func (r *shiftRepository) ListByRange(ctx context.Context, filter shift.ShiftFilter) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE store_id = $1
		  AND shift_start >= $2
		  AND shift_start < $3
	`
	args := []any{filter.StoreID, filter.StartInclusive, filter.EndExclusive}
	if filter.StaffID != nil {
		query += ` AND staff_id = $4`
		args = append(args, *filter.StaffID)
	}
	query += ` ORDER BY shift_start ASC, id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}
	return shifts, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`

	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return s, nil
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, newShift shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (id, store_id, staff_id, shift_start, shift_end, break_minutes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + shiftColumns

	created, err := scanShift(q.QueryRow(ctx, query,
		uuid.Must(uuid.NewV7()).String(),
		newShift.StoreID,
		newShift.StaffID,
		newShift.Start,
		newShift.End,
		newShift.BreakMinutes,
		newShift.CreatedBy,
	))
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return created, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET shift_start = $2, shift_end = $3, break_minutes = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + shiftColumns

	updated, err := scanShift(q.QueryRow(ctx, query, s.ID, s.Start, s.End, s.BreakMinutes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}
	return updated, nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}
