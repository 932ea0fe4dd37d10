package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/unavailability"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type unavailabilityRepository struct {
	db *database.DB
}

func NewUnavailabilityRepository(db *database.DB) unavailability.UnavailabilityRepository {
	return &unavailabilityRepository{db: db}
}

// ========================================
// ONE-OFF BLOCKS
// ========================================

const blockColumns = `id, staff_id, store_id, start_at, end_at, reason, created_at`

func scanBlock(row pgx.Row) (unavailability.Block, error) {
	var b unavailability.Block
	err := row.Scan(&b.ID, &b.StaffID, &b.StoreID, &b.StartAt, &b.EndAt, &b.Reason, &b.CreatedAt)
	return b, err
}

// ListBlocks implements unavailability.UnavailabilityRepository.
func (r *unavailabilityRepository) ListBlocks(ctx context.Context, filter unavailability.BlockFilter) ([]unavailability.Block, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + blockColumns + `
		FROM staff_unavailability
		WHERE store_id = $1
		  AND start_at < $3
		  AND end_at > $2
	`
	args := []any{filter.StoreID, filter.StartInclusive, filter.EndExclusive}
	if filter.StaffID != nil {
		query += ` AND staff_id = $4`
		args = append(args, *filter.StaffID)
	}
	query += ` ORDER BY start_at ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list unavailability: %w", err)
	}
	defer rows.Close()

	var blocks []unavailability.Block
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unavailability: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate unavailability: %w", err)
	}
	return blocks, nil
}

// GetBlockByID implements unavailability.UnavailabilityRepository.
func (r *unavailabilityRepository) GetBlockByID(ctx context.Context, id string) (unavailability.Block, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBlock(q.QueryRow(ctx, `SELECT `+blockColumns+` FROM staff_unavailability WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return unavailability.Block{}, unavailability.ErrBlockNotFound
		}
		return unavailability.Block{}, fmt.Errorf("failed to get unavailability: %w", err)
	}
	return b, nil
}

// CreateBlock implements unavailability.UnavailabilityRepository.
func (r *unavailabilityRepository) CreateBlock(ctx context.Context, b unavailability.Block) (unavailability.Block, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO staff_unavailability (id, staff_id, store_id, start_at, end_at, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + blockColumns

	created, err := scanBlock(q.QueryRow(ctx, query,
		uuid.Must(uuid.NewV7()).String(), b.StaffID, b.StoreID, b.StartAt, b.EndAt, b.Reason,
	))
	if err != nil {
		return unavailability.Block{}, fmt.Errorf("failed to create unavailability: %w", err)
	}
	return created, nil
}

// DeleteBlock implements unavailability.UnavailabilityRepository.
func (r *unavailabilityRepository) DeleteBlock(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM staff_unavailability WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete unavailability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return unavailability.ErrBlockNotFound
	}
	return nil
}

// ========================================
// WEEKLY RULES
// ========================================

const ruleColumns = `id, staff_id, store_id, day_of_week, start_time::text, end_time::text, reason, created_at`

func scanRule(row pgx.Row) (unavailability.RecurringRule, error) {
	var rule unavailability.RecurringRule
	err := row.Scan(&rule.ID, &rule.StaffID, &rule.StoreID, &rule.DayOfWeek, &rule.StartTime, &rule.EndTime, &rule.Reason, &rule.CreatedAt)
	return rule, err
}

// ListRules implements unavailability.UnavailabilityRepository.
func (r *unavailabilityRepository) ListRules(ctx context.Context, storeID string, staffID *string) ([]unavailability.RecurringRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ruleColumns + ` FROM staff_unavailability_recurring WHERE store_id = $1`
	args := []any{storeID}
	if staffID != nil {
		query += ` AND staff_id = $2`
		args = append(args, *staffID)
	}
	query += ` ORDER BY staff_id ASC, day_of_week ASC, start_time ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly unavailability: %w", err)
	}
	defer rows.Close()

	var rules []unavailability.RecurringRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weekly unavailability: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weekly unavailability: %w", err)
	}
	return rules, nil
}

// GetRuleByID implements unavailability.UnavailabilityRepository.
func (r *unavailabilityRepository) GetRuleByID(ctx context.Context, id string) (unavailability.RecurringRule, error) {
	q := GetQuerier(ctx, r.db)

	rule, err := scanRule(q.QueryRow(ctx, `SELECT `+ruleColumns+` FROM staff_unavailability_recurring WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return unavailability.RecurringRule{}, unavailability.ErrRuleNotFound
		}
		return unavailability.RecurringRule{}, fmt.Errorf("failed to get weekly unavailability: %w", err)
	}
	return rule, nil
}

// CreateRule implements unavailability.UnavailabilityRepository.
func (r *unavailabilityRepository) CreateRule(ctx context.Context, rule unavailability.RecurringRule) (unavailability.RecurringRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO staff_unavailability_recurring (id, staff_id, store_id, day_of_week, start_time, end_time, reason)
		VALUES ($1, $2, $3, $4, $5::time, $6::time, $7)
		RETURNING ` + ruleColumns

	created, err := scanRule(q.QueryRow(ctx, query,
		uuid.Must(uuid.NewV7()).String(), rule.StaffID, rule.StoreID, rule.DayOfWeek, rule.StartTime, rule.EndTime, rule.Reason,
	))
	if err != nil {
		return unavailability.RecurringRule{}, fmt.Errorf("failed to create weekly unavailability: %w", err)
	}
	return created, nil
}

// DeleteRule implements unavailability.UnavailabilityRepository.
func (r *unavailabilityRepository) DeleteRule(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM staff_unavailability_recurring WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete weekly unavailability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return unavailability.ErrRuleNotFound
	}
	return nil
}

// ========================================
// WEEK SKIPS
// ========================================

// ListSkips implements unavailability.UnavailabilityRepository.
func (r *unavailabilityRepository) ListSkips(ctx context.Context, storeID string, from, to time.Time) ([]unavailability.RecurringSkip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, rule_id, store_id, week_start, created_at
		FROM staff_unavailability_recurring_overrides
		WHERE store_id = $1
		  AND week_start BETWEEN $2::date AND $3::date
	`

	rows, err := q.Query(ctx, query, storeID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly unavailability skips: %w", err)
	}
	defer rows.Close()

	var skips []unavailability.RecurringSkip
	for rows.Next() {
		var s unavailability.RecurringSkip
		if err := rows.Scan(&s.ID, &s.RuleID, &s.StoreID, &s.WeekStart, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weekly unavailability skip: %w", err)
		}
		skips = append(skips, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weekly unavailability skips: %w", err)
	}
	return skips, nil
}

// CreateSkip implements unavailability.UnavailabilityRepository.
func (r *unavailabilityRepository) CreateSkip(ctx context.Context, s unavailability.RecurringSkip) (unavailability.RecurringSkip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO staff_unavailability_recurring_overrides (id, rule_id, store_id, week_start)
		VALUES ($1, $2, $3, $4::date)
		RETURNING id, rule_id, store_id, week_start, created_at
	`

	var created unavailability.RecurringSkip
	err := q.QueryRow(ctx, query, uuid.Must(uuid.NewV7()).String(), s.RuleID, s.StoreID, s.WeekStart.Format("2006-01-02")).
		Scan(&created.ID, &created.RuleID, &created.StoreID, &created.WeekStart, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return unavailability.RecurringSkip{}, unavailability.ErrSkipAlreadyExists
		}
		return unavailability.RecurringSkip{}, fmt.Errorf("failed to skip weekly unavailability: %w", err)
	}
	return created, nil
}

// DeleteSkip implements unavailability.UnavailabilityRepository.
func (r *unavailabilityRepository) DeleteSkip(ctx context.Context, ruleID string, weekStart time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM staff_unavailability_recurring_overrides WHERE rule_id = $1 AND week_start = $2::date`,
		ruleID, weekStart.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("failed to remove weekly unavailability skip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return unavailability.ErrSkipNotFound
	}
	return nil
}
