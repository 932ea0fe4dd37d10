package unavailability

import (
	"context"
	"time"
)

type BlockFilter struct {
	StoreID        string
	StaffID        *string
	StartInclusive time.Time
	EndExclusive   time.Time
}

type UnavailabilityRepository interface {
	// ListBlocks returns one-off blocks intersecting the filter window.
	ListBlocks(ctx context.Context, filter BlockFilter) ([]Block, error)
	GetBlockByID(ctx context.Context, id string) (Block, error)
	CreateBlock(ctx context.Context, b Block) (Block, error)
	DeleteBlock(ctx context.Context, id string) error

	ListRules(ctx context.Context, storeID string, staffID *string) ([]RecurringRule, error)
	GetRuleByID(ctx context.Context, id string) (RecurringRule, error)
	CreateRule(ctx context.Context, r RecurringRule) (RecurringRule, error)
	DeleteRule(ctx context.Context, id string) error

	// ListSkips returns skips whose week_start is in [from, to].
	ListSkips(ctx context.Context, storeID string, from, to time.Time) ([]RecurringSkip, error)
	CreateSkip(ctx context.Context, s RecurringSkip) (RecurringSkip, error)
	DeleteSkip(ctx context.Context, ruleID string, weekStart time.Time) error
}
