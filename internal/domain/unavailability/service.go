package unavailability

import "context"

// UnavailabilityService manages when staff cannot be rostered. Staff manage
// their own entries; managers and owners manage anyone's.
type UnavailabilityService interface {
	List(ctx context.Context, req ListUnavailabilityRequest) (ListUnavailabilityResponse, error)
	CreateBlock(ctx context.Context, req CreateBlockRequest) (BlockResponse, error)
	DeleteBlock(ctx context.Context, id string) error
	CreateRule(ctx context.Context, req CreateRuleRequest) (RuleResponse, error)
	DeleteRule(ctx context.Context, id string) error

	// SkipRule suspends a weekly rule for one roster week (manager+ only)
	SkipRule(ctx context.Context, req SkipRuleRequest) error

	// UnskipRule reverts SkipRule (manager+ only)
	UnskipRule(ctx context.Context, req SkipRuleRequest) error
}
