package unavailability

import "errors"

var (
	ErrBlockNotFound        = errors.New("unavailability not found")
	ErrRuleNotFound         = errors.New("weekly unavailability rule not found")
	ErrSkipAlreadyExists    = errors.New("rule is already skipped for this week")
	ErrSkipNotFound         = errors.New("rule is not skipped for this week")
	ErrInvalidUnavailableAt = errors.New("unavailability end must be after start")
)
