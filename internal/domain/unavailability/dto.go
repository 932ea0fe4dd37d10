package unavailability

import (
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
)

type ListUnavailabilityRequest struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	StaffID *string `json:"staff_id,omitempty"`
}

func (r *ListUnavailabilityRequest) Validate() error {
	var errs validator.ValidationErrors

	from, fromOK := validator.IsValidDate(r.From)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be a valid date in YYYY-MM-DD format",
		})
	}
	to, toOK := validator.IsValidDate(r.To)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be a valid date in YYYY-MM-DD format",
		})
	}
	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateBlockRequest struct {
	StaffID string  `json:"staff_id"`
	StartAt string  `json:"start_at"`
	EndAt   string  `json:"end_at"`
	Reason  *string `json:"reason,omitempty"`

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

// Validate checks the payload and fills Start/End.
func (r *CreateBlockRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}

	start, startOK := validator.IsValidDateTime(r.StartAt)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_at",
			Message: "start_at must be a valid ISO8601 timestamp",
		})
	}
	end, endOK := validator.IsValidDateTime(r.EndAt)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_at",
			Message: "end_at must be a valid ISO8601 timestamp",
		})
	}
	if startOK && endOK && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_at",
			Message: ErrInvalidUnavailableAt.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	r.Start, r.End = start, end
	return nil
}

type CreateRuleRequest struct {
	StaffID   string  `json:"staff_id"`
	DayOfWeek *int    `json:"day_of_week"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *CreateRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}
	if r.DayOfWeek == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "day_of_week",
			Message: "day_of_week is required",
		})
	} else if *r.DayOfWeek < 0 || *r.DayOfWeek > 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "day_of_week",
			Message: "day_of_week must be between 0 (Sunday) and 6 (Saturday)",
		})
	}
	if _, ok := validator.IsValidClockTime(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a valid time in HH:MM format",
		})
	}
	if _, ok := validator.IsValidClockTime(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a valid time in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NormalizedClock pads "HH:MM" to "HH:MM:SS".
func NormalizedClock(s string) string {
	if len(s) == 5 {
		return s + ":00"
	}
	return s
}

type SkipRuleRequest struct {
	RuleID    string `json:"-"`
	WeekStart string `json:"week_start"`
}

func (r *SkipRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RuleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "rule_id",
			Message: "rule_id is required",
		})
	}
	if d, ok := validator.IsValidDate(r.WeekStart); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be a valid date in YYYY-MM-DD format",
		})
	} else if d.Weekday() != rosterWeekStartDay {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be a Thursday",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BlockResponse struct {
	ID      string    `json:"id"`
	StaffID string    `json:"staff_id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Reason  *string   `json:"reason"`
}

type RuleResponse struct {
	ID        string  `json:"id"`
	StaffID   string  `json:"staff_id"`
	DayOfWeek int     `json:"day_of_week"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Reason    *string `json:"reason"`
}

type OccurrenceResponse struct {
	Kind     Kind      `json:"kind"`
	SourceID string    `json:"source_id"`
	StaffID  string    `json:"staff_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Reason   *string   `json:"reason"`
	Skipped  bool      `json:"skipped"`
}

type ListUnavailabilityResponse struct {
	Blocks      []BlockResponse      `json:"blocks"`
	Rules       []RuleResponse       `json:"rules"`
	Occurrences []OccurrenceResponse `json:"occurrences"`
}

func NewBlockResponse(b Block) BlockResponse {
	return BlockResponse{ID: b.ID, StaffID: b.StaffID, StartAt: b.StartAt, EndAt: b.EndAt, Reason: b.Reason}
}

func NewRuleResponse(r RecurringRule) RuleResponse {
	return RuleResponse{ID: r.ID, StaffID: r.StaffID, DayOfWeek: r.DayOfWeek, StartTime: r.StartTime, EndTime: r.EndTime, Reason: r.Reason}
}
