package unavailability

import "time"

// Block is a one-off period a staff member cannot work.
type Block struct {
	ID        string
	StaffID   string
	StoreID   string
	StartAt   time.Time
	EndAt     time.Time
	Reason    *string
	CreatedAt time.Time
}

// RecurringRule repeats every week on DayOfWeek (0=Sunday ... 6=Saturday).
// StartTime/EndTime are local wall-clock "HH:MM:SS"; an end at or before the
// start runs into the next day.
type RecurringRule struct {
	ID        string
	StaffID   string
	StoreID   string
	DayOfWeek int
	StartTime string
	EndTime   string
	Reason    *string
	CreatedAt time.Time
}

// RecurringSkip suspends one rule for the roster week beginning WeekStart.
type RecurringSkip struct {
	ID        string
	RuleID    string
	StoreID   string
	WeekStart time.Time
	CreatedAt time.Time
}

type Kind string

const (
	KindOneOff    Kind = "ONE_OFF"
	KindRecurring Kind = "RECURRING"
)

// Occurrence is a concrete unavailable interval, either a Block or one
// expansion of a RecurringRule.
type Occurrence struct {
	Kind     Kind
	SourceID string
	StaffID  string
	Start    time.Time
	End      time.Time
	Reason   *string
	Skipped  bool
}
