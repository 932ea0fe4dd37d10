package unavailability

import (
	"fmt"
	"time"
)

// The roster week runs Thursday to Wednesday.
const rosterWeekStartDay = time.Thursday

// WeekStart returns local midnight of the Thursday on or before t.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	diff := (int(local.Weekday()) - int(rosterWeekStartDay) + 7) % 7
	day := local.AddDate(0, 0, -diff)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
}

// Expand materializes rule for every local day in [from, to). Days are
// walked from the day before from so an overnight rule that started the
// previous evening is still returned.
func (r RecurringRule) Expand(from, to time.Time, loc *time.Location) ([]Occurrence, error) {
	startClock, err := parseClock(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("rule %s start_time: %w", r.ID, err)
	}
	endClock, err := parseClock(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("rule %s end_time: %w", r.ID, err)
	}

	var out []Occurrence
	first := from.In(loc)
	day := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	for day.Before(to) {
		if int(day.Weekday()) == r.DayOfWeek {
			start := time.Date(day.Year(), day.Month(), day.Day(), startClock.Hour(), startClock.Minute(), startClock.Second(), 0, loc)
			end := time.Date(day.Year(), day.Month(), day.Day(), endClock.Hour(), endClock.Minute(), endClock.Second(), 0, loc)
			if !end.After(start) {
				end = end.AddDate(0, 0, 1)
			}
			if start.Before(to) && from.Before(end) {
				out = append(out, Occurrence{
					Kind:     KindRecurring,
					SourceID: r.ID,
					StaffID:  r.StaffID,
					Start:    start,
					End:      end,
					Reason:   r.Reason,
				})
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return out, nil
}

func parseClock(s string) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time of day %q", s)
}
