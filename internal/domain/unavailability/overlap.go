package unavailability

import (
	"fmt"
	"time"
)

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Conflicts returns every active unavailability of staffID that intersects
// the shift interval. Recurring rules skipped for the shift's roster week are
// left out.
func Conflicts(staffID string, shiftStart, shiftEnd time.Time, blocks []Block, rules []RecurringRule, skips []RecurringSkip, loc *time.Location) ([]Occurrence, error) {
	var out []Occurrence

	for _, b := range blocks {
		if b.StaffID != staffID {
			continue
		}
		if Overlaps(shiftStart, shiftEnd, b.StartAt, b.EndAt) {
			out = append(out, Occurrence{
				Kind:     KindOneOff,
				SourceID: b.ID,
				StaffID:  b.StaffID,
				Start:    b.StartAt,
				End:      b.EndAt,
				Reason:   b.Reason,
			})
		}
	}

	for _, r := range rules {
		if r.StaffID != staffID {
			continue
		}
		occs, err := r.Expand(shiftStart, shiftEnd, loc)
		if err != nil {
			return nil, err
		}
		for _, o := range occs {
			if IsSkipped(r.ID, WeekStart(o.Start, loc), skips) {
				continue
			}
			out = append(out, o)
		}
	}

	return out, nil
}

// IsSkipped reports whether ruleID is suspended for the roster week starting weekStart.
func IsSkipped(ruleID string, weekStart time.Time, skips []RecurringSkip) bool {
	for _, s := range skips {
		if s.RuleID == ruleID && sameDate(s.WeekStart, weekStart) {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Warning renders a conflict the way the roster screen shows it.
func (o Occurrence) Warning() string {
	reason := ""
	if o.Reason != nil && *o.Reason != "" {
		reason = fmt.Sprintf(" (%s)", *o.Reason)
	}
	kind := "one-off"
	if o.Kind == KindRecurring {
		kind = "weekly"
	}
	return fmt.Sprintf("staff unavailable %s %s to %s%s overlaps this shift; still allowed",
		kind, o.Start.Format(time.RFC3339), o.End.Format(time.RFC3339), reason)
}
