package unavailability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const staffA = "0190c2a4-0000-7000-8000-00000000000a"

func melbourne(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Melbourne")
	require.NoError(t, err)
	return loc
}

func TestWeekStart(t *testing.T) {
	loc := melbourne(t)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"saturday", time.Date(2024, 6, 8, 10, 0, 0, 0, loc), time.Date(2024, 6, 6, 0, 0, 0, 0, loc)},
		{"thursday late", time.Date(2024, 6, 6, 23, 0, 0, 0, loc), time.Date(2024, 6, 6, 0, 0, 0, 0, loc)},
		{"wednesday", time.Date(2024, 6, 12, 9, 0, 0, 0, loc), time.Date(2024, 6, 6, 0, 0, 0, 0, loc)},
		// 2024-06-05 23:30 local is still Wednesday even though UTC says Wednesday 13:30
		{"utc input", time.Date(2024, 6, 5, 13, 30, 0, 0, time.UTC), time.Date(2024, 5, 30, 0, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(WeekStart(tt.in, loc)), "got %s", WeekStart(tt.in, loc))
		})
	}
}

func TestConflicts(t *testing.T) {
	loc := melbourne(t)
	reason := "uni"

	saturdayEvening := RecurringRule{ID: "rule-sat", StaffID: staffA, DayOfWeek: 6, StartTime: "17:00:00", EndTime: "23:00:00", Reason: &reason}
	fridayOvernight := RecurringRule{ID: "rule-fri", StaffID: staffA, DayOfWeek: 5, StartTime: "22:00", EndTime: "02:00"}

	t.Run("weekly rule overlaps", func(t *testing.T) {
		got, err := Conflicts(staffA,
			time.Date(2024, 6, 8, 18, 0, 0, 0, loc), time.Date(2024, 6, 8, 22, 0, 0, 0, loc),
			nil, []RecurringRule{saturdayEvening}, nil, loc)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, KindRecurring, got[0].Kind)
		assert.Contains(t, got[0].Warning(), "(uni)")
	})

	t.Run("weekly rule on another day", func(t *testing.T) {
		got, err := Conflicts(staffA,
			time.Date(2024, 6, 7, 18, 0, 0, 0, loc), time.Date(2024, 6, 7, 21, 0, 0, 0, loc),
			nil, []RecurringRule{saturdayEvening}, nil, loc)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("overnight rule spills into next morning", func(t *testing.T) {
		got, err := Conflicts(staffA,
			time.Date(2024, 6, 8, 1, 0, 0, 0, loc), time.Date(2024, 6, 8, 5, 0, 0, 0, loc),
			nil, []RecurringRule{fridayOvernight}, nil, loc)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].Start.Equal(time.Date(2024, 6, 7, 22, 0, 0, 0, loc)))
		assert.True(t, got[0].End.Equal(time.Date(2024, 6, 8, 2, 0, 0, 0, loc)))
	})

	t.Run("skipped rule is ignored for that week only", func(t *testing.T) {
		skips := []RecurringSkip{{RuleID: "rule-sat", WeekStart: time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC)}}

		got, err := Conflicts(staffA,
			time.Date(2024, 6, 8, 18, 0, 0, 0, loc), time.Date(2024, 6, 8, 22, 0, 0, 0, loc),
			nil, []RecurringRule{saturdayEvening}, skips, loc)
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = Conflicts(staffA,
			time.Date(2024, 6, 15, 18, 0, 0, 0, loc), time.Date(2024, 6, 15, 22, 0, 0, 0, loc),
			nil, []RecurringRule{saturdayEvening}, skips, loc)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("one-off block and touching edges", func(t *testing.T) {
		blocks := []Block{
			{ID: "b1", StaffID: staffA, StartAt: time.Date(2024, 6, 10, 8, 0, 0, 0, loc), EndAt: time.Date(2024, 6, 10, 12, 0, 0, 0, loc)},
			{ID: "b2", StaffID: staffA, StartAt: time.Date(2024, 6, 10, 17, 0, 0, 0, loc), EndAt: time.Date(2024, 6, 10, 20, 0, 0, 0, loc)},
			{ID: "b3", StaffID: "someone-else", StartAt: time.Date(2024, 6, 10, 8, 0, 0, 0, loc), EndAt: time.Date(2024, 6, 10, 20, 0, 0, 0, loc)},
		}
		got, err := Conflicts(staffA,
			time.Date(2024, 6, 10, 11, 0, 0, 0, loc), time.Date(2024, 6, 10, 17, 0, 0, 0, loc),
			blocks, nil, nil, loc)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "b1", got[0].SourceID)
		assert.Equal(t, KindOneOff, got[0].Kind)
	})

	t.Run("bad rule time surfaces an error", func(t *testing.T) {
		bad := RecurringRule{ID: "bad", StaffID: staffA, DayOfWeek: 1, StartTime: "25:00", EndTime: "02:00"}
		_, err := Conflicts(staffA,
			time.Date(2024, 6, 10, 9, 0, 0, 0, loc), time.Date(2024, 6, 10, 17, 0, 0, 0, loc),
			nil, []RecurringRule{bad}, nil, loc)
		assert.Error(t, err)
	})
}
