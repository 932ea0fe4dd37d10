package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustPunchRequestValidate(t *testing.T) {
	valid := func() AdjustPunchRequest {
		return AdjustPunchRequest{
			PunchID:          "0190c2a4-0000-7000-8000-000000000001",
			AdjustedClockIn:  "2024-03-04T09:00:00+11:00",
			AdjustedClockOut: "2024-03-04T17:00:00+11:00",
			Reason:           "  forgot to clock out  ",
		}
	}

	t.Run("valid request trims reason and parses times", func(t *testing.T) {
		req := valid()
		require.NoError(t, req.Validate())
		assert.Equal(t, "forgot to clock out", req.Reason)
		assert.Equal(t, 8*time.Hour, req.AdjustedOut.Sub(req.AdjustedIn))
		assert.Nil(t, req.Expected)
	})

	t.Run("whitespace reason is rejected", func(t *testing.T) {
		req := valid()
		req.Reason = "   "
		err := req.Validate()
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "reason")
	})

	t.Run("missing times are rejected", func(t *testing.T) {
		req := valid()
		req.AdjustedClockIn = ""
		req.AdjustedClockOut = "not-a-time"
		err := req.Validate()
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		m := verrs.ToMap()
		assert.Equal(t, "adjusted_clock_in_at is required", m["adjusted_clock_in_at"])
		assert.Contains(t, m, "adjusted_clock_out_at")
	})

	t.Run("out before in is accepted", func(t *testing.T) {
		req := valid()
		req.AdjustedClockIn, req.AdjustedClockOut = req.AdjustedClockOut, req.AdjustedClockIn
		assert.NoError(t, req.Validate())
	})

	t.Run("expected updated_at is parsed", func(t *testing.T) {
		req := valid()
		ts := "2024-03-05T01:02:03Z"
		req.ExpectedUpdatedAt = &ts
		require.NoError(t, req.Validate())
		require.NotNil(t, req.Expected)
		assert.Equal(t, 2024, req.Expected.Year())
	})
}

func TestPunchState(t *testing.T) {
	in := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	out := in.Add(8 * time.Hour)

	assert.Equal(t, StateNotStarted, Punch{}.State())
	assert.Equal(t, StateOpen, Punch{ClockIn: &in}.State())
	assert.Equal(t, StateClosed, Punch{ClockIn: &in, ClockOut: &out}.State())

	// adjusting an open punch leaves it open
	adjusted := Punch{ClockIn: &in, AdjustedClockIn: &in, AdjustedClockOut: &out}
	assert.Equal(t, StateOpen, adjusted.State())
	assert.True(t, adjusted.IsAdjusted())
	assert.False(t, Punch{ClockIn: &in, AdjustedClockIn: &in}.IsAdjusted())
}

func TestProposeRosterAdjustment(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	s := shift.Shift{ID: "shift-1", Start: start, End: start.Add(8 * time.Hour), BreakMinutes: 30}

	got := ProposeRosterAdjustment(s)
	assert.Equal(t, "shift-1", got.ShiftID)
	assert.True(t, got.AdjustedClockIn.Equal(s.Start))
	assert.True(t, got.AdjustedClockOut.Equal(s.End))
}

func TestClockInRequestValidate(t *testing.T) {
	kiosk := "kiosk-1"
	assert.NoError(t, (&ClockInRequest{DeviceTag: &kiosk}).Validate())

	reserved := DeviceTagManualCreate
	var verrs validator.ValidationErrors
	require.ErrorAs(t, (&ClockInRequest{DeviceTag: &reserved}).Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "device_tag")
}
