package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
)

// ========================================
// CLOCK DTOs
// ========================================

type ClockInRequest struct {
	ShiftID   *string `json:"shift_id,omitempty"`
	DeviceTag *string `json:"device_tag,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ShiftID != nil && !validator.IsValidUUID(*r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID",
		})
	}
	if r.DeviceTag != nil && len(*r.DeviceTag) > 64 {
		errs = append(errs, validator.ValidationError{
			Field:   "device_tag",
			Message: "device_tag must not exceed 64 characters",
		})
	}
	if r.DeviceTag != nil && *r.DeviceTag == DeviceTagManualCreate {
		errs = append(errs, validator.ValidationError{
			Field:   "device_tag",
			Message: "device_tag " + DeviceTagManualCreate + " is reserved",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListPunchesRequest struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	StaffID *string `json:"staff_id,omitempty"`
}

func (r *ListPunchesRequest) Validate() error {
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
	if r.StaffID != nil && !validator.IsValidUUID(*r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// ADJUSTMENT DTOs
// ========================================

type CreatePunchFromShiftRequest struct {
	ShiftID string `json:"shift_id"`
}

func (r *CreatePunchFromShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdjustPunchRequest struct {
	PunchID           string  `json:"-"`
	AdjustedClockIn   string  `json:"adjusted_clock_in_at"`
	AdjustedClockOut  string  `json:"adjusted_clock_out_at"`
	Reason            string  `json:"reason"`
	ExpectedUpdatedAt *string `json:"expected_updated_at,omitempty"`

	AdjustedIn  time.Time  `json:"-"`
	AdjustedOut time.Time  `json:"-"`
	Expected    *time.Time `json:"-"`
}

// Validate requires both adjusted times and a non-blank reason. The order of
// the two times is deliberately not checked; the resolver clamps negatives.
func (r *AdjustPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PunchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "punch id is required",
		})
	}

	in, inOK := validator.IsValidDateTime(r.AdjustedClockIn)
	if validator.IsEmpty(r.AdjustedClockIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "adjusted_clock_in_at",
			Message: "adjusted_clock_in_at is required",
		})
	} else if !inOK {
		errs = append(errs, validator.ValidationError{
			Field:   "adjusted_clock_in_at",
			Message: "adjusted_clock_in_at must be a valid ISO8601 timestamp",
		})
	}

	out, outOK := validator.IsValidDateTime(r.AdjustedClockOut)
	if validator.IsEmpty(r.AdjustedClockOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "adjusted_clock_out_at",
			Message: "adjusted_clock_out_at is required",
		})
	} else if !outOK {
		errs = append(errs, validator.ValidationError{
			Field:   "adjusted_clock_out_at",
			Message: "adjusted_clock_out_at must be a valid ISO8601 timestamp",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	var expected *time.Time
	if r.ExpectedUpdatedAt != nil {
		if t, ok := validator.IsValidDateTime(*r.ExpectedUpdatedAt); ok {
			expected = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "expected_updated_at",
				Message: "expected_updated_at must be a valid ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	r.AdjustedIn, r.AdjustedOut, r.Expected = in, out, expected
	r.Reason = strings.TrimSpace(r.Reason)
	return nil
}

// RosterProposal is an adjustment pre-filled from the roster.
type RosterProposal struct {
	ShiftID          string
	AdjustedClockIn  time.Time
	AdjustedClockOut time.Time
}

// ProposeRosterAdjustment copies the shift's scheduled times into an
// adjustment draft. Nothing is persisted.
func ProposeRosterAdjustment(s shift.Shift) RosterProposal {
	return RosterProposal{
		ShiftID:          s.ID,
		AdjustedClockIn:  s.Start,
		AdjustedClockOut: s.End,
	}
}

// ========================================
// RESPONSES
// ========================================

type PunchResponse struct {
	ID                 string     `json:"id"`
	ShiftID            *string    `json:"shift_id"`
	StaffID            string     `json:"staff_id"`
	ClockInAt          *time.Time `json:"clock_in_at"`
	ClockOutAt         *time.Time `json:"clock_out_at"`
	AdjustedClockInAt  *time.Time `json:"adjusted_clock_in_at"`
	AdjustedClockOutAt *time.Time `json:"adjusted_clock_out_at"`
	AdjustedReason     *string    `json:"adjusted_reason"`
	AdjustedBy         *string    `json:"adjusted_by"`
	AdjustedAt         *time.Time `json:"adjusted_at"`
	DeviceTag          string     `json:"device_tag"`
	State              State      `json:"state"`
	Adjusted           bool       `json:"adjusted"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func NewPunchResponse(p Punch) PunchResponse {
	return PunchResponse{
		ID:                 p.ID,
		ShiftID:            p.ShiftID,
		StaffID:            p.StaffID,
		ClockInAt:          p.ClockIn,
		ClockOutAt:         p.ClockOut,
		AdjustedClockInAt:  p.AdjustedClockIn,
		AdjustedClockOutAt: p.AdjustedClockOut,
		AdjustedReason:     p.AdjustedReason,
		AdjustedBy:         p.AdjustedBy,
		AdjustedAt:         p.AdjustedAt,
		DeviceTag:          p.DeviceTag,
		State:              p.State(),
		Adjusted:           p.IsAdjusted(),
		UpdatedAt:          p.UpdatedAt,
	}
}

type ClockStatus string

const (
	ClockStatusOnShift  ClockStatus = "ON_SHIFT"
	ClockStatusOffShift ClockStatus = "OFF_SHIFT"
)

type ClockStatusResponse struct {
	Status    ClockStatus    `json:"status"`
	OpenPunch *PunchResponse `json:"open_punch"`
}

type RosterProposalResponse struct {
	ShiftID            string    `json:"shift_id"`
	AdjustedClockInAt  time.Time `json:"adjusted_clock_in_at"`
	AdjustedClockOutAt time.Time `json:"adjusted_clock_out_at"`
}
