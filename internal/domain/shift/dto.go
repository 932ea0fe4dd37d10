package shift

import (
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
)

type ListShiftsRequest struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	StaffID *string `json:"staff_id,omitempty"`
}

func (r *ListShiftsRequest) Validate() error {
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

type CreateShiftRequest struct {
	StaffID      string `json:"staff_id"`
	Start        string `json:"start"`
	End          string `json:"end"`
	BreakMinutes *int   `json:"break_minutes,omitempty"`

	StartAt time.Time `json:"-"`
	EndAt   time.Time `json:"-"`
}

// Validate checks the payload and fills StartAt/EndAt.
func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	} else if !validator.IsValidUUID(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id must be a valid UUID",
		})
	}

	errs = append(errs, validateShiftTimes(r.Start, r.End, r.BreakMinutes, &r.StartAt, &r.EndAt)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	ID           string `json:"-"`
	Start        string `json:"start"`
	End          string `json:"end"`
	BreakMinutes *int   `json:"break_minutes,omitempty"`

	StartAt time.Time `json:"-"`
	EndAt   time.Time `json:"-"`
}

// Validate checks the payload and fills StartAt/EndAt.
func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "shift id is required",
		})
	}

	errs = append(errs, validateShiftTimes(r.Start, r.End, r.BreakMinutes, &r.StartAt, &r.EndAt)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateShiftTimes(start, end string, breakMinutes *int, startAt, endAt *time.Time) validator.ValidationErrors {
	var errs validator.ValidationErrors

	s, startOK := validator.IsValidDateTime(start)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start must be a valid ISO8601 timestamp",
		})
	}
	e, endOK := validator.IsValidDateTime(end)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must be a valid ISO8601 timestamp",
		})
	}
	if startOK && endOK && !e.After(s) {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: ErrInvalidShiftRange.Error(),
		})
	}
	if breakMinutes != nil && *breakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must not be negative",
		})
	}

	if startOK && endOK {
		*startAt = s
		*endAt = e
	}
	return errs
}

type ShiftResponse struct {
	ID               string    `json:"id"`
	StaffID          string    `json:"staff_id"`
	StaffName        string    `json:"staff_name"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	BreakMinutes     int       `json:"break_minutes"`
	ScheduledMinutes int       `json:"scheduled_minutes"`
}

type ShiftMutationResponse struct {
	Shift    ShiftResponse `json:"shift"`
	Warnings []string      `json:"warnings"`
}
