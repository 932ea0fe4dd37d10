package payroll

import (
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ComputePayrollRequest struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	StaffID *string `json:"staff_id,omitempty"`
}

func (r *ComputePayrollRequest) Validate() error {
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

type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ========================================
// RESPONSES
// ========================================

type ShiftRowResponse struct {
	ShiftID         string           `json:"shift_id"`
	StaffID         string           `json:"staff_id"`
	StaffName       string           `json:"staff_name"`
	Date            string           `json:"date"`
	DayType         DayType          `json:"day_type"`
	ShiftStart      time.Time        `json:"shift_start"`
	ShiftEnd        time.Time        `json:"shift_end"`
	BreakMinutes    int              `json:"break_minutes"`
	PunchID         *string          `json:"punch_id"`
	ClockInAt       *time.Time       `json:"clock_in_at"`
	ClockOutAt      *time.Time       `json:"clock_out_at"`
	AdjustedInAt    *time.Time       `json:"adjusted_clock_in_at"`
	AdjustedOutAt   *time.Time       `json:"adjusted_clock_out_at"`
	AdjustedReason  *string          `json:"adjusted_reason"`
	RosterMinutes   *int             `json:"roster_minutes"`
	RawMinutes      *int             `json:"raw_minutes"`
	AdjustedMinutes *int             `json:"adjusted_minutes"`
	Minutes         *int             `json:"minutes"`
	Source          Source           `json:"source"`
	Hours           *decimal.Decimal `json:"hours"`
	Rate            *decimal.Decimal `json:"rate"`
	Pay             *decimal.Decimal `json:"pay"`
}

type DayTypeTotalsResponse struct {
	Minutes int              `json:"minutes"`
	Hours   decimal.Decimal  `json:"hours"`
	Rate    *decimal.Decimal `json:"rate"`
	Pay     *decimal.Decimal `json:"pay"`
}

type StaffSummaryResponse struct {
	StaffID       string                `json:"staff_id"`
	StaffName     string                `json:"staff_name"`
	Weekday       DayTypeTotalsResponse `json:"weekday"`
	Saturday      DayTypeTotalsResponse `json:"saturday"`
	Sunday        DayTypeTotalsResponse `json:"sunday"`
	ShiftCount    int                   `json:"shift_count"`
	TotalMinutes  int                   `json:"total_minutes"`
	TotalHours    decimal.Decimal       `json:"total_hours"`
	TotalPay      decimal.Decimal       `json:"total_pay"`
	HasUnknownPay bool                  `json:"has_unknown_pay"`
}

type DailyTotalResponse struct {
	Date       string          `json:"date"`
	ShiftCount int             `json:"shift_count"`
	Minutes    int             `json:"minutes"`
	Hours      decimal.Decimal `json:"hours"`
	Pay        decimal.Decimal `json:"pay"`
}

type StoreTotalsResponse struct {
	ShiftCount      int             `json:"shift_count"`
	TotalMinutes    int             `json:"total_minutes"`
	TotalHours      decimal.Decimal `json:"total_hours"`
	TotalPay        decimal.Decimal `json:"total_pay"`
	UnknownPayCount int             `json:"unknown_pay_count"`
	BySource        map[Source]int  `json:"by_source"`
}

type PayrollReportResponse struct {
	From     string                 `json:"from"`
	To       string                 `json:"to"`
	StaffID  *string                `json:"staff_id"`
	Shifts   []ShiftRowResponse     `json:"shifts"`
	PerStaff []StaffSummaryResponse `json:"per_staff"`
	Daily    []DailyTotalResponse   `json:"daily"`
	Store    StoreTotalsResponse    `json:"store"`
}

func NewPayrollReportResponse(r Report) PayrollReportResponse {
	resp := PayrollReportResponse{
		From:     r.From,
		To:       r.To,
		StaffID:  r.StaffID,
		Shifts:   make([]ShiftRowResponse, 0, len(r.Rows)),
		PerStaff: make([]StaffSummaryResponse, 0, len(r.PerStaff)),
		Daily:    make([]DailyTotalResponse, 0, len(r.Daily)),
		Store: StoreTotalsResponse{
			ShiftCount:      r.Store.ShiftCount,
			TotalMinutes:    r.Store.TotalMinutes,
			TotalHours:      r.Store.TotalHours,
			TotalPay:        r.Store.TotalPay,
			UnknownPayCount: r.Store.UnknownPayCount,
			BySource:        r.Store.BySource,
		},
	}

	for _, row := range r.Rows {
		item := ShiftRowResponse{
			ShiftID:         row.Shift.ID,
			StaffID:         row.Shift.StaffID,
			StaffName:       row.StaffName,
			Date:            row.LocalDate,
			DayType:         row.DayType,
			ShiftStart:      row.Shift.Start,
			ShiftEnd:        row.Shift.End,
			BreakMinutes:    row.Shift.BreakMinutes,
			RosterMinutes:   row.RosterMinutes,
			RawMinutes:      row.RawMinutes,
			AdjustedMinutes: row.AdjustedMinutes,
			Minutes:         row.Minutes,
			Source:          row.Source,
			Hours:           row.Hours,
			Rate:            row.Rate,
			Pay:             row.Pay,
		}
		if row.Punch != nil {
			id := row.Punch.ID
			item.PunchID = &id
			item.ClockInAt = row.Punch.ClockIn
			item.ClockOutAt = row.Punch.ClockOut
			item.AdjustedInAt = row.Punch.AdjustedClockIn
			item.AdjustedOutAt = row.Punch.AdjustedClockOut
			item.AdjustedReason = row.Punch.AdjustedReason
		}
		resp.Shifts = append(resp.Shifts, item)
	}

	for _, s := range r.PerStaff {
		resp.PerStaff = append(resp.PerStaff, StaffSummaryResponse{
			StaffID:       s.StaffID,
			StaffName:     s.StaffName,
			Weekday:       newDayTypeTotalsResponse(s.ByDayType[DayTypeWeekday]),
			Saturday:      newDayTypeTotalsResponse(s.ByDayType[DayTypeSaturday]),
			Sunday:        newDayTypeTotalsResponse(s.ByDayType[DayTypeSunday]),
			ShiftCount:    s.ShiftCount,
			TotalMinutes:  s.TotalMinutes,
			TotalHours:    s.TotalHours,
			TotalPay:      s.TotalPay,
			HasUnknownPay: s.HasUnknownPay,
		})
	}

	for _, d := range r.Daily {
		resp.Daily = append(resp.Daily, DailyTotalResponse{
			Date:       d.Date,
			ShiftCount: d.ShiftCount,
			Minutes:    d.Minutes,
			Hours:      d.Hours,
			Pay:        d.Pay,
		})
	}

	return resp
}

func newDayTypeTotalsResponse(t DayTypeTotals) DayTypeTotalsResponse {
	return DayTypeTotalsResponse{Minutes: t.Minutes, Hours: t.Hours, Rate: t.Rate, Pay: t.Pay}
}
