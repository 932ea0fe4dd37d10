package payroll

import (
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

// DayType selects which of a staff member's three rates applies.
type DayType string

const (
	DayTypeWeekday  DayType = "WEEKDAY"
	DayTypeSaturday DayType = "SATURDAY"
	DayTypeSunday   DayType = "SUNDAY"
)

var DayTypes = []DayType{DayTypeWeekday, DayTypeSaturday, DayTypeSunday}

// Source records which tier produced a shift's worked minutes.
type Source string

const (
	SourceAdjusted Source = "ADJUSTED"
	SourceRaw      Source = "RAW"
	SourceRoster   Source = "ROSTER"
	SourceNone     Source = "NONE"
)

// ResolvedShift is one shift after matching, resolution, classification and
// rate lookup. Nil pointers mean "unknown", never zero.
type ResolvedShift struct {
	Shift     shift.Shift
	Punch     *attendance.Punch
	StaffName string
	LocalDate string
	DayType   DayType

	RosterMinutes   *int
	RawMinutes      *int
	AdjustedMinutes *int
	Minutes         *int
	Source          Source

	Rate  *decimal.Decimal
	Hours *decimal.Decimal
	Pay   *decimal.Decimal
}

// DayTypeTotals is one staff member's subtotal for one day type.
type DayTypeTotals struct {
	Minutes int
	Hours   decimal.Decimal
	Rate    *decimal.Decimal
	Pay     *decimal.Decimal
}

type StaffSummary struct {
	StaffID       string
	StaffName     string
	ByDayType     map[DayType]DayTypeTotals
	ShiftCount    int
	TotalMinutes  int
	TotalHours    decimal.Decimal
	TotalPay      decimal.Decimal
	HasUnknownPay bool
}

// DailyTotal is the roster-week style per-day line.
type DailyTotal struct {
	Date       string
	ShiftCount int
	Minutes    int
	Hours      decimal.Decimal
	Pay        decimal.Decimal
}

type StoreTotals struct {
	ShiftCount      int
	TotalMinutes    int
	TotalHours      decimal.Decimal
	TotalPay        decimal.Decimal
	UnknownPayCount int
	BySource        map[Source]int
}

type Report struct {
	From     string
	To       string
	StaffID  *string
	Rows     []ResolvedShift
	PerStaff []StaffSummary
	Daily    []DailyTotal
	Store    StoreTotals
}
