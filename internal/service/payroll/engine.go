package payroll

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/payrate"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

// PunchWindow is how far either side of a shift an unlinked punch may start
// and still be considered for that shift.
const PunchWindow = 6 * time.Hour

const dateLayout = "2006-01-02"

var sixty = decimal.NewFromInt(60)

// Calculator turns shifts, punches and pay rates into payroll figures. It
// holds no state besides the business time zone; every method is a pure
// function of its arguments.
type Calculator struct {
	loc *time.Location
}

// NewCalculator returns a Calculator that counts business days in loc.
func NewCalculator(loc *time.Location) *Calculator {
	return &Calculator{loc: loc}
}

// Location returns the business time zone.
func (c *Calculator) Location() *time.Location {
	return c.loc
}

// Range converts inclusive local dates into [start, endExclusive): local
// midnight of from up to local midnight of the day after to.
func (c *Calculator) Range(from, to string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, from, c.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from: %v", payroll.ErrInvalidPeriod, err)
	}
	last, err := time.ParseInLocation(dateLayout, to, c.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to: %v", payroll.ErrInvalidPeriod, err)
	}
	if last.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to is before from", payroll.ErrInvalidPeriod)
	}
	return start, last.AddDate(0, 0, 1), nil
}

// MatchPunch picks the punch that belongs to s. A punch linked by shift id
// always wins. Otherwise the staff member's punch whose clock-in is nearest
// to the shift start, within PunchWindow of the shift, is chosen; ties keep
// input order. Shifts are matched independently, so one punch can be picked
// by two overlapping shifts.
func (c *Calculator) MatchPunch(s shift.Shift, punches []attendance.Punch) *attendance.Punch {
	byShift := make(map[string]attendance.Punch)
	var staffPunches []attendance.Punch
	for _, p := range punches {
		if p.ShiftID != nil {
			if _, ok := byShift[*p.ShiftID]; !ok {
				byShift[*p.ShiftID] = p
			}
		}
		if p.StaffID == s.StaffID {
			staffPunches = append(staffPunches, p)
		}
	}
	return c.matchPunch(s, byShift, staffPunches)
}

func (c *Calculator) matchPunch(s shift.Shift, byShift map[string]attendance.Punch, staffPunches []attendance.Punch) *attendance.Punch {
	if p, ok := byShift[s.ID]; ok {
		return &p
	}
	if !s.HasTimes() {
		return nil
	}

	windowStart := s.Start.Add(-PunchWindow)
	windowEnd := s.End.Add(PunchWindow)

	var best *attendance.Punch
	var bestDistance time.Duration
	for i := range staffPunches {
		p := staffPunches[i]
		if p.StaffID != s.StaffID || p.ClockIn == nil {
			continue
		}
		in := *p.ClockIn
		if in.Before(windowStart) || in.After(windowEnd) {
			continue
		}
		distance := absDuration(in.Sub(s.Start))
		if best == nil || distance < bestDistance {
			best = &p
			bestDistance = distance
		}
	}
	return best
}

// Resolution is the outcome of the duration fallback for one shift.
type Resolution struct {
	RosterMinutes   *int
	RawMinutes      *int
	AdjustedMinutes *int
	Minutes         *int
	Source          payroll.Source
}

// ResolveMinutes applies adjusted -> raw -> roster, each net of the shift's
// break and clamped at zero. p may be nil.
func (c *Calculator) ResolveMinutes(s shift.Shift, p *attendance.Punch) Resolution {
	var res Resolution

	if s.HasTimes() {
		res.RosterMinutes = netMinutes(&s.Start, &s.End, s.BreakMinutes)
	}
	if p != nil {
		res.RawMinutes = netMinutes(p.ClockIn, p.ClockOut, s.BreakMinutes)
		res.AdjustedMinutes = netMinutes(p.AdjustedClockIn, p.AdjustedClockOut, s.BreakMinutes)
	}

	switch {
	case res.AdjustedMinutes != nil:
		res.Minutes, res.Source = res.AdjustedMinutes, payroll.SourceAdjusted
	case res.RawMinutes != nil:
		res.Minutes, res.Source = res.RawMinutes, payroll.SourceRaw
	case res.RosterMinutes != nil:
		res.Minutes, res.Source = res.RosterMinutes, payroll.SourceRoster
	default:
		res.Source = payroll.SourceNone
	}
	return res
}

// ClassifyDay uses the weekday of t in the business time zone.
func (c *Calculator) ClassifyDay(t time.Time) payroll.DayType {
	switch t.In(c.loc).Weekday() {
	case time.Sunday:
		return payroll.DayTypeSunday
	case time.Saturday:
		return payroll.DayTypeSaturday
	default:
		return payroll.DayTypeWeekday
	}
}

// RateFor returns nil when the staff member has no pay rate row.
func (c *Calculator) RateFor(rates map[string]payrate.PayRate, staffID string, dayType payroll.DayType) *decimal.Decimal {
	rate, ok := rates[staffID]
	if !ok {
		return nil
	}
	var r decimal.Decimal
	switch dayType {
	case payroll.DayTypeSunday:
		r = rate.SundayRate
	case payroll.DayTypeSaturday:
		r = rate.SaturdayRate
	default:
		r = rate.WeekdayRate
	}
	return &r
}

// ComputePay returns hours rounded to 2dp and pay = round2(hours x rate).
// Either result is nil when its inputs are unknown.
func (c *Calculator) ComputePay(minutes *int, rate *decimal.Decimal) (hours *decimal.Decimal, pay *decimal.Decimal) {
	if minutes == nil {
		return nil, nil
	}
	h := minutesToHours(*minutes)
	if rate == nil {
		return &h, nil
	}
	p := h.Mul(*rate).Round(2)
	return &h, &p
}

// AggregateInput is everything one payroll view needs, already fetched.
type AggregateInput struct {
	From     string
	To       string
	StaffID  *string
	Shifts   []shift.Shift
	Punches  []attendance.Punch
	Profiles []profile.Profile
	PayRates []payrate.PayRate
}

// Aggregate resolves every shift that starts inside the local date range and
// rolls the rows up per staff member, per day and for the whole store.
// Minutes are summed as integers and only converted at the end.
func (c *Calculator) Aggregate(in AggregateInput) (payroll.Report, error) {
	start, end, err := c.Range(in.From, in.To)
	if err != nil {
		return payroll.Report{}, err
	}

	names := make(map[string]string, len(in.Profiles))
	for _, p := range in.Profiles {
		names[p.ID] = p.DisplayName()
	}
	rates := make(map[string]payrate.PayRate, len(in.PayRates))
	for _, r := range in.PayRates {
		rates[r.StaffID] = r
	}
	byShift := make(map[string]attendance.Punch)
	byStaff := make(map[string][]attendance.Punch)
	for _, p := range in.Punches {
		if p.ShiftID != nil {
			if _, ok := byShift[*p.ShiftID]; !ok {
				byShift[*p.ShiftID] = p
			}
		}
		byStaff[p.StaffID] = append(byStaff[p.StaffID], p)
	}

	shifts := make([]shift.Shift, 0, len(in.Shifts))
	for _, s := range in.Shifts {
		if in.StaffID != nil && s.StaffID != *in.StaffID {
			continue
		}
		if s.Start.Before(start) || !s.Start.Before(end) {
			continue
		}
		shifts = append(shifts, s)
	}
	sort.SliceStable(shifts, func(i, j int) bool {
		if !shifts[i].Start.Equal(shifts[j].Start) {
			return shifts[i].Start.Before(shifts[j].Start)
		}
		return shifts[i].ID < shifts[j].ID
	})

	report := payroll.Report{
		From:    in.From,
		To:      in.To,
		StaffID: in.StaffID,
		Rows:    make([]payroll.ResolvedShift, 0, len(shifts)),
	}

	for _, s := range shifts {
		punch := c.matchPunch(s, byShift, byStaff[s.StaffID])
		res := c.ResolveMinutes(s, punch)
		dayType := c.ClassifyDay(s.Start)
		rate := c.RateFor(rates, s.StaffID, dayType)
		hours, pay := c.ComputePay(res.Minutes, rate)

		report.Rows = append(report.Rows, payroll.ResolvedShift{
			Shift:           s,
			Punch:           punch,
			StaffName:       staffName(names, s.StaffID),
			LocalDate:       s.Start.In(c.loc).Format(dateLayout),
			DayType:         dayType,
			RosterMinutes:   res.RosterMinutes,
			RawMinutes:      res.RawMinutes,
			AdjustedMinutes: res.AdjustedMinutes,
			Minutes:         res.Minutes,
			Source:          res.Source,
			Rate:            rate,
			Hours:           hours,
			Pay:             pay,
		})
	}

	report.PerStaff = c.summarizeStaff(report.Rows, rates)
	report.Daily = c.summarizeDays(report.Rows, start, end)
	report.Store = summarizeStore(report.Rows)
	return report, nil
}

func (c *Calculator) summarizeStaff(rows []payroll.ResolvedShift, rates map[string]payrate.PayRate) []payroll.StaffSummary {
	type acc struct {
		summary payroll.StaffSummary
		minutes map[payroll.DayType]int
	}
	byStaff := make(map[string]*acc)
	var order []string

	for _, row := range rows {
		a, ok := byStaff[row.Shift.StaffID]
		if !ok {
			a = &acc{
				summary: payroll.StaffSummary{StaffID: row.Shift.StaffID, StaffName: row.StaffName},
				minutes: make(map[payroll.DayType]int),
			}
			byStaff[row.Shift.StaffID] = a
			order = append(order, row.Shift.StaffID)
		}
		a.summary.ShiftCount++
		if row.Minutes != nil {
			a.minutes[row.DayType] += *row.Minutes
			a.summary.TotalMinutes += *row.Minutes
		}
		if row.Pay == nil {
			a.summary.HasUnknownPay = true
		}
	}

	out := make([]payroll.StaffSummary, 0, len(order))
	for _, id := range order {
		a := byStaff[id]
		a.summary.ByDayType = make(map[payroll.DayType]payroll.DayTypeTotals, len(payroll.DayTypes))
		total := decimal.Zero
		for _, dt := range payroll.DayTypes {
			m := a.minutes[dt]
			t := payroll.DayTypeTotals{
				Minutes: m,
				Hours:   minutesToHours(m),
				Rate:    c.RateFor(rates, id, dt),
			}
			if t.Rate != nil {
				p := decimal.NewFromInt(int64(m)).Div(sixty).Mul(*t.Rate).Round(2)
				t.Pay = &p
				total = total.Add(p)
			}
			a.summary.ByDayType[dt] = t
		}
		a.summary.TotalHours = minutesToHours(a.summary.TotalMinutes)
		a.summary.TotalPay = total.Round(2)
		out = append(out, a.summary)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ni, nj := strings.ToLower(out[i].StaffName), strings.ToLower(out[j].StaffName)
		if ni != nj {
			return ni < nj
		}
		return out[i].StaffID < out[j].StaffID
	})
	return out
}

// summarizeDays emits one line per local date in [start, end), including
// days with no shifts.
func (c *Calculator) summarizeDays(rows []payroll.ResolvedShift, start, end time.Time) []payroll.DailyTotal {
	type acc struct {
		count   int
		minutes int
		pay     decimal.Decimal
	}
	byDate := make(map[string]*acc)
	for _, row := range rows {
		a, ok := byDate[row.LocalDate]
		if !ok {
			a = &acc{pay: decimal.Zero}
			byDate[row.LocalDate] = a
		}
		a.count++
		if row.Minutes != nil {
			a.minutes += *row.Minutes
		}
		if row.Pay != nil {
			a.pay = a.pay.Add(*row.Pay)
		}
	}

	var out []payroll.DailyTotal
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		line := payroll.DailyTotal{Date: key, Hours: decimal.Zero, Pay: decimal.Zero}
		if a, ok := byDate[key]; ok {
			line.ShiftCount = a.count
			line.Minutes = a.minutes
			line.Hours = minutesToHours(a.minutes)
			line.Pay = a.pay.Round(2)
		}
		out = append(out, line)
	}
	return out
}

// summarizeStore counts hours for every resolved row but pay only for rows
// whose pay is known.
func summarizeStore(rows []payroll.ResolvedShift) payroll.StoreTotals {
	totals := payroll.StoreTotals{
		ShiftCount: len(rows),
		BySource: map[payroll.Source]int{
			payroll.SourceAdjusted: 0,
			payroll.SourceRaw:      0,
			payroll.SourceRoster:   0,
			payroll.SourceNone:     0,
		},
	}
	pay := decimal.Zero
	for _, row := range rows {
		totals.BySource[row.Source]++
		if row.Minutes != nil {
			totals.TotalMinutes += *row.Minutes
		}
		if row.Pay != nil {
			pay = pay.Add(*row.Pay)
		} else {
			totals.UnknownPayCount++
		}
	}
	totals.TotalHours = minutesToHours(totals.TotalMinutes)
	totals.TotalPay = pay.Round(2)
	return totals
}

// netMinutes is max(0, round(b-a in minutes) - breakMinutes), or nil when
// either end is missing.
func netMinutes(a, b *time.Time, breakMinutes int) *int {
	if a == nil || b == nil {
		return nil
	}
	between := int(math.Round(b.Sub(*a).Minutes()))
	if between < 0 {
		between = 0
	}
	net := between - breakMinutes
	if net < 0 {
		net = 0
	}
	return &net
}

func minutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty).Round(2)
}

func staffName(names map[string]string, staffID string) string {
	if name, ok := names[staffID]; ok {
		return name
	}
	return profile.Profile{ID: staffID}.DisplayName()
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
