package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	sheetShifts  = "Shifts"
	sheetStaff   = "Staff Summary"
	sheetDaily   = "Daily"
	unknownCell  = "-"
	exportLayout = "2006-01-02 15:04"
)

// renderWorkbook writes the report as three sheets. Unknown values are
// rendered as "-" so they cannot be mistaken for zero.
func renderWorkbook(report payroll.Report, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetShifts); err != nil {
		return nil, err
	}
	for _, name := range []string{sheetStaff, sheetDaily} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	shiftRows := [][]any{{
		"Date", "Day type", "Staff", "Shift start", "Shift end", "Break (min)",
		"Clock in", "Clock out", "Adjusted in", "Adjusted out", "Adjust reason",
		"Source", "Minutes", "Hours", "Rate", "Pay",
	}}
	for _, row := range report.Rows {
		line := []any{
			row.LocalDate,
			string(row.DayType),
			row.StaffName,
			row.Shift.Start.In(loc).Format(exportLayout),
			row.Shift.End.In(loc).Format(exportLayout),
			row.Shift.BreakMinutes,
			unknownCell, unknownCell, unknownCell, unknownCell, unknownCell,
			string(row.Source),
			intCell(row.Minutes),
			decimalCell(row.Hours),
			decimalCell(row.Rate),
			decimalCell(row.Pay),
		}
		if p := row.Punch; p != nil {
			line[6] = timeCell(p.ClockIn, loc)
			line[7] = timeCell(p.ClockOut, loc)
			line[8] = timeCell(p.AdjustedClockIn, loc)
			line[9] = timeCell(p.AdjustedClockOut, loc)
			if p.AdjustedReason != nil {
				line[10] = *p.AdjustedReason
			}
		}
		shiftRows = append(shiftRows, line)
	}
	shiftRows = append(shiftRows, []any{
		"TOTAL", "", "", "", "", "", "", "", "", "", "", "",
		report.Store.TotalMinutes,
		report.Store.TotalHours.InexactFloat64(),
		"",
		report.Store.TotalPay.InexactFloat64(),
	})

	staffRows := [][]any{{
		"Staff", "Shifts",
		"Weekday hours", "Weekday rate", "Weekday pay",
		"Saturday hours", "Saturday rate", "Saturday pay",
		"Sunday hours", "Sunday rate", "Sunday pay",
		"Total hours", "Total pay", "Unknown pay",
	}}
	for _, s := range report.PerStaff {
		line := []any{s.StaffName, s.ShiftCount}
		for _, dt := range payroll.DayTypes {
			t := s.ByDayType[dt]
			line = append(line, t.Hours.InexactFloat64(), decimalCell(t.Rate), decimalCell(t.Pay))
		}
		unknown := "no"
		if s.HasUnknownPay {
			unknown = "yes"
		}
		line = append(line, s.TotalHours.InexactFloat64(), s.TotalPay.InexactFloat64(), unknown)
		staffRows = append(staffRows, line)
	}

	dailyRows := [][]any{{"Date", "Shifts", "Minutes", "Hours", "Pay"}}
	for _, d := range report.Daily {
		dailyRows = append(dailyRows, []any{d.Date, d.ShiftCount, d.Minutes, d.Hours.InexactFloat64(), d.Pay.InexactFloat64()})
	}

	for sheet, rows := range map[string][][]any{
		sheetShifts: shiftRows,
		sheetStaff:  staffRows,
		sheetDaily:  dailyRows,
	} {
		if err := writeRows(f, sheet, rows, header); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}

func intCell(v *int) any {
	if v == nil {
		return unknownCell
	}
	return *v
}

func decimalCell(v *decimal.Decimal) any {
	if v == nil {
		return unknownCell
	}
	return v.InexactFloat64()
}

func timeCell(v *time.Time, loc *time.Location) any {
	if v == nil {
		return unknownCell
	}
	return v.In(loc).Format(exportLayout)
}
