package payroll

import "context"

// PayrollService computes hours and pay for a date range. Every call reads
// the store afresh; nothing is cached.
type PayrollService interface {
	// ComputePayroll returns shift rows, per-staff and store totals (manager+ only)
	ComputePayroll(ctx context.Context, req ComputePayrollRequest) (PayrollReportResponse, error)

	// ExportPayroll renders the same report as an XLSX workbook (owner only)
	ExportPayroll(ctx context.Context, req ComputePayrollRequest) (ExportFile, error)
}
