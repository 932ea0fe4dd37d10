package payroll

import "errors"

var (
	ErrInvalidPeriod = errors.New("invalid payroll period")
	ErrExportFailed  = errors.New("failed to build payroll export")
)
