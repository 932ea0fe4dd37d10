package payroll

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/payrate"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/shift"
	profileService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/profile"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	shiftRepo   shift.ShiftRepository
	punchRepo   attendance.PunchRepository
	profileRepo profile.ProfileRepository
	payRateRepo payrate.PayRateRepository
	auth        *profileService.Authorizer
	calc        *Calculator
	storeID     string
}

func NewPayrollService(
	shiftRepo shift.ShiftRepository,
	punchRepo attendance.PunchRepository,
	profileRepo profile.ProfileRepository,
	payRateRepo payrate.PayRateRepository,
	auth *profileService.Authorizer,
	calc *Calculator,
	storeID string,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		shiftRepo:   shiftRepo,
		punchRepo:   punchRepo,
		profileRepo: profileRepo,
		payRateRepo: payRateRepo,
		auth:        auth,
		calc:        calc,
		storeID:     storeID,
	}
}

func (s *PayrollServiceImpl) ComputePayroll(ctx context.Context, req payroll.ComputePayrollRequest) (payroll.PayrollReportResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollReportResponse{}, err
	}
	if _, err := s.auth.Require(ctx, profile.PermissionPayrollView); err != nil {
		return payroll.PayrollReportResponse{}, err
	}

	report, err := s.buildReport(ctx, req)
	if err != nil {
		return payroll.PayrollReportResponse{}, err
	}
	return payroll.NewPayrollReportResponse(report), nil
}

func (s *PayrollServiceImpl) ExportPayroll(ctx context.Context, req payroll.ComputePayrollRequest) (payroll.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return payroll.ExportFile{}, err
	}
	if _, err := s.auth.Require(ctx, profile.PermissionPayrollExport); err != nil {
		return payroll.ExportFile{}, err
	}

	report, err := s.buildReport(ctx, req)
	if err != nil {
		return payroll.ExportFile{}, err
	}

	content, err := renderWorkbook(report, s.calc.Location())
	if err != nil {
		return payroll.ExportFile{}, fmt.Errorf("%w: %v", payroll.ErrExportFailed, err)
	}

	return payroll.ExportFile{
		Filename:    fmt.Sprintf("payroll_%s_%s.xlsx", req.From, req.To),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     content,
	}, nil
}

// buildReport issues the four reads concurrently and aggregates once they
// all succeed. Punches are fetched PunchWindow either side of the range so
// shifts near the edges can still find theirs.
func (s *PayrollServiceImpl) buildReport(ctx context.Context, req payroll.ComputePayrollRequest) (payroll.Report, error) {
	start, end, err := s.calc.Range(req.From, req.To)
	if err != nil {
		return payroll.Report{}, err
	}

	var (
		shifts   []shift.Shift
		punches  []attendance.Punch
		profiles []profile.Profile
		rates    []payrate.PayRate
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		shifts, err = s.shiftRepo.ListByRange(gCtx, shift.ShiftFilter{
			StoreID:        s.storeID,
			StartInclusive: start,
			EndExclusive:   end,
			StaffID:        req.StaffID,
		})
		return err
	})

	g.Go(func() error {
		var err error
		punches, err = s.punchRepo.ListByClockInRange(gCtx, attendance.PunchFilter{
			StaffID:        req.StaffID,
			StartInclusive: start.Add(-PunchWindow),
			EndExclusive:   end.Add(PunchWindow),
		})
		return err
	})

	// Inactive staff still have history to pay.
	g.Go(func() error {
		var err error
		profiles, err = s.profileRepo.List(gCtx, profile.ProfileFilter{StoreID: s.storeID})
		return err
	})

	g.Go(func() error {
		var err error
		rates, err = s.payRateRepo.ListByStore(gCtx, s.storeID)
		return err
	})

	if err := g.Wait(); err != nil {
		return payroll.Report{}, err
	}

	return s.calc.Aggregate(AggregateInput{
		From:     req.From,
		To:       req.To,
		StaffID:  req.StaffID,
		Shifts:   shifts,
		Punches:  punches,
		Profiles: profiles,
		PayRates: rates,
	})
}
