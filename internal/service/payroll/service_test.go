package payroll

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/payrate"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
	profileService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/profile"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const (
	ownerID   = "0190c2a4-0000-7000-8000-0000000000f1"
	managerID = "0190c2a4-0000-7000-8000-0000000000f2"
)

type fakeShiftRepo struct {
	shift.ShiftRepository
	shifts     []shift.Shift
	lastFilter shift.ShiftFilter
}

func (f *fakeShiftRepo) ListByRange(ctx context.Context, filter shift.ShiftFilter) ([]shift.Shift, error) {
	f.lastFilter = filter
	return f.shifts, nil
}

type fakePunchRepo struct {
	attendance.PunchRepository
	punches    []attendance.Punch
	lastFilter attendance.PunchFilter
	err        error
}

func (f *fakePunchRepo) ListByClockInRange(ctx context.Context, filter attendance.PunchFilter) ([]attendance.Punch, error) {
	f.lastFilter = filter
	return f.punches, f.err
}

type fakeProfileRepo struct {
	profiles map[string]profile.Profile
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return profile.Profile{}, profile.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) List(ctx context.Context, filter profile.ProfileFilter) ([]profile.Profile, error) {
	var out []profile.Profile
	for _, p := range f.profiles {
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakePayRateRepo struct {
	payrate.PayRateRepository
	rates []payrate.PayRate
}

func (f *fakePayRateRepo) ListByStore(ctx context.Context, storeID string) ([]payrate.PayRate, error) {
	return f.rates, nil
}

func ctxAs(userID string) context.Context {
	token := jwt.New()
	_ = token.Set("user_id", userID)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type serviceFixture struct {
	svc     payroll.PayrollService
	shifts  *fakeShiftRepo
	punches *fakePunchRepo
}

func newServiceFixture(t *testing.T) serviceFixture {
	t.Helper()
	calc, loc := newTestCalculator(t)
	in := aggregateFixture(loc)

	profiles := &fakeProfileRepo{profiles: map[string]profile.Profile{
		ownerID:   {ID: ownerID, Role: profile.RoleOwner, IsActive: true},
		managerID: {ID: managerID, Role: profile.RoleManager, IsActive: true},
	}}
	for _, p := range in.Profiles {
		profiles.profiles[p.ID] = p
	}

	shifts := &fakeShiftRepo{shifts: in.Shifts}
	punches := &fakePunchRepo{punches: in.Punches}
	svc := NewPayrollService(
		shifts,
		punches,
		profiles,
		&fakePayRateRepo{rates: in.PayRates},
		profileService.NewAuthorizer(profiles),
		calc,
		"MOOROOLBARK",
	)
	return serviceFixture{svc: svc, shifts: shifts, punches: punches}
}

func TestComputePayroll(t *testing.T) {
	f := newServiceFixture(t)
	req := payroll.ComputePayrollRequest{From: "2024-03-04", To: "2024-03-10"}

	resp, err := f.svc.ComputePayroll(ctxAs(managerID), req)
	require.NoError(t, err)

	assert.Len(t, resp.Shifts, 4)
	assert.Equal(t, "495.00", resp.Store.TotalPay.StringFixed(2))
	assert.Equal(t, "23.00", resp.Store.TotalHours.StringFixed(2))
	require.Len(t, resp.PerStaff, 2)
	assert.Equal(t, "Alex", resp.PerStaff[0].StaffName)
	require.NotNil(t, resp.Shifts[1].PunchID)
	assert.Equal(t, "p-tue", *resp.Shifts[1].PunchID)

	loc := f.shifts.lastFilter.StartInclusive.Location()
	assert.True(t, f.shifts.lastFilter.StartInclusive.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, loc)))
	assert.True(t, f.shifts.lastFilter.EndExclusive.Equal(time.Date(2024, 3, 11, 0, 0, 0, 0, loc)))
	assert.Equal(t, PunchWindow, f.shifts.lastFilter.StartInclusive.Sub(f.punches.lastFilter.StartInclusive))
	assert.Equal(t, PunchWindow, f.punches.lastFilter.EndExclusive.Sub(f.shifts.lastFilter.EndExclusive))
}

func TestComputePayrollRejections(t *testing.T) {
	f := newServiceFixture(t)

	t.Run("staff cannot view payroll", func(t *testing.T) {
		_, err := f.svc.ComputePayroll(ctxAs(staffAlex), payroll.ComputePayrollRequest{From: "2024-03-04", To: "2024-03-10"})
		assert.ErrorIs(t, err, profile.ErrInactiveAccount)

		_, err = f.svc.ComputePayroll(ctxAs(staffBlue), payroll.ComputePayrollRequest{From: "2024-03-04", To: "2024-03-10"})
		assert.ErrorIs(t, err, profile.ErrPermissionDenied)
	})

	t.Run("unknown user is denied", func(t *testing.T) {
		_, err := f.svc.ComputePayroll(ctxAs("0190c2a4-0000-7000-8000-0000000000ff"), payroll.ComputePayrollRequest{From: "2024-03-04", To: "2024-03-10"})
		assert.ErrorIs(t, err, profile.ErrPermissionDenied)
	})

	t.Run("bad range is a validation error", func(t *testing.T) {
		_, err := f.svc.ComputePayroll(ctxAs(managerID), payroll.ComputePayrollRequest{From: "2024-03-10", To: "2024-03-04"})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("store error surfaces", func(t *testing.T) {
		boom := errors.New("connection reset")
		f.punches.err = boom
		defer func() { f.punches.err = nil }()

		_, err := f.svc.ComputePayroll(ctxAs(managerID), payroll.ComputePayrollRequest{From: "2024-03-04", To: "2024-03-10"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestExportPayroll(t *testing.T) {
	f := newServiceFixture(t)
	req := payroll.ComputePayrollRequest{From: "2024-03-04", To: "2024-03-10"}

	_, err := f.svc.ExportPayroll(ctxAs(managerID), req)
	assert.ErrorIs(t, err, profile.ErrPermissionDenied)

	file, err := f.svc.ExportPayroll(ctxAs(ownerID), req)
	require.NoError(t, err)
	assert.Equal(t, "payroll_2024-03-04_2024-03-10.xlsx", file.Filename)

	book, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Shifts")
	require.NoError(t, err)
	// header + 4 shifts + total
	require.Len(t, rows, 6)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "2024-03-04", rows[1][0])
	assert.Equal(t, "ROSTER", rows[1][11])
	assert.Equal(t, "-", rows[1][6])
	assert.Equal(t, "-", rows[3][15])
	assert.Equal(t, "TOTAL", rows[5][0])

	staff, err := book.GetRows("Staff Summary")
	require.NoError(t, err)
	require.Len(t, staff, 3)
	assert.Equal(t, "Alex", staff[1][0])
	assert.Equal(t, "yes", staff[2][13])

	daily, err := book.GetRows("Daily")
	require.NoError(t, err)
	assert.Len(t, daily, 8)
}
