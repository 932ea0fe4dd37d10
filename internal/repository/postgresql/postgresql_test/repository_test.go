package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/payrate"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/unavailability"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testStore   = "MOOROOLBARK"
	testOwner   = "0190c2a4-0000-7000-8000-000000000a01"
	testStaff   = "0190c2a4-0000-7000-8000-000000000a02"
	testRetired = "0190c2a4-0000-7000-8000-000000000a03"
)

func seedProfiles(t *testing.T, setup *TestDatabaseSetup) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, setup.InsertProfile(ctx, testOwner, testStore, "Olive Owner", "OWNER", true))
	require.NoError(t, setup.InsertProfile(ctx, testStaff, testStore, "Sam Staff", "STAFF", true))
	require.NoError(t, setup.InsertProfile(ctx, testRetired, testStore, "Ray Retired", "STAFF", false))
}

func TestProfileRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	seedProfiles(t, setup)
	ctx := context.Background()
	repo := postgresql.NewProfileRepository(setup.DB)

	p, err := repo.GetByID(ctx, testOwner)
	require.NoError(t, err)
	assert.Equal(t, profile.RoleOwner, p.Role)
	assert.Equal(t, "Olive Owner", p.DisplayName())

	_, err = repo.GetByID(ctx, "0190c2a4-0000-7000-8000-00000000ffff")
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)

	active, err := repo.List(ctx, profile.ProfileFilter{StoreID: testStore, ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	all, err := repo.List(ctx, profile.ProfileFilter{StoreID: testStore})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestShiftRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	seedProfiles(t, setup)
	ctx := context.Background()
	repo := postgresql.NewShiftRepository(setup.DB)

	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, shift.Shift{StoreID: testStore, StaffID: testStaff, Start: start, End: start.Add(8 * time.Hour), BreakMinutes: 30})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	listed, err := repo.ListByRange(ctx, shift.ShiftFilter{StoreID: testStore, StartInclusive: start, EndExclusive: start.Add(time.Hour)})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 30, listed[0].BreakMinutes)

	// end is exclusive
	listed, err = repo.ListByRange(ctx, shift.ShiftFilter{StoreID: testStore, StartInclusive: start.Add(-time.Hour), EndExclusive: start})
	require.NoError(t, err)
	assert.Empty(t, listed)

	created.BreakMinutes = 0
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.BreakMinutes)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), shift.ErrShiftNotFound)
}

func TestPunchRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	seedProfiles(t, setup)
	ctx := context.Background()
	repo := postgresql.NewPunchRepository(setup.DB)

	_, err := repo.GetOpenByStaff(ctx, testStaff)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	in := time.Date(2024, 3, 4, 8, 55, 0, 0, time.UTC)
	open, err := repo.Create(ctx, attendance.Punch{StaffID: testStaff, ClockIn: &in, DeviceTag: attendance.DeviceTagWeb})
	require.NoError(t, err)
	assert.Equal(t, attendance.StateOpen, open.State())

	// second open punch hits the partial unique index
	_, err = repo.Create(ctx, attendance.Punch{StaffID: testStaff, ClockIn: &in, DeviceTag: attendance.DeviceTagWeb})
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23505", pgErr.Code)

	closed, err := repo.UpdateClockOut(ctx, open.ID, in.Add(8*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, attendance.StateClosed, closed.State())

	adjIn, adjOut := in.Add(5*time.Minute), in.Add(8*time.Hour)
	reason, by, at := "forgot to clock out", testOwner, time.Now()
	closed.AdjustedClockIn, closed.AdjustedClockOut = &adjIn, &adjOut
	closed.AdjustedReason, closed.AdjustedBy, closed.AdjustedAt = &reason, &by, &at

	stale := closed.UpdatedAt.Add(-time.Minute)
	_, err = repo.UpdateAdjustment(ctx, closed, &stale)
	assert.ErrorIs(t, err, attendance.ErrPunchVersionConflict)

	adjusted, err := repo.UpdateAdjustment(ctx, closed, &closed.UpdatedAt)
	require.NoError(t, err)
	assert.True(t, adjusted.IsAdjusted())
	assert.True(t, adjusted.ClockIn.Equal(in))

	missing := closed
	missing.ID = "0190c2a4-0000-7000-8000-00000000ffff"
	_, err = repo.UpdateAdjustment(ctx, missing, nil)
	assert.ErrorIs(t, err, attendance.ErrPunchNotFound)

	listed, err := repo.ListByClockInRange(ctx, attendance.PunchFilter{StartInclusive: in.Add(-time.Hour), EndExclusive: in.Add(time.Hour)})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestPunchRepositoryManualCreatePerShift(t *testing.T) {
	setup := NewTestDatabase(t)
	seedProfiles(t, setup)
	ctx := context.Background()
	shiftRepo := postgresql.NewShiftRepository(setup.DB)
	repo := postgresql.NewPunchRepository(setup.DB)

	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	sh, err := shiftRepo.Create(ctx, shift.Shift{StoreID: testStore, StaffID: testStaff, Start: start, End: end})
	require.NoError(t, err)

	_, err = repo.GetByShiftID(ctx, sh.ID)
	assert.ErrorIs(t, err, attendance.ErrPunchNotFound)

	manual := attendance.Punch{ShiftID: &sh.ID, StaffID: testStaff, ClockIn: &start, ClockOut: &end, DeviceTag: attendance.DeviceTagManualCreate}
	created, err := repo.Create(ctx, manual)
	require.NoError(t, err)

	linked, err := repo.GetByShiftID(ctx, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, linked.ID)

	_, err = repo.Create(ctx, manual)
	assert.ErrorIs(t, err, attendance.ErrPunchExistsForShift)
}

func TestPayRateRepositoryUpsertInTransaction(t *testing.T) {
	setup := NewTestDatabase(t)
	seedProfiles(t, setup)
	ctx := context.Background()
	repo := postgresql.NewPayRateRepository(setup.DB)
	inTx := postgresql.TxRunner(setup.DB)

	rate := payrate.PayRate{
		StaffID:      testStaff,
		StoreID:      testStore,
		WeekdayRate:  decimal.RequireFromString("25.50"),
		SaturdayRate: decimal.RequireFromString("30"),
		SundayRate:   decimal.RequireFromString("35.75"),
	}
	saved, err := repo.Upsert(ctx, rate)
	require.NoError(t, err)
	assert.True(t, saved.SundayRate.Equal(rate.SundayRate))

	// rolled back with the failing transaction
	boom := errors.New("boom")
	err = inTx(ctx, func(txCtx context.Context) error {
		rate.WeekdayRate = decimal.RequireFromString("99")
		if _, err := repo.Upsert(txCtx, rate); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.GetByStaff(ctx, testStore, testStaff)
	require.NoError(t, err)
	assert.True(t, got.WeekdayRate.Equal(decimal.RequireFromString("25.5")))

	_, err = repo.GetByStaff(ctx, testStore, testOwner)
	assert.ErrorIs(t, err, payrate.ErrPayRateNotFound)
}

func TestUnavailabilityRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	seedProfiles(t, setup)
	ctx := context.Background()
	repo := postgresql.NewUnavailabilityRepository(setup.DB)

	rule, err := repo.CreateRule(ctx, unavailability.RecurringRule{
		StaffID: testStaff, StoreID: testStore, DayOfWeek: 5, StartTime: "18:00:00", EndTime: "02:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "18:00:00", rule.StartTime)

	week := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	_, err = repo.CreateSkip(ctx, unavailability.RecurringSkip{RuleID: rule.ID, StoreID: testStore, WeekStart: week})
	require.NoError(t, err)
	_, err = repo.CreateSkip(ctx, unavailability.RecurringSkip{RuleID: rule.ID, StoreID: testStore, WeekStart: week})
	assert.ErrorIs(t, err, unavailability.ErrSkipAlreadyExists)

	skips, err := repo.ListSkips(ctx, testStore, week.AddDate(0, 0, -7), week)
	require.NoError(t, err)
	require.Len(t, skips, 1)
	assert.True(t, unavailability.IsSkipped(rule.ID, week, skips))

	require.NoError(t, repo.DeleteSkip(ctx, rule.ID, week))
	assert.ErrorIs(t, repo.DeleteSkip(ctx, rule.ID, week), unavailability.ErrSkipNotFound)

	start := time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC)
	block, err := repo.CreateBlock(ctx, unavailability.Block{StaffID: testStaff, StoreID: testStore, StartAt: start, EndAt: start.Add(4 * time.Hour)})
	require.NoError(t, err)

	blocks, err := repo.ListBlocks(ctx, unavailability.BlockFilter{StoreID: testStore, StartInclusive: start.Add(2 * time.Hour), EndExclusive: start.Add(10 * time.Hour)})
	require.NoError(t, err)
	assert.Len(t, blocks, 1)

	require.NoError(t, repo.DeleteBlock(ctx, block.ID))
	_, err = repo.GetBlockByID(ctx, block.ID)
	assert.ErrorIs(t, err, unavailability.ErrBlockNotFound)
}
