package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
)

// StalePunchAge is how long a punch may stay open before it is reported.
const StalePunchAge = 16 * time.Hour

// PunchJobs reports clock records that were never closed. Nothing is written:
// a manager fixes them through the adjustment workflow.
type PunchJobs struct {
	punchRepo attendance.PunchRepository
	lookback  time.Duration
	now       func() time.Time
}

func NewPunchJobs(punchRepo attendance.PunchRepository) *PunchJobs {
	return &PunchJobs{
		punchRepo: punchRepo,
		lookback:  14 * 24 * time.Hour,
		now:       time.Now,
	}
}

func (j *PunchJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("report_stale_open_punches", 1*time.Hour, j.ReportStaleOpenPunches)
}

// StaleOpenPunches returns open punches whose clock in is older than
// StalePunchAge, oldest first.
func (j *PunchJobs) StaleOpenPunches(ctx context.Context) ([]attendance.Punch, error) {
	now := j.now()
	punches, err := j.punchRepo.ListByClockInRange(ctx, attendance.PunchFilter{
		StartInclusive: now.Add(-j.lookback),
		EndExclusive:   now.Add(-StalePunchAge),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}

	var stale []attendance.Punch
	for _, p := range punches {
		if p.State() == attendance.StateOpen {
			stale = append(stale, p)
		}
	}
	return stale, nil
}

func (j *PunchJobs) ReportStaleOpenPunches(ctx context.Context) error {
	stale, err := j.StaleOpenPunches(ctx)
	if err != nil {
		return err
	}

	for _, p := range stale {
		slog.Warn("Cron: open punch needs adjustment",
			"punch_id", p.ID,
			"staff_id", p.StaffID,
			"clock_in_at", p.ClockIn,
			"open_for", j.now().Sub(*p.ClockIn).Round(time.Minute),
		)
	}
	slog.Info("Cron: stale open punch check finished", "count", len(stale))
	return nil
}
