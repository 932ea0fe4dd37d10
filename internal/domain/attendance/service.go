package attendance

import (
	"context"
)

// AttendanceService covers self-service clocking and the manager
// correction workflow.
type AttendanceService interface {
	// ClockIn opens a punch for the caller
	ClockIn(ctx context.Context, req ClockInRequest) (PunchResponse, error)

	// ClockOut closes the caller's open punch
	ClockOut(ctx context.Context) (PunchResponse, error)

	// GetStatus reports whether the caller is on shift
	GetStatus(ctx context.Context) (ClockStatusResponse, error)

	// GetMyPunches lists the caller's punches in a date range
	GetMyPunches(ctx context.Context, req ListPunchesRequest) ([]PunchResponse, error)

	// ListPunches lists punches for the store (manager+)
	ListPunches(ctx context.Context, req ListPunchesRequest) ([]PunchResponse, error)

	// CreatePunchFromShift materializes a punch from a rostered shift (manager+)
	CreatePunchFromShift(ctx context.Context, req CreatePunchFromShiftRequest) (PunchResponse, error)

	// AdjustPunch records a manager correction on a punch (manager+)
	AdjustPunch(ctx context.Context, req AdjustPunchRequest) (PunchResponse, error)

	// ProposeRosterAdjustment pre-fills an adjustment with the shift's roster times
	ProposeRosterAdjustment(ctx context.Context, shiftID string) (RosterProposalResponse, error)
}
