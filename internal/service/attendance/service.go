package attendance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/shift"
	profileService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/profile"
	"github.com/jackc/pgx/v5/pgconn"
)

type AttendanceServiceImpl struct {
	punchRepo attendance.PunchRepository
	shiftRepo shift.ShiftRepository
	auth      *profileService.Authorizer
	loc       *time.Location
	now       func() time.Time
}

func NewAttendanceService(
	punchRepo attendance.PunchRepository,
	shiftRepo shift.ShiftRepository,
	auth *profileService.Authorizer,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		punchRepo: punchRepo,
		shiftRepo: shiftRepo,
		auth:      auth,
		loc:       loc,
		now:       time.Now,
	}
}

// ========================================
// SELF SERVICE
// ========================================

func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	actor, err := s.auth.Require(ctx, profile.PermissionClockSelf)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	if req.ShiftID != nil {
		sh, err := s.shiftRepo.GetByID(ctx, *req.ShiftID)
		if err != nil {
			return attendance.PunchResponse{}, err
		}
		if sh.StaffID != actor.ID {
			return attendance.PunchResponse{}, profile.ErrPermissionDenied
		}
	}

	// The partial unique index is the real guard; this gives a clean error
	// in the common case.
	if _, err := s.punchRepo.GetOpenByStaff(ctx, actor.ID); err == nil {
		return attendance.PunchResponse{}, attendance.ErrAlreadyClockedIn
	} else if !errors.Is(err, attendance.ErrNotClockedIn) {
		return attendance.PunchResponse{}, err
	}

	deviceTag := attendance.DeviceTagWeb
	if req.DeviceTag != nil && *req.DeviceTag != "" {
		deviceTag = *req.DeviceTag
	}

	now := s.now()
	created, err := s.punchRepo.Create(ctx, attendance.Punch{
		ShiftID:   req.ShiftID,
		StaffID:   actor.ID,
		ClockIn:   &now,
		DeviceTag: deviceTag,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return attendance.PunchResponse{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.PunchResponse{}, err
	}

	return attendance.NewPunchResponse(created), nil
}

func (s *AttendanceServiceImpl) ClockOut(ctx context.Context) (attendance.PunchResponse, error) {
	actor, err := s.auth.Require(ctx, profile.PermissionClockSelf)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	open, err := s.punchRepo.GetOpenByStaff(ctx, actor.ID)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	updated, err := s.punchRepo.UpdateClockOut(ctx, open.ID, s.now())
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	return attendance.NewPunchResponse(updated), nil
}

func (s *AttendanceServiceImpl) GetStatus(ctx context.Context) (attendance.ClockStatusResponse, error) {
	actor, err := s.auth.Require(ctx, profile.PermissionClockViewOwn)
	if err != nil {
		return attendance.ClockStatusResponse{}, err
	}

	open, err := s.punchRepo.GetOpenByStaff(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrNotClockedIn) {
			return attendance.ClockStatusResponse{Status: attendance.ClockStatusOffShift}, nil
		}
		return attendance.ClockStatusResponse{}, err
	}

	resp := attendance.NewPunchResponse(open)
	return attendance.ClockStatusResponse{Status: attendance.ClockStatusOnShift, OpenPunch: &resp}, nil
}

func (s *AttendanceServiceImpl) GetMyPunches(ctx context.Context, req attendance.ListPunchesRequest) ([]attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	actor, err := s.auth.Require(ctx, profile.PermissionClockViewOwn)
	if err != nil {
		return nil, err
	}

	req.StaffID = &actor.ID
	return s.listPunches(ctx, req)
}

// ========================================
// MANAGER WORKFLOW
// ========================================

func (s *AttendanceServiceImpl) ListPunches(ctx context.Context, req attendance.ListPunchesRequest) ([]attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.auth.Require(ctx, profile.PermissionPunchAdjust); err != nil {
		return nil, err
	}
	return s.listPunches(ctx, req)
}

func (s *AttendanceServiceImpl) CreatePunchFromShift(ctx context.Context, req attendance.CreatePunchFromShiftRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	actor, err := s.auth.Require(ctx, profile.PermissionPunchCreate)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	sh, err := s.shiftRepo.GetByID(ctx, req.ShiftID)
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	if err := s.auth.RequireOver(ctx, actor, sh.StaffID, profile.PermissionPunchCreate); err != nil {
		return attendance.PunchResponse{}, err
	}

	// The unique index on manual punches per shift backs this up under races.
	if _, err := s.punchRepo.GetByShiftID(ctx, sh.ID); err == nil {
		return attendance.PunchResponse{}, attendance.ErrPunchExistsForShift
	} else if !errors.Is(err, attendance.ErrPunchNotFound) {
		return attendance.PunchResponse{}, err
	}

	start, end := sh.Start, sh.End
	created, err := s.punchRepo.Create(ctx, attendance.Punch{
		ShiftID:   &sh.ID,
		StaffID:   sh.StaffID,
		ClockIn:   &start,
		ClockOut:  &end,
		DeviceTag: attendance.DeviceTagManualCreate,
	})
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	slog.Info("Created time clock record from shift", "punch_id", created.ID, "shift_id", sh.ID, "staff_id", sh.StaffID, "created_by", actor.ID)
	return attendance.NewPunchResponse(created), nil
}

func (s *AttendanceServiceImpl) AdjustPunch(ctx context.Context, req attendance.AdjustPunchRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	actor, err := s.auth.Require(ctx, profile.PermissionPunchAdjust)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	punch, err := s.punchRepo.GetByID(ctx, req.PunchID)
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	if err := s.auth.RequireOver(ctx, actor, punch.StaffID, profile.PermissionPunchAdjust); err != nil {
		return attendance.PunchResponse{}, err
	}

	in, out, reason, now := req.AdjustedIn, req.AdjustedOut, req.Reason, s.now()
	punch.AdjustedClockIn = &in
	punch.AdjustedClockOut = &out
	punch.AdjustedReason = &reason
	punch.AdjustedBy = &actor.ID
	punch.AdjustedAt = &now

	updated, err := s.punchRepo.UpdateAdjustment(ctx, punch, req.Expected)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	slog.Info("Adjusted time clock record", "punch_id", updated.ID, "staff_id", updated.StaffID, "adjusted_by", actor.ID)
	return attendance.NewPunchResponse(updated), nil
}

func (s *AttendanceServiceImpl) ProposeRosterAdjustment(ctx context.Context, shiftID string) (attendance.RosterProposalResponse, error) {
	actor, err := s.auth.Require(ctx, profile.PermissionPunchAdjust)
	if err != nil {
		return attendance.RosterProposalResponse{}, err
	}

	sh, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return attendance.RosterProposalResponse{}, err
	}
	if err := s.auth.RequireOver(ctx, actor, sh.StaffID, profile.PermissionPunchAdjust); err != nil {
		return attendance.RosterProposalResponse{}, err
	}

	proposal := attendance.ProposeRosterAdjustment(sh)
	return attendance.RosterProposalResponse{
		ShiftID:            proposal.ShiftID,
		AdjustedClockInAt:  proposal.AdjustedClockIn,
		AdjustedClockOutAt: proposal.AdjustedClockOut,
	}, nil
}

// listPunches expects a validated request.
func (s *AttendanceServiceImpl) listPunches(ctx context.Context, req attendance.ListPunchesRequest) ([]attendance.PunchResponse, error) {
	start, _ := time.ParseInLocation("2006-01-02", req.From, s.loc)
	last, _ := time.ParseInLocation("2006-01-02", req.To, s.loc)

	punches, err := s.punchRepo.ListByClockInRange(ctx, attendance.PunchFilter{
		StaffID:        req.StaffID,
		StartInclusive: start,
		EndExclusive:   last.AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, err
	}

	resp := make([]attendance.PunchResponse, 0, len(punches))
	for _, p := range punches {
		resp = append(resp, attendance.NewPunchResponse(p))
	}
	return resp, nil
}
