package shift

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/unavailability"
	profileService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/profile"
	"golang.org/x/sync/errgroup"
)

type ShiftServiceImpl struct {
	shiftRepo          shift.ShiftRepository
	profileRepo        profile.ProfileRepository
	unavailabilityRepo unavailability.UnavailabilityRepository
	auth               *profileService.Authorizer
	loc                *time.Location
	storeID            string
}

func NewShiftService(
	shiftRepo shift.ShiftRepository,
	profileRepo profile.ProfileRepository,
	unavailabilityRepo unavailability.UnavailabilityRepository,
	auth *profileService.Authorizer,
	loc *time.Location,
	storeID string,
) shift.ShiftService {
	return &ShiftServiceImpl{
		shiftRepo:          shiftRepo,
		profileRepo:        profileRepo,
		unavailabilityRepo: unavailabilityRepo,
		auth:               auth,
		loc:                loc,
		storeID:            storeID,
	}
}

func (s *ShiftServiceImpl) ListShifts(ctx context.Context, req shift.ListShiftsRequest) ([]shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	actor, err := s.auth.Require(ctx, profile.PermissionShiftView)
	if err != nil {
		return nil, err
	}
	// Staff only ever see their own roster lines.
	if !profile.HasPermission(actor.Role, profile.PermissionShiftManage) {
		req.StaffID = &actor.ID
	}

	start, _ := time.ParseInLocation("2006-01-02", req.From, s.loc)
	last, _ := time.ParseInLocation("2006-01-02", req.To, s.loc)

	var (
		shifts   []shift.Shift
		profiles []profile.Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		shifts, err = s.shiftRepo.ListByRange(gctx, shift.ShiftFilter{
			StoreID:        s.storeID,
			StartInclusive: start,
			EndExclusive:   last.AddDate(0, 0, 1),
			StaffID:        req.StaffID,
		})
		return err
	})
	g.Go(func() error {
		var err error
		profiles, err = s.profileRepo.List(gctx, profile.ProfileFilter{StoreID: s.storeID})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(profiles))
	for _, p := range profiles {
		names[p.ID] = p.DisplayName()
	}

	sort.SliceStable(shifts, func(i, j int) bool {
		return shifts[i].Start.Before(shifts[j].Start)
	})

	resp := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		resp = append(resp, newShiftResponse(sh, names[sh.StaffID]))
	}
	return resp, nil
}

func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftMutationResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftMutationResponse{}, err
	}

	actor, err := s.auth.Require(ctx, profile.PermissionShiftManage)
	if err != nil {
		return shift.ShiftMutationResponse{}, err
	}
	if err := s.auth.RequireOver(ctx, actor, req.StaffID, profile.PermissionShiftManage); err != nil {
		return shift.ShiftMutationResponse{}, err
	}

	breakMinutes := 0
	if req.BreakMinutes != nil {
		breakMinutes = *req.BreakMinutes
	}

	created, err := s.shiftRepo.Create(ctx, shift.Shift{
		StoreID:      s.storeID,
		StaffID:      req.StaffID,
		Start:        req.StartAt,
		End:          req.EndAt,
		BreakMinutes: breakMinutes,
		CreatedBy:    &actor.ID,
	})
	if err != nil {
		return shift.ShiftMutationResponse{}, err
	}

	slog.Info("Shift created", "shift_id", created.ID, "staff_id", created.StaffID, "created_by", actor.ID)
	return s.mutationResponse(ctx, created)
}

func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftMutationResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftMutationResponse{}, err
	}

	actor, err := s.auth.Require(ctx, profile.PermissionShiftManage)
	if err != nil {
		return shift.ShiftMutationResponse{}, err
	}

	existing, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return shift.ShiftMutationResponse{}, err
	}
	if err := s.auth.RequireOver(ctx, actor, existing.StaffID, profile.PermissionShiftManage); err != nil {
		return shift.ShiftMutationResponse{}, err
	}

	existing.Start = req.StartAt
	existing.End = req.EndAt
	if req.BreakMinutes != nil {
		existing.BreakMinutes = *req.BreakMinutes
	}

	updated, err := s.shiftRepo.Update(ctx, existing)
	if err != nil {
		return shift.ShiftMutationResponse{}, err
	}

	slog.Info("Shift updated", "shift_id", updated.ID, "staff_id", updated.StaffID, "updated_by", actor.ID)
	return s.mutationResponse(ctx, updated)
}

func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	actor, err := s.auth.Require(ctx, profile.PermissionShiftManage)
	if err != nil {
		return err
	}

	existing, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.auth.RequireOver(ctx, actor, existing.StaffID, profile.PermissionShiftManage); err != nil {
		return err
	}

	if err := s.shiftRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("Shift deleted", "shift_id", id, "staff_id", existing.StaffID, "deleted_by", actor.ID)
	return nil
}

// mutationResponse attaches unavailability warnings. A shift that overlaps
// unavailability is still saved.
func (s *ShiftServiceImpl) mutationResponse(ctx context.Context, sh shift.Shift) (shift.ShiftMutationResponse, error) {
	warnings, err := s.unavailabilityWarnings(ctx, sh)
	if err != nil {
		return shift.ShiftMutationResponse{}, err
	}

	name := ""
	if p, err := s.profileRepo.GetByID(ctx, sh.StaffID); err == nil {
		name = p.DisplayName()
	}

	return shift.ShiftMutationResponse{
		Shift:    newShiftResponse(sh, name),
		Warnings: warnings,
	}, nil
}

func (s *ShiftServiceImpl) unavailabilityWarnings(ctx context.Context, sh shift.Shift) ([]string, error) {
	staffID := sh.StaffID

	blocks, err := s.unavailabilityRepo.ListBlocks(ctx, unavailability.BlockFilter{
		StoreID:        s.storeID,
		StaffID:        &staffID,
		StartInclusive: sh.Start,
		EndExclusive:   sh.End,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load unavailability: %w", err)
	}
	rules, err := s.unavailabilityRepo.ListRules(ctx, s.storeID, &staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring unavailability: %w", err)
	}
	skips, err := s.unavailabilityRepo.ListSkips(ctx, s.storeID,
		unavailability.WeekStart(sh.Start.Add(-24*time.Hour), s.loc),
		unavailability.WeekStart(sh.End, s.loc))
	if err != nil {
		return nil, fmt.Errorf("failed to load unavailability skips: %w", err)
	}

	conflicts, err := unavailability.Conflicts(staffID, sh.Start, sh.End, blocks, rules, skips, s.loc)
	if err != nil {
		return nil, err
	}

	warnings := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		warnings = append(warnings, c.Warning())
	}
	if len(warnings) > 0 {
		slog.Warn("Shift overlaps staff unavailability", "shift_id", sh.ID, "staff_id", staffID, "conflicts", len(warnings))
	}
	return warnings, nil
}

func newShiftResponse(sh shift.Shift, staffName string) shift.ShiftResponse {
	scheduled := int(sh.End.Sub(sh.Start).Minutes()) - sh.BreakMinutes
	if scheduled < 0 {
		scheduled = 0
	}
	return shift.ShiftResponse{
		ID:               sh.ID,
		StaffID:          sh.StaffID,
		StaffName:        staffName,
		Start:            sh.Start,
		End:              sh.End,
		BreakMinutes:     sh.BreakMinutes,
		ScheduledMinutes: scheduled,
	}
}
