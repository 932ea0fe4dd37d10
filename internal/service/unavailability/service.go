package unavailability

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/unavailability"
	profileService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/profile"
)

type UnavailabilityServiceImpl struct {
	repo    unavailability.UnavailabilityRepository
	auth    *profileService.Authorizer
	loc     *time.Location
	storeID string
}

func NewUnavailabilityService(
	repo unavailability.UnavailabilityRepository,
	auth *profileService.Authorizer,
	loc *time.Location,
	storeID string,
) unavailability.UnavailabilityService {
	return &UnavailabilityServiceImpl{
		repo:    repo,
		auth:    auth,
		loc:     loc,
		storeID: storeID,
	}
}

func (s *UnavailabilityServiceImpl) List(ctx context.Context, req unavailability.ListUnavailabilityRequest) (unavailability.ListUnavailabilityResponse, error) {
	if err := req.Validate(); err != nil {
		return unavailability.ListUnavailabilityResponse{}, err
	}

	actor, err := s.auth.Require(ctx, profile.PermissionUnavailabilityOwn)
	if err != nil {
		return unavailability.ListUnavailabilityResponse{}, err
	}
	if !profile.HasPermission(actor.Role, profile.PermissionUnavailabilityManage) {
		req.StaffID = &actor.ID
	}

	from, _ := time.ParseInLocation("2006-01-02", req.From, s.loc)
	last, _ := time.ParseInLocation("2006-01-02", req.To, s.loc)
	to := last.AddDate(0, 0, 1)

	blocks, err := s.repo.ListBlocks(ctx, unavailability.BlockFilter{
		StoreID:        s.storeID,
		StaffID:        req.StaffID,
		StartInclusive: from,
		EndExclusive:   to,
	})
	if err != nil {
		return unavailability.ListUnavailabilityResponse{}, err
	}
	rules, err := s.repo.ListRules(ctx, s.storeID, req.StaffID)
	if err != nil {
		return unavailability.ListUnavailabilityResponse{}, err
	}
	skips, err := s.repo.ListSkips(ctx, s.storeID, unavailability.WeekStart(from.AddDate(0, 0, -1), s.loc), to)
	if err != nil {
		return unavailability.ListUnavailabilityResponse{}, err
	}

	resp := unavailability.ListUnavailabilityResponse{
		Blocks:      make([]unavailability.BlockResponse, 0, len(blocks)),
		Rules:       make([]unavailability.RuleResponse, 0, len(rules)),
		Occurrences: []unavailability.OccurrenceResponse{},
	}
	for _, b := range blocks {
		resp.Blocks = append(resp.Blocks, unavailability.NewBlockResponse(b))
		resp.Occurrences = append(resp.Occurrences, unavailability.OccurrenceResponse{
			Kind:     unavailability.KindOneOff,
			SourceID: b.ID,
			StaffID:  b.StaffID,
			Start:    b.StartAt,
			End:      b.EndAt,
			Reason:   b.Reason,
		})
	}
	for _, r := range rules {
		resp.Rules = append(resp.Rules, unavailability.NewRuleResponse(r))

		occs, err := r.Expand(from, to, s.loc)
		if err != nil {
			return unavailability.ListUnavailabilityResponse{}, err
		}
		for _, o := range occs {
			o.Skipped = unavailability.IsSkipped(r.ID, unavailability.WeekStart(o.Start, s.loc), skips)
			resp.Occurrences = append(resp.Occurrences, unavailability.OccurrenceResponse{
				Kind:     o.Kind,
				SourceID: o.SourceID,
				StaffID:  o.StaffID,
				Start:    o.Start,
				End:      o.End,
				Reason:   o.Reason,
				Skipped:  o.Skipped,
			})
		}
	}

	sort.SliceStable(resp.Occurrences, func(i, j int) bool {
		return resp.Occurrences[i].Start.Before(resp.Occurrences[j].Start)
	})
	return resp, nil
}

func (s *UnavailabilityServiceImpl) CreateBlock(ctx context.Context, req unavailability.CreateBlockRequest) (unavailability.BlockResponse, error) {
	if err := req.Validate(); err != nil {
		return unavailability.BlockResponse{}, err
	}

	actor, err := s.requireFor(ctx, req.StaffID)
	if err != nil {
		return unavailability.BlockResponse{}, err
	}

	created, err := s.repo.CreateBlock(ctx, unavailability.Block{
		StaffID: req.StaffID,
		StoreID: s.storeID,
		StartAt: req.Start,
		EndAt:   req.End,
		Reason:  req.Reason,
	})
	if err != nil {
		return unavailability.BlockResponse{}, err
	}

	slog.Info("Unavailability created", "id", created.ID, "staff_id", created.StaffID, "created_by", actor.ID)
	return unavailability.NewBlockResponse(created), nil
}

func (s *UnavailabilityServiceImpl) DeleteBlock(ctx context.Context, id string) error {
	if _, err := s.auth.Require(ctx, profile.PermissionUnavailabilityOwn); err != nil {
		return err
	}

	block, err := s.repo.GetBlockByID(ctx, id)
	if err != nil {
		return err
	}
	actor, err := s.requireFor(ctx, block.StaffID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteBlock(ctx, id); err != nil {
		return err
	}

	slog.Info("Unavailability deleted", "id", id, "staff_id", block.StaffID, "deleted_by", actor.ID)
	return nil
}

func (s *UnavailabilityServiceImpl) CreateRule(ctx context.Context, req unavailability.CreateRuleRequest) (unavailability.RuleResponse, error) {
	if err := req.Validate(); err != nil {
		return unavailability.RuleResponse{}, err
	}

	actor, err := s.requireFor(ctx, req.StaffID)
	if err != nil {
		return unavailability.RuleResponse{}, err
	}

	created, err := s.repo.CreateRule(ctx, unavailability.RecurringRule{
		StaffID:   req.StaffID,
		StoreID:   s.storeID,
		DayOfWeek: *req.DayOfWeek,
		StartTime: unavailability.NormalizedClock(req.StartTime),
		EndTime:   unavailability.NormalizedClock(req.EndTime),
		Reason:    req.Reason,
	})
	if err != nil {
		return unavailability.RuleResponse{}, err
	}

	slog.Info("Weekly unavailability created", "id", created.ID, "staff_id", created.StaffID, "created_by", actor.ID)
	return unavailability.NewRuleResponse(created), nil
}

func (s *UnavailabilityServiceImpl) DeleteRule(ctx context.Context, id string) error {
	if _, err := s.auth.Require(ctx, profile.PermissionUnavailabilityOwn); err != nil {
		return err
	}

	rule, err := s.repo.GetRuleByID(ctx, id)
	if err != nil {
		return err
	}
	actor, err := s.requireFor(ctx, rule.StaffID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteRule(ctx, id); err != nil {
		return err
	}

	slog.Info("Weekly unavailability deleted", "id", id, "staff_id", rule.StaffID, "deleted_by", actor.ID)
	return nil
}

func (s *UnavailabilityServiceImpl) SkipRule(ctx context.Context, req unavailability.SkipRuleRequest) error {
	actor, rule, weekStart, err := s.loadSkipTarget(ctx, req)
	if err != nil {
		return err
	}

	if _, err := s.repo.CreateSkip(ctx, unavailability.RecurringSkip{
		RuleID:    rule.ID,
		StoreID:   s.storeID,
		WeekStart: weekStart,
	}); err != nil {
		return err
	}

	slog.Info("Weekly unavailability skipped", "rule_id", rule.ID, "week_start", req.WeekStart, "skipped_by", actor.ID)
	return nil
}

func (s *UnavailabilityServiceImpl) UnskipRule(ctx context.Context, req unavailability.SkipRuleRequest) error {
	actor, rule, weekStart, err := s.loadSkipTarget(ctx, req)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteSkip(ctx, rule.ID, weekStart); err != nil {
		return err
	}

	slog.Info("Weekly unavailability skip removed", "rule_id", rule.ID, "week_start", req.WeekStart, "removed_by", actor.ID)
	return nil
}

func (s *UnavailabilityServiceImpl) loadSkipTarget(ctx context.Context, req unavailability.SkipRuleRequest) (profile.Profile, unavailability.RecurringRule, time.Time, error) {
	if err := req.Validate(); err != nil {
		return profile.Profile{}, unavailability.RecurringRule{}, time.Time{}, err
	}

	actor, err := s.auth.Require(ctx, profile.PermissionUnavailabilityManage)
	if err != nil {
		return profile.Profile{}, unavailability.RecurringRule{}, time.Time{}, err
	}

	rule, err := s.repo.GetRuleByID(ctx, req.RuleID)
	if err != nil {
		return profile.Profile{}, unavailability.RecurringRule{}, time.Time{}, err
	}
	if err := s.auth.RequireOver(ctx, actor, rule.StaffID, profile.PermissionUnavailabilityManage); err != nil {
		return profile.Profile{}, unavailability.RecurringRule{}, time.Time{}, err
	}

	weekStart, _ := time.ParseInLocation("2006-01-02", req.WeekStart, s.loc)
	return actor, rule, weekStart, nil
}

// requireFor lets staff manage their own entries and managers anyone's.
func (s *UnavailabilityServiceImpl) requireFor(ctx context.Context, staffID string) (profile.Profile, error) {
	actor, err := s.auth.Require(ctx, profile.PermissionUnavailabilityOwn)
	if err != nil {
		return profile.Profile{}, err
	}
	if staffID == actor.ID {
		return actor, nil
	}
	if err := s.auth.RequireOver(ctx, actor, staffID, profile.PermissionUnavailabilityManage); err != nil {
		return profile.Profile{}, err
	}
	return actor, nil
}
