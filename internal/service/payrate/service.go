package payrate

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/payrate"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/profile"
	profileService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/profile"
	"golang.org/x/sync/errgroup"
)

// TxRunner runs fn inside one database transaction. The context handed to fn
// carries the transaction for the repositories.
type TxRunner func(ctx context.Context, fn func(txCtx context.Context) error) error

type PayRateServiceImpl struct {
	payRateRepo payrate.PayRateRepository
	profileRepo profile.ProfileRepository
	auth        *profileService.Authorizer
	inTx        TxRunner
	storeID     string
}

func NewPayRateService(
	payRateRepo payrate.PayRateRepository,
	profileRepo profile.ProfileRepository,
	auth *profileService.Authorizer,
	inTx TxRunner,
	storeID string,
) payrate.PayRateService {
	return &PayRateServiceImpl{
		payRateRepo: payRateRepo,
		profileRepo: profileRepo,
		auth:        auth,
		inTx:        inTx,
		storeID:     storeID,
	}
}

func (s *PayRateServiceImpl) ListPayRates(ctx context.Context) ([]payrate.PayRateResponse, error) {
	if _, err := s.auth.Require(ctx, profile.PermissionPayRateManage); err != nil {
		return nil, err
	}

	var (
		profiles []profile.Profile
		rates    []payrate.PayRate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profiles, err = s.profileRepo.List(gctx, profile.ProfileFilter{StoreID: s.storeID, ActiveOnly: true})
		return err
	})
	g.Go(func() error {
		var err error
		rates, err = s.payRateRepo.ListByStore(gctx, s.storeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byStaff := make(map[string]payrate.PayRate, len(rates))
	for _, r := range rates {
		byStaff[r.StaffID] = r
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return strings.ToLower(profiles[i].DisplayName()) < strings.ToLower(profiles[j].DisplayName())
	})

	resp := make([]payrate.PayRateResponse, 0, len(profiles))
	for _, p := range profiles {
		if r, ok := byStaff[p.ID]; ok {
			resp = append(resp, payrate.NewPayRateResponse(r, p.DisplayName()))
			continue
		}
		resp = append(resp, payrate.PayRateResponse{StaffID: p.ID, StaffName: p.DisplayName()})
	}
	return resp, nil
}

func (s *PayRateServiceImpl) UpsertPayRate(ctx context.Context, req payrate.UpsertPayRateRequest) (payrate.PayRateResponse, error) {
	if err := req.Validate(); err != nil {
		return payrate.PayRateResponse{}, err
	}

	actor, err := s.auth.Require(ctx, profile.PermissionPayRateManage)
	if err != nil {
		return payrate.PayRateResponse{}, err
	}

	return s.upsert(ctx, actor, req)
}

func (s *PayRateServiceImpl) BulkUpsertPayRates(ctx context.Context, req payrate.BulkUpsertPayRateRequest) ([]payrate.PayRateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	actor, err := s.auth.Require(ctx, profile.PermissionPayRateManage)
	if err != nil {
		return nil, err
	}

	resp := make([]payrate.PayRateResponse, 0, len(req.Rates))
	err = s.inTx(ctx, func(txCtx context.Context) error {
		for _, r := range req.Rates {
			saved, err := s.upsert(txCtx, actor, r)
			if err != nil {
				return err
			}
			resp = append(resp, saved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Pay rates saved", "count", len(resp), "updated_by", actor.ID)
	return resp, nil
}

func (s *PayRateServiceImpl) upsert(ctx context.Context, actor profile.Profile, req payrate.UpsertPayRateRequest) (payrate.PayRateResponse, error) {
	if err := s.auth.RequireOver(ctx, actor, req.StaffID, profile.PermissionPayRateManage); err != nil {
		return payrate.PayRateResponse{}, err
	}

	target, err := s.profileRepo.GetByID(ctx, req.StaffID)
	if err != nil && !errors.Is(err, profile.ErrProfileNotFound) {
		return payrate.PayRateResponse{}, err
	}

	saved, err := s.payRateRepo.Upsert(ctx, req.ToPayRate(s.storeID))
	if err != nil {
		return payrate.PayRateResponse{}, err
	}

	slog.Info("Pay rate saved", "staff_id", saved.StaffID, "updated_by", actor.ID)
	return payrate.NewPayRateResponse(saved, target.DisplayName()), nil
}
