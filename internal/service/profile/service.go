package profile

import (
	"context"
	"sort"
	"strings"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/profile"
)

type ProfileServiceImpl struct {
	profileRepo profile.ProfileRepository
	auth        *Authorizer
	storeID     string
}

func NewProfileService(profileRepo profile.ProfileRepository, auth *Authorizer, storeID string) profile.ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		auth:        auth,
		storeID:     storeID,
	}
}

func (s *ProfileServiceImpl) ListProfiles(ctx context.Context, req profile.ListProfilesRequest) ([]profile.ProfileResponse, error) {
	if _, err := s.auth.Require(ctx, profile.PermissionStaffView); err != nil {
		return nil, err
	}

	profiles, err := s.profileRepo.List(ctx, profile.ProfileFilter{
		StoreID:    s.storeID,
		ActiveOnly: !req.IncludeInactive,
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return strings.ToLower(profiles[i].DisplayName()) < strings.ToLower(profiles[j].DisplayName())
	})

	resp := make([]profile.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		resp = append(resp, profile.NewProfileResponse(p))
	}
	return resp, nil
}

func (s *ProfileServiceImpl) Me(ctx context.Context) (profile.ProfileResponse, error) {
	actor, err := s.auth.Actor(ctx)
	if err != nil {
		return profile.ProfileResponse{}, err
	}
	return profile.NewProfileResponse(actor), nil
}
