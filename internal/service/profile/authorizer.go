package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/authctx"
)

// Authorizer resolves the caller's profile from the store and applies
// profile.CanAct. The JWT role claim is only a hint; the stored role and
// active flag decide.
type Authorizer struct {
	profileRepo profile.ProfileRepository
}

func NewAuthorizer(profileRepo profile.ProfileRepository) *Authorizer {
	return &Authorizer{profileRepo: profileRepo}
}

// Actor loads the caller's profile. A token whose user has no profile is
// reported as a permission failure rather than a missing record.
func (a *Authorizer) Actor(ctx context.Context) (profile.Profile, error) {
	userID, err := authctx.UserID(ctx)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %v", profile.ErrPermissionDenied, err)
	}

	actor, err := a.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return profile.Profile{}, profile.ErrPermissionDenied
		}
		return profile.Profile{}, err
	}
	return actor, nil
}

// Require returns the caller when they may perform permission at all.
func (a *Authorizer) Require(ctx context.Context, permission profile.Permission) (profile.Profile, error) {
	actor, err := a.Actor(ctx)
	if err != nil {
		return profile.Profile{}, err
	}
	if !actor.IsActive {
		return profile.Profile{}, profile.ErrInactiveAccount
	}
	if !profile.CanAct(actor.Role, actor.IsActive, nil, permission) {
		slog.Warn("Permission denied", "user_id", actor.ID, "role", actor.Role, "permission", permission)
		return profile.Profile{}, profile.ErrPermissionDenied
	}
	return actor, nil
}

// RequireOver additionally checks the actor against the profile that owns
// the record being changed. An unknown target is treated as a denial so the
// response does not reveal which ids exist.
func (a *Authorizer) RequireOver(ctx context.Context, actor profile.Profile, targetStaffID string, permission profile.Permission) error {
	if targetStaffID == actor.ID {
		if profile.CanAct(actor.Role, actor.IsActive, &actor.Role, permission) {
			return nil
		}
		return profile.ErrPermissionDenied
	}

	target, err := a.profileRepo.GetByID(ctx, targetStaffID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return profile.ErrPermissionDenied
		}
		return err
	}
	if !profile.CanAct(actor.Role, actor.IsActive, &target.Role, permission) {
		slog.Warn("Permission denied on target", "user_id", actor.ID, "target_id", target.ID, "target_role", target.Role, "permission", permission)
		return profile.ErrPermissionDenied
	}
	return nil
}
