package profile

import "context"

// ProfileService exposes the staff directory and actor resolution.
type ProfileService interface {
	// ListProfiles lists store profiles sorted by display name (manager+ only)
	ListProfiles(ctx context.Context, req ListProfilesRequest) ([]ProfileResponse, error)

	// Me returns the caller's own profile
	Me(ctx context.Context) (ProfileResponse, error)
}
