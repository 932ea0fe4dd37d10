package profile

import "context"

type ProfileFilter struct {
	StoreID    string
	ActiveOnly bool
}

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (Profile, error)
	List(ctx context.Context, filter ProfileFilter) ([]Profile, error)
}
