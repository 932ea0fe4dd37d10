package profile

import "errors"

var (
	ErrProfileNotFound       = errors.New("profile not found")
	ErrInactiveAccount       = errors.New("account is inactive")
	ErrPermissionDenied      = errors.New("you do not have permission to perform this action")
	ErrOwnerAccessRequired   = errors.New("owner access required")
	ErrManagerAccessRequired = errors.New("manager access required")
)
