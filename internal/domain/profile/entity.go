package profile

import "time"

type Role string

const (
	RoleOwner   Role = "OWNER"   // Store owner - full access, payroll export
	RoleManager Role = "MANAGER" // Runs the roster, adjusts punches
	RoleStaff   Role = "STAFF"   // Clocks in and out
)

// IsValid reports whether r is one of the three known roles. Anything else
// coming out of the store is treated as having no permissions.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleStaff:
		return true
	}
	return false
}

type Profile struct {
	ID            string
	StoreID       string
	FullName      *string
	PreferredName *string
	Role          Role
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DisplayName prefers the preferred name, then the full name, then a short id.
func (p Profile) DisplayName() string {
	if p.PreferredName != nil && *p.PreferredName != "" {
		return *p.PreferredName
	}
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	if len(p.ID) > 8 {
		return p.ID[:8]
	}
	return p.ID
}

// IsOwner checks if profile is the store owner
func (p Profile) IsOwner() bool {
	return p.Role == RoleOwner
}

// IsManager checks if profile is manager or owner
func (p Profile) IsManager() bool {
	return p.Role == RoleManager || p.Role == RoleOwner
}
