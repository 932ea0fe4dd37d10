package profile

type Permission string

const (
	// Self service
	PermissionClockSelf    Permission = "clock.self"
	PermissionClockViewOwn Permission = "clock.view_own"

	// Roster
	PermissionShiftView   Permission = "shift.view"
	PermissionShiftManage Permission = "shift.manage"

	// Time clock corrections
	PermissionPunchAdjust Permission = "punch.adjust"
	PermissionPunchCreate Permission = "punch.create"

	// Pay
	PermissionPayRateManage Permission = "pay_rate.manage"
	PermissionPayrollView   Permission = "payroll.view"
	PermissionPayrollExport Permission = "payroll.export"

	// Availability
	PermissionUnavailabilityOwn    Permission = "unavailability.own"
	PermissionUnavailabilityManage Permission = "unavailability.manage"

	// Staff directory
	PermissionStaffView Permission = "staff.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionClockSelf,
		PermissionClockViewOwn,
		PermissionShiftView,
		PermissionShiftManage,
		PermissionPunchAdjust,
		PermissionPunchCreate,
		PermissionPayRateManage,
		PermissionPayrollView,
		PermissionPayrollExport,
		PermissionUnavailabilityOwn,
		PermissionUnavailabilityManage,
		PermissionStaffView,
	},
	RoleManager: {
		PermissionClockSelf,
		PermissionClockViewOwn,
		PermissionShiftView,
		PermissionShiftManage,
		PermissionPunchAdjust,
		PermissionPunchCreate,
		PermissionPayRateManage,
		PermissionPayrollView,
		PermissionUnavailabilityOwn,
		PermissionUnavailabilityManage,
		PermissionStaffView,
	},
	RoleStaff: {
		PermissionClockSelf,
		PermissionClockViewOwn,
		PermissionShiftView,
		PermissionUnavailabilityOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// CanAct is the single authorization predicate for every mutating entry
// point. targetRole is nil when the action has no owning profile (or it has
// not been loaded yet). A manager never acts on an owner's records.
func CanAct(actorRole Role, actorActive bool, targetRole *Role, permission Permission) bool {
	if !actorActive {
		return false
	}
	if !HasPermission(actorRole, permission) {
		return false
	}
	if targetRole != nil && *targetRole == RoleOwner && actorRole != RoleOwner {
		return false
	}
	return true
}
