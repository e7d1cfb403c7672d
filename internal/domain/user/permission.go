package user

type Permission string

const (
	// Attendance Management
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceApprove Permission = "attendance.approve"

	// Reports
	PermissionReportsView Permission = "reports.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceApprove,
		PermissionReportsView,
	},
	RoleManager: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceApprove,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
	},
	RolePending: {
		// Pending role has no permissions
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
