package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Can review regularizations, view workers
	RoleEmployee Role = "employee" // Regular employee
	RolePending  Role = "pending"  // Still in onboarding
)

// Claims is the caller identity carried by the access token.
type Claims struct {
	UserID    string
	CompanyID string
	Role      Role
}

// IsManager checks if user is manager or owner
func (c Claims) IsManager() bool {
	return c.Role == RoleManager || c.Role == RoleOwner
}

// CanApprove checks if user can approve regularizations
func (c Claims) CanApprove() bool {
	return HasPermission(c.Role, PermissionAttendanceApprove)
}
