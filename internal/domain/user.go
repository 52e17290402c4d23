package domain

import "time"

// Role is the closed set of user roles. Roles are immutable once assigned.
type Role string

const (
	RoleStudent    Role = "Student"
	RoleWarden     Role = "Warden"
	RoleTechnician Role = "Technician"
	RoleAdmin      Role = "Admin"
)

// ValidRole reports whether r is a member of the role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleWarden, RoleTechnician, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for every account in the system; the role
// distinguishes students from staff.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time

	// Optional profile fields. Present only when the schema revision
	// carries the columns; nil otherwise.
	RegisterNo *string
	Address    *string
	Phone      *string
}

// Permission names an operation gated by role.
type Permission string

const (
	PermSubmit      Permission = "submit"
	PermAssign      Permission = "assign"
	PermResolve     Permission = "resolve"
	PermViewAll     Permission = "view_all"
	PermManageUsers Permission = "manage_users"
)

// rolePermissions is the authorization table. Adding a role is a data
// change here, not a code change in every operation.
var rolePermissions = map[Role]map[Permission]bool{
	RoleStudent: {
		PermSubmit: true,
	},
	RoleWarden: {
		PermAssign:  true,
		PermViewAll: true,
	},
	RoleTechnician: {
		PermResolve: true,
	},
	RoleAdmin: {
		PermAssign:      true,
		PermViewAll:     true,
		PermManageUsers: true,
	},
}

// Allowed reports whether the role may perform the permission.
func (r Role) Allowed(p Permission) bool {
	return rolePermissions[r][p]
}
