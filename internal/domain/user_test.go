package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolePermissions(t *testing.T) {
	cases := []struct {
		role    Role
		perm    Permission
		allowed bool
	}{
		{RoleStudent, PermSubmit, true},
		{RoleStudent, PermAssign, false},
		{RoleStudent, PermResolve, false},
		{RoleStudent, PermViewAll, false},
		{RoleStudent, PermManageUsers, false},

		{RoleWarden, PermAssign, true},
		{RoleWarden, PermViewAll, true},
		{RoleWarden, PermSubmit, false},
		{RoleWarden, PermResolve, false},
		{RoleWarden, PermManageUsers, false},

		{RoleTechnician, PermResolve, true},
		{RoleTechnician, PermSubmit, false},
		{RoleTechnician, PermAssign, false},
		{RoleTechnician, PermViewAll, false},

		{RoleAdmin, PermAssign, true},
		{RoleAdmin, PermViewAll, true},
		{RoleAdmin, PermManageUsers, true},
		{RoleAdmin, PermSubmit, false},
		{RoleAdmin, PermResolve, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.role.Allowed(tc.perm), "%s / %s", tc.role, tc.perm)
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleStudent))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("Janitor"))
	assert.False(t, ValidRole(""))
}

func TestSessionCan(t *testing.T) {
	warden := Session{UserID: 2, Name: "Warden Rao", Role: RoleWarden}
	assert.True(t, warden.Can(PermAssign))
	assert.False(t, warden.Can(PermManageUsers))
}
