package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRoleChecks(t *testing.T) {
	u := &User{
		UserID:     "u1",
		HeldRoles:  []Role{RoleBuyer, RoleAgent},
		ActiveRole: RoleBuyer,
	}

	assert.True(t, u.HasRole(RoleAgent))
	assert.False(t, u.HasRole(RoleTransporter))

	assert.True(t, u.CanAct(RoleBuyer))
	assert.False(t, u.CanAct(RoleAgent), "held but not active")
	assert.False(t, u.CanAct(RoleAdmin))
}

func TestAdminCanActAsAnyHeldRole(t *testing.T) {
	u := &User{
		UserID:     "u2",
		HeldRoles:  []Role{RoleAdmin, RoleAgent},
		ActiveRole: RoleAdmin,
	}

	assert.True(t, u.CanAct(RoleAgent), "admin bypasses the active-role gate")
	assert.False(t, u.CanAct(RoleBuyer), "still must hold the role")
}

func TestValidRole(t *testing.T) {
	for _, r := range []Role{RoleBuyer, RoleAgent, RoleTransporter, RoleAdmin} {
		assert.True(t, ValidRole(r))
	}
	assert.False(t, ValidRole("farmer"))
	assert.False(t, ValidRole(""))
}
