package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaims_IsManager(t *testing.T) {
	assert.True(t, Claims{Role: RoleOwner}.IsManager())
	assert.True(t, Claims{Role: RoleManager}.IsManager())
	assert.False(t, Claims{Role: RoleEmployee}.IsManager())
	assert.False(t, Claims{Role: RolePending}.IsManager())
	assert.False(t, Claims{}.IsManager())
}

func TestHasPermission_ReportsView(t *testing.T) {
	assert.True(t, HasPermission(RoleOwner, PermissionReportsView))
	assert.True(t, HasPermission(RoleManager, PermissionReportsView))
	assert.False(t, HasPermission(RoleEmployee, PermissionReportsView))
	assert.False(t, HasPermission(RolePending, PermissionReportsView))
	assert.False(t, HasPermission(Role("contractor"), PermissionReportsView))
}
