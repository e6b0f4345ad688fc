package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/volunteersync/backend/internal/app/models"
)

func TestRoleHasPermission(t *testing.T) {
	tests := []struct {
		name string
		role models.Role
		perm Permission
		want bool
	}{
		{"user can apply", models.RoleUser, PermRegistrationApply, true},
		{"user cannot decide", models.RoleUser, PermRegistrationDecide, false},
		{"user cannot create tasks", models.RoleUser, PermTaskCreate, false},
		{"member cannot decide", models.RoleOrganizationMember, PermRegistrationDecide, false},
		{"member can create tasks", models.RoleOrganizationMember, PermTaskCreate, true},
		{"org admin can decide", models.RoleOrganizationAdmin, PermRegistrationDecide, true},
		{"member cannot delete tasks", models.RoleOrganizationMember, PermTaskDelete, false},
		{"member cannot update organization", models.RoleOrganizationMember, PermOrganizationUpdate, false},
		{"org admin can delete tasks", models.RoleOrganizationAdmin, PermTaskDelete, true},
		{"org admin can update organization", models.RoleOrganizationAdmin, PermOrganizationUpdate, true},
		{"org admin cannot verify organizations", models.RoleOrganizationAdmin, PermOrganizationVerify, false},
		{"org admin cannot list all registrations", models.RoleOrganizationAdmin, PermRegistrationListAll, false},
		{"org admin cannot manage users", models.RoleOrganizationAdmin, PermUserManage, false},
		{"system admin can verify organizations", models.RoleSystemAdmin, PermOrganizationVerify, true},
		{"system admin can list all registrations", models.RoleSystemAdmin, PermRegistrationListAll, true},
		{"system admin can manage users", models.RoleSystemAdmin, PermUserManage, true},
		{"unknown role has nothing", models.Role("GUEST"), PermRegistrationApply, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleHasPermission(tt.role, tt.perm))
		})
	}
}

func TestPrincipalHasPermission(t *testing.T) {
	p := Principal{UserID: 1, Role: models.RoleOrganizationMember}
	assert.True(t, p.HasPermission(PermTaskCreate))
	assert.False(t, p.HasPermission(PermRegistrationDecide))
	assert.False(t, p.HasPermission(PermUserManage))
}

func TestPrincipalIsSystemAdmin(t *testing.T) {
	assert.True(t, Principal{Role: models.RoleSystemAdmin}.IsSystemAdmin())
	assert.False(t, Principal{Role: models.RoleOrganizationAdmin}.IsSystemAdmin())
	assert.False(t, Principal{Role: models.RoleUser}.IsSystemAdmin())
}

func TestPrincipalBelongsToOrganization(t *testing.T) {
	orgID := int64(7)

	p := Principal{UserID: 1, Role: models.RoleOrganizationMember, OrganizationID: &orgID}
	assert.True(t, p.BelongsToOrganization(7))
	assert.False(t, p.BelongsToOrganization(8))

	// no organization attached
	p = Principal{UserID: 2, Role: models.RoleUser}
	assert.False(t, p.BelongsToOrganization(7))
}
