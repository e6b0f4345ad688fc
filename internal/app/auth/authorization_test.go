package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/volunteersync/backend/internal/app/models"
	"github.com/volunteersync/backend/internal/pkg/apperrors"
)

func orgPrincipal(role models.Role, orgID int64) Principal {
	return Principal{UserID: 1, Role: role, OrganizationID: &orgID}
}

func TestRequirePermission(t *testing.T) {
	svc := &AuthorizationService{}

	err := svc.RequirePermission(Principal{Role: models.RoleUser}, PermTaskCreate)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	err = svc.RequirePermission(orgPrincipal(models.RoleOrganizationMember, 1), PermTaskCreate)
	assert.NoError(t, err)
}

func TestCanManageTask(t *testing.T) {
	svc := &AuthorizationService{}
	task := &models.Task{ID: 10, OrganizationID: 3}

	assert.True(t, svc.CanManageTask(Principal{Role: models.RoleSystemAdmin}, task))
	assert.True(t, svc.CanManageTask(orgPrincipal(models.RoleOrganizationMember, 3), task))
	assert.True(t, svc.CanManageTask(orgPrincipal(models.RoleOrganizationAdmin, 3), task))

	// other organization
	assert.False(t, svc.CanManageTask(orgPrincipal(models.RoleOrganizationMember, 4), task))
	// plain volunteer
	assert.False(t, svc.CanManageTask(Principal{UserID: 2, Role: models.RoleUser}, task))
}

func TestCanDecideRegistration(t *testing.T) {
	svc := &AuthorizationService{}
	task := &models.Task{ID: 10, OrganizationID: 3}

	assert.True(t, svc.CanDecideRegistration(Principal{Role: models.RoleSystemAdmin}, task))
	assert.True(t, svc.CanDecideRegistration(orgPrincipal(models.RoleOrganizationAdmin, 3), task))

	// decisions are reserved for admins, membership alone is not enough
	assert.False(t, svc.CanDecideRegistration(orgPrincipal(models.RoleOrganizationMember, 3), task))
	assert.False(t, svc.CanDecideRegistration(orgPrincipal(models.RoleOrganizationAdmin, 4), task))
	assert.False(t, svc.CanDecideRegistration(Principal{UserID: 2, Role: models.RoleUser}, task))
}

func TestCanViewRegistration(t *testing.T) {
	svc := &AuthorizationService{}
	task := &models.Task{ID: 10, OrganizationID: 3}
	reg := &models.TaskRegistration{ID: 5, TaskID: 10, UserID: 20}

	// applicant can see their own registration
	assert.True(t, svc.CanViewRegistration(Principal{UserID: 20, Role: models.RoleUser}, reg, task))
	// organization staff of the task's organization
	assert.True(t, svc.CanViewRegistration(orgPrincipal(models.RoleOrganizationMember, 3), reg, task))
	// system administrator
	assert.True(t, svc.CanViewRegistration(Principal{UserID: 99, Role: models.RoleSystemAdmin}, reg, task))

	// unrelated volunteer
	assert.False(t, svc.CanViewRegistration(Principal{UserID: 21, Role: models.RoleUser}, reg, task))
	// staff of a different organization
	assert.False(t, svc.CanViewRegistration(orgPrincipal(models.RoleOrganizationMember, 4), reg, task))
}

func TestCanActForUser(t *testing.T) {
	svc := &AuthorizationService{}

	assert.True(t, svc.CanActForUser(Principal{UserID: 20, Role: models.RoleUser}, 20))
	assert.True(t, svc.CanActForUser(Principal{UserID: 1, Role: models.RoleSystemAdmin}, 20))
	assert.False(t, svc.CanActForUser(Principal{UserID: 21, Role: models.RoleUser}, 20))
	assert.False(t, svc.CanActForUser(orgPrincipal(models.RoleOrganizationAdmin, 3), 20))
}
