package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/volunteersync/backend/internal/app/auth"
	"github.com/volunteersync/backend/internal/app/models"
	"github.com/volunteersync/backend/internal/pkg/apperrors"
)

func TestTaskStatusTransitionAllowed(t *testing.T) {
	tests := []struct {
		name string
		from models.TaskStatus
		to   models.TaskStatus
		want bool
	}{
		{"draft to active", models.TaskStatusDraft, models.TaskStatusActive, true},
		{"draft to cancelled", models.TaskStatusDraft, models.TaskStatusCancelled, true},
		{"draft to completed", models.TaskStatusDraft, models.TaskStatusCompleted, false},
		{"active to completed", models.TaskStatusActive, models.TaskStatusCompleted, true},
		{"active to cancelled", models.TaskStatusActive, models.TaskStatusCancelled, true},
		{"active to draft", models.TaskStatusActive, models.TaskStatusDraft, false},
		{"completed is terminal", models.TaskStatusCompleted, models.TaskStatusActive, false},
		{"cancelled is terminal", models.TaskStatusCancelled, models.TaskStatusActive, false},
		{"no self transition", models.TaskStatusActive, models.TaskStatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, taskStatusTransitionAllowed(tt.from, tt.to))
		})
	}
}

func TestResolveTaskOrganization(t *testing.T) {
	ownOrg := int64(3)
	otherOrg := int64(4)
	member := auth.Principal{UserID: 1, Role: models.RoleOrganizationMember, OrganizationID: &ownOrg}
	sysAdmin := auth.Principal{UserID: 2, Role: models.RoleSystemAdmin}

	t.Run("staff default to their own organization", func(t *testing.T) {
		orgID, err := resolveTaskOrganization(member, nil)
		assert.NoError(t, err)
		assert.Equal(t, ownOrg, orgID)
	})

	t.Run("staff may name their own organization explicitly", func(t *testing.T) {
		orgID, err := resolveTaskOrganization(member, &ownOrg)
		assert.NoError(t, err)
		assert.Equal(t, ownOrg, orgID)
	})

	t.Run("staff cannot target another organization", func(t *testing.T) {
		_, err := resolveTaskOrganization(member, &otherOrg)
		assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
	})

	t.Run("system admin must name a target", func(t *testing.T) {
		_, err := resolveTaskOrganization(sysAdmin, nil)
		assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
	})

	t.Run("system admin creates for the named organization", func(t *testing.T) {
		orgID, err := resolveTaskOrganization(sysAdmin, &otherOrg)
		assert.NoError(t, err)
		assert.Equal(t, otherOrg, orgID)
	})

	t.Run("caller with no organization and no admin role is refused", func(t *testing.T) {
		_, err := resolveTaskOrganization(auth.Principal{UserID: 5, Role: models.RoleUser}, &otherOrg)
		assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
	})
}
