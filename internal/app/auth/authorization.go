package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/volunteersync/backend/internal/app/models"
	"github.com/volunteersync/backend/internal/app/repositories"
	"github.com/volunteersync/backend/internal/pkg/apperrors"
	"github.com/volunteersync/backend/internal/pkg/logger"
)

// AuthorizationService resolves principals and performs the checks that need
// more context than a capability key, such as organization scoping.
type AuthorizationService struct {
	userRepo *repositories.UserRepository
	taskRepo *repositories.TaskRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo *repositories.UserRepository, taskRepo *repositories.TaskRepository) *AuthorizationService {
	return &AuthorizationService{
		userRepo: userRepo,
		taskRepo: taskRepo,
	}
}

// GetPrincipal loads the authenticated user and builds their principal
func (s *AuthorizationService) GetPrincipal(ctx context.Context, userID int64) (Principal, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return Principal{}, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error loading principal")
		return Principal{}, fmt.Errorf("failed to load principal: %w", err)
	}

	if !user.IsActive {
		return Principal{}, apperrors.ErrAccountDisabled
	}

	return Principal{
		UserID:         user.ID,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
	}, nil
}

// RequirePermission returns ErrPermissionDenied when the principal lacks the key
func (s *AuthorizationService) RequirePermission(p Principal, perm Permission) error {
	if !p.HasPermission(perm) {
		return apperrors.NewForbiddenError(fmt.Sprintf("missing permission %s", perm))
	}
	return nil
}

// CanManageTask reports whether the principal may modify a task. Organization
// roles are limited to tasks of their own organization.
func (s *AuthorizationService) CanManageTask(p Principal, task *models.Task) bool {
	if p.IsSystemAdmin() {
		return true
	}
	return p.HasPermission(PermTaskUpdate) && p.BelongsToOrganization(task.OrganizationID)
}

// ValidateTaskManagement validates task modification access or returns an error
func (s *AuthorizationService) ValidateTaskManagement(ctx context.Context, p Principal, taskID int64) (*models.Task, error) {
	task, err := s.taskRepo.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !s.CanManageTask(p, task) {
		return nil, apperrors.NewForbiddenError("task belongs to another organization")
	}

	return task, nil
}

// CanDecideRegistration reports whether the principal may approve or reject a
// registration on the given task
func (s *AuthorizationService) CanDecideRegistration(p Principal, task *models.Task) bool {
	if p.IsSystemAdmin() {
		return true
	}
	return p.HasPermission(PermRegistrationDecide) && p.BelongsToOrganization(task.OrganizationID)
}

// CanViewRegistration reports whether the principal may read a registration:
// the applicant themselves, organization staff of the task's organization, or
// a system administrator.
func (s *AuthorizationService) CanViewRegistration(p Principal, reg *models.TaskRegistration, task *models.Task) bool {
	if p.UserID == reg.UserID {
		return true
	}
	if p.IsSystemAdmin() {
		return true
	}
	return p.BelongsToOrganization(task.OrganizationID)
}

// CanActForUser reports whether the principal may operate on another user's
/// resources: only themselves, or a system administrator.
func (s *AuthorizationService) CanActForUser(p Principal, userID int64) bool {
	return p.UserID == userID || p.IsSystemAdmin()
}
