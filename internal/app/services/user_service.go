package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/volunteersync/backend/internal/app/auth"
	"github.com/volunteersync/backend/internal/app/models"
	"github.com/volunteersync/backend/internal/app/models/dto"
	"github.com/volunteersync/backend/internal/app/repositories"
	"github.com/volunteersync/backend/internal/pkg/apperrors"
	"github.com/volunteersync/backend/internal/pkg/helpers"
)

// UserService handles user profile and role management operations
type UserService struct {
	userRepo         *repositories.UserRepository
	organizationRepo *repositories.OrganizationRepository
	authzService     *auth.AuthorizationService
	logger           zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo *repositories.UserRepository,
	organizationRepo *repositories.OrganizationRepository,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		organizationRepo: organizationRepo,
		authzService:     authzService,
		logger:           logger,
	}
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Role:           string(user.Role),
		OrganizationID: user.OrganizationID,
		IsActive:       user.IsActive,
		Skills:         user.Skills,
		CreatedAt:      user.CreatedAt,
		LastLoginAt:    user.LastLoginAt,
	}
}

// GetUser retrieves a user, visible to the user themselves and administrators
func (s *UserService) GetUser(ctx context.Context, principal auth.Principal, userID int64) (*dto.UserResponse, error) {
	if !s.authzService.CanActForUser(principal, userID) {
		return nil, apperrors.NewForbiddenError("cannot view another user's profile")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateProfile updates a user's own profile fields
func (s *UserService) UpdateProfile(ctx context.Context, principal auth.Principal, userID int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !s.authzService.CanActForUser(principal, userID) {
		return nil, apperrors.NewForbiddenError("cannot update another user's profile")
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.Skills); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("User profile updated")

	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateRole assigns a role, restricted to administrators. Organization roles
// must name an existing organization; the global roles must not.
func (s *UserService) UpdateRole(ctx context.Context, principal auth.Principal, userID int64, req *dto.UpdateUserRoleRequest) (*dto.UserResponse, error) {
	if err := s.authzService.RequirePermission(principal, auth.PermUserManage); err != nil {
		return nil, err
	}

	role := models.Role(req.Role)
	if !role.IsValid() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown role %q", req.Role))
	}

	orgRole := role == models.RoleOrganizationMember || role == models.RoleOrganizationAdmin
	if orgRole {
		if req.OrganizationID == nil {
			return nil, apperrors.NewBadRequestError("organization roles require an organizationId")
		}
		if _, err := s.organizationRepo.GetOrganizationByID(ctx, *req.OrganizationID); err != nil {
			return nil, err
		}
	} else if req.OrganizationID != nil {
		return nil, apperrors.NewBadRequestError("only organization roles may carry an organizationId")
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role, req.OrganizationID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userID", userID).
		Str("role", req.Role).
		Msg("User role updated")

	resp := toUserResponse(user)
	return &resp, nil
}

// ListUsers retrieves users with filtering and pagination, administrators only
func (s *UserService) ListUsers(ctx context.Context, principal auth.Principal, filter *dto.UserFilterRequest) (*dto.PaginatedData, error) {
	if err := s.authzService.RequirePermission(principal, auth.PermUserList); err != nil {
		return nil, err
	}

	var role *models.Role
	if filter.Role != nil && *filter.Role != "" {
		r := models.Role(*filter.Role)
		if !r.IsValid() {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown role %q", *filter.Role))
		}
		role = &r
	}

	page, pageSize := helpers.NormalizePagination(filter.Page, filter.PageSize)
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	users, total, err := s.userRepo.ListUsers(ctx, role, filter.Search, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, toUserResponse(user))
	}

	data := dto.NewPaginatedData(items, total, page, pageSize)
	return &data, nil
}

// DeactivateUser disables a user account, administrators only
func (s *UserService) DeactivateUser(ctx context.Context, principal auth.Principal, userID int64) error {
	if err := s.authzService.RequirePermission(principal, auth.PermUserManage); err != nil {
		return err
	}

	if err := s.userRepo.SetActive(ctx, userID, false); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Msg("User deactivated")
	return nil
}
