package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/volunteersync/backend/internal/app/auth"
	"github.com/volunteersync/backend/internal/app/models"
	"github.com/volunteersync/backend/internal/app/models/dto"
	"github.com/volunteersync/backend/internal/app/repositories"
	"github.com/volunteersync/backend/internal/pkg/apperrors"
	"github.com/volunteersync/backend/internal/pkg/helpers"
)

// OrganizationService handles organization operations
type OrganizationService struct {
	organizationRepo *repositories.OrganizationRepository
	authzService     *auth.AuthorizationService
	logger           zerolog.Logger
}

// NewOrganizationService creates a new OrganizationService
func NewOrganizationService(
	organizationRepo *repositories.OrganizationRepository,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) *OrganizationService {
	return &OrganizationService{
		organizationRepo: organizationRepo,
		authzService:     authzService,
		logger:           logger,
	}
}

func toOrganizationResponse(org *models.Organization) dto.OrganizationResponse {
	return dto.OrganizationResponse{
		ID:          org.ID,
		Name:        org.Name,
		Description: org.Description,
		Website:     org.Website,
		Verified:    org.Verified,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
}

// CreateOrganization registers a new organization, administrators only
func (s *OrganizationService) CreateOrganization(ctx context.Context, principal auth.Principal, req *dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if err := s.authzService.RequirePermission(principal, auth.PermOrganizationCreate); err != nil {
		return nil, err
	}

	org := &models.Organization{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
	}

	id, err := s.organizationRepo.CreateOrganization(ctx, org)
	if err != nil {
		return nil, err
	}

	created, err := s.organizationRepo.GetOrganizationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("organizationID", id).
		Str("name", req.Name).
		Msg("Organization created")

	resp := toOrganizationResponse(created)
	return &resp, nil
}

// GetOrganization retrieves an organization by ID
func (s *OrganizationService) GetOrganization(ctx context.Context, id int64) (*dto.OrganizationResponse, error) {
	org, err := s.organizationRepo.GetOrganizationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toOrganizationResponse(org)
	return &resp, nil
}

// UpdateOrganization updates an organization. Organization admins may update
// their own organization; system administrators may update any.
func (s *OrganizationService) UpdateOrganization(ctx context.Context, principal auth.Principal, id int64, req *dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if err := s.authzService.RequirePermission(principal, auth.PermOrganizationUpdate); err != nil {
		return nil, err
	}
	if !principal.IsSystemAdmin() && !principal.BelongsToOrganization(id) {
		return nil, apperrors.NewForbiddenError("cannot update another organization")
	}

	org, err := s.organizationRepo.GetOrganizationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	org.Name = req.Name
	org.Description = req.Description
	org.Website = req.Website

	if err := s.organizationRepo.UpdateOrganization(ctx, org); err != nil {
		return nil, err
	}

	updated, err := s.organizationRepo.GetOrganizationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("organizationID", id).Msg("Organization updated")

	resp := toOrganizationResponse(updated)
	return &resp, nil
}

// VerifyOrganization marks an organization as verified, administrators only
func (s *OrganizationService) VerifyOrganization(ctx context.Context, principal auth.Principal, id int64) (*dto.OrganizationResponse, error) {
	if err := s.authzService.RequirePermission(principal, auth.PermOrganizationVerify); err != nil {
		return nil, err
	}

	if err := s.organizationRepo.SetVerified(ctx, id, true); err != nil {
		return nil, err
	}

	org, err := s.organizationRepo.GetOrganizationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("organizationID", id).Msg("Organization verified")

	resp := toOrganizationResponse(org)
	return &resp, nil
}

// DeleteOrganization removes an organization, administrators only
func (s *OrganizationService) DeleteOrganization(ctx context.Context, principal auth.Principal, id int64) error {
	if err := s.authzService.RequirePermission(principal, auth.PermOrganizationDelete); err != nil {
		return err
	}

	if err := s.organizationRepo.DeleteOrganization(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("organizationID", id).Msg("Organization deleted")
	return nil
}

// ListOrganizations retrieves organizations with filtering and pagination
func (s *OrganizationService) ListOrganizations(ctx context.Context, filter *dto.OrganizationFilterRequest) (*dto.PaginatedData, error) {
	page, pageSize := helpers.NormalizePagination(filter.Page, filter.PageSize)
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	orgs, total, err := s.organizationRepo.ListOrganizations(ctx, filter.Verified, filter.Search, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.OrganizationResponse, 0, len(orgs))
	for _, org := range orgs {
		items = append(items, toOrganizationResponse(org))
	}

	data := dto.NewPaginatedData(items, total, page, pageSize)
	return &data, nil
}
