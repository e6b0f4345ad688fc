package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/volunteersync/backend/internal/app/models/dto"
	"github.com/volunteersync/backend/internal/app/services"
	"github.com/volunteersync/backend/internal/middleware"
)

// OrganizationController handles organization endpoints
type OrganizationController struct {
	organizationService *services.OrganizationService
}

// NewOrganizationController creates a new OrganizationController
func NewOrganizationController(organizationService *services.OrganizationService) *OrganizationController {
	return &OrganizationController{
		organizationService: organizationService,
	}
}

// CreateOrganization creates an organization
// @Summary Create an organization
// @Description Creates an unverified organization
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOrganizationRequest true "Organization information"
// @Success 200 {object} dto.APIResponse{data=dto.OrganizationResponse} "Organization created"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 409 {object} dto.APIResponse "Organization name already exists"
// @Router /organizations [post]
func (c *OrganizationController) CreateOrganization(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateOrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.organizationService.CreateOrganization(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Organization created"))
}

// GetOrganization returns a single organization
// @Summary Get an organization
// @Tags organizations
// @Produce json
// @Param id path int true "Organization ID"
// @Success 200 {object} dto.APIResponse{data=dto.OrganizationResponse} "Organization retrieved"
// @Failure 404 {object} dto.APIResponse "Organization not found"
// @Router /organizations/{id} [get]
func (c *OrganizationController) GetOrganization(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.organizationService.GetOrganization(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Organization retrieved"))
}

// ListOrganizations lists organizations with filters
// @Summary List organizations
// @Tags organizations
// @Produce json
// @Param verified query bool false "Verification filter"
// @Param search query string false "Name search"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedData} "Organizations retrieved"
// @Router /organizations [get]
func (c *OrganizationController) ListOrganizations(ctx *gin.Context) {
	var filter dto.OrganizationFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.organizationService.ListOrganizations(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Organizations retrieved"))
}

// UpdateOrganization updates an organization's details
// @Summary Update an organization
// @Description Updates an organization, limited to its own administrators
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Organization ID"
// @Param request body dto.UpdateOrganizationRequest true "Organization information"
// @Success 200 {object} dto.APIResponse{data=dto.OrganizationResponse} "Organization updated"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Organization not found"
// @Router /organizations/{id} [put]
func (c *OrganizationController) UpdateOrganization(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.organizationService.UpdateOrganization(ctx, principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Organization updated"))
}

// VerifyOrganization marks an organization as verified
// @Summary Verify an organization
// @Description Marks an organization as verified, limited to system administrators
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Organization ID"
// @Success 200 {object} dto.APIResponse{data=dto.OrganizationResponse} "Organization verified"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Organization not found"
// @Router /organizations/{id}/verify [post]
func (c *OrganizationController) VerifyOrganization(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.organizationService.VerifyOrganization(ctx, principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Organization verified"))
}

// DeleteOrganization removes an organization
// @Summary Delete an organization
// @Description Deletes an organization that has no tasks or members
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Organization ID"
// @Success 200 {object} dto.APIResponse "Organization deleted"
// @Failure 400 {object} dto.APIResponse "Organization still has tasks or members"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Organization not found"
// @Router /organizations/{id} [delete]
func (c *OrganizationController) DeleteOrganization(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.organizationService.DeleteOrganization(ctx, principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Organization deleted"))
}
