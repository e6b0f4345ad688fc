package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/volunteersync/backend/internal/app/models/dto"
	"github.com/volunteersync/backend/internal/app/services"
	"github.com/volunteersync/backend/internal/middleware"
)

// RegistrationController handles task registration lifecycle endpoints
type RegistrationController struct {
	registrationService *services.RegistrationService
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService *services.RegistrationService) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
	}
}

// Register applies the authenticated volunteer to a task
// @Summary Register for a task
// @Description Creates a pending registration for the authenticated volunteer on a task
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRegistrationRequest true "Registration information"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registration created"
// @Failure 400 {object} dto.APIResponse "Task not accepting registrations"
// @Failure 404 {object} dto.APIResponse "Task not found"
// @Failure 409 {object} dto.APIResponse "Already registered"
// @Router /volunteers/registrations [post]
func (c *RegistrationController) Register(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.registrationService.Register(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Registration created"))
}

// GetRegistration returns a single registration
// @Summary Get a registration
// @Description Returns a registration visible to the caller
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registration retrieved"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Registration not found"
// @Router /volunteers/registrations/{id} [get]
func (c *RegistrationController) GetRegistration(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.registrationService.GetRegistration(ctx, principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Registration retrieved"))
}

// ListRegistrations lists all registrations for administrators
// @Summary List all registrations
// @Description Returns all registrations with optional status, task and user filters
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Registration status filter"
// @Param taskId query int false "Task filter"
// @Param userId query int false "User filter"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedData} "Registrations retrieved"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Router /volunteers/registrations [get]
func (c *RegistrationController) ListRegistrations(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var filter dto.RegistrationFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.registrationService.ListAll(ctx, principal, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Registrations retrieved"))
}

// UpdateStatus applies an organization decision to a registration
// @Summary Update registration status
// @Description Approves or rejects a pending registration
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Param request body dto.UpdateRegistrationStatusRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registration updated"
// @Failure 400 {object} dto.APIResponse "Registration is not pending or task is full"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Registration not found"
// @Router /volunteers/registrations/{id}/status [put]
func (c *RegistrationController) UpdateStatus(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateRegistrationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.registrationService.UpdateStatus(ctx, principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Registration updated"))
}

// Approve approves a pending registration
// @Summary Approve a registration
// @Description Approves a pending registration and claims a task slot
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registration approved"
// @Failure 400 {object} dto.APIResponse "Registration is not pending or task is full"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Registration not found"
// @Router /volunteers/registrations/{id}/approve [post]
func (c *RegistrationController) Approve(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.registrationService.Approve(ctx, principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Registration approved"))
}

// Reject rejects a pending registration
// @Summary Reject a registration
// @Description Rejects a pending registration with an optional reason
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Param request body dto.RejectRegistrationRequest false "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registration rejected"
// @Failure 400 {object} dto.APIResponse "Registration is not pending"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Registration not found"
// @Router /volunteers/registrations/{id}/reject [post]
func (c *RegistrationController) Reject(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RejectRegistrationRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.HandleBindingError(ctx, err)
			return
		}
	}

	resp, err := c.registrationService.Reject(ctx, principal, id, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Registration rejected"))
}

// Delete withdraws a registration
// @Summary Delete a registration
// @Description Removes a registration that has not been approved
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Success 200 {object} dto.APIResponse "Registration deleted"
// @Failure 400 {object} dto.APIResponse "Cannot delete an approved registration"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Registration not found"
// @Router /volunteers/registrations/{id} [delete]
func (c *RegistrationController) Delete(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.registrationService.Delete(ctx, principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Registration deleted"))
}

// ListByTask lists registrations for a task
// @Summary List registrations for a task
// @Description Returns registrations on a task, visible to its organization
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param taskId path int true "Task ID"
// @Param status query string false "Registration status filter"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedData} "Registrations retrieved"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Task not found"
// @Router /volunteers/tasks/{taskId}/registrations [get]
func (c *RegistrationController) ListByTask(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(ctx, "taskId")
	if !ok {
		return
	}

	var filter dto.RegistrationFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.registrationService.ListByTask(ctx, principal, taskID, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Registrations retrieved"))
}

// ListByUser lists a volunteer's registrations
// @Summary List registrations of a user
// @Description Returns the registrations of a volunteer, visible to the volunteer and administrators
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param status query string false "Registration status filter"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedData} "Registrations retrieved"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Router /volunteers/users/{userId}/registrations [get]
func (c *RegistrationController) ListByUser(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	var filter dto.RegistrationFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.registrationService.ListByUser(ctx, principal, userID, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Registrations retrieved"))
}

// ListPendingByOrganization lists pending registrations across an organization's tasks
// @Summary List pending registrations for an organization
// @Description Returns pending registrations on all tasks of an organization
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param organizationId path int true "Organization ID"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedData} "Pending registrations retrieved"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Router /volunteers/organizations/{organizationId}/pending-registrations [get]
func (c *RegistrationController) ListPendingByOrganization(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	organizationID, ok := parseIDParam(ctx, "organizationId")
	if !ok {
		return
	}

	var pagination dto.PaginationRequest
	if err := ctx.ShouldBindQuery(&pagination); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.registrationService.ListPendingByOrganization(ctx, principal, organizationID, pagination.Page, pagination.PageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Pending registrations retrieved"))
}
