package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/volunteersync/backend/internal/app/models"
	"github.com/volunteersync/backend/internal/app/models/dto"
	"github.com/volunteersync/backend/internal/app/services"
	"github.com/volunteersync/backend/internal/middleware"
)

// TaskController handles task endpoints
type TaskController struct {
	taskService *services.TaskService
}

// NewTaskController creates a new TaskController
func NewTaskController(taskService *services.TaskService) *TaskController {
	return &TaskController{
		taskService: taskService,
	}
}

// CreateTask creates a task for the caller's organization
// @Summary Create a task
// @Description Creates a draft task owned by the caller's organization
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTaskRequest true "Task information"
// @Success 200 {object} dto.APIResponse{data=dto.TaskResponse} "Task created"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Router /tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.taskService.CreateTask(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Task created"))
}

// GetTask returns a single task
// @Summary Get a task
// @Description Returns a task with its organization
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} dto.APIResponse{data=dto.TaskResponse} "Task retrieved"
// @Failure 404 {object} dto.APIResponse "Task not found"
// @Router /tasks/{id} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.taskService.GetTask(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Task retrieved"))
}

// ListTasks lists tasks with filters
// @Summary List tasks
// @Description Returns tasks with optional organization, status and search filters
// @Tags tasks
// @Produce json
// @Param organizationId query int false "Organization filter"
// @Param status query string false "Task status filter"
// @Param search query string false "Title and description search"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedData} "Tasks retrieved"
// @Router /tasks [get]
func (c *TaskController) ListTasks(ctx *gin.Context) {
	var filter dto.TaskFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.taskService.ListTasks(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Tasks retrieved"))
}

// UpdateTask updates a task's details
// @Summary Update a task
// @Description Updates the details of a task owned by the caller's organization
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Task information"
// @Success 200 {object} dto.APIResponse{data=dto.TaskResponse} "Task updated"
// @Failure 400 {object} dto.APIResponse "Capacity below approved volunteer count"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Task not found"
// @Router /tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.taskService.UpdateTask(ctx, principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Task updated"))
}

// UpdateTaskStatus moves a task through its lifecycle
// @Summary Update task status
// @Description Applies a status transition such as publishing or cancelling a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body dto.UpdateTaskStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.TaskResponse} "Task status updated"
// @Failure 400 {object} dto.APIResponse "Transition not allowed"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Task not found"
// @Router /tasks/{id}/status [put]
func (c *TaskController) UpdateTaskStatus(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.taskService.UpdateTaskStatus(ctx, principal, id, models.TaskStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Task status updated"))
}

// DeleteTask removes a task
// @Summary Delete a task
// @Description Deletes a task owned by the caller's organization
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} dto.APIResponse "Task deleted"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Task not found"
// @Router /tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.taskService.DeleteTask(ctx, principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Task deleted"))
}
