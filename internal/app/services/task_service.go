package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/volunteersync/backend/internal/app/auth"
	"github.com/volunteersync/backend/internal/app/models"
	"github.com/volunteersync/backend/internal/app/models/dto"
	"github.com/volunteersync/backend/internal/app/repositories"
	"github.com/volunteersync/backend/internal/pkg/apperrors"
	"github.com/volunteersync/backend/internal/pkg/helpers"
)

// taskStatusTransitions defines the allowed task lifecycle moves
var taskStatusTransitions = map[models.TaskStatus][]models.TaskStatus{
	models.TaskStatusDraft:  {models.TaskStatusActive, models.TaskStatusCancelled},
	models.TaskStatusActive: {models.TaskStatusCompleted, models.TaskStatusCancelled},
}

func taskStatusTransitionAllowed(from, to models.TaskStatus) bool {
	for _, allowed := range taskStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// resolveTaskOrganization picks the organization a new task belongs to.
// Organization staff create tasks in their own organization and may omit the
// field; system administrators carry no organization and must name a target.
func resolveTaskOrganization(p auth.Principal, requested *int64) (int64, error) {
	if p.OrganizationID != nil {
		if requested != nil && *requested != *p.OrganizationID {
			return 0, apperrors.NewForbiddenError("cannot create a task for another organization")
		}
		return *p.OrganizationID, nil
	}
	if p.IsSystemAdmin() {
		if requested == nil {
			return 0, apperrors.NewBadRequestError("organizationId is required when the caller has no organization")
		}
		return *requested, nil
	}
	return 0, apperrors.NewBadRequestError("caller is not attached to an organization")
}

// TaskService handles volunteer task operations
type TaskService struct {
	taskRepo         *repositories.TaskRepository
	organizationRepo *repositories.OrganizationRepository
	authzService     *auth.AuthorizationService
	logger           zerolog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo *repositories.TaskRepository,
	organizationRepo *repositories.OrganizationRepository,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:         taskRepo,
		organizationRepo: organizationRepo,
		authzService:     authzService,
		logger:           logger,
	}
}

func toTaskResponse(task *models.Task) dto.TaskResponse {
	resp := dto.TaskResponse{
		ID:                task.ID,
		OrganizationID:    task.OrganizationID,
		CreatedBy:         task.CreatedBy,
		Title:             task.Title,
		Description:       task.Description,
		Location:          task.Location,
		StartDate:         task.StartDate,
		EndDate:           task.EndDate,
		Status:            string(task.Status),
		MaxVolunteers:     task.MaxVolunteers,
		CurrentVolunteers: task.CurrentVolunteers,
		RequiredSkills:    task.RequiredSkills,
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
	}
	if task.Organization != nil {
		org := toOrganizationResponse(task.Organization)
		resp.Organization = &org
	}
	return resp
}

// CreateTask creates a DRAFT task for the resolved target organization
func (s *TaskService) CreateTask(ctx context.Context, principal auth.Principal, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if err := s.authzService.RequirePermission(principal, auth.PermTaskCreate); err != nil {
		return nil, err
	}

	organizationID, err := resolveTaskOrganization(principal, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.organizationRepo.GetOrganizationByID(ctx, organizationID); err != nil {
		return nil, err
	}

	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.NewBadRequestError("endDate must be after startDate")
	}

	task := &models.Task{
		OrganizationID: organizationID,
		CreatedBy:      principal.UserID,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Status:         models.TaskStatusDraft,
		MaxVolunteers:  req.MaxVolunteers,
		RequiredSkills: req.RequiredSkills,
	}

	id, err := s.taskRepo.CreateTask(ctx, task)
	if err != nil {
		return nil, err
	}

	created, err := s.taskRepo.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("taskID", id).
		Int64("organizationID", task.OrganizationID).
		Msg("Task created")

	resp := toTaskResponse(created)
	return &resp, nil
}

// GetTask retrieves a task by ID, with its organization attached
func (s *TaskService) GetTask(ctx context.Context, id int64) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if org, err := s.organizationRepo.GetOrganizationByID(ctx, task.OrganizationID); err == nil {
		task.Organization = org
	}

	resp := toTaskResponse(task)
	return &resp, nil
}

// UpdateTask updates a task's details. Capacity cannot drop below the number
// of volunteers already approved.
func (s *TaskService) UpdateTask(ctx context.Context, principal auth.Principal, id int64, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.authzService.ValidateTaskManagement(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.NewBadRequestError("endDate must be after startDate")
	}
	if req.MaxVolunteers < task.CurrentVolunteers {
		return nil, apperrors.NewInvalidStateError(
			fmt.Sprintf("maxVolunteers cannot be below the %d already approved volunteers", task.CurrentVolunteers))
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Location = req.Location
	task.StartDate = req.StartDate
	task.EndDate = req.EndDate
	task.MaxVolunteers = req.MaxVolunteers
	task.RequiredSkills = req.RequiredSkills

	if err := s.taskRepo.UpdateTask(ctx, task); err != nil {
		return nil, err
	}

	updated, err := s.taskRepo.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("taskID", id).Msg("Task updated")

	resp := toTaskResponse(updated)
	return &resp, nil
}

// UpdateTaskStatus transitions a task between lifecycle states
func (s *TaskService) UpdateTaskStatus(ctx context.Context, principal auth.Principal, id int64, status models.TaskStatus) (*dto.TaskResponse, error) {
	task, err := s.authzService.ValidateTaskManagement(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if !status.IsValid() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown task status %q", status))
	}
	if !taskStatusTransitionAllowed(task.Status, status) {
		return nil, apperrors.NewInvalidStateError(
			fmt.Sprintf("cannot move task from %s to %s", task.Status, status))
	}
	if status == models.TaskStatusActive && task.EndDate.Before(time.Now()) {
		return nil, apperrors.NewInvalidStateError("cannot activate a task whose end date has passed")
	}

	if err := s.taskRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	updated, err := s.taskRepo.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("taskID", id).
		Str("from", string(task.Status)).
		Str("to", string(status)).
		Msg("Task status changed")

	resp := toTaskResponse(updated)
	return &resp, nil
}

// DeleteTask removes a task and its registrations
func (s *TaskService) DeleteTask(ctx context.Context, principal auth.Principal, id int64) error {
	if err := s.authzService.RequirePermission(principal, auth.PermTaskDelete); err != nil {
		return err
	}
	if _, err := s.authzService.ValidateTaskManagement(ctx, principal, id); err != nil {
		return err
	}

	if err := s.taskRepo.DeleteTask(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("taskID", id).Msg("Task deleted")
	return nil
}

// ListTasks retrieves tasks with filtering and pagination
func (s *TaskService) ListTasks(ctx context.Context, filter *dto.TaskFilterRequest) (*dto.PaginatedData, error) {
	var status *models.TaskStatus
	if filter.Status != nil && *filter.Status != "" {
		st := models.TaskStatus(*filter.Status)
		if !st.IsValid() {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown task status %q", *filter.Status))
		}
		status = &st
	}

	page, pageSize := helpers.NormalizePagination(filter.Page, filter.PageSize)
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	tasks, total, err := s.taskRepo.ListTasks(ctx, filter.OrganizationID, status, filter.Search, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, toTaskResponse(task))
	}

	data := dto.NewPaginatedData(items, total, page, pageSize)
	return &data, nil
}
