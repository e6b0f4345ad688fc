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

// RegistrationStore defines the registration persistence operations the
// lifecycle service depends on, implemented by
// repositories.RegistrationRepository.
type RegistrationStore interface {
	CreateRegistration(ctx context.Context, reg *models.TaskRegistration) (int64, error)
	GetRegistrationByID(ctx context.Context, id int64) (*models.TaskRegistration, error)
	ExistsByTaskAndUser(ctx context.Context, taskID, userID int64) (bool, error)
	Approve(ctx context.Context, id int64) (*models.TaskRegistration, error)
	Reject(ctx context.Context, id int64, reason *string) (*models.TaskRegistration, error)
	DeleteRegistration(ctx context.Context, id int64) error
	ListRegistrations(ctx context.Context, filter repositories.RegistrationFilter, offset uint64, limit int) ([]*models.TaskRegistration, int64, error)
}

// TaskReader reads tasks for existence and precondition checks
type TaskReader interface {
	GetTaskByID(ctx context.Context, id int64) (*models.Task, error)
}

// UserReader reads users for existence checks
type UserReader interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Notifier delivers lifecycle notifications, implemented by NotificationService
type Notifier interface {
	Notify(ctx context.Context, n *models.Notification)
}

// RegistrationService handles the task registration lifecycle
type RegistrationService struct {
	registrationRepo    RegistrationStore
	taskRepo            TaskReader
	userRepo            UserReader
	authzService        *auth.AuthorizationService
	notificationService Notifier
	logger              zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	registrationRepo RegistrationStore,
	taskRepo TaskReader,
	userRepo UserReader,
	authzService *auth.AuthorizationService,
	notificationService Notifier,
	logger zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		registrationRepo:    registrationRepo,
		taskRepo:            taskRepo,
		userRepo:            userRepo,
		authzService:        authzService,
		notificationService: notificationService,
		logger:              logger,
	}
}

func toRegistrationResponse(reg *models.TaskRegistration) dto.RegistrationResponse {
	resp := dto.RegistrationResponse{
		ID:                 reg.ID,
		TaskID:             reg.TaskID,
		UserID:             reg.UserID,
		Status:             string(reg.Status),
		ApplicationMessage: reg.ApplicationMessage,
		RejectionReason:    reg.RejectionReason,
		RegisteredAt:       reg.RegisteredAt,
		RespondedAt:        reg.RespondedAt,
	}
	if reg.Task != nil {
		task := toTaskResponse(reg.Task)
		resp.Task = &task
	}
	if reg.User != nil {
		user := toUserResponse(reg.User)
		resp.User = &user
	}
	return resp
}

// Register creates a PENDING registration for the authenticated volunteer.
// Checks run in a fixed order so callers always see the same failure for
// the same state: task existence, user existence, duplicates, task status,
// deadline.
func (s *RegistrationService) Register(ctx context.Context, principal auth.Principal, req *dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error) {
	task, err := s.taskRepo.GetTaskByID(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	exists, err := s.registrationRepo.ExistsByTaskAndUser(ctx, task.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAlreadyRegistered
	}

	if task.Status != models.TaskStatusActive {
		return nil, apperrors.NewInvalidStateError("task is not accepting registrations")
	}
	if task.EndDate.Before(time.Now()) {
		return nil, apperrors.NewInvalidStateError("task registration deadline has passed")
	}

	reg := &models.TaskRegistration{
		TaskID:             task.ID,
		UserID:             user.ID,
		Status:             models.RegistrationStatusPending,
		ApplicationMessage: req.ApplicationMessage,
	}

	// The unique index still guards the race between the exists check and
	// this insert.
	if _, err := s.registrationRepo.CreateRegistration(ctx, reg); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("registrationID", reg.ID).
		Int64("taskID", task.ID).
		Int64("userID", user.ID).
		Msg("Registration created")

	s.notificationService.Notify(ctx, &models.Notification{
		UserID:  task.CreatedBy,
		Type:    models.NotificationRegistrationReceived,
		Title:   "New volunteer application",
		Message: fmt.Sprintf("%s %s applied for %q", user.FirstName, user.LastName, task.Title),
		RefType: "registration",
		RefID:   reg.ID,
	})

	resp := toRegistrationResponse(reg)
	return &resp, nil
}

// GetRegistration retrieves a registration visible to the applicant, the
// task's organization staff and administrators
func (s *RegistrationService) GetRegistration(ctx context.Context, principal auth.Principal, id int64) (*dto.RegistrationResponse, error) {
	reg, err := s.registrationRepo.GetRegistrationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetTaskByID(ctx, reg.TaskID)
	if err != nil {
		return nil, err
	}

	if !s.authzService.CanViewRegistration(principal, reg, task) {
		return nil, apperrors.NewForbiddenError("cannot view this registration")
	}

	reg.Task = task
	resp := toRegistrationResponse(reg)
	return &resp, nil
}

// Approve transitions a PENDING registration to APPROVED, claiming a
// volunteer slot atomically
func (s *RegistrationService) Approve(ctx context.Context, principal auth.Principal, id int64) (*dto.RegistrationResponse, error) {
	reg, err := s.registrationRepo.GetRegistrationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetTaskByID(ctx, reg.TaskID)
	if err != nil {
		return nil, err
	}

	if !s.authzService.CanDecideRegistration(principal, task) {
		return nil, apperrors.NewForbiddenError("cannot decide registrations for this task")
	}

	approved, err := s.registrationRepo.Approve(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("registrationID", id).
		Int64("taskID", task.ID).
		Int64("decidedBy", principal.UserID).
		Msg("Registration approved")

	s.notificationService.Notify(ctx, &models.Notification{
		UserID:  approved.UserID,
		Type:    models.NotificationRegistrationApproved,
		Title:   "Application approved",
		Message: fmt.Sprintf("Your application for %q was approved", task.Title),
		RefType: "registration",
		RefID:   approved.ID,
	})

	resp := toRegistrationResponse(approved)
	return &resp, nil
}

// Reject transitions a PENDING registration to REJECTED with an optional reason
func (s *RegistrationService) Reject(ctx context.Context, principal auth.Principal, id int64, reason string) (*dto.RegistrationResponse, error) {
	reg, err := s.registrationRepo.GetRegistrationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetTaskByID(ctx, reg.TaskID)
	if err != nil {
		return nil, err
	}

	if !s.authzService.CanDecideRegistration(principal, task) {
		return nil, apperrors.NewForbiddenError("cannot decide registrations for this task")
	}

	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}

	rejected, err := s.registrationRepo.Reject(ctx, id, reasonPtr)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("registrationID", id).
		Int64("taskID", task.ID).
		Int64("decidedBy", principal.UserID).
		Msg("Registration rejected")

	message := fmt.Sprintf("Your application for %q was rejected", task.Title)
	if reason != "" {
		message = fmt.Sprintf("%s: %s", message, reason)
	}
	s.notificationService.Notify(ctx, &models.Notification{
		UserID:  rejected.UserID,
		Type:    models.NotificationRegistrationRejected,
		Title:   "Application rejected",
		Message: message,
		RefType: "registration",
		RefID:   rejected.ID,
	})

	resp := toRegistrationResponse(rejected)
	return &resp, nil
}

// UpdateStatus decides a registration through the generic status endpoint,
// accepting APPROVED or REJECTED only
func (s *RegistrationService) UpdateStatus(ctx context.Context, principal auth.Principal, id int64, req *dto.UpdateRegistrationStatusRequest) (*dto.RegistrationResponse, error) {
	switch models.RegistrationStatus(req.Status) {
	case models.RegistrationStatusApproved:
		return s.Approve(ctx, principal, id)
	case models.RegistrationStatusRejected:
		return s.Reject(ctx, principal, id, req.Reason)
	default:
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("status must be APPROVED or REJECTED, got %q", req.Status))
	}
}

// Delete removes a registration. The applicant may withdraw their own;
// administrators may remove any. Approved registrations cannot be deleted.
func (s *RegistrationService) Delete(ctx context.Context, principal auth.Principal, id int64) error {
	reg, err := s.registrationRepo.GetRegistrationByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.authzService.CanActForUser(principal, reg.UserID) {
		return apperrors.NewForbiddenError("cannot delete another user's registration")
	}
	if reg.Status == models.RegistrationStatusApproved {
		return apperrors.NewInvalidStateError("cannot delete an approved registration")
	}

	if err := s.registrationRepo.DeleteRegistration(ctx, id); err != nil {
		return err
	}

	s.logger.Info().
		Int64("registrationID", id).
		Int64("userID", reg.UserID).
		Msg("Registration deleted")

	return nil
}

// ListAll retrieves registrations across all tasks, administrators only
func (s *RegistrationService) ListAll(ctx context.Context, principal auth.Principal, filter *dto.RegistrationFilterRequest) (*dto.PaginatedData, error) {
	if err := s.authzService.RequirePermission(principal, auth.PermRegistrationListAll); err != nil {
		return nil, err
	}

	repoFilter := repositories.RegistrationFilter{
		TaskID: filter.TaskID,
		UserID: filter.UserID,
	}
	if err := applyStatusFilter(&repoFilter, filter.Status); err != nil {
		return nil, err
	}

	return s.list(ctx, repoFilter, filter.Page, filter.PageSize)
}

// ListByTask retrieves a task's registrations for its organization staff
func (s *RegistrationService) ListByTask(ctx context.Context, principal auth.Principal, taskID int64, filter *dto.RegistrationFilterRequest) (*dto.PaginatedData, error) {
	task, err := s.taskRepo.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !s.authzService.CanDecideRegistration(principal, task) {
		return nil, apperrors.NewForbiddenError("cannot list registrations for this task")
	}

	repoFilter := repositories.RegistrationFilter{TaskID: &taskID}
	if err := applyStatusFilter(&repoFilter, filter.Status); err != nil {
		return nil, err
	}

	return s.list(ctx, repoFilter, filter.Page, filter.PageSize)
}

// ListByUser retrieves a user's registrations, self or admin
func (s *RegistrationService) ListByUser(ctx context.Context, principal auth.Principal, userID int64, filter *dto.RegistrationFilterRequest) (*dto.PaginatedData, error) {
	if !s.authzService.CanActForUser(principal, userID) {
		return nil, apperrors.NewForbiddenError("cannot list another user's registrations")
	}

	repoFilter := repositories.RegistrationFilter{UserID: &userID}
	if err := applyStatusFilter(&repoFilter, filter.Status); err != nil {
		return nil, err
	}

	return s.list(ctx, repoFilter, filter.Page, filter.PageSize)
}

// ListPendingByOrganization retrieves PENDING registrations across all of an
// organization's tasks
func (s *RegistrationService) ListPendingByOrganization(ctx context.Context, principal auth.Principal, organizationID int64, page, pageSize int) (*dto.PaginatedData, error) {
	if !principal.IsSystemAdmin() &&
		!(principal.HasPermission(auth.PermRegistrationDecide) && principal.BelongsToOrganization(organizationID)) {
		return nil, apperrors.NewForbiddenError("cannot list registrations for this organization")
	}

	pending := models.RegistrationStatusPending
	repoFilter := repositories.RegistrationFilter{
		OrganizationID: &organizationID,
		Status:         &pending,
	}

	return s.list(ctx, repoFilter, page, pageSize)
}

func applyStatusFilter(f *repositories.RegistrationFilter, status *string) error {
	if status == nil || *status == "" {
		return nil
	}
	st := models.RegistrationStatus(*status)
	if !st.IsValid() {
		return apperrors.NewBadRequestError(fmt.Sprintf("unknown registration status %q", *status))
	}
	f.Status = &st
	return nil
}

func (s *RegistrationService) list(ctx context.Context, filter repositories.RegistrationFilter, page, pageSize int) (*dto.PaginatedData, error) {
	page, pageSize = helpers.NormalizePagination(page, pageSize)
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	regs, total, err := s.registrationRepo.ListRegistrations(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.RegistrationResponse, 0, len(regs))
	for _, reg := range regs {
		items = append(items, toRegistrationResponse(reg))
	}

	data := dto.NewPaginatedData(items, total, page, pageSize)
	return &data, nil
}
