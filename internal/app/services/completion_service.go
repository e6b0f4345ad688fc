package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/volunteersync/backend/internal/app/models"
	"github.com/volunteersync/backend/internal/app/repositories"
)

// CompletionService periodically completes tasks whose end date has passed
// and settles their approved registrations
type CompletionService struct {
	taskRepo            *repositories.TaskRepository
	registrationRepo    *repositories.RegistrationRepository
	tokenRepo           *repositories.TokenRepository
	notificationService *NotificationService
	cron                *cron.Cron
	logger              zerolog.Logger
}

// NewCompletionService creates a new CompletionService
func NewCompletionService(
	taskRepo *repositories.TaskRepository,
	registrationRepo *repositories.RegistrationRepository,
	tokenRepo *repositories.TokenRepository,
	notificationService *NotificationService,
	logger zerolog.Logger,
) *CompletionService {
	return &CompletionService{
		taskRepo:            taskRepo,
		registrationRepo:    registrationRepo,
		tokenRepo:           tokenRepo,
		notificationService: notificationService,
		cron:                cron.New(),
		logger:              logger,
	}
}

// Start schedules the hourly sweep and runs one immediately to settle
// anything that expired while the service was down
func (s *CompletionService) Start() error {
	if _, err := s.cron.AddFunc("@hourly", func() {
		if err := s.Sweep(context.Background()); err != nil {
			s.logger.Error().Err(err).Msg("Completion sweep failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule completion sweep: %w", err)
	}

	s.cron.Start()

	go func() {
		if err := s.Sweep(context.Background()); err != nil {
			s.logger.Error().Err(err).Msg("Initial completion sweep failed")
		}
	}()

	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish
func (s *CompletionService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep completes expired ACTIVE tasks and their APPROVED registrations,
// then prunes stale refresh tokens
func (s *CompletionService) Sweep(ctx context.Context) error {
	now := time.Now()

	if removed, err := s.tokenRepo.CleanupExpiredTokens(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Refresh token cleanup failed")
	} else if removed > 0 {
		s.logger.Info().Int64("removed", removed).Msg("Pruned stale refresh tokens")
	}

	taskIDs, err := s.taskRepo.ListExpiredActiveTaskIDs(ctx, now)
	if err != nil {
		return err
	}
	if len(taskIDs) == 0 {
		return nil
	}

	// Collect the volunteers to notify before the status flips
	approved := models.RegistrationStatusApproved
	var volunteers []*models.TaskRegistration
	for _, taskID := range taskIDs {
		id := taskID
		regs, _, err := s.registrationRepo.ListRegistrations(ctx,
			repositories.RegistrationFilter{TaskID: &id, Status: &approved}, 0, 1000)
		if err != nil {
			return err
		}
		volunteers = append(volunteers, regs...)
	}

	tasksDone, err := s.taskRepo.CompleteTasks(ctx, taskIDs)
	if err != nil {
		return err
	}

	regsDone, err := s.registrationRepo.CompleteApprovedByTaskIDs(ctx, taskIDs)
	if err != nil {
		return err
	}

	for _, reg := range volunteers {
		s.notificationService.Notify(ctx, &models.Notification{
			UserID:  reg.UserID,
			Type:    models.NotificationTaskCompleted,
			Title:   "Task completed",
			Message: "A task you volunteered for has been completed",
			RefType: "task",
			RefID:   reg.TaskID,
		})
	}

	s.logger.Info().
		Int64("tasksCompleted", tasksDone).
		Int64("registrationsCompleted", regsDone).
		Msg("Completion sweep finished")

	return nil
}
