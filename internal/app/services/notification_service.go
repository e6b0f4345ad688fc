package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/volunteersync/backend/internal/app/models"
	"github.com/volunteersync/backend/internal/app/models/dto"
	"github.com/volunteersync/backend/internal/app/repositories"
	"github.com/volunteersync/backend/internal/pkg/helpers"
	"github.com/volunteersync/backend/internal/pkg/websocket"
)

// NotificationService persists notifications and pushes them to connected
// clients over the websocket hub
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	hub              *websocket.Hub
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo *repositories.NotificationRepository,
	hub *websocket.Hub,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		hub:              hub,
		logger:           logger,
	}
}

func toNotificationResponse(n *models.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		RefType:   n.RefType,
		RefID:     n.RefID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
		ReadAt:    n.ReadAt,
	}
}

// Notify persists a notification and pushes it to the user's open sockets.
// A push failure is not an error; the notification stays readable via REST.
func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) {
	if _, err := s.notificationRepo.CreateNotification(ctx, n); err != nil {
		s.logger.Error().
			Err(err).
			Int64("userID", n.UserID).
			Str("type", string(n.Type)).
			Msg("Failed to persist notification")
		return
	}

	s.hub.PushToUser(n.UserID, "notification", toNotificationResponse(n))
}

// ListNotifications retrieves the caller's notifications with pagination
func (s *NotificationService) ListNotifications(ctx context.Context, userID int64, filter *dto.NotificationFilterRequest) (*dto.PaginatedData, error) {
	page, pageSize := helpers.NormalizePagination(filter.Page, filter.PageSize)
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	notifications, total, err := s.notificationRepo.ListNotificationsByUser(ctx, userID, filter.UnreadOnly, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, toNotificationResponse(n))
	}

	data := dto.NewPaginatedData(items, total, page, pageSize)
	return &data, nil
}

// GetUnreadCount returns the caller's unread notification count
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID int64) (*dto.UnreadCountResponse, error) {
	count, err := s.notificationRepo.CountUnreadByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.UnreadCountResponse{UnreadCount: count}, nil
}

// MarkRead marks one of the caller's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead marks all of the caller's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
