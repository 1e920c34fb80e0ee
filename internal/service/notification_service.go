package service

import (
	"context"
	"errors"
	"time"

	"social-service/internal/adapters/kafka"
	"social-service/internal/models"
	"social-service/internal/repository"
	"social-service/internal/ws"
)

var ErrNotNotificationOwner = errors.New("user does not own this notification")

type NotificationService interface {
	List(ctx context.Context, userID string, before time.Time, limit int) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
	PurgeRead(ctx context.Context, olderThan time.Time) (int64, error)
}

type notificationService struct {
	notifications repository.NotificationRepository
	emitter
}

func NewNotificationService(
	notifications repository.NotificationRepository,
	relay EventRelay,
	journal *kafka.Journal,
) NotificationService {
	return &notificationService{
		notifications: notifications,
		emitter:       emitter{relay: relay, journal: journal},
	}
}

func (s *notificationService) List(ctx context.Context, userID string, before time.Time, limit int) ([]*models.Notification, error) {
	return s.notifications.ListForUser(ctx, userID, before, limit)
}

func (s *notificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}

// MarkRead flips the flag, then echoes NotificationRead back to the owning
// user so their other devices clear the entry too.
func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	n, err := s.notifications.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return ErrNotNotificationOwner
	}

	if err := s.notifications.MarkRead(ctx, notificationID); err != nil {
		return err
	}

	s.emitTo([]string{userID}, ws.NotificationReadEvent(notificationID))
	return nil
}

// markAllReadPageSize bounds each listing query while MarkAllRead walks the
// created_at cursor back through the user's full history.
const markAllReadPageSize = 500

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	var unreadIDs []string
	before := time.Now().Add(time.Minute)
	for {
		page, err := s.notifications.ListForUser(ctx, userID, before, markAllReadPageSize)
		if err != nil {
			return err
		}
		for _, n := range page {
			if !n.Read {
				unreadIDs = append(unreadIDs, n.ID)
			}
		}
		if len(page) < markAllReadPageSize {
			break
		}
		before = page[len(page)-1].CreatedAt
	}

	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		return err
	}

	for _, id := range unreadIDs {
		s.emitTo([]string{userID}, ws.NotificationReadEvent(id))
	}
	return nil
}

// PurgeRead is the hook the periodic cleanup job calls.
func (s *notificationService) PurgeRead(ctx context.Context, olderThan time.Time) (int64, error) {
	return s.notifications.PurgeRead(ctx, olderThan)
}
