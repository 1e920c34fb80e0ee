package repository

import (
	"context"
	"time"

	"social-service/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	ListForUser(ctx context.Context, userID string, before time.Time, limit int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
	PurgeRead(ctx context.Context, olderThan time.Time) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	var n models.Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	return &n, err
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID string, before time.Time, limit int) ([]*models.Notification, error) {
	var ns []*models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at < ?", userID, before).
		Order("created_at DESC").
		Limit(limit).
		Find(&ns).Error
	return ns, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND read = false", id).
		Updates(map[string]interface{}{"read": true, "read_at": now}).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = false", userID).
		Updates(map[string]interface{}{"read": true, "read_at": now}).Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = false", userID).
		Count(&count).Error
	return count, err
}

// PurgeRead hard-deletes read notifications older than the cutoff. Invoked
// by the periodic cleanup job.
func (r *notificationRepository) PurgeRead(ctx context.Context, olderThan time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Unscoped().
		Where("read = true AND read_at < ?", olderThan).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
