package repository

import (
	"context"
	"time"

	"social-service/internal/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	FindByID(ctx context.Context, id string) (*models.Message, error)
	ListByConversation(ctx context.Context, conversationID string, before time.Time, limit int) ([]*models.Message, error)
	UpdateText(ctx context.Context, id string, text *string, at time.Time) error
	Delete(ctx context.Context, id string) error
	MarkSeen(ctx context.Context, conversationID, exceptSenderID string) ([]string, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) FindByID(ctx context.Context, id string) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).First(&msg, "id = ?", id).Error
	return &msg, err
}

// ListByConversation returns the page of messages older than the cursor,
// ascending by creation time so clients can use it as the cache baseline.
func (r *messageRepository) ListByConversation(ctx context.Context, conversationID string, before time.Time, limit int) ([]*models.Message, error) {
	var page []*models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND created_at < ?", conversationID, before).
		Order("created_at DESC").
		Limit(limit).
		Find(&page).Error
	if err != nil {
		return nil, err
	}
	// reverse into ascending order
	for i, j := 0, len(page)-1; i < j; i, j = i+1, j-1 {
		page[i], page[j] = page[j], page[i]
	}
	return page, nil
}

func (r *messageRepository) UpdateText(ctx context.Context, id string, text *string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"text": text, "text_updated_at": at}).Error
}

func (r *messageRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Message{}, "id = ?", id).Error
}

// MarkSeen flags every unseen message not sent by exceptSenderID and returns
// the ids that flipped.
func (r *messageRepository) MarkSeen(ctx context.Context, conversationID, exceptSenderID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND seen = false", conversationID, exceptSenderID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return ids, nil
	}
	err = r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id IN ?", ids).
		Update("seen", true).Error
	return ids, err
}
