package repository

import (
	"context"
	"time"

	"social-service/internal/models"

	"gorm.io/gorm"
)

type ConversationRepository interface {
	Create(ctx context.Context, conv *models.Conversation, participantIDs []string) error
	FindByID(ctx context.Context, id string) (*models.Conversation, error)
	ListForUser(ctx context.Context, userID string, before time.Time, limit int) ([]*models.Conversation, error)
	Participants(ctx context.Context, conversationID string) ([]string, error)
	ParticipantUsers(ctx context.Context, conversationID string) ([]*models.User, error)
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
	TouchUpdatedAt(ctx context.Context, conversationID string, at time.Time) error
	LastMessage(ctx context.Context, conversationID string) (*models.Message, error)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(ctx context.Context, conv *models.Conversation, participantIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		for _, userID := range participantIDs {
			p := models.ConversationParticipant{ConversationID: conv.ID, UserID: userID}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *conversationRepository) FindByID(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).First(&conv, "id = ?", id).Error
	return &conv, err
}

func (r *conversationRepository) ListForUser(ctx context.Context, userID string, before time.Time, limit int) ([]*models.Conversation, error) {
	var convs []*models.Conversation
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ? AND conversations.updated_at < ?", userID, before).
		Order("conversations.updated_at DESC").
		Limit(limit).
		Find(&convs).Error
	return convs, err
}

func (r *conversationRepository) Participants(ctx context.Context, conversationID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.ConversationParticipant{}).
		Where("conversation_id = ?", conversationID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *conversationRepository) ParticipantUsers(ctx context.Context, conversationID string) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_participants cp ON cp.user_id = users.id").
		Where("cp.conversation_id = ?", conversationID).
		Find(&users).Error
	return users, err
}

func (r *conversationRepository) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

// TouchUpdatedAt moves updated_at forward only; stale timestamps are ignored.
func (r *conversationRepository) TouchUpdatedAt(ctx context.Context, conversationID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ? AND updated_at < ?", conversationID, at).
		Update("updated_at", at).Error
}

func (r *conversationRepository) LastMessage(ctx context.Context, conversationID string) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		First(&msg).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
