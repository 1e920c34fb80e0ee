package models

import (
	"time"
)

type NotificationType string

const (
	NotificationFollow         NotificationType = "follow"
	NotificationFollowAccepted NotificationType = "follow_accepted"
	NotificationLike           NotificationType = "like"
	NotificationReply          NotificationType = "reply"
)

/** --------------------ENTITIES-------------------- */

// Notification is owned by its recipient; the actor is never notified of
// their own action.
type Notification struct {
	ID        string           `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string           `gorm:"not null;type:uuid;index" json:"userId"`
	ActorID   string           `gorm:"not null;type:uuid" json:"actorId"`
	Type      NotificationType `gorm:"not null" json:"type"`
	PostID    *string          `gorm:"type:uuid" json:"postId,omitempty"`
	Read      bool             `gorm:"default:false;index" json:"read"`
	ReadAt    *time.Time       `json:"readAt,omitempty"`
	CreatedAt time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`

	Actor User `gorm:"foreignKey:ActorID;references:ID" json:"-"`
}
