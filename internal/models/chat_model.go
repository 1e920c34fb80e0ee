package models

import (
	"time"

	"gorm.io/gorm"
)

/** --------------------ENTITIES-------------------- */

// Conversation groups messages between two or more participants. UpdatedAt
// tracks the newest surviving message and only ever moves forward.
type Conversation struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updatedAt"`

	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID;references:ID" json:"-"`
}

type ConversationParticipant struct {
	ConversationID string `gorm:"primaryKey;type:uuid" json:"conversationId"`
	UserID         string `gorm:"primaryKey;type:uuid" json:"userId"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

// Message carries either text, an image reference, or both.
type Message struct {
	ID             string         `gorm:"primaryKey;type:uuid" json:"id"`
	ConversationID string         `gorm:"not null;type:uuid;index" json:"conversationId"`
	SenderID       string         `gorm:"not null;type:uuid" json:"senderId"`
	Text           *string        `json:"text,omitempty"`
	ImageURL       *string        `json:"imageUrl,omitempty"`
	Seen           bool           `gorm:"default:false" json:"seen"`
	CreatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	TextUpdatedAt  *time.Time     `json:"textUpdatedAt,omitempty"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

/** -------------------- DTOs -------------------- */

// LastMessage is the denormalized summary shown on conversation lists.
type LastMessage struct {
	Text           *string `json:"text"`
	ImageURL       *string `json:"imageUrl"`
	SenderUsername string  `json:"senderUsername"`
}

// ConversationSummary is what both the list endpoint and live pushes carry:
// the other participants (self excluded), the last message, and updatedAt.
type ConversationSummary struct {
	ID           string       `json:"id"`
	Participants []UserSummary `json:"participants"`
	LastMessage  *LastMessage `json:"lastMessage"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

type CreateConversationRequest struct {
	ParticipantIDs []string `json:"participantIds" binding:"required,min=1"`
}

type SendMessageRequest struct {
	Text     *string `json:"text"`
	ImageURL *string `json:"imageUrl"`
}

type EditMessageRequest struct {
	Text *string `json:"text" binding:"required"`
}
