package models

import (
	"time"

	"gorm.io/gorm"
)

/** --------------------ENTITIES-------------------- */

type Post struct {
	ID        string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string         `gorm:"not null;type:uuid;index" json:"userId"`
	Text      string         `json:"text"`
	ImageURL  string         `json:"imageUrl,omitempty"`
	CreatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

type Reply struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	PostID    string    `gorm:"not null;type:uuid;index" json:"postId"`
	UserID    string    `gorm:"not null;type:uuid" json:"userId"`
	Text      string    `gorm:"not null" json:"text"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`

	Post Post `gorm:"foreignKey:PostID;references:ID" json:"-"`
	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

type Like struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	PostID    string    `gorm:"not null;type:uuid;uniqueIndex:idx_like_pair" json:"postId"`
	UserID    string    `gorm:"not null;type:uuid;uniqueIndex:idx_like_pair" json:"userId"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`

	Post Post `gorm:"foreignKey:PostID;references:ID" json:"-"`
	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

/** -------------------- DTOs -------------------- */

type CreatePostRequest struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl"`
}

type CreateReplyRequest struct {
	Text string `json:"text" binding:"required"`
}
