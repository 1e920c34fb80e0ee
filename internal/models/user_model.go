package models

import (
	"time"
)

/** --------------------ENTITIES-------------------- */

// User is the profile record. Credentials and session issuance live in the
// identity service; this table only carries what the social surfaces render.
type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// Follow links follower -> followee. Pending until accepted when the
// followee's profile is private.
type Follow struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	FollowerID string    `gorm:"not null;type:uuid;uniqueIndex:idx_follow_pair" json:"followerId"`
	FolloweeID string    `gorm:"not null;type:uuid;uniqueIndex:idx_follow_pair" json:"followeeId"`
	Accepted   bool      `gorm:"default:false" json:"accepted"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`

	Follower User `gorm:"foreignKey:FollowerID;references:ID" json:"-"`
	Followee User `gorm:"foreignKey:FolloweeID;references:ID" json:"-"`
}

/** -------------------- DTOs -------------------- */

type UserSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
}
