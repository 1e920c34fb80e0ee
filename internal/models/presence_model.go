package models

import "time"

// StatusUpdate is what the presence mirror publishes on redis when a user
// goes online or offline.
type StatusUpdate struct {
	UserID   string    `json:"userId"`
	Status   string    `json:"status"` // online | offline
	LastSeen time.Time `json:"lastSeen"`
}
