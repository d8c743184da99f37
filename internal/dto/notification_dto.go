package dto

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationBadgeEarned       = "badge_earned"
	NotificationPlaylistCompleted = "playlist_completed"
)

// Notification is the frame pushed to websocket clients.
type Notification struct {
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	IconUrl   string                 `json:"iconUrl,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// ActivityMessage is published on the in-process bus for every learning interaction.
type ActivityMessage struct {
	UserId     uuid.UUID `json:"user_id"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
}
