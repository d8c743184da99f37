package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeBadgeAwarded      = "badge.awarded"
	TypePlaylistCompleted = "playlist.completed"
)

func NewBadgeAwarded(userId, badgeId uuid.UUID, title, description, icon string, earnedAt time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeBadgeAwarded,
		Data: map[string]interface{}{
			"user_id":     userId.String(),
			"badge_id":    badgeId.String(),
			"title":       title,
			"description": description,
			"icon":        icon,
			"date_earned": earnedAt.UTC().Format(time.RFC3339),
		},
		OccurredAt: earnedAt,
	}
}

func NewPlaylistCompleted(userId, playlistId uuid.UUID, name string) BaseEvent {
	return BaseEvent{
		Type: TypePlaylistCompleted,
		Data: map[string]interface{}{
			"user_id":     userId.String(),
			"playlist_id": playlistId.String(),
			"name":        name,
		},
		OccurredAt: time.Now(),
	}
}

// UserID reads the user_id field common to all domain events.
func UserID(e Event) (uuid.UUID, bool) {
	raw, ok := e.Payload()["user_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	return id, err == nil
}
