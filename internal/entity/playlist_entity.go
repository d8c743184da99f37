package entity

import (
	"time"

	"github.com/google/uuid"
)

type YtPlaylistInfo struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
	ItemCount    int    `json:"itemCount"`
	PublishedAt  string `json:"publishedAt"`
}

type Playlist struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	Name             string
	Category         string
	YtPlaylistUrl    string
	YtPlaylistId     string
	IsCustomPlaylist bool
	YtInfo           YtPlaylistInfo
	Completed        bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CompletionBadgeTitle is the badge awarded when every video of the playlist is completed.
func (p *Playlist) CompletionBadgeTitle() string {
	return CompletionBadgePrefix + p.Name
}
