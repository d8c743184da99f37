package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
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
	Id               uuid.UUID                          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID                          `gorm:"type:uuid;not null;index;uniqueIndex:idx_playlists_user_yt_playlist,where:yt_playlist_id <> ''"`
	Name             string                             `gorm:"type:varchar(255);not null"`
	Category         string                             `gorm:"type:varchar(255);not null;index"`
	YtPlaylistUrl    string                             `gorm:"type:text"`
	YtPlaylistId     string                             `gorm:"type:varchar(64);uniqueIndex:idx_playlists_user_yt_playlist,where:yt_playlist_id <> ''"`
	IsCustomPlaylist bool                               `gorm:"not null;default:false"`
	YtInfo           datatypes.JSONType[YtPlaylistInfo] `gorm:"type:jsonb"`
	Completed        bool                               `gorm:"not null;default:false"`
	CreatedAt        time.Time                          `gorm:"autoCreateTime"`
	UpdatedAt        time.Time                          `gorm:"autoUpdateTime"`
}

func (Playlist) TableName() string {
	return "playlists"
}
