package dto

import (
	"time"

	"learnloop-be/internal/entity"

	"github.com/google/uuid"
)

type AddPlaylistRequest struct {
	Name             string `json:"name" validate:"required,max=200"`
	Category         string `json:"category"`
	YtPlaylistUrl    string `json:"ytPlaylistUrl"`
	IsCustomPlaylist bool   `json:"isCustomPlaylist"`
}

type AddVideoRequest struct {
	PlaylistId uuid.UUID
	VideoUrl   string `json:"videoUrl" validate:"required"`
}

type VideoPosition struct {
	VideoId  uuid.UUID `json:"videoId" validate:"required"`
	Position int       `json:"position" validate:"min=0"`
}

type ReorderRequest struct {
	PlaylistId     uuid.UUID
	VideoPositions []VideoPosition `json:"videoPositions" validate:"required,min=1,dive"`
}

type ChangeCategoryRequest struct {
	PlaylistId uuid.UUID
	Category   string `json:"category"`
}

// PlaylistVideoSummary is the per-video row of the playlist list.
type PlaylistVideoSummary struct {
	Id        uuid.UUID          `json:"id"`
	Status    entity.VideoStatus `json:"status"`
	TimeSpent int                `json:"timeSpent"`
	HasNotes  bool               `json:"hasNotes"`
}

type PlaylistProgress struct {
	TotalVideos      int `json:"totalVideos"`
	CompletedVideos  int `json:"completedVideos"`
	InProgressVideos int `json:"inProgressVideos"`
	Progress         int `json:"progress"`
}

type PlaylistListItem struct {
	Id               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	IsCustomPlaylist bool      `json:"isCustomPlaylist"`
	Thumbnail        string    `json:"thumbnail"`
	PlaylistProgress
	TotalTimeSpent int                    `json:"totalTimeSpent"`
	NotesCount     int                    `json:"notesCount"`
	Completed      bool                   `json:"completed"`
	CreatedAt      time.Time              `json:"createdAt"`
	Videos         []PlaylistVideoSummary `json:"videos"`
}

type PlaylistVideo struct {
	Id                 uuid.UUID          `json:"id"`
	YtId               string             `json:"ytId"`
	Title              string             `json:"title"`
	Thumbnail          string             `json:"thumbnail"`
	Duration           string             `json:"duration"`
	ChannelTitle       string             `json:"channelTitle"`
	Status             entity.VideoStatus `json:"status"`
	TimeSpent          int                `json:"timeSpent"`
	Notes              string             `json:"notes"`
	AiSummary          string             `json:"aiSummary"`
	AiSummaryGenerated bool               `json:"aiSummaryGenerated"`
	Tags               []string           `json:"tags"`
	Pinned             bool               `json:"pinned"`
	Position           int                `json:"position"`
}

type PlaylistDetailResponse struct {
	Id               uuid.UUID             `json:"id"`
	Name             string                `json:"name"`
	Category         string                `json:"category"`
	YtPlaylistUrl    string                `json:"ytPlaylistUrl"`
	YtPlaylistId     string                `json:"ytPlaylistId"`
	IsCustomPlaylist bool                  `json:"isCustomPlaylist"`
	YtInfo           entity.YtPlaylistInfo `json:"ytInfo"`
	PlaylistProgress
	Completed bool            `json:"completed"`
	CreatedAt time.Time       `json:"createdAt"`
	Videos    []PlaylistVideo `json:"videos"`
}

type SyncPlaylistResponse struct {
	NewVideosCount int `json:"newVideosCount"`
	TotalVideos    int `json:"totalVideos"`
}

type ResetPlaylistResponse struct {
	Success     bool  `json:"success"`
	VideosCount int64 `json:"videosCount"`
}

type TogglePinResponse struct {
	Success bool `json:"success"`
	Pinned  bool `json:"pinned"`
}

type ChangeCategoryResponse struct {
	Id       uuid.UUID `json:"id"`
	Category string    `json:"category"`
}
