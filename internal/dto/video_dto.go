package dto

import (
	"time"

	"learnloop-be/internal/entity"
	"learnloop-be/pkg/utils"

	"github.com/google/uuid"
)

type UpdateStatusRequest struct {
	Id     uuid.UUID
	Status string `json:"status" validate:"required,oneof=to-watch in-progress completed rewatch"`
}

type UpdateNoteRequest struct {
	Id   uuid.UUID
	Note *string `json:"note" validate:"required"`
}

type UpdateTimeRequest struct {
	Id        uuid.UUID
	TimeSpent *int `json:"timeSpent" validate:"required,min=0"`
}

type UpdateSummaryRequest struct {
	Id      uuid.UUID
	Summary string `json:"summary" validate:"required"`
}

type TagsRequest struct {
	Id   uuid.UUID
	Tags []string `json:"tags" validate:"required"`
}

type AddResourceRequest struct {
	Id    uuid.UUID
	Title string `json:"title" validate:"required,max=200"`
	Url   string `json:"url" validate:"required,url"`
	Type  string `json:"type"`
}

type VideoDetailResponse struct {
	Id                 uuid.UUID          `json:"id"`
	PlaylistId         uuid.UUID          `json:"playlistId"`
	PlaylistName       string             `json:"playlistName"`
	PlaylistCategory   string             `json:"playlistCategory"`
	YtId               string             `json:"ytId"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	Thumbnail          string             `json:"thumbnail"`
	Duration           string             `json:"duration"`
	ViewCount          int64              `json:"viewCount"`
	LikeCount          int64              `json:"likeCount"`
	PublishedAt        *time.Time         `json:"publishedAt"`
	ChannelTitle       string             `json:"channelTitle"`
	Status             entity.VideoStatus `json:"status"`
	TimeSpent          int                `json:"timeSpent"`
	Notes              string             `json:"notes"`
	AiSummary          string             `json:"aiSummary"`
	AiSummaryGenerated bool               `json:"aiSummaryGenerated"`
	Tags               []string           `json:"tags"`
	Resources          []entity.Resource  `json:"resources"`
	Pinned             bool               `json:"pinned"`
	Position           int                `json:"position"`
	Timestamps         []utils.Timestamp  `json:"timestamps"`
	CreatedAt          time.Time          `json:"createdAt"`
}

// VideoListItem is used by the pinned, rewatch and search listings.
type VideoListItem struct {
	Id           uuid.UUID          `json:"id"`
	PlaylistId   uuid.UUID          `json:"playlistId"`
	PlaylistName string             `json:"playlistName"`
	YtId         string             `json:"ytId"`
	Title        string             `json:"title"`
	Thumbnail    string             `json:"thumbnail"`
	Duration     string             `json:"duration"`
	Status       entity.VideoStatus `json:"status"`
	Notes        string             `json:"notes,omitempty"`
	Tags         []string           `json:"tags"`
	Pinned       bool               `json:"pinned"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type VideoListResponse struct {
	Videos []VideoListItem `json:"videos"`
	Count  int             `json:"count"`
}

type VideoStatusResponse struct {
	Id                uuid.UUID          `json:"id"`
	Status            entity.VideoStatus `json:"status"`
	PlaylistCompleted bool               `json:"playlistCompleted"`
	NewBadges         []BadgeResponse    `json:"newBadges"`
}

type VideoNoteResponse struct {
	Id    uuid.UUID `json:"id"`
	Notes string    `json:"notes"`
}

type VideoTimeResponse struct {
	Id        uuid.UUID `json:"id"`
	TimeSpent int       `json:"timeSpent"`
}

type VideoSummaryResponse struct {
	Id                 uuid.UUID `json:"id"`
	AiSummary          string    `json:"aiSummary"`
	AiSummaryGenerated bool      `json:"aiSummaryGenerated"`
}

type TagsResponse struct {
	Success bool     `json:"success"`
	Tags    []string `json:"tags"`
}

type ResourcesResponse struct {
	Success   bool              `json:"success"`
	Resources []entity.Resource `json:"resources"`
}

type RemoveVideoResponse struct {
	Success    bool      `json:"success"`
	PlaylistId uuid.UUID `json:"playlistId"`
}
