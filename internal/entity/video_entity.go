package entity

import (
	"time"

	"github.com/google/uuid"
)

type VideoStatus string

const (
	VideoStatusToWatch    VideoStatus = "to-watch"
	VideoStatusInProgress VideoStatus = "in-progress"
	VideoStatusCompleted  VideoStatus = "completed"
	VideoStatusRewatch    VideoStatus = "rewatch"
)

func (s VideoStatus) Valid() bool {
	switch s {
	case VideoStatusToWatch, VideoStatusInProgress, VideoStatusCompleted, VideoStatusRewatch:
		return true
	}
	return false
}

type ResourceType string

const (
	ResourceTypeGithub  ResourceType = "github"
	ResourceTypeDocs    ResourceType = "docs"
	ResourceTypeNotes   ResourceType = "notes"
	ResourceTypeArticle ResourceType = "article"
	ResourceTypeOther   ResourceType = "other"
)

// ParseResourceType falls back to "other" for unknown values.
func ParseResourceType(s string) ResourceType {
	switch ResourceType(s) {
	case ResourceTypeGithub, ResourceTypeDocs, ResourceTypeNotes, ResourceTypeArticle:
		return ResourceType(s)
	}
	return ResourceTypeOther
}

type Resource struct {
	Id    uuid.UUID    `json:"id"`
	Title string       `json:"title"`
	Url   string       `json:"url"`
	Type  ResourceType `json:"type"`
}

type Video struct {
	Id                 uuid.UUID
	PlaylistId         uuid.UUID
	UserId             uuid.UUID
	YtId               string
	Title              string
	Description        string
	Thumbnail          string
	Duration           string
	ViewCount          int64
	LikeCount          int64
	PublishedAt        *time.Time
	ChannelTitle       string
	Status             VideoStatus
	TimeSpent          int // minutes
	Notes              string
	AiSummary          string
	AiSummaryGenerated bool
	Tags               []string
	Resources          []Resource
	Pinned             bool
	Position           int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
