package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type VideoResource struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Url   string    `json:"url"`
	Type  string    `json:"type"`
}

type Video struct {
	Id                 uuid.UUID                          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlaylistId         uuid.UUID                          `gorm:"type:uuid;not null;index"`
	UserId             uuid.UUID                          `gorm:"type:uuid;not null;index"`
	YtId               string                             `gorm:"type:varchar(32);not null;index"`
	Title              string                             `gorm:"type:text;not null"`
	Description        string                             `gorm:"type:text"`
	Thumbnail          string                             `gorm:"type:text"`
	Duration           string                             `gorm:"type:varchar(32)"`
	ViewCount          int64                              `gorm:"default:0"`
	LikeCount          int64                              `gorm:"default:0"`
	PublishedAt        *time.Time                         `gorm:"type:timestamptz"`
	ChannelTitle       string                             `gorm:"type:varchar(255)"`
	Status             string                             `gorm:"type:varchar(20);not null;default:'to-watch';index"`
	TimeSpent          int                                `gorm:"not null;default:0"`
	Notes              string                             `gorm:"type:text"`
	AiSummary          string                             `gorm:"type:text"`
	AiSummaryGenerated bool                               `gorm:"not null;default:false"`
	Tags               datatypes.JSONSlice[string]        `gorm:"type:jsonb;not null;default:'[]'"`
	Resources          datatypes.JSONSlice[VideoResource] `gorm:"type:jsonb;not null;default:'[]'"`
	Pinned             bool                               `gorm:"not null;default:false"`
	Position           int                                `gorm:"not null;default:0"`
	CreatedAt          time.Time                          `gorm:"autoCreateTime"`
	UpdatedAt          time.Time                          `gorm:"autoUpdateTime"`
}

func (Video) TableName() string {
	return "videos"
}
