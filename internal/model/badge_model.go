package model

import (
	"time"

	"github.com/google/uuid"
)

type Badge struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_badges_user_title"`
	Title       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_badges_user_title"`
	Description string    `gorm:"type:text"`
	IconUrl     string    `gorm:"type:text"`
	DateEarned  time.Time `gorm:"not null"`
}

func (Badge) TableName() string {
	return "badges"
}
