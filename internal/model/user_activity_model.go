package model

import (
	"time"

	"github.com/google/uuid"
)

type UserActivity struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_activities_user_day"`
	Day       time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_activities_user_day"`
	Events    int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserActivity) TableName() string {
	return "user_activities"
}
