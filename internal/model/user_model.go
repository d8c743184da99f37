package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	Id         uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string                      `gorm:"type:varchar(255);not null"`
	Email      string                      `gorm:"type:varchar(255);uniqueIndex;not null"`
	Avatar     string                      `gorm:"type:text"`
	Categories datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	DailyGoal  string                      `gorm:"type:text;not null;default:''"`
	CreatedAt  time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt  time.Time                   `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
