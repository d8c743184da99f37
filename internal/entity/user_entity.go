package entity

import (
	"time"

	"github.com/google/uuid"
)

const UncategorizedCategory = "Uncategorized"

type User struct {
	Id         uuid.UUID
	Name       string
	Email      string
	Avatar     string
	Categories []string
	DailyGoal  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u *User) HasCategory(category string) bool {
	for _, c := range u.Categories {
		if c == category {
			return true
		}
	}
	return false
}
