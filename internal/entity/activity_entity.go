package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserActivity counts learning interactions of a user on a single UTC day.
type UserActivity struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Day       time.Time
	Events    int
	UpdatedAt time.Time
}
