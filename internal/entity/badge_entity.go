package entity

import (
	"time"

	"github.com/google/uuid"
)

const CompletionBadgePrefix = "Completed: "

type Badge struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Title       string
	Description string
	IconUrl     string
	DateEarned  time.Time
}
