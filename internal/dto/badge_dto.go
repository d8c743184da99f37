package dto

import (
	"time"

	"github.com/google/uuid"
)

type BadgeResponse struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IconUrl     string    `json:"iconUrl"`
	DateEarned  time.Time `json:"dateEarned"`
}

type BadgeDefinition struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IconUrl     string `json:"iconUrl"`
}

type CheckBadgesResponse struct {
	NewBadges []BadgeResponse `json:"newBadges"`
	Message   string          `json:"message"`
}

type CleanupBadgesResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	RemovedCount int    `json:"removedCount"`
}

type BadgeSyncStats struct {
	OrphanedBadgesRemoved  int `json:"orphanedBadgesRemoved"`
	DuplicateBadgesRemoved int `json:"duplicateBadgesRemoved"`
	NewBadgesAdded         int `json:"newBadgesAdded"`
	TotalBadges            int `json:"totalBadges"`
}

type SyncBadgesResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Stats   BadgeSyncStats  `json:"stats"`
	Badges  []BadgeResponse `json:"badges"`
}
