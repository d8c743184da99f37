package cache

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	UserTTL       = 24 * time.Hour
	CategoriesTTL = 24 * time.Hour
	DailyGoalTTL  = 24 * time.Hour
	PlaylistsTTL  = time.Hour
	PlaylistTTL   = 30 * time.Minute
	VideoTTL      = time.Hour
	BadgesTTL     = time.Hour
	YtPlaylistTTL = 24 * time.Hour
	TranscriptTTL = 7 * 24 * time.Hour
	SummaryTTL    = 30 * 24 * time.Hour
)

func UserKey(userId uuid.UUID) string       { return fmt.Sprintf("user:%s", userId) }
func CategoriesKey(userId uuid.UUID) string { return fmt.Sprintf("categories:%s", userId) }
func DailyGoalKey(userId uuid.UUID) string  { return fmt.Sprintf("daily-goal:%s", userId) }
func PlaylistsKey(userId uuid.UUID) string  { return fmt.Sprintf("playlists:%s", userId) }
func PlaylistKey(id uuid.UUID) string       { return fmt.Sprintf("playlist:%s", id) }
func VideoKey(id uuid.UUID) string          { return fmt.Sprintf("video:%s", id) }
func BadgesKey(userId uuid.UUID) string     { return fmt.Sprintf("badges:%s", userId) }
func YtPlaylistKey(ytId string) string      { return fmt.Sprintf("yt:playlist:%s", ytId) }
func TranscriptKey(ytId string) string      { return fmt.Sprintf("transcript:%s", ytId) }
func SummaryKey(ytId string) string         { return fmt.Sprintf("summary:%s", ytId) }
