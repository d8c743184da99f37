package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

func (s ByCategory) Matches(r Record) bool {
	return r.Field("category") == s.Category
}

type ByYtPlaylistID struct {
	YtPlaylistID string
}

func (s ByYtPlaylistID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("yt_playlist_id = ?", s.YtPlaylistID)
}

func (s ByYtPlaylistID) Matches(r Record) bool {
	return r.Field("yt_playlist_id") == s.YtPlaylistID
}

type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

func (s ByName) Matches(r Record) bool {
	return r.Field("name") == s.Name
}

// ByPlaylistID matches videos of one playlist
type ByPlaylistID struct {
	PlaylistID uuid.UUID
}

func (s ByPlaylistID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("playlist_id = ?", s.PlaylistID)
}

func (s ByPlaylistID) Matches(r Record) bool {
	return r.Field("playlist_id") == s.PlaylistID
}

type ByPlaylistIDs struct {
	PlaylistIDs []uuid.UUID
}

func (s ByPlaylistIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("playlist_id IN ?", s.PlaylistIDs)
}

func (s ByPlaylistIDs) Matches(r Record) bool {
	id := r.Field("playlist_id")
	for _, candidate := range s.PlaylistIDs {
		if id == candidate {
			return true
		}
	}
	return false
}
