// Package memory keeps repository data in process. It backs the service tests
// and single-node development runs without Postgres.
package memory

import (
	"sort"
	"sync"
	"time"

	"learnloop-be/internal/entity"
	"learnloop-be/internal/repository/specification"

	"github.com/google/uuid"
)

type activityKey struct {
	userId uuid.UUID
	day    time.Time
}

type tables struct {
	users      map[uuid.UUID]entity.User
	playlists  map[uuid.UUID]entity.Playlist
	videos     map[uuid.UUID]entity.Video
	badges     map[uuid.UUID]entity.Badge
	activities map[activityKey]entity.UserActivity
}

func newTables() tables {
	return tables{
		users:      make(map[uuid.UUID]entity.User),
		playlists:  make(map[uuid.UUID]entity.Playlist),
		videos:     make(map[uuid.UUID]entity.Video),
		badges:     make(map[uuid.UUID]entity.Badge),
		activities: make(map[activityKey]entity.UserActivity),
	}
}

func (t tables) clone() tables {
	c := newTables()
	for k, v := range t.users {
		c.users[k] = cloneUser(v)
	}
	for k, v := range t.playlists {
		c.playlists[k] = v
	}
	for k, v := range t.videos {
		c.videos[k] = cloneVideo(v)
	}
	for k, v := range t.badges {
		c.badges[k] = v
	}
	for k, v := range t.activities {
		c.activities[k] = v
	}
	return c
}

// Store is the shared dataset. Every unit of work serializes on its mutex, and
// a transaction holds the mutex from Begin until Commit or Rollback.
type Store struct {
	mu   sync.Mutex
	data tables
}

func NewStore() *Store {
	return &Store{data: newTables()}
}

func cloneUser(u entity.User) entity.User {
	u.Categories = append([]string(nil), u.Categories...)
	return u
}

func cloneVideo(v entity.Video) entity.Video {
	v.Tags = append([]string(nil), v.Tags...)
	v.Resources = append([]entity.Resource(nil), v.Resources...)
	if v.PublishedAt != nil {
		t := *v.PublishedAt
		v.PublishedAt = &t
	}
	return v
}

// record adapts an entity to specification.Record.
type record map[string]interface{}

func (r record) Field(column string) interface{} {
	return r[column]
}

func userRecord(u *entity.User) record {
	return record{
		"id":         u.Id,
		"email":      u.Email,
		"name":       u.Name,
		"created_at": u.CreatedAt,
	}
}

func playlistRecord(p *entity.Playlist) record {
	return record{
		"id":                 p.Id,
		"user_id":            p.UserId,
		"name":               p.Name,
		"category":           p.Category,
		"yt_playlist_id":     p.YtPlaylistId,
		"is_custom_playlist": p.IsCustomPlaylist,
		"completed":          p.Completed,
		"created_at":         p.CreatedAt,
		"updated_at":         p.UpdatedAt,
	}
}

func videoRecord(v *entity.Video) record {
	return record{
		"id":          v.Id,
		"playlist_id": v.PlaylistId,
		"user_id":     v.UserId,
		"yt_id":       v.YtId,
		"title":       v.Title,
		"status":      string(v.Status),
		"pinned":      v.Pinned,
		"tags":        v.Tags,
		"notes":       v.Notes,
		"position":    v.Position,
		"time_spent":  v.TimeSpent,
		"created_at":  v.CreatedAt,
		"updated_at":  v.UpdatedAt,
	}
}

func badgeRecord(b *entity.Badge) record {
	return record{
		"id":          b.Id,
		"user_id":     b.UserId,
		"title":       b.Title,
		"date_earned": b.DateEarned,
	}
}

// selectRecords filters, orders and pages items the way the GORM
// implementation would with the same specifications.
func selectRecords[T any](items []*T, toRecord func(*T) record, specs []specification.Specification) []*T {
	var orders []specification.OrderBy
	var page *specification.Pagination

	filtered := make([]*T, 0, len(items))
	recs := make(map[*T]record, len(items))
	for _, item := range items {
		rec := toRecord(item)
		ok := true
		for _, spec := range specs {
			if m, isMatcher := spec.(specification.Matcher); isMatcher && !m.Matches(rec) {
				ok = false
				break
			}
		}
		if ok {
			filtered = append(filtered, item)
			recs[item] = rec
		}
	}

	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			orders = append(orders, s)
		case specification.Pagination:
			p := s
			page = &p
		}
	}

	// stable fallback order so results are deterministic
	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := recs[filtered[i]], recs[filtered[j]]
		if less(a["created_at"], b["created_at"]) {
			return true
		}
		if less(b["created_at"], a["created_at"]) {
			return false
		}
		return a["id"].(uuid.UUID).String() < b["id"].(uuid.UUID).String()
	})
	if len(orders) > 0 {
		sort.SliceStable(filtered, func(i, j int) bool {
			a, b := recs[filtered[i]], recs[filtered[j]]
			for _, o := range orders {
				x, y := a[o.Field], b[o.Field]
				if less(x, y) {
					return !o.Desc
				}
				if less(y, x) {
					return o.Desc
				}
			}
			return false
		})
	}

	if page != nil {
		start := page.Offset
		if start > len(filtered) {
			start = len(filtered)
		}
		end := len(filtered)
		if page.Limit > 0 && start+page.Limit < end {
			end = start + page.Limit
		}
		filtered = filtered[start:end]
	}
	return filtered
}

func less(a, b interface{}) bool {
	switch x := a.(type) {
	case time.Time:
		y, _ := b.(time.Time)
		return x.Before(y)
	case string:
		y, _ := b.(string)
		return x < y
	case int:
		y, _ := b.(int)
		return x < y
	case int64:
		y, _ := b.(int64)
		return x < y
	case bool:
		y, _ := b.(bool)
		return !x && y
	}
	return false
}

func sortActivitiesDesc(items []*entity.UserActivity) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Day.After(items[j].Day)
	})
}

// InsertBadge stores a badge without the (user, title) check. It exists to
// seed duplicates left behind by older data.
func (s *Store) InsertBadge(badge entity.Badge) entity.Badge {
	s.mu.Lock()
	defer s.mu.Unlock()
	if badge.Id == uuid.Nil {
		badge.Id = uuid.New()
	}
	s.data.badges[badge.Id] = badge
	return badge
}
