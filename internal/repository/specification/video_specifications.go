package specification

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

type ByYtID struct {
	YtID string
}

func (s ByYtID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("yt_id = ?", s.YtID)
}

func (s ByYtID) Matches(r Record) bool {
	return r.Field("yt_id") == s.YtID
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

func (s ByStatus) Matches(r Record) bool {
	return r.Field("status") == s.Status
}

type Pinned struct{}

func (s Pinned) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("pinned = ?", true)
}

func (s Pinned) Matches(r Record) bool {
	return r.Field("pinned") == true
}

// HasAnyTag matches videos carrying at least one of the given tags.
type HasAnyTag struct {
	Tags []string
}

func (s HasAnyTag) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Tags) == 0 {
		return db.Where("1 = 0")
	}
	conds := make([]string, 0, len(s.Tags))
	args := make([]interface{}, 0, len(s.Tags))
	for _, tag := range s.Tags {
		raw, _ := json.Marshal([]string{tag})
		conds = append(conds, "tags @> ?::jsonb")
		args = append(args, string(raw))
	}
	return db.Where("("+strings.Join(conds, " OR ")+")", args...)
}

func (s HasAnyTag) Matches(r Record) bool {
	tags, _ := r.Field("tags").([]string)
	for _, have := range tags {
		for _, want := range s.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// NotesContain is a case-insensitive substring search over notes.
type NotesContain struct {
	Query string
}

func (s NotesContain) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes ILIKE ?", "%"+escapeLike(s.Query)+"%")
}

func (s NotesContain) Matches(r Record) bool {
	notes, _ := r.Field("notes").(string)
	return strings.Contains(strings.ToLower(notes), strings.ToLower(s.Query))
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
