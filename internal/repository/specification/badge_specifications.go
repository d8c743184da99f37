package specification

import (
	"strings"

	"gorm.io/gorm"
)

type ByTitle struct {
	Title string
}

func (s ByTitle) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title = ?", s.Title)
}

func (s ByTitle) Matches(r Record) bool {
	return r.Field("title") == s.Title
}

type TitlePrefix struct {
	Prefix string
}

func (s TitlePrefix) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title LIKE ?", escapeLike(s.Prefix)+"%")
}

func (s TitlePrefix) Matches(r Record) bool {
	title, _ := r.Field("title").(string)
	return strings.HasPrefix(title, s.Prefix)
}
