package main

import (
	"errors"
	"fmt"
	"time"

	"learnloop-be/internal/model"

	"github.com/fatih/color"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type demoVideo struct {
	ytId     string
	title    string
	duration string
	status   string
	tags     []string
}

var demoVideos = []demoVideo{
	{"8hly31xKli0", "Algorithms and Data Structures Tutorial", "PT5H22M", "completed", []string{"algorithms", "cs"}},
	{"RBSGKlAvoiM", "Data Structures Easy to Advanced Course", "PT8H3M", "in-progress", []string{"data-structures"}},
	{"09_LlHjoEiY", "Graph Algorithms for Technical Interviews", "PT2H12M", "to-watch", []string{"graphs", "interviews"}},
}

// SeedDemoLearner creates a learner with one custom playlist and a few videos.
// Running it twice is a no-op for the same email.
func SeedDemoLearner(db *gorm.DB, email string) error {
	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		color.Yellow("User '%s' already exists, skipping...", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user := model.User{
			Name:       "Demo Learner",
			Email:      email,
			Categories: datatypes.JSONSlice[string]{"Computer Science", "Uncategorized"},
			DailyGoal:  "Finish one computer science lecture",
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		color.Green("Created user: %s (%s)", user.Name, user.Id)

		playlist := model.Playlist{
			UserId:           user.Id,
			Name:             "Interview Prep",
			Category:         "Computer Science",
			IsCustomPlaylist: true,
		}
		if err := tx.Create(&playlist).Error; err != nil {
			return fmt.Errorf("create playlist: %w", err)
		}
		color.Green("Created playlist: %s", playlist.Name)

		for i, v := range demoVideos {
			video := model.Video{
				PlaylistId: playlist.Id,
				UserId:     user.Id,
				YtId:       v.ytId,
				Title:      v.title,
				Thumbnail:  fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", v.ytId),
				Duration:   v.duration,
				Status:     v.status,
				Tags:       datatypes.JSONSlice[string](v.tags),
				Resources:  datatypes.JSONSlice[model.VideoResource]{},
				Position:   i,
			}
			if err := tx.Create(&video).Error; err != nil {
				return fmt.Errorf("create video %s: %w", v.ytId, err)
			}
			color.Green("  + %s", v.title)
		}

		badge := model.Badge{
			UserId:      user.Id,
			Title:       "First Playlist Added",
			Description: "You added your first playlist to track",
			IconUrl:     "📋",
			DateEarned:  time.Now(),
		}
		if err := tx.Create(&badge).Error; err != nil {
			return fmt.Errorf("create badge: %w", err)
		}
		color.Green("Awarded badge: %s", badge.Title)
		return nil
	})
}
