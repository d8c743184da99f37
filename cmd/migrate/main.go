package main

import (
	"log"
	"os"

	"learnloop-be/internal/model"
	"learnloop-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn, os.Getenv("DB_LOG_LEVEL"))
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Starting LearnLoop GORM Migration...")

	// 3. Pre-Migration: extensions and cleanup the unique indexes depend on
	color.Yellow("Step 1: Setting up extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Red("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// Older databases may hold duplicate badges. Keep the newest per (user_id, title)
	// so idx_badges_user_title can be created.
	if db.Migrator().HasTable(&model.Badge{}) {
		color.Yellow("Step 2: Removing duplicate badges...")
		res := db.Exec(`DELETE FROM badges b
			USING (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY user_id, title ORDER BY date_earned DESC, id DESC) AS rn
				FROM badges
			) ranked
			WHERE b.id = ranked.id AND ranked.rn > 1;`)
		if res.Error != nil {
			color.Red("Warn: Failed to remove duplicate badges: %v", res.Error)
		} else {
			color.Green("Removed %d duplicate badges", res.RowsAffected)
		}
	}

	// 4. AutoMigrate All Models
	color.Yellow("Step 3: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.Playlist{},
		&model.Video{},
		&model.Badge{},
		&model.UserActivity{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	// 5. Post-Migration: indexes AutoMigrate cannot express
	color.Yellow("Step 4: Creating indexes...")

	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_videos_tags ON videos USING GIN (tags);`,
		`CREATE INDEX IF NOT EXISTS idx_videos_playlist_position ON videos (playlist_id, position);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Red("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	color.Green("Success: Database migration completed")
}
