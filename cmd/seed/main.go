package main

import (
	"log"
	"os"

	"learnloop-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn, os.Getenv("DB_LOG_LEVEL"))
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	email := os.Getenv("SEED_EMAIL")
	if email == "" {
		email = "demo@learnloop.dev"
	}

	color.Cyan("Seeding demo learner %s...", email)
	if err := SeedDemoLearner(db, email); err != nil {
		color.Red("Seeding failed: %v", err)
		os.Exit(1)
	}

	color.Green("Demo data seeding completed!")
}
