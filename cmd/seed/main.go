package main

import (
	"context"
	"log"

	"github.com/maciej3031/todo-app/internal/config"
	"github.com/maciej3031/todo-app/internal/db"
	"github.com/maciej3031/todo-app/internal/model"
	"github.com/maciej3031/todo-app/internal/repository"
	"github.com/maciej3031/todo-app/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.Question{}, &model.Choice{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	pollRepo := repository.NewPollRepository(gormDB)
	pollService := service.NewPollService(pollRepo)

	if err := pollService.SeedDefaultQuestions(context.Background()); err != nil {
		log.Fatalf("Failed to seed poll questions: %v", err)
	}

	questions, err := pollRepo.ListQuestions(context.Background())
	if err != nil {
		log.Fatalf("Failed to list questions: %v", err)
	}

	log.Printf("Seed completed successfully!")
	for _, q := range questions {
		log.Printf("  - %q with %d choices", q.Text, len(q.Choices))
	}
}
