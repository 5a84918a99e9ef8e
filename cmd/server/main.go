package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/maciej3031/todo-app/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/maciej3031/todo-app/internal/auth"
	"github.com/maciej3031/todo-app/internal/cache"
	"github.com/maciej3031/todo-app/internal/config"
	"github.com/maciej3031/todo-app/internal/db"
	"github.com/maciej3031/todo-app/internal/handler"
	"github.com/maciej3031/todo-app/internal/mail"
	"github.com/maciej3031/todo-app/internal/model"
	"github.com/maciej3031/todo-app/internal/repository"
	"github.com/maciej3031/todo-app/internal/router"
	"github.com/maciej3031/todo-app/internal/service"
)

// @title Todo App API
// @version 1.0
// @description Multi-user task manager with accounts, paginated task lists, a poll and password reset by email.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Task{},
			&model.Opinion{},
			&model.ErrorOpinion{},
			&model.Choice{},
			&model.Question{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.Question{},
		&model.Choice{},
		&model.Opinion{},
		&model.ErrorOpinion{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	pollRepo := repository.NewPollRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	mailer := mail.NewSMTPMailer(cfg)

	// Initialize services
	accountService := service.NewAccountService(userRepo, jwtService, tokenStore, mailer, cacheClient)
	taskService := service.NewTaskService(taskRepo, userRepo, cfg.TasksPerPage)
	pollService := service.NewPollService(pollRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(accountService)
	accountHandler := handler.NewAccountHandler(accountService)
	taskHandler := handler.NewTaskHandler(taskService)
	pollHandler := handler.NewPollHandler(pollService)
	seedHandler := handler.NewSeedHandler(pollService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		accountHandler,
		taskHandler,
		pollHandler,
		seedHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
