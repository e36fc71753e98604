package main

import (
	"context"
	"errors"
	"log"
	"os"

	"gorm.io/gorm"

	"taskhub/internal/auth"
	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

type seedUser struct {
	Username string
	Email    string
	Password string
	IsAdmin  bool
	Tasks    []model.Task
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users := []seedUser{
		{
			Username: getEnv("SEED_ADMIN_USERNAME", "admin"),
			Email:    getEnv("SEED_ADMIN_EMAIL", "admin@taskhub.local"),
			Password: getEnv("SEED_ADMIN_PASSWORD", "admin-change-me"),
			IsAdmin:  true,
		},
		{
			Username: "demo",
			Email:    "demo@taskhub.local",
			Password: "demo-password",
			Tasks: []model.Task{
				{Title: "Try out the API", Description: "Login and list your tasks"},
				{Title: "Read the swagger docs", Completed: true},
			},
		},
	}

	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	ctx := context.Background()

	created, skipped := 0, 0
	for _, su := range users {
		existing, err := userRepo.FindByEmail(ctx, su.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Error checking user %s: %v", su.Email, err)
		}
		if existing != nil {
			log.Printf("User %s already present, skipping", su.Email)
			skipped++
			continue
		}

		hash, err := auth.HashPassword(su.Password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", su.Email, err)
		}

		user := &model.User{
			Username:     su.Username,
			Email:        su.Email,
			PasswordHash: hash,
			IsAdmin:      su.IsAdmin,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Email, err)
		}

		for _, task := range su.Tasks {
			task.OwnerID = user.ID
			if err := taskRepo.Create(ctx, &task); err != nil {
				log.Fatalf("Failed to create task for %s: %v", su.Email, err)
			}
		}
		created++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", created)
	log.Printf("  - Users skipped: %d", skipped)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
