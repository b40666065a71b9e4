// Command seed inserts a deterministic batch of users so pagination can be
// exercised locally. Existing usernames are left untouched.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"authapi/internal/auth"
	"authapi/internal/config"
	"authapi/internal/db"
	"authapi/internal/model"
	"authapi/internal/repository"
)

const seedUserCount = 15

func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	created := 0
	for i := 0; i <= seedUserCount; i++ {
		username := fmt.Sprintf("user%02d", i)
		role := model.RoleUser
		if i == 0 {
			username = "admin00"
			role = model.RoleAdmin
		}

		if _, err := userRepo.FindByUsername(ctx, username); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("lookup %s: %v", username, err)
		}

		passwordHash, err := auth.GenerateHash("11111111")
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}

		user := &model.User{
			Username:     username,
			PasswordHash: passwordHash,
			Role:         role,
			Address:      "none",
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("create %s: %v", username, err)
		}
		created++
	}

	log.Printf("Seed complete: %d users created", created)
}
