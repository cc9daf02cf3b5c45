package main

import (
	"context"
	"errors"
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"taskflow_backend/internal/feature/users/adapters"
	"taskflow_backend/internal/feature/users/domain"
	"taskflow_backend/internal/feature/users/usecase"
	"taskflow_backend/internal/platform/cache"
	infradb "taskflow_backend/internal/platform/db"
	"taskflow_backend/internal/platform/identity"
	infraredis "taskflow_backend/internal/platform/redis"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Store, wrapped with the Redis cache
	userStore := adapters.NewUserGorm(db)
	cachedStore := cache.NewCachingUserStore(rdb, 0, userStore, "users")

	// Usecase
	userUC := usecase.NewUserUsecase(cachedStore, identity.Generator{}, identity.RealClock{})

	name := getenv("SEED_NAME", "admin")
	email := getenv("SEED_EMAIL", "admin@example.com")
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		log.Fatal("SEED_PASSWORD is not set")
	}

	user, err := userUC.Register(context.Background(), name, email, password)
	if err != nil {
		// A uniqueness conflict means the seed user already exists
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			log.Printf("seed user not created: %s", verr.Message)
			return
		}
		log.Fatalf("failed to seed user: %v", err)
	}

	log.Printf("seeded user %s", user)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
