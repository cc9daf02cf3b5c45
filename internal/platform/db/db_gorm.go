// Package db provides the gorm database connection for the backend.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"taskflow_backend/internal/feature/users/adapters"
)

// Config holds the database connection parameters.
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
}

// ConfigFromEnv reads the connection parameters from the environment.
func ConfigFromEnv() Config {
	return Config{
		User:     getenv("DB_USER", "taskflow"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     getenv("DB_NAME", "taskflow"),
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
	}
}

// BuildDSN renders the postgres DSN for the given config.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
}

// OpenDB connects to the database, retrying for up to a minute before
// giving up. When RUN_MIGRATIONS=true it also migrates the users table.
func OpenDB() *gorm.DB {
	dsn := BuildDSN(ConfigFromEnv())

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		// TranslateError maps driver unique violations to gorm.ErrDuplicatedKey,
		// which the user store relies on to report email conflicts.
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&adapters.UserModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
