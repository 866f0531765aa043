package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/Sarathkio/resume-bot/internal/models"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	// Environment variables win; config.yaml is the local-development
	// fallback.
	host := viper.GetString("DB_HOST")
	port := viper.GetString("DB_PORT")
	user := viper.GetString("DB_USER")
	password := viper.GetString("DB_PASSWORD")
	dbname := viper.GetString("DB_NAME")

	if host == "" {
		host = viper.GetString("database.host")
		port = viper.GetString("database.port")
		user = viper.GetString("database.user")
		password = viper.GetString("database.password")
		dbname = viper.GetString("database.dbname")
	}

	if host == "" || port == "" || user == "" || dbname == "" {
		return nil, errors.New("database configuration is incomplete")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")

	// Idempotent: creates the accounts table if missing, no-op otherwise.
	if err := db.AutoMigrate(&models.Account{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
