package db

import (
	"fmt"

	"blog-backend/config"
	"blog-backend/models"
	"blog-backend/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database and migrates the schema. The handle is returned
// to the caller and injected where needed instead of living in a global.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("the environment variable DB_URL must be defined")
	}

	database, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: utils.GetGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	err = database.AutoMigrate(
		&models.User{},
		&models.FacebookAuth{},
		&models.GoogleAuth{},
		&models.Post{},
		&models.Like{},
	)
	if err != nil {
		return nil, fmt.Errorf("error migrating the database: %w", err)
	}

	utils.LogSuccess("Database connection successful")
	return database, nil
}
