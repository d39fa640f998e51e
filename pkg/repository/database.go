package repository

import (
	"fmt"

	"github.com/ranayash24/formbricks/pkg/config"
	"github.com/ranayash24/formbricks/pkg/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase creates a new database connection
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	return db, nil
}

// Migrate runs auto migration for all models. The response/tag join table
// uses an explicit model so the merge operation can address it directly.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Response{}, "Tags", &models.TagsOnResponses{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&models.Tag{}, "Responses", &models.TagsOnResponses{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.Environment{},
		&models.Survey{},
		&models.Response{},
		&models.Tag{},
		&models.TagsOnResponses{},
		&models.APIKey{},
	)
}
