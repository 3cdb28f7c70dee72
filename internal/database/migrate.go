package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/leftovercook/backend/internal/models"
)

// Migrate creates or updates the schema for every persisted model. On
// Postgres the pgvector extension must exist before saved_recipes can
// be migrated; sqlite (used in tests) stores the vector column as text.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector;").Error; err != nil {
			return err
		}
	}

	log.Printf("Running schema migration")
	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.UserPreference{},
		&models.SavedRecipe{},
		&models.CookedRecipe{},
	)
}
