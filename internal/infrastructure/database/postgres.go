package database

import (
	"fmt"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/kiangasgaryishere/Booka-frontendd/internal/infrastructure/repositories"
)

// Open creates a new database connection with production-ready settings
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: "booka.",
		},
	}

	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate performs database migration for all required tables: the
// payment-history table and the Casbin policy table for route authorization.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&repositories.DBTransaction{}); err != nil {
		return fmt.Errorf("failed to migrate transactions table: %w", err)
	}

	// The adapter creates the casbin_rules table on first use.
	if _, err := gormadapter.NewAdapterByDB(db); err != nil {
		return fmt.Errorf("failed to initialize Casbin GORM adapter: %w", err)
	}

	return nil
}
