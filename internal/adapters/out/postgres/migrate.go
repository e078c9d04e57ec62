package postgres

import (
	"fmt"

	"dronedelivery/internal/adapters/out/postgres/runrepo"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DSN builds a libpq connection string.
func DSN(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode)
}

// Open connects to PostgreSQL and migrates the run schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err = Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables of every repository.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&runrepo.RunDTO{}); err != nil {
		return fmt.Errorf("migrating runs: %w", err)
	}
	return nil
}
