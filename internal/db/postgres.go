package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"authapi/internal/config"
	"authapi/internal/model"
)

// NewPostgres returns a connected GORM DB instance.
func NewPostgres(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// Migrate brings the schema up to date. The address column was added after
// the first release, so rows created before it exists get the one-time
// 'none' backfill; new rows carry no default.
func Migrate(db *gorm.DB) error {
	hadAddress := db.Migrator().HasTable(&model.User{}) &&
		db.Migrator().HasColumn(&model.User{}, "address")

	if err := db.AutoMigrate(&model.User{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	if !hadAddress {
		if err := db.Model(&model.User{}).
			Where("address IS NULL OR address = ''").
			Update("address", "none").Error; err != nil {
			return fmt.Errorf("backfill address: %w", err)
		}
	}
	return nil
}
