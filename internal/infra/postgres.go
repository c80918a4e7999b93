package infra

import (
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tourdesk/internal/config"
	"tourdesk/internal/models/db_models"
)

func InitPostgresql(cfg *config.Config, zl *zap.Logger) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.IsProduction() {
		level = logger.Error
	}
	gormLogger := logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})

	connectionPool, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{Logger: gormLogger})
	if err != nil {
		zl.Error("error connecting to database", zap.Error(err))
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := Migrate(connectionPool); err != nil {
			return nil, err
		}
		zl.Info("database schema migrated")
	}

	return connectionPool, nil
}

// Migrate creates or updates the tables of the tour store.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&db_models.Tour{},
		&db_models.Activity{},
		&db_models.Location{},
		&db_models.TourMember{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func ClosePostgresql(db *gorm.DB, zl *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		zl.Error("error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		zl.Error("error closing database connection", zap.Error(err))
	} else {
		zl.Info("PostgreSQL database connection closed successfully")
	}
}
