package config

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var PostgresDB *gorm.DB

// InitPostgres opens the pool from POSTGRES_URI. Pool sizes can be tuned with
// POSTGRES_MAX_OPEN_CONNS and POSTGRES_MAX_IDLE_CONNS.
func InitPostgres() error {
	uri := os.Getenv("POSTGRES_URI")
	if uri == "" {
		return errors.New("POSTGRES_URI environment variable is not set")
	}

	level := gormLogger.Warn
	if os.Getenv("GORM_LOG_SQL") == "true" {
		level = gormLogger.Info
	}
	db, err := gorm.Open(postgres.Open(uri), &gorm.Config{
		Logger: gormLogger.Default.LogMode(level),
	})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(getEnvInt("POSTGRES_MAX_OPEN_CONNS", 50))
	sqlDB.SetMaxIdleConns(getEnvInt("POSTGRES_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return err
	}

	PostgresDB = db
	return nil
}

// MigratePostgres creates or updates every relational table.
func MigratePostgres() error {
	if PostgresDB == nil {
		return errors.New("PostgresDB is nil; call InitPostgres() first")
	}
	return PostgresDB.AutoMigrate(models.Migratable()...)
}
