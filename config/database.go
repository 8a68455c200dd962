package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseFile is the embedded database file name inside DATA_DIR
const DatabaseFile = "ohm-hive.db"

var DB *gorm.DB

// ConnectDatabase opens the database described by cfg.
// An empty DATABASE_URL selects the embedded sqlite database under DATA_DIR;
// postgres:// and postgresql:// URLs select PostgreSQL; anything else is
// treated as a sqlite DSN.
func ConnectDatabase(cfg *Config) error {
	dialector, err := Dialector(cfg)
	if err != nil {
		return err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(LogLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db
	log.Printf("Database connection established (%s)", db.Dialector.Name())
	return nil
}

// Dialector picks the gorm driver for the configured database
func Dialector(cfg *Config) (gorm.Dialector, error) {
	url := cfg.DatabaseURL
	if IsPostgresURL(url) {
		return postgres.Open(url), nil
	}

	if url == "" {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		url = filepath.Join(cfg.DataDir, DatabaseFile)
		log.Println("DATABASE_URL not set, using embedded database:", url)
	}
	return sqlite.Open(url), nil
}

// IsPostgresURL reports whether url points at a PostgreSQL server
func IsPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}

// LogLevel maps LOG_LEVEL onto gorm's logger levels
func LogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
