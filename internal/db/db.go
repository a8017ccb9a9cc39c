// Package db opens the gorm connection for the configured engine.
package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/db/dsn"
	"github.com/pzillo/landing/internal/db/models"
	gormlog "github.com/pzillo/landing/internal/logger/adapter/gorm"
)

// ErrConfigNil is returned when Open is called without configuration.
var ErrConfigNil = errors.New("config is nil")

// Open connects to the configured database and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	dialector, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlog.New(cfg.DB.LogQueries),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates all tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}

func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		return gormpostgres.Open(dsn.Create(cfg)), nil
	case config.EngineMySQL:
		return gormmysql.Open(dsn.Create(cfg) + mysqlParseTime(cfg.DB.Extras)), nil
	case config.EngineSQLite, "":
		path := dsn.Create(cfg)
		if path == "" {
			path = ":memory:"
		}

		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}

		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownGormEngine, cfg.DB.GormEngine)
	}
}

// mysqlParseTime makes the driver scan DATETIME columns into time.Time.
func mysqlParseTime(extras string) string {
	switch {
	case extras == "":
		return "?parseTime=true"
	case strings.Contains(extras, "parseTime"):
		return ""
	default:
		return "&parseTime=true"
	}
}
