// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/pzillo/landing/internal/config"
)

// Create builds the Data Source Name for the configured engine.
// Sqlite returns the file path.
func Create(dbCfg *config.Config) string {
	switch dbCfg.DB.GormEngine {
	case config.EnginePostgres:
		return Postgres(&dbCfg.DB)
	case config.EngineMySQL:
		return MySQL(&dbCfg.DB)
	default:
		return dbCfg.DB.Path
	}
}

// MySQL builds a go-sql-driver/mysql style DSN.
func MySQL(db *config.DB) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
	)

	if db.Extras != "" {
		out += "?" + db.Extras
	}

	return out
}

// Postgres builds a postgres connection URI.
func Postgres(db *config.DB) string {
	out := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
	)

	if db.Extras != "" {
		out += "?" + strings.ReplaceAll(db.Extras, " ", "&")
	}

	return out
}
