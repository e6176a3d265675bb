// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/product-reviews/product-reviews/internal/config"
)

// Create builds the Data Source Name of the configured engine.
func Create(dbCfg *config.Config) string {
	switch dbCfg.DB.GormEngine {
	case config.EnginePostgres:
		return Postgres(dbCfg)
	case config.EngineSQLite:
		return SQLite(dbCfg)
	default:
		return MySQL(dbCfg)
	}
}

// MySQL builds a go-sql-driver/mysql DSN, for example
// user:pass@tcp(host:3306)/reviews?parseTime=true.
func MySQL(dbCfg *config.Config) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.Name,
	)

	if dbCfg.DB.Extras != "" {
		out += "?" + strings.TrimPrefix(dbCfg.DB.Extras, "?")
	}

	return out
}

// Postgres builds a libpq keyword/value DSN. Extras are appended as is,
// for example "sslmode=disable TimeZone=UTC".
func Postgres(dbCfg *config.Config) string {
	parts := []string{
		"host=" + dbCfg.DB.Host,
		fmt.Sprintf("port=%d", dbCfg.DB.Port),
		"user=" + dbCfg.DB.User,
		"password=" + dbCfg.DB.Password,
		"dbname=" + dbCfg.DB.Name,
	}

	if dbCfg.DB.Extras != "" {
		parts = append(parts, dbCfg.DB.Extras)
	}

	return strings.Join(parts, " ")
}

// SQLite returns the database file of the sqlite engine. Extras are
// passed as URI query, for example "_pragma=foreign_keys(1)".
func SQLite(dbCfg *config.Config) string {
	if dbCfg.DB.Extras == "" {
		return dbCfg.DB.Name
	}

	return dbCfg.DB.Name + "?" + strings.TrimPrefix(dbCfg.DB.Extras, "?")
}
