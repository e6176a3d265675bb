package config

import "time"

const (
	// EngineMySQL selects the gorm mysql dialector.
	EngineMySQL = "mysql"

	// EnginePostgres selects the gorm postgres dialector.
	EnginePostgres = "postgres"

	// EngineSQLite selects the pure go sqlite dialector. Name is used as file path.
	EngineSQLite = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Extras        string
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	GormEngine    string
	SlowThreshold time.Duration // queries slower than this are logged as warnings
}
