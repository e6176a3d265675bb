// Package daemon opens the database and runs the web service.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/product-reviews/product-reviews/internal/config"
	"github.com/product-reviews/product-reviews/internal/db/dsn"
	"github.com/product-reviews/product-reviews/internal/db/models"
	"github.com/product-reviews/product-reviews/internal/logger/adapter/gormlogger"
	"github.com/product-reviews/product-reviews/internal/web"
)

var (
	// ErrUnknownEngine is returned for a DB.GormEngine without dialector.
	ErrUnknownEngine = errors.New("unknown gorm engine")

	// ErrConfigNil is returned when the daemon is created without config.
	ErrConfigNil = errors.New("config is nil")
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the web service and blocks until it is shut down.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db),
	}, nil
}

// Dialector returns the gorm dialector of the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL, "":
		return gormmysql.Open(dsn.MySQL(cfg)), nil
	case config.EnginePostgres:
		return postgres.Open(dsn.Postgres(cfg)), nil
	case config.EngineSQLite:
		return sqlite.Open(dsn.SQLite(cfg)), nil
	default:
		return nil, errors.Wrap(ErrUnknownEngine, cfg.DB.GormEngine)
	}
}

// OpenDB connects to the database and migrates the schema.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(cfg.DB.SlowThreshold),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	log.Info().Str("engine", dialector.Name()).Msg("database ready")

	return db, nil
}

// Migrate creates or updates the tables of all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Review{},
		&models.Setting{},
		&models.AccessKey{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}
