// Package daemon wires database, session storage, object storage and the web
// service into the running application.
package daemon

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pzillo/landing/internal/auth"
	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/content"
	"github.com/pzillo/landing/internal/db"
	"github.com/pzillo/landing/internal/db/dsn"
	"github.com/pzillo/landing/internal/storage"
	"github.com/pzillo/landing/internal/upload"
	"github.com/pzillo/landing/internal/web"
	"github.com/pzillo/landing/internal/web/session"
)

const sessionTable = "sessions"

// ErrConfigNil is returned by New without configuration.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg            *config.Config
	db             *gorm.DB
	sessionStorage fiber.Storage
	webService     *web.Service
}

// New connects all backends and builds the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	provider := auth.NewLocalProvider(gdb)

	if err = seed(cfg, provider); err != nil {
		return nil, err
	}

	bucket, err := storage.NewFromConfig(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket: %w", err)
	}

	store, err := content.New(gdb, cfg.Defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to create content store: %w", err)
	}

	sessionStorage := newSessionStorage(cfg)
	session.Init(sessionStorage, cfg.Webserver.Session.ExpiryTime)

	log.Info().
		Str("engine", cfg.DB.GormEngine).
		Str("bucket", bucket.Name()).
		Bool("persistentSessions", sessionStorage != nil).
		Msg("backends ready")

	return &Daemon{
		cfg:            cfg,
		db:             gdb,
		sessionStorage: sessionStorage,
		webService: web.New(cfg, web.Deps{
			Store:    store,
			Provider: provider,
			Bucket:   bucket,
			Uploads:  upload.New(bucket, cfg.Storage.MaxUploadSize),
		}),
	}, nil
}

// App returns the fiber app of the web service.
func (d *Daemon) App() *fiber.App {
	return d.webService.App
}

// Start serves http until SIGINT or SIGTERM, then releases the backends.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	if err := d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port)); err != nil {
		return err //nolint:wrapcheck
	}

	return d.Close()
}

// Close releases session storage and database connections.
func (d *Daemon) Close() error {
	var errs []error

	if d.sessionStorage != nil {
		if err := d.sessionStorage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close session storage: %w", err))
		}
	}

	if sqlDB, err := d.db.DB(); err == nil {
		if err = sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}

// newSessionStorage keeps sessions in the application database. SQLite has
// no fiber storage driver here, its sessions stay in memory.
func newSessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(&cfg.DB),
			Table:         sessionTable,
		})
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.MySQL(&cfg.DB),
			Table:         sessionTable,
		})
	default:
		log.Warn().Str("engine", cfg.DB.GormEngine).Msg("sessions are kept in memory and lost on restart")
		return nil
	}
}
