// Package web assembles the HTTP service: the fiber app, its middlewares,
// the API handlers, the storefront widget script, metrics and the load
// balancer check.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/product-reviews/product-reviews/internal/auth"
	"github.com/product-reviews/product-reviews/internal/config"
	fiberlogger "github.com/product-reviews/product-reviews/internal/logger/adapter/fiber"
	"github.com/product-reviews/product-reviews/internal/web/handler"
	adminreviews "github.com/product-reviews/product-reviews/internal/web/handler/admin/reviews"
	adminsettings "github.com/product-reviews/product-reviews/internal/web/handler/admin/settings"
	publicreviews "github.com/product-reviews/product-reviews/internal/web/handler/public/reviews"
	publicsettings "github.com/product-reviews/product-reviews/internal/web/handler/public/settings"
	"github.com/product-reviews/product-reviews/internal/web/middleware/cors"
)

const (
	// MetricsPath serves the prometheus metrics.
	MetricsPath = "/metrics"

	// StaticPath serves the storefront widget script.
	StaticPath = "/static"

	defaultAppName  = "product-reviews"
	staticMaxAge    = 3600
	readBufferSize  = 8192
	checkAliveOK    = "OK"
	checkAliveNotOK = "shutting down"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan error)

	go func() {
		err := s.App.Listen(addr)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}

		doneFiber <- err
	}()

	return <-doneFiber // wait for fiber to stop
}

// WaitShutdown waits for SIGINT or SIGTERM and stops the service gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown fails the check alive endpoint for the configured time, so load
// balancers stop sending traffic, then stops the http server.
func (s *Service) Shutdown() {
	s.alive.Store(false)

	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the service accepts traffic.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// CheckAlive answers the load balancer health check.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString(checkAliveNotOK)
	}

	return c.SendString(checkAliveOK)
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	appName := cfg.Title
	if appName == "" {
		appName = defaultAppName
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize:        readBufferSize,
			AppName:               appName,
			CaseSensitive:         true,
			Prefork:               false,
			Immutable:             true,
			BodyLimit:             cfg.Webserver.BodyLimit,
			ErrorHandler:          handler.ErrorHandler,
			DisableStartupMessage: !cfg.DevMode,
		},
	)

	// access log first, it renders errors of everything below
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: cfg.Webserver.CheckAliveURI,
	}))

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(handler.APIPath, cors.New())

	service := &Service{
		cfg:          cfg,
		App:          app,
		db:           db,
		fastShutDown: cfg.DevMode,
		authService:  auth.NewService(db),
	}
	service.alive.Store(true)

	if cfg.Webserver.CheckAliveURI != "" {
		app.Get(cfg.Webserver.CheckAliveURI, service.CheckAlive)
	}

	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// serve the embedded widget, in dev mode the local files
	staticCfg := filesystem.Config{
		Root:       http.FS(embeddedStaticFiles),
		PathPrefix: "static",
		MaxAge:     staticMaxAge,
	}

	if cfg.DevMode {
		staticCfg = filesystem.Config{Root: http.Dir(localStaticDir)}

		log.Warn().Msg("debug mode enabled: serving static files from local filesystem")
	}

	app.Use(StaticPath, filesystem.New(staticCfg))

	// init handlers, admin handlers guard their routes with the shop key.
	// Each app gets its own handler instances.
	(&publicreviews.Service{}).Init(app, cfg, db)
	(&publicsettings.Service{}).Init(app, cfg, db)
	(&adminreviews.Service{}).Init(app, cfg, db, service.authService)
	(&adminsettings.Service{}).Init(app, cfg, db, service.authService)

	return service
}
