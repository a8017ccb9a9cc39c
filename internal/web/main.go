package web

import (
	"errors"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/pzillo/landing/internal/auth"
	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/content"
	fiberlog "github.com/pzillo/landing/internal/logger/adapter/fiber"
	"github.com/pzillo/landing/internal/storage"
	"github.com/pzillo/landing/internal/upload"
	"github.com/pzillo/landing/internal/web/handler/admin/dashboard"
	"github.com/pzillo/landing/internal/web/handler/admin/post"
	"github.com/pzillo/landing/internal/web/handler/admin/service"
	"github.com/pzillo/landing/internal/web/handler/admin/settings"
	uploadhandler "github.com/pzillo/landing/internal/web/handler/admin/upload"
	"github.com/pzillo/landing/internal/web/handler/admin/user"
	"github.com/pzillo/landing/internal/web/handler/feed"
	"github.com/pzillo/landing/internal/web/handler/home"
	"github.com/pzillo/landing/internal/web/handler/login"
	"github.com/pzillo/landing/internal/web/handler/logout"
	authmiddleware "github.com/pzillo/landing/internal/web/middleware/auth"
)

const (
	// CheckAlivePath answers 200 while the service takes traffic.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"
	// StoragePath is the prefix the buckets are served under.
	StoragePath = "/storage"

	// multipart overhead on top of the upload limit
	bodyLimitSlack = 1 << 20
)

// Deps are the services the handlers work on.
type Deps struct {
	Store    *content.Store
	Provider *auth.LocalProvider
	Bucket   *storage.Bucket
	Uploads  *upload.Helper
}

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and stops the http server.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown fails the check alive endpoint for the configured time, so load
// balancers drain the instance, then stops the http server.
func (s *Service) Shutdown() {
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		if err := s.App.Shutdown(); err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the service still takes traffic.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, deps Deps) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if deps.Store == nil || deps.Provider == nil || deps.Bucket == nil || deps.Uploads == nil {
		panic("web dependencies cannot be nil")
	}

	httpFS := http.FS(templatesFS())
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	addTemplateFuncs(templateEngine, deps.Uploads)

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
			BodyLimit:      int(deps.Uploads.MaxSize()) + bodyLimitSlack,
		},
	)

	srv := &Service{
		cfg: cfg,
		App: app,
	}
	srv.alive.Store(true)
	srv.fastShutDown = cfg.DevMode

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
			},
		),
	)

	// uploaded images, read only and never run as a document
	app.Use(StoragePath+"/"+deps.Bucket.Name(),
		func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderContentSecurityPolicy, "sandbox")
			c.Set(fiber.HeaderXContentTypeOptions, "nosniff")

			return c.Next()
		},
		filesystem.New(
			filesystem.Config{
				Root:   deps.Bucket.HTTPFileSystem(),
				MaxAge: int((24 * time.Hour).Seconds()),
			},
		),
	)

	app.Use(fiberlog.New(fiberlog.Config{
		Next:          fiberlog.SkipAssets,
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !srv.Alive() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(authmiddleware.New(deps.Provider, cfg.DevMode))

	// handlers register their own routes
	home.Handler.Init(app, cfg, deps.Store)
	feed.Handler.Init(app, cfg, deps.Store)
	login.Handler.Init(app, cfg, deps.Store, deps.Provider)
	logout.Handler.Init(app, cfg)
	dashboard.Handler.Init(app, cfg, deps.Store)
	service.Handler.Init(app, cfg, deps.Store)
	post.Handler.Init(app, cfg, deps.Store)
	settings.Handler.Init(app, cfg, deps.Store)
	uploadhandler.Handler.Init(app, cfg, deps.Uploads)
	user.Handler.Init(app, cfg, deps.Provider)

	return srv
}

func addTemplateFuncs(engine *html.Engine, uploads *upload.Helper) {
	engine.AddFunc("bytes", func(n int64) string {
		return humanize.IBytes(uint64(n)) //nolint:gosec
	})
	engine.AddFunc("uploadLimit", uploads.MaxSize)
	engine.AddFunc("nl2br", func(s string) template.HTML {
		return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>")) //nolint:gosec
	})
}
