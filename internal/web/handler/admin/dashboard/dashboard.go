// Package dashboard provides the admin overview of services, posts and settings.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/content"
	"github.com/pzillo/landing/internal/web/handler"
	"github.com/pzillo/landing/internal/web/navigation"
	"github.com/pzillo/landing/internal/web/session"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.AdminPath

	// TemplateName is the name of the dashboard template.
	TemplateName = "admin/dashboard"

	loadErrorNotice = "Some content could not be loaded, the lists may be incomplete."
)

// Service is the dashboard handler service.
type Service struct {
	cfg   *config.Config
	store *content.Store
}

var _ handler.Service = (*Service)(nil)

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, store *content.Store) {
	if app == nil || cfg == nil || store == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.store = store

	app.Get(Path, s.Get)
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.Admin("Dashboard", navigation.SectionDashboard, navigation.SectionDashboard, Path)

	snap, err := s.store.Load(c.UserContext())

	data := handler.AdminView(c, nav, fiber.Map{
		"Services":    snap.Services,
		"Posts":       snap.Posts,
		"Settings":    snap.Settings,
		"HasSettings": snap.HasSettings,
	})

	if err != nil {
		log.Error().Err(err).Msg("dashboard rendered with incomplete content")

		notices, _ := data["Notices"].([]session.Notice)
		data["Notices"] = append(notices, session.Notice{Kind: session.NoticeError, Message: loadErrorNotice})
	}

	return c.Render(TemplateName, data, handler.AdminLayout)
}
