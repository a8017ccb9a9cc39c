// Package home renders the landing page and follows service links.
package home

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/content"
	"github.com/pzillo/landing/internal/web/handler"
)

const (
	// Path is the landing page.
	Path = handler.RootPath

	// TemplateName is the name of the landing page template.
	TemplateName = "home"
)

// Service is the landing page handler service.
type Service struct {
	cfg   *config.Config
	store *content.Store
}

var _ handler.Service = (*Service)(nil)

// Handler is the landing page handler.
var Handler = Service{}

// Init initializes the landing page handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, store *content.Store) {
	if app == nil || cfg == nil || store == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.store = store

	app.Get(Path, s.Get)
	app.Get(LinkPath+":id", s.Link)
}

// Get renders hero, published services and the call to action.
func (s *Service) Get(c *fiber.Ctx) error {
	snap, err := s.store.Load(c.UserContext())
	if err != nil {
		// render what could be loaded, the page stays usable
		log.Error().Err(err).Msg("landing page rendered with incomplete content")
	}

	category := c.Query("category")

	return c.Render(TemplateName, fiber.Map{
		"Title":          snap.Settings.Title,
		"Settings":       snap.Settings,
		"Services":       snap.ActiveServices(category),
		"Categories":     snap.Categories(),
		"ActiveCategory": category,
		"LoadFailed":     err != nil,
	}, handler.BaseLayout)
}
