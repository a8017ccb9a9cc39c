// Package feed renders the before/after transformations feed.
package feed

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/content"
	"github.com/pzillo/landing/internal/db/models"
	"github.com/pzillo/landing/internal/web/handler"
)

const (
	// Path is the path to the feed page.
	Path = handler.RootPath + "feed"

	// TemplateName is the name of the feed template.
	TemplateName = "feed"
)

// Item is a post with its age label.
type Item struct {
	models.Post
	Age string
}

// Service is the feed handler service.
type Service struct {
	cfg   *config.Config
	store *content.Store
	now   func() time.Time
}

var _ handler.Service = (*Service)(nil)

// Handler is the feed handler.
var Handler = Service{}

// Init initializes the feed handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, store *content.Store) {
	if app == nil || cfg == nil || store == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.store = store
	s.now = time.Now

	app.Get(Path, s.Get)
}

// Get renders all posts, newest first.
func (s *Service) Get(c *fiber.Ctx) error {
	snap, err := s.store.Load(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("feed rendered with incomplete content")
	}

	now := s.now()
	items := make([]Item, 0, len(snap.Posts))

	for i := range snap.Posts {
		items = append(items, Item{Post: snap.Posts[i], Age: Age(now, snap.Posts[i].CreatedAt)})
	}

	return c.Render(TemplateName, fiber.Map{
		"Title":      snap.Settings.Title,
		"Settings":   snap.Settings,
		"Items":      items,
		"LoadFailed": err != nil,
	}, handler.BaseLayout)
}
