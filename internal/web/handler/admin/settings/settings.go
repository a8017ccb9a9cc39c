// Package settings provides the admin form for the landing page appearance.
package settings

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/content"
	"github.com/pzillo/landing/internal/db/models"
	"github.com/pzillo/landing/internal/web/handler"
	"github.com/pzillo/landing/internal/web/navigation"
	"github.com/pzillo/landing/internal/web/session"
)

const (
	// Path is the path to the settings page.
	Path = handler.AdminPath + "/settings"

	// TemplateName is the name of the settings template.
	TemplateName = "admin/settings"
)

// Service is the settings handler service.
type Service struct {
	cfg       *config.Config
	store     *content.Store
	validator *handler.XValidator
}

var _ handler.Service = (*Service)(nil)

// Handler is the settings handler.
var Handler = Service{}

// Init initializes the settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, store *content.Store) {
	if app == nil || cfg == nil || store == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.store = store
	s.validator = handler.NewValidator()

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)
}

// Get renders the effective settings as the draft.
func (s *Service) Get(c *fiber.Ctx) error {
	current, err := s.store.Settings(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings, showing defaults")
		session.AddNotice(c, session.NoticeError, "Settings could not be loaded, showing the defaults")
	}

	return s.render(c, fiber.StatusOK, &current, nil, "")
}

// Post saves the draft into the settings row.
func (s *Service) Post(c *fiber.Ctx) error {
	draft := new(models.AppSettings)

	if err := c.BodyParser(draft); err != nil {
		log.Error().Err(err).Msg("failed to parse settings form")
		return s.render(c, fiber.StatusBadRequest, draft, nil, "Invalid form data")
	}

	for _, f := range []*string{&draft.HeroImageURL, &draft.HeroVideoURL, &draft.LoginLogoURL, &draft.Title} {
		*f = strings.TrimSpace(*f)
	}

	if errs := s.validator.Validate(draft); len(errs) > 0 {
		return s.render(c, fiber.StatusBadRequest, draft, handler.Messages(errs), "")
	}

	if _, err := s.store.SaveSettings(c.UserContext(), draft); err != nil {
		return s.render(c, fiber.StatusInternalServerError, draft, nil, "Settings could not be saved, please try again")
	}

	session.AddNotice(c, session.NoticeSuccess, "Settings saved")

	return c.Redirect(Path)
}

func (s *Service) render(c *fiber.Ctx, status int, draft *models.AppSettings, errs map[string]string, errMsg string) error {
	data := handler.AdminView(c, navigation.Admin("Settings", navigation.SectionSettings, navigation.SectionSettings, Path), fiber.Map{
		"Settings": draft,
		"Errors":   errs,
	})

	if errMsg != "" {
		data["error"] = errMsg
	}

	return c.Status(status).Render(TemplateName, data, handler.AdminLayout)
}
