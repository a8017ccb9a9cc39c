package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pzillo/landing/internal/auth"
	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/content"
	"github.com/pzillo/landing/internal/metrics"
	"github.com/pzillo/landing/internal/web/handler"
	"github.com/pzillo/landing/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = handler.LoginPath

	// TemplateName is the name of the login template.
	TemplateName = "login"
)

// Form is the submitted sign-in form.
type Form struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// Service is the login handler service.
type Service struct {
	cfg       *config.Config
	store     *content.Store
	provider  *auth.LocalProvider
	validator *handler.XValidator
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, store *content.Store, provider *auth.LocalProvider) {
	if app == nil || cfg == nil || store == nil || provider == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.store = store
	s.provider = provider
	s.validator = handler.NewValidator()

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "", "")
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		return s.render(c, fiber.StatusBadRequest, "", ErrInvalidFormData.Error())
	}

	if errs := s.validator.Validate(form); len(errs) > 0 {
		metrics.Logins.WithLabelValues(metrics.ResultRejected).Inc()
		return s.render(c, fiber.StatusBadRequest, form.Email, ErrInvalidFormData.Error())
	}

	user, err := s.provider.Authenticate(form.Email, form.Password)
	if err != nil {
		metrics.Logins.WithLabelValues(metrics.ResultError).Inc()

		if errors.Is(err, auth.ErrUserNotFound) ||
			errors.Is(err, auth.ErrInvalidPassword) ||
			errors.Is(err, auth.ErrUserAccountDisabled) {
			log.Warn().Str("email", form.Email).Err(err).Msg("sign-in refused")
			return s.render(c, fiber.StatusUnauthorized, form.Email, auth.ErrInvalidCredentials.Error())
		}

		log.Error().Err(err).Msg("sign-in failed")

		return s.render(c, fiber.StatusInternalServerError, form.Email, ErrInternalServerError.Error())
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return s.render(c, fiber.StatusInternalServerError, form.Email, ErrInternalServerError.Error())
	}

	if err = session.NewData(user).Write(sessionID, session.Expiry); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return s.render(c, fiber.StatusInternalServerError, form.Email, ErrInternalServerError.Error())
	}

	session.SetCookie(c, sessionID, s.cfg.DevMode)
	metrics.Logins.WithLabelValues(metrics.ResultOK).Inc()
	log.Info().Str("email", user.Email).Msg("signed in")

	return c.Redirect(handler.AdminPath)
}

func (s *Service) render(c *fiber.Ctx, status int, email, errMsg string) error {
	settings, err := s.store.Settings(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings for login page")
	}

	data := fiber.Map{
		"Title":    settings.Title,
		"Settings": settings,
		"Email":    email,
	}

	if errMsg != "" {
		data["error"] = errMsg
	}

	return c.Status(status).Render(TemplateName, data, handler.BaseLayout)
}
