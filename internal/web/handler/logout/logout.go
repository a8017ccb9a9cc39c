// Package logout signs the user out.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/web/handler"
	"github.com/pzillo/landing/internal/web/session"
)

// Service is the logout handler service.
type Service struct {
	cfg *config.Config
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg

	app.Get(handler.LogoutPath, s.Logout)
	app.Post(handler.LogoutPath, s.Logout)
}

// Logout handles user logout by clearing the session.
func (s *Service) Logout(c *fiber.Ctx) error {
	if data, ok := session.Current(c); ok {
		log.Info().Str("email", data.User.Email).Msg("signed out")
	}

	session.Destroy(c)
	session.ClearCookie(c, s.cfg.DevMode)

	return c.Redirect(handler.LoginPath)
}
