package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	localauth "github.com/pzillo/landing/internal/auth"
	"github.com/pzillo/landing/internal/db/models"
	fiberlog "github.com/pzillo/landing/internal/logger/adapter/fiber"
	"github.com/pzillo/landing/internal/web/handler"
	"github.com/pzillo/landing/internal/web/session"
)

// Accounts looks up the account behind a session.
type Accounts interface {
	GetUserByID(userID uint64) (*models.User, error)
}

// New returns the middleware checking every session against accounts.
// Sessions of disabled, deleted or re-keyed accounts are destroyed.
func New(accounts Accounts, devMode bool) fiber.Handler {
	if accounts == nil {
		panic("auth middleware: accounts is nil")
	}

	return func(c *fiber.Ctx) error {
		if IsAssetPath(c) {
			return c.Next()
		}

		sessData, signedIn := session.Current(c)
		if signedIn {
			signedIn = stillValid(c, accounts, sessData.User, devMode)
		}

		if signedIn {
			// Add the current user to locals for template access
			c.Locals(handler.LocalsCurrentUser, sessData.User)
			c.Locals(fiberlog.LocalsUserKey, sessData.User.Email)
		}

		switch {
		case IsAdminPage(c) && !signedIn:
			return c.Redirect(handler.LoginPath)
		case IsLoginPage(c) && signedIn && c.Method() == fiber.MethodGet:
			return c.Redirect(handler.AdminPath)
		}

		return c.Next()
	}
}

// stillValid reports whether the stored account still grants the session access.
// A revoked session is removed. A failed lookup only denies this request.
func stillValid(c *fiber.Ctx, accounts Accounts, u session.User, devMode bool) bool {
	account, err := accounts.GetUserByID(u.ID)
	if err != nil && !errors.Is(err, localauth.ErrUserNotFound) {
		log.Error().Err(err).Uint64("user", u.ID).Msg("failed to load session account")
		return false
	}

	if u.Matches(account) {
		return true
	}

	log.Info().Uint64("user", u.ID).Str("email", u.Email).Msg("session revoked")
	session.Destroy(c)
	session.ClearCookie(c, devMode)

	return false
}

// CurrentUser returns the user the middleware found for the request.
func CurrentUser(c *fiber.Ctx) (session.User, bool) {
	u, ok := c.Locals(handler.LocalsCurrentUser).(session.User)
	return u, ok
}

// IsAssetPath checks if the request is for static or uploaded files.
func IsAssetPath(c *fiber.Ctx) bool {
	p := strings.ToLower(c.Path())
	return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/storage/")
}

// IsAdminPage checks if the current request is for the admin panel.
func IsAdminPage(c *fiber.Ctx) bool {
	p := strings.ToLower(c.Path())
	return p == handler.AdminPath || strings.HasPrefix(p, handler.AdminPath+"/")
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	p := strings.ToLower(c.Path())
	return p == handler.LoginPath || p == handler.LoginPath+"/"
}
