// Package auth provides authentication middleware for the web application.
//
// The middleware reads the session cookie on every request and checks it
// against the stored account: a disabled or deleted account, or one whose
// session version moved on, loses the session. A valid session puts the
// session.User into fiber.Locals for handlers and templates. Requests
// below /admin without a valid session are redirected to the login page, and
// a signed-in user opening the login page is sent to the dashboard.
//
// Usage:
//
//	app.Use(authmiddleware.New(provider, cfg.DevMode))
package auth
