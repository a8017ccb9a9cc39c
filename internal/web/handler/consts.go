package handler

const (
	// BaseLayout is the layout of the public pages.
	BaseLayout = "layouts/base"

	// AdminLayout is the layout of the admin panel.
	AdminLayout = "layouts/admin"

	// RootPath is the root path the route group.
	RootPath = "/"

	// LoginPath is the sign-in page.
	LoginPath = RootPath + "login"

	// LogoutPath signs the user out.
	LogoutPath = RootPath + "logout"

	// AdminPath is the admin dashboard.
	AdminPath = RootPath + "admin"

	// LocalsCurrentUser is the fiber.Locals key of the signed-in session.User.
	LocalsCurrentUser = "CurrentUser"

	// ErrNilACDFatalLogMsg is used if app or cfg or store var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or store is nil"
)
