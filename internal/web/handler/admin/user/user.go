// Package user provides the admin pages managing the accounts that can sign in.
package user

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pzillo/landing/internal/auth"
	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/web/handler"
	"github.com/pzillo/landing/internal/web/navigation"
	"github.com/pzillo/landing/internal/web/session"
)

const (
	// Path is the base path for account management.
	Path = handler.AdminPath + "/users"

	// TemplateList is the template listing the accounts.
	TemplateList = "admin/users"
)

// CreateForm is the form adding an account.
type CreateForm struct {
	Email    string `form:"email"    validate:"required,email,max=255"`
	Password string `form:"password" validate:"required,min=8"`
}

// PasswordForm is the form setting a new password.
type PasswordForm struct {
	Password string `form:"password" validate:"required,min=8"`
}

// Service manages the local accounts.
type Service struct {
	cfg       *config.Config
	provider  *auth.LocalProvider
	validator *handler.XValidator
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, provider *auth.LocalProvider) {
	if app == nil || cfg == nil || provider == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.provider = provider
	s.validator = handler.NewValidator()

	app.Get(Path, s.List)
	app.Post(Path, s.Create)
	app.Post(Path+"/:id/password", s.Password)
	app.Post(Path+"/:id/active", s.Active)
	app.Post(Path+"/:id/delete", s.Delete)
}

// List shows all accounts.
func (s *Service) List(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "", nil, "")
}

// Create adds an active account.
func (s *Service) Create(c *fiber.Ctx) error {
	var in CreateForm

	if err := c.BodyParser(&in); err != nil {
		return s.render(c, fiber.StatusBadRequest, "", nil, "Invalid form data")
	}

	if errs := s.validator.Validate(&in); len(errs) > 0 {
		return s.render(c, fiber.StatusBadRequest, in.Email, handler.Messages(errs), "")
	}

	user, err := s.provider.CreateUser(in.Email, in.Password)

	switch {
	case errors.Is(err, auth.ErrUserExists):
		return s.render(c, fiber.StatusConflict, in.Email, map[string]string{"Email": err.Error()}, "")
	case err != nil:
		log.Error().Err(err).Msg("failed to create account")
		return s.render(c, fiber.StatusInternalServerError, in.Email, nil, "Account could not be created")
	}

	log.Info().Str("email", user.Email).Str("by", currentEmail(c)).Msg("account created")
	session.AddNotice(c, session.NoticeSuccess, "Account "+user.Email+" created")

	return c.Redirect(Path)
}

// Password sets a new password for an account. Other sessions of the account
// end.
func (s *Service) Password(c *fiber.Ctx) error {
	user, ok := s.target(c)
	if !ok {
		return c.Redirect(Path)
	}

	var in PasswordForm
	if err := c.BodyParser(&in); err != nil || len(s.validator.Validate(&in)) > 0 {
		session.AddNotice(c, session.NoticeError, "The password needs at least 8 characters")
		return c.Redirect(Path)
	}

	if err := s.provider.ResetPassword(user.Email, in.Password); err != nil {
		return s.fail(c, "Password could not be changed", err)
	}

	// the reset signed the account out everywhere, keep this browser signed in
	if s.isSelf(c, user.ID) {
		if account, err := s.provider.GetUserByID(user.ID); err == nil {
			session.Refresh(c, account)
		} else {
			log.Error().Err(err).Msg("failed to refresh own session")
		}
	}

	session.AddNotice(c, session.NoticeSuccess, "Password of "+user.Email+" changed")

	return c.Redirect(Path)
}

// Active enables or disables an account.
func (s *Service) Active(c *fiber.Ctx) error {
	user, ok := s.target(c)
	if !ok {
		return c.Redirect(Path)
	}

	active := c.FormValue("active") == "true"

	if !active && s.isSelf(c, user.ID) {
		session.AddNotice(c, session.NoticeError, "You cannot disable your own account")
		return c.Redirect(Path)
	}

	if err := s.provider.SetActive(user.ID, active); err != nil {
		return s.fail(c, "Account could not be changed", err)
	}

	state := "disabled"
	if active {
		state = "enabled"
	}

	session.AddNotice(c, session.NoticeSuccess, "Account "+user.Email+" "+state)

	return c.Redirect(Path)
}

// Delete removes an account other than the signed-in one.
func (s *Service) Delete(c *fiber.Ctx) error {
	user, ok := s.target(c)
	if !ok {
		return c.Redirect(Path)
	}

	if s.isSelf(c, user.ID) {
		session.AddNotice(c, session.NoticeError, "You cannot delete your own account")
		return c.Redirect(Path)
	}

	if err := s.provider.DeleteUser(user.ID); err != nil {
		return s.fail(c, "Account could not be deleted", err)
	}

	log.Info().Str("email", user.Email).Str("by", currentEmail(c)).Msg("account deleted")
	session.AddNotice(c, session.NoticeSuccess, "Account "+user.Email+" deleted")

	return c.Redirect(Path)
}

// target loads the account named by the id parameter, queueing a notice when
// there is none.
func (s *Service) target(c *fiber.Ctx) (*session.User, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		session.AddNotice(c, session.NoticeError, "Account not found")
		return nil, false
	}

	user, err := s.provider.GetUserByID(id)
	if err != nil {
		if !errors.Is(err, auth.ErrUserNotFound) {
			log.Error().Err(err).Uint64("id", id).Msg("failed to load account")
		}

		session.AddNotice(c, session.NoticeError, "Account not found")

		return nil, false
	}

	return &session.User{ID: user.ID, Email: user.Email}, true
}

func (s *Service) isSelf(c *fiber.Ctx, id uint64) bool {
	u, ok := c.Locals(handler.LocalsCurrentUser).(session.User)
	return ok && u.ID == id
}

func (s *Service) fail(c *fiber.Ctx, msg string, err error) error {
	text := msg
	if errors.Is(err, auth.ErrLastActiveUser) {
		text = msg + ": " + err.Error()
	} else {
		log.Error().Err(err).Msg(msg)
	}

	session.AddNotice(c, session.NoticeError, text)

	return c.Redirect(Path)
}

func (s *Service) render(c *fiber.Ctx, status int, email string, errs map[string]string, errMsg string) error {
	nav := navigation.Admin("Accounts", navigation.SectionAccounts, navigation.SectionAccounts, Path)

	users, err := s.provider.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("failed to list accounts")

		status = fiber.StatusInternalServerError
		errMsg = "Accounts could not be loaded"
	}

	var currentID uint64
	if u, ok := c.Locals(handler.LocalsCurrentUser).(session.User); ok {
		currentID = u.ID
	}

	data := handler.AdminView(c, nav, fiber.Map{
		"Users":         users,
		"CurrentUserID": currentID,
		"Email":         email,
		"Errors":        errs,
	})

	if errMsg != "" {
		data["error"] = errMsg
	}

	return c.Status(status).Render(TemplateList, data, handler.AdminLayout)
}

func currentEmail(c *fiber.Ctx) string {
	if u, ok := c.Locals(handler.LocalsCurrentUser).(session.User); ok {
		return u.Email
	}

	return ""
}
