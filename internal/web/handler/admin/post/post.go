// Package post provides the admin forms for the feed posts.
package post

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/content"
	controller "github.com/pzillo/landing/internal/db/controller/post"
	"github.com/pzillo/landing/internal/db/models"
	"github.com/pzillo/landing/internal/web/handler"
	"github.com/pzillo/landing/internal/web/navigation"
	"github.com/pzillo/landing/internal/web/session"
)

const (
	// Path is the base path of the post pages.
	Path = handler.AdminPath + "/posts"

	// TemplateName is the name of the post form template.
	TemplateName = "admin/post_form"
)

// Service is the admin post handler service.
type Service struct {
	cfg       *config.Config
	store     *content.Store
	validator *handler.XValidator
}

var _ handler.Service = (*Service)(nil)

// Handler is the admin post handler.
var Handler = Service{}

// Init initializes the admin post handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, store *content.Store) {
	if app == nil || cfg == nil || store == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.store = store
	s.validator = handler.NewValidator()

	app.Get(Path+"/new", s.New)
	app.Get(Path+"/:id/edit", s.Edit)
	app.Post(Path, s.Save)
	app.Post(Path+"/:id/delete", s.Delete)
}

// New renders an empty draft. Author and avatar start from the configured defaults.
func (s *Service) New(c *fiber.Ctx) error {
	draft := &models.Post{
		Author:    s.cfg.Defaults.PostAuthor,
		AvatarURL: s.cfg.Defaults.PostAvatarURL,
	}

	return s.render(c, fiber.StatusOK, draft, nil, "")
}

// Edit renders the draft of an existing post.
func (s *Service) Edit(c *fiber.Ctx) error {
	p, err := s.store.Post(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.fail(c, "Post could not be opened", err)
	}

	return s.render(c, fiber.StatusOK, p, nil, "")
}

// Save inserts the draft when it carries no id, otherwise updates the post.
func (s *Service) Save(c *fiber.Ctx) error {
	draft := new(models.Post)

	if err := c.BodyParser(draft); err != nil {
		log.Error().Err(err).Msg("failed to parse post form")
		return s.render(c, fiber.StatusBadRequest, draft, nil, "Invalid form data")
	}

	draft.ID = strings.TrimSpace(draft.ID)
	draft.Title = strings.TrimSpace(draft.Title)
	draft.BeforeImageURL = strings.TrimSpace(draft.BeforeImageURL)
	draft.AfterImageURL = strings.TrimSpace(draft.AfterImageURL)
	draft.AvatarURL = strings.TrimSpace(draft.AvatarURL)

	if errs := s.validator.Validate(draft); len(errs) > 0 {
		return s.render(c, fiber.StatusBadRequest, draft, handler.Messages(errs), "")
	}

	if _, err := s.store.SavePost(c.UserContext(), draft); err != nil {
		if errors.Is(err, controller.ErrNotFound) {
			return s.fail(c, "Post no longer exists", err)
		}

		return s.render(c, fiber.StatusInternalServerError, draft, nil, "Post could not be saved, please try again")
	}

	session.AddNotice(c, session.NoticeSuccess, "Post \""+draft.Title+"\" saved")

	return c.Redirect(handler.AdminPath)
}

// Delete removes a post.
func (s *Service) Delete(c *fiber.Ctx) error {
	if _, err := s.store.DeletePost(c.UserContext(), c.Params("id")); err != nil {
		return s.fail(c, "Post could not be deleted", err)
	}

	session.AddNotice(c, session.NoticeSuccess, "Post deleted")

	return c.Redirect(handler.AdminPath)
}

func (s *Service) fail(c *fiber.Ctx, msg string, err error) error {
	log.Error().Err(err).Str("id", c.Params("id")).Msg(strings.ToLower(msg))
	session.AddNotice(c, session.NoticeError, msg)

	return c.Redirect(handler.AdminPath)
}

func (s *Service) render(c *fiber.Ctx, status int, draft *models.Post, errs map[string]string, errMsg string) error {
	title, page := "New Post", "new"
	if draft.ID != "" {
		title, page = "Edit Post", "edit"
	}

	data := handler.AdminView(c, navigation.Admin(title, navigation.SectionPosts, page, c.Path()), fiber.Map{
		"Post":   draft,
		"Errors": errs,
	})

	if errMsg != "" {
		data["error"] = errMsg
	}

	return c.Status(status).Render(TemplateName, data, handler.AdminLayout)
}
