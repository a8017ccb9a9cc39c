// Package service provides the admin forms for the service cards.
package service

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/content"
	controller "github.com/pzillo/landing/internal/db/controller/service"
	"github.com/pzillo/landing/internal/db/models"
	"github.com/pzillo/landing/internal/web/handler"
	"github.com/pzillo/landing/internal/web/navigation"
	"github.com/pzillo/landing/internal/web/session"
)

const (
	// Path is the base path of the service pages.
	Path = handler.AdminPath + "/services"

	// TemplateName is the name of the service form template.
	TemplateName = "admin/service_form"
)

// Service is the admin service handler service.
type Service struct {
	cfg       *config.Config
	store     *content.Store
	validator *handler.XValidator
}

var _ handler.Service = (*Service)(nil)

// Handler is the admin service handler.
var Handler = Service{}

// Init initializes the admin service handler.
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

// New renders an empty draft with the defaults of a new service.
func (s *Service) New(c *fiber.Ctx) error {
	draft := &models.Service{Status: models.ServiceStatusActive}

	return s.render(c, fiber.StatusOK, draft, nil, "")
}

// Edit renders the draft of an existing service.
func (s *Service) Edit(c *fiber.Ctx) error {
	svc, err := s.store.Service(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.fail(c, "Service could not be opened", err)
	}

	return s.render(c, fiber.StatusOK, svc, nil, "")
}

// Save inserts the draft when it carries no id, otherwise updates the service.
func (s *Service) Save(c *fiber.Ctx) error {
	draft := new(models.Service)

	if err := c.BodyParser(draft); err != nil {
		log.Error().Err(err).Msg("failed to parse service form")
		return s.render(c, fiber.StatusBadRequest, draft, nil, "Invalid form data")
	}

	normalize(draft)

	if errs := s.validator.Validate(draft); len(errs) > 0 {
		return s.render(c, fiber.StatusBadRequest, draft, handler.Messages(errs), "")
	}

	snap, err := s.store.SaveService(c.UserContext(), draft)
	if err != nil {
		if errors.Is(err, controller.ErrNotFound) {
			return s.fail(c, "Service no longer exists", err)
		}

		return s.render(c, fiber.StatusInternalServerError, draft, nil, "Service could not be saved, please try again")
	}

	log.Debug().Int("services", len(snap.Services)).Msg("services reloaded")
	session.AddNotice(c, session.NoticeSuccess, "Service \""+draft.Title+"\" saved")

	return c.Redirect(handler.AdminPath)
}

// Delete removes a service.
func (s *Service) Delete(c *fiber.Ctx) error {
	if _, err := s.store.DeleteService(c.UserContext(), c.Params("id")); err != nil {
		return s.fail(c, "Service could not be deleted", err)
	}

	session.AddNotice(c, session.NoticeSuccess, "Service deleted")

	return c.Redirect(handler.AdminPath)
}

// fail queues an error notice and goes back to the dashboard.
func (s *Service) fail(c *fiber.Ctx, msg string, err error) error {
	log.Error().Err(err).Str("id", c.Params("id")).Msg(strings.ToLower(msg))
	session.AddNotice(c, session.NoticeError, msg)

	return c.Redirect(handler.AdminPath)
}

func (s *Service) render(c *fiber.Ctx, status int, draft *models.Service, errs map[string]string, errMsg string) error {
	title, page := "New Service", "new"
	if draft.ID != "" {
		title, page = "Edit Service", "edit"
	}

	nav := navigation.Admin(title, navigation.SectionServices, page, c.Path())

	data := handler.AdminView(c, nav, fiber.Map{
		"Service":  draft,
		"Errors":   errs,
		"Statuses": []models.ServiceStatus{models.ServiceStatusActive, models.ServiceStatusPaused},
	})

	if errMsg != "" {
		data["error"] = errMsg
	}

	return c.Status(status).Render(TemplateName, data, handler.AdminLayout)
}

func normalize(svc *models.Service) {
	svc.ID = strings.TrimSpace(svc.ID)
	svc.Title = strings.TrimSpace(svc.Title)
	svc.Category = strings.TrimSpace(svc.Category)
	svc.URL = strings.TrimSpace(svc.URL)
	svc.ImageURL = strings.TrimSpace(svc.ImageURL)

	if svc.Status == "" {
		svc.Status = models.ServiceStatusActive
	}
}
