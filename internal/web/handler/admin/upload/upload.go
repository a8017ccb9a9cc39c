// Package upload provides the image upload endpoint of the admin forms.
package upload

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/upload"
	"github.com/pzillo/landing/internal/web/handler"
)

// Path is the upload endpoint.
const Path = handler.AdminPath + "/upload"

// Response is the JSON answer of the upload endpoint. On failure URL holds
// the previous image so the form keeps showing it.
type Response struct {
	URL     string `json:"url"`
	Preview string `json:"preview,omitempty"`
	Key     string `json:"key,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Service is the upload handler service.
type Service struct {
	cfg    *config.Config
	helper *upload.Helper
}

// Handler is the upload handler.
var Handler = Service{}

// Init initializes the upload handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, helper *upload.Helper) {
	if app == nil || cfg == nil || helper == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.helper = helper

	app.Post(Path, s.Post)
}

// Post stores the "file" form field in the "folder" folder.
func (s *Service) Post(c *fiber.Ctx) error {
	previous := c.FormValue("previous")

	fh, err := c.FormFile("file")
	if err != nil {
		log.Debug().Err(err).Msg("upload without file")
		return c.Status(fiber.StatusBadRequest).JSON(Response{URL: previous, Error: upload.ErrNoFile.Error()})
	}

	res, err := s.helper.Upload(c.UserContext(), c.FormValue("folder"), fh)

	switch {
	case err == nil:
		return c.JSON(Response{URL: res.URL, Preview: res.Preview, Key: res.Key})
	case upload.IsValidation(err):
		log.Info().Err(err).Str("filename", fh.Filename).Msg("upload rejected")
		return c.Status(fiber.StatusBadRequest).JSON(Response{URL: previous, Error: err.Error()})
	default:
		log.Error().Err(err).Str("filename", fh.Filename).Msg("upload failed")

		return c.Status(fiber.StatusBadGateway).JSON(Response{URL: previous, Error: "upload failed, please try again"})
	}
}
