package home

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pzillo/landing/internal/db/controller/service"
	"github.com/pzillo/landing/internal/metrics"
	"github.com/pzillo/landing/internal/web/handler"
)

// LinkPath prefixes the outbound service links.
const LinkPath = handler.RootPath + "go/"

const resultNotFound = "not_found"

var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

// Link redirects to the url of a published service.
func (s *Service) Link(c *fiber.Ctx) error {
	id := c.Params("id")

	svc, err := s.store.Service(c.UserContext(), id)

	switch {
	case errors.Is(err, service.ErrNotFound):
		metrics.LinkClicks.WithLabelValues(resultNotFound).Inc()
		return fiber.ErrNotFound
	case err != nil:
		metrics.LinkClicks.WithLabelValues(metrics.ResultError).Inc()
		log.Error().Err(err).Str("id", id).Msg("failed to load service for link")

		return fiber.ErrInternalServerError
	}

	target, err := url.Parse(svc.URL)
	if !svc.Active() || svc.URL == "" || err != nil || !allowedSchemes[target.Scheme] {
		metrics.LinkClicks.WithLabelValues(resultNotFound).Inc()
		return fiber.ErrNotFound
	}

	metrics.LinkClicks.WithLabelValues(metrics.ResultOK).Inc()
	log.Debug().Str("id", id).Str("url", svc.URL).Msg("service link followed")

	return c.Redirect(svc.URL, fiber.StatusFound)
}
