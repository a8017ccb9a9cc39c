package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/content"
)

// Service is the interface of the page handlers that only read content.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, store *content.Store)
}
