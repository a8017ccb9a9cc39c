package daemon

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pzillo/landing/internal/auth"
	"github.com/pzillo/landing/internal/config"
)

// seed creates the configured admin account on an empty users table.
func seed(cfg *config.Config, provider *auth.LocalProvider) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		log.Debug().Msg("no admin account configured, skipping seed")
		return nil
	}

	created, err := provider.EnsureUser(cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	if !created {
		log.Debug().Msg("users exist, skipping seed")
	}

	return nil
}
