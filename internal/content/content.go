// Package content aggregates services, posts and settings. Every mutation is
// followed by a full reload so callers always render the remote state.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/db/controller/appsettings"
	"github.com/pzillo/landing/internal/db/controller/post"
	"github.com/pzillo/landing/internal/db/controller/service"
	"github.com/pzillo/landing/internal/db/models"
	"github.com/pzillo/landing/internal/metrics"
)

const (
	collectionServices = "services"
	collectionPosts    = "posts"
	collectionSettings = "app_settings"

	opSave   = "save"
	opDelete = "delete"
)

// ErrDBNil is returned by New without a database.
var ErrDBNil = errors.New("database connection is nil")

// Snapshot is the state of all three collections after a load.
type Snapshot struct {
	Services []models.Service
	Posts    []models.Post
	// Settings holds the stored settings merged over the configured defaults.
	Settings models.AppSettings
	// HasSettings is false while no settings row was saved yet.
	HasSettings bool
}

// ActiveServices returns the published services, optionally limited to one category.
func (s *Snapshot) ActiveServices(category string) []models.Service {
	out := make([]models.Service, 0, len(s.Services))

	for i := range s.Services {
		if !s.Services[i].Active() {
			continue
		}

		if category != "" && s.Services[i].Category != category {
			continue
		}

		out = append(out, s.Services[i])
	}

	return out
}

// Categories returns the distinct categories of the published services in display order.
func (s *Snapshot) Categories() []string {
	seen := make(map[string]struct{})

	var out []string

	for i := range s.Services {
		c := s.Services[i].Category
		if !s.Services[i].Active() || c == "" {
			continue
		}

		if _, ok := seen[c]; ok {
			continue
		}

		seen[c] = struct{}{}
		out = append(out, c)
	}

	return out
}

// Store reads and writes the content collections.
type Store struct {
	db       *gorm.DB
	defaults config.Defaults
}

// New creates a store. defaults fill settings fields that were never saved
// and the author of new posts.
func New(db *gorm.DB, defaults config.Defaults) (*Store, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	return &Store{db: db, defaults: defaults}, nil
}

// Load reads all collections. A failing collection does not stop the others,
// its error is logged and joined into the returned error.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	var (
		snap = &Snapshot{Settings: s.defaultSettings()}
		errs []error
		tx   = s.db.WithContext(ctx)
	)

	services, err := service.List(tx)
	if err != nil {
		log.Error().Err(err).Str("collection", collectionServices).Msg("failed to load")
		errs = append(errs, fmt.Errorf("load %s: %w", collectionServices, err))
	}

	snap.Services = services

	posts, err := post.List(tx)
	if err != nil {
		log.Error().Err(err).Str("collection", collectionPosts).Msg("failed to load")
		errs = append(errs, fmt.Errorf("load %s: %w", collectionPosts, err))
	}

	snap.Posts = posts

	stored, err := appsettings.Get(tx)

	switch {
	case errors.Is(err, appsettings.ErrNotFound):
		// nothing saved yet, keep the defaults
	case err != nil:
		log.Error().Err(err).Str("collection", collectionSettings).Msg("failed to load")
		errs = append(errs, fmt.Errorf("load %s: %w", collectionSettings, err))
	default:
		snap.Settings = s.mergeSettings(*stored)
		snap.HasSettings = true
	}

	return snap, errors.Join(errs...)
}

// Settings returns the effective settings.
func (s *Store) Settings(ctx context.Context) (models.AppSettings, error) {
	stored, err := appsettings.Get(s.db.WithContext(ctx))

	switch {
	case errors.Is(err, appsettings.ErrNotFound):
		return s.defaultSettings(), nil
	case err != nil:
		return s.defaultSettings(), err
	}

	return s.mergeSettings(*stored), nil
}

// Service returns one service.
func (s *Store) Service(ctx context.Context, id string) (*models.Service, error) {
	return service.Get(s.db.WithContext(ctx), id) //nolint:wrapcheck
}

// Post returns one post.
func (s *Store) Post(ctx context.Context, id string) (*models.Post, error) {
	return post.Get(s.db.WithContext(ctx), id) //nolint:wrapcheck
}

// SaveService inserts or updates svc and reloads everything.
func (s *Store) SaveService(ctx context.Context, svc *models.Service) (*Snapshot, error) {
	_, err := service.Save(s.db.WithContext(ctx), svc)

	return s.afterMutation(ctx, collectionServices, opSave, err)
}

// DeleteService removes a service and reloads everything.
func (s *Store) DeleteService(ctx context.Context, id string) (*Snapshot, error) {
	err := service.Delete(s.db.WithContext(ctx), id)

	return s.afterMutation(ctx, collectionServices, opDelete, err)
}

// SavePost inserts or updates p and reloads everything. New posts without an
// author get the configured one.
func (s *Store) SavePost(ctx context.Context, p *models.Post) (*Snapshot, error) {
	if p != nil && p.ID == "" {
		if p.Author == "" {
			p.Author = s.defaults.PostAuthor
		}

		if p.AvatarURL == "" {
			p.AvatarURL = s.defaults.PostAvatarURL
		}
	}

	_, err := post.Save(s.db.WithContext(ctx), p)

	return s.afterMutation(ctx, collectionPosts, opSave, err)
}

// DeletePost removes a post and reloads everything.
func (s *Store) DeletePost(ctx context.Context, id string) (*Snapshot, error) {
	err := post.Delete(s.db.WithContext(ctx), id)

	return s.afterMutation(ctx, collectionPosts, opDelete, err)
}

// SaveSettings updates the settings row, or creates it, and reloads everything.
func (s *Store) SaveSettings(ctx context.Context, settings *models.AppSettings) (*Snapshot, error) {
	_, err := appsettings.Save(s.db.WithContext(ctx), settings)

	return s.afterMutation(ctx, collectionSettings, opSave, err)
}

// afterMutation records the outcome and reloads on success. A failed mutation
// returns no snapshot, the caller keeps what it rendered before.
func (s *Store) afterMutation(ctx context.Context, collection, op string, err error) (*Snapshot, error) {
	metrics.ContentMutations.WithLabelValues(collection, op, metrics.Result(err)).Inc()

	if err != nil {
		log.Error().Err(err).Str("collection", collection).Str("operation", op).Msg("mutation failed")
		return nil, fmt.Errorf("%s %s: %w", op, collection, err)
	}

	log.Info().Str("collection", collection).Str("operation", op).Msg("mutation done, reloading")

	return s.Load(ctx)
}

func (s *Store) defaultSettings() models.AppSettings {
	return models.AppSettings{
		HeroImageURL:        s.defaults.HeroImageURL,
		Title:               s.defaults.Title,
		Subtitle:            s.defaults.Subtitle,
		Badge:               s.defaults.Badge,
		PrimaryButtonText:   s.defaults.PrimaryButtonText,
		SecondaryButtonText: s.defaults.SecondaryButtonText,
		PrimaryButtonColor:  s.defaults.PrimaryButtonColor,
	}
}

// mergeSettings fills empty stored fields from the defaults.
func (s *Store) mergeSettings(stored models.AppSettings) models.AppSettings {
	d := s.defaultSettings()

	fill := func(dst *string, fallback string) {
		if *dst == "" {
			*dst = fallback
		}
	}

	fill(&stored.HeroImageURL, d.HeroImageURL)
	fill(&stored.Title, d.Title)
	fill(&stored.Subtitle, d.Subtitle)
	fill(&stored.Badge, d.Badge)
	fill(&stored.PrimaryButtonText, d.PrimaryButtonText)
	fill(&stored.SecondaryButtonText, d.SecondaryButtonText)
	fill(&stored.PrimaryButtonColor, d.PrimaryButtonColor)

	return stored
}
