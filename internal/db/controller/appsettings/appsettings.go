// Package appsettings stores the single row of landing page settings.
package appsettings

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pzillo/landing/internal/db/models"
)

var (
	// ErrNotFound is returned when no settings row exists yet.
	ErrNotFound = errors.New("settings not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrNil is returned when saving nil settings.
	ErrNil = errors.New("settings are nil")
)

// Get returns the settings row. Should more than one row exist, the oldest wins.
func Get(db *gorm.DB) (*models.AppSettings, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var s models.AppSettings

	result := db.Order("created_at ASC").Order("id ASC").Limit(1).Find(&s)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return &s, nil
}

// Save updates the existing settings row or inserts the first one.
// The id of the passed settings is ignored, there is never a second row.
func Save(db *gorm.DB, s *models.AppSettings) (*models.AppSettings, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if s == nil {
		return nil, ErrNil
	}

	current, err := Get(db)

	switch {
	case errors.Is(err, ErrNotFound):
		s.ID = ""
		if result := db.Create(s); result.Error != nil {
			return nil, result.Error
		}

		return s, nil
	case err != nil:
		return nil, err
	}

	s.ID = current.ID

	result := db.Model(&models.AppSettings{}).
		Where("id = ?", current.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(s)
	if result.Error != nil {
		return nil, result.Error
	}

	return Get(db)
}
