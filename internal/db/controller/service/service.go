// Package service provides CRUD operations for the services shown on the landing page.
package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pzillo/landing/internal/db/models"
)

const idQueryPattern = "id = ?"

var (
	// ErrNotFound is returned when no service matches the id.
	ErrNotFound = errors.New("service not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrNil is returned when saving a nil service.
	ErrNil = errors.New("service is nil")
)

// List returns all services, newest first.
func List(db *gorm.DB) ([]models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var services []models.Service

	result := db.Order("created_at DESC").Order("id DESC").Find(&services)
	if result.Error != nil {
		return nil, result.Error
	}

	return services, nil
}

// Get retrieves a service by its id.
func Get(db *gorm.DB, id string) (*models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if id == "" {
		return nil, ErrNotFound
	}

	var svc models.Service

	result := db.Where(idQueryPattern, id).First(&svc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, result.Error
	}

	return &svc, nil
}

// Save inserts the service when it has no id yet, otherwise it replaces all
// editable fields of the existing row. Updating an unknown id never creates a row.
func Save(db *gorm.DB, svc *models.Service) (*models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if svc == nil {
		return nil, ErrNil
	}

	if svc.Status == "" {
		svc.Status = models.ServiceStatusActive
	}

	if svc.ID == "" {
		if result := db.Create(svc); result.Error != nil {
			return nil, result.Error
		}

		return svc, nil
	}

	result := db.Model(&models.Service{}).
		Where(idQueryPattern, svc.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(svc)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return Get(db, svc.ID)
}

// Delete removes a service by id.
func Delete(db *gorm.DB, id string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where(idQueryPattern, id).Delete(&models.Service{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
