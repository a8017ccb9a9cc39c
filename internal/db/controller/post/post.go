// Package post provides CRUD operations for the before/after feed posts.
package post

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pzillo/landing/internal/db/models"
)

const idQueryPattern = "id = ?"

var (
	// ErrNotFound is returned when no post matches the id.
	ErrNotFound = errors.New("post not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrNil is returned when saving a nil post.
	ErrNil = errors.New("post is nil")
)

// List returns all posts, newest first.
func List(db *gorm.DB) ([]models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var posts []models.Post

	result := db.Order("created_at DESC").Order("id DESC").Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}

	return posts, nil
}

// Get retrieves a post by its id.
func Get(db *gorm.DB, id string) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if id == "" {
		return nil, ErrNotFound
	}

	var p models.Post

	result := db.Where(idQueryPattern, id).First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, result.Error
	}

	return &p, nil
}

// Save inserts the post when it has no id yet, otherwise it replaces all
// editable fields of the existing row. Updating an unknown id never creates a row.
func Save(db *gorm.DB, p *models.Post) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if p == nil {
		return nil, ErrNil
	}

	if p.ID == "" {
		if result := db.Create(p); result.Error != nil {
			return nil, result.Error
		}

		return p, nil
	}

	result := db.Model(&models.Post{}).
		Where(idQueryPattern, p.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(p)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return Get(db, p.ID)
}

// Delete removes a post by id.
func Delete(db *gorm.DB, id string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where(idQueryPattern, id).Delete(&models.Post{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
