package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the columns shared by all content records.
// The ID is generated on insert when the caller left it empty.
type Base struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id" form:"id"`
	CreatedAt time.Time `json:"created_at" form:"-"`
	UpdatedAt time.Time `json:"updated_at" form:"-"`
}

// BeforeCreate assigns a random uuid to new records.
func (b *Base) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	return nil
}
