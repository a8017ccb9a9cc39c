package models

// ServiceStatus is the publication state of a service card.
type ServiceStatus string

const (
	// ServiceStatusActive services are shown on the landing page.
	ServiceStatusActive ServiceStatus = "active"
	// ServiceStatusPaused services are only visible in the admin panel.
	ServiceStatusPaused ServiceStatus = "paused"
)

// Service is an offering shown as a card on the landing page.
type Service struct {
	Base
	Title       string        `gorm:"size:255;not null" json:"title" form:"title" validate:"required,max=255"`
	Category    string        `gorm:"size:100" json:"category" form:"category" validate:"max=100"`
	Price       string        `gorm:"size:100" json:"price" form:"price" validate:"max=100"`
	Description string        `gorm:"type:text" json:"description" form:"description"`
	URL         string        `gorm:"size:1024" json:"url" form:"url" validate:"omitempty,url"`
	ImageURL    string        `gorm:"size:1024" json:"image_url" form:"image_url" validate:"omitempty,url"`
	Status      ServiceStatus `gorm:"size:20;not null;default:'active'" json:"status" form:"status" validate:"oneof=active paused"`
}

// Active reports whether the service is published.
func (s *Service) Active() bool {
	return s.Status == ServiceStatusActive
}
