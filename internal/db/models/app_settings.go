package models

// AppSettings is the singleton row holding the landing page appearance.
type AppSettings struct {
	Base
	HeroImageURL        string `gorm:"size:1024" json:"hero_image_url" form:"hero_image_url" validate:"omitempty,url"`
	HeroVideoURL        string `gorm:"size:1024" json:"hero_video_url" form:"hero_video_url" validate:"omitempty,url"`
	LoginLogoURL        string `gorm:"size:1024" json:"login_logo_url" form:"login_logo_url" validate:"omitempty,url"`
	Title               string `gorm:"size:255" json:"title" form:"title" validate:"required,max=255"`
	Subtitle            string `gorm:"type:text" json:"subtitle" form:"subtitle"`
	Badge               string `gorm:"size:255" json:"badge" form:"badge" validate:"max=255"`
	PrimaryButtonText   string `gorm:"size:255" json:"primary_button_text" form:"primary_button_text" validate:"max=255"`
	SecondaryButtonText string `gorm:"size:255" json:"secondary_button_text" form:"secondary_button_text" validate:"max=255"`
	PrimaryButtonColor  string `gorm:"size:100" json:"primary_button_color" form:"primary_button_color" validate:"max=100"`
}

// TableName keeps the table name stable across naming strategies.
func (AppSettings) TableName() string {
	return "app_settings"
}
