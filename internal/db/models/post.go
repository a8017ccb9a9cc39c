package models

// Post is a before/after entry of the professional feed.
type Post struct {
	Base
	Title          string `gorm:"size:255;not null" json:"title" form:"title" validate:"required,max=255"`
	Description    string `gorm:"type:text" json:"description" form:"description"`
	Category       string `gorm:"size:100" json:"category" form:"category" validate:"max=100"`
	Results        string `gorm:"type:text" json:"results" form:"results"`
	BeforeImageURL string `gorm:"size:1024" json:"before_image_url" form:"before_image_url" validate:"omitempty,url"`
	AfterImageURL  string `gorm:"size:1024" json:"after_image_url" form:"after_image_url" validate:"omitempty,url"`
	Author         string `gorm:"size:255" json:"author" form:"author" validate:"max=255"`
	AvatarURL      string `gorm:"size:1024" json:"avatar_url" form:"avatar_url" validate:"omitempty,url"`
}

// HasImages reports whether the post carries a before or an after image.
func (p *Post) HasImages() bool {
	return p.BeforeImageURL != "" || p.AfterImageURL != ""
}
