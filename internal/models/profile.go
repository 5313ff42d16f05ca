package models

import "time"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// SocialLinks is stored as a JSON column on the profile.
type SocialLinks struct {
	Website   string `json:"website,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

// UserProfile is the public face of a user. Its primary key is the auth identity.
type UserProfile struct {
	UserID      uint        `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	DisplayName string      `json:"display_name" gorm:"size:80"`
	AvatarURL   string      `json:"avatar_url"`
	Bio         string      `json:"bio" gorm:"size:300"`
	SocialLinks SocialLinks `json:"social_links" gorm:"type:text;serializer:json"`
	Theme       string      `json:"theme" gorm:"size:10;default:'auto'"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// UpdateProfileRequest holds optional profile changes; nil fields are left untouched.
type UpdateProfileRequest struct {
	DisplayName *string      `json:"display_name,omitempty" validate:"omitempty,min=1,max=80"`
	AvatarURL   *string      `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Bio         *string      `json:"bio,omitempty" validate:"omitempty,max=300"`
	SocialLinks *SocialLinks `json:"social_links,omitempty"`
	Theme       *string      `json:"theme,omitempty" validate:"omitempty,oneof=light dark auto"`
}
