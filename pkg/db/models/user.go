package models

import "time"

// User mirrors the external identity provider's account record. The primary
// key is the provider's subject identifier, so rows are created lazily from
// verified token claims rather than through a local signup flow.
type User struct {
	ID              string    `gorm:"type:text;primaryKey" json:"id"`
	Email           string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	FirstName       string    `gorm:"column:first_name" json:"first_name"`
	LastName        string    `gorm:"column:last_name" json:"last_name"`
	ProfileImageURL string    `gorm:"column:profile_image_url" json:"profile_image_url"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
