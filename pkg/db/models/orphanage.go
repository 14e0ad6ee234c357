package models

import (
	"time"

	"github.com/google/uuid"
)

// Orphanage is the organization record registered by an orphanage admin.
// The unique index on user_id enforces the one-orphanage-per-user invariant
// at the data layer instead of relying on read-then-write checks.
type Orphanage struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             string    `gorm:"column:user_id;type:text;not null;uniqueIndex:idx_orphanages_user_id" json:"user_id"`
	Name               string    `gorm:"not null" json:"name"`
	Email              string    `gorm:"not null" json:"email"`
	Phone              string    `gorm:"not null" json:"phone"`
	Address            string    `gorm:"not null" json:"address"`
	City               string    `gorm:"not null" json:"city"`
	State              string    `gorm:"not null" json:"state"`
	Country            string    `gorm:"not null" json:"country"`
	PostalCode         string    `gorm:"column:postal_code;not null" json:"postal_code"`
	Description        string    `gorm:"not null" json:"description"`
	Capacity           int       `gorm:"not null" json:"capacity"`
	Website            *string   `json:"website,omitempty"`
	RegistrationNumber string    `gorm:"column:registration_number;not null" json:"registration_number"`
	IsApproved         bool      `gorm:"column:is_approved;not null;default:false" json:"is_approved"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
