package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/kindbridge/kindbridge-backend/pkg/enums"
)

// Child belongs to exactly one orphanage. The owning orphanage id is never
// taken from client input after creation.
type Child struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrphanageID uuid.UUID      `gorm:"column:orphanage_id;type:uuid;not null;index" json:"orphanage_id"`
	FirstName   string         `gorm:"column:first_name;not null" json:"first_name"`
	LastName    string         `gorm:"column:last_name;not null" json:"last_name"`
	DateOfBirth time.Time      `gorm:"column:date_of_birth;not null" json:"date_of_birth"`
	Gender      enums.Gender   `gorm:"type:text;not null" json:"gender"`
	PhotoURL    *string        `gorm:"column:photo_url" json:"photo_url,omitempty"`
	Bio         *string        `json:"bio,omitempty"`
	Needs       pq.StringArray `gorm:"type:text[]" json:"needs"`
	Interests   pq.StringArray `gorm:"type:text[]" json:"interests"`
	IsAdopted   bool           `gorm:"column:is_adopted;not null;default:false" json:"is_adopted"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
