package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// VolunteerProfile is the volunteer-facing profile owned by a mirrored user.
// The unique index on user_id guarantees a single profile per user even under
// concurrent saves.
type VolunteerProfile struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                string         `gorm:"column:user_id;type:text;not null;uniqueIndex:idx_volunteer_profiles_user_id" json:"user_id"`
	FirstName             string         `gorm:"column:first_name;not null" json:"first_name"`
	LastName              string         `gorm:"column:last_name;not null" json:"last_name"`
	PhoneNumber           string         `gorm:"column:phone_number;not null" json:"phone_number"`
	Address               string         `gorm:"not null" json:"address"`
	City                  string         `gorm:"not null" json:"city"`
	ZipCode               string         `gorm:"column:zip_code;not null" json:"zip_code"`
	DateOfBirth           time.Time      `gorm:"column:date_of_birth;not null" json:"date_of_birth"`
	EmergencyContactPhone string         `gorm:"column:emergency_contact_phone;not null" json:"emergency_contact_phone"`
	Skills                pq.StringArray `gorm:"type:text[]" json:"skills"`
	Availability          pq.StringArray `gorm:"type:text[]" json:"availability"`
	About                 string         `json:"about"`
	ProfileComplete       bool           `gorm:"column:profile_complete;not null;default:false" json:"profile_complete"`
	CreatedAt             time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
