package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/kindbridge/kindbridge-backend/pkg/enums"
)

// Activity is a volunteer engagement scheduled by an orphanage admin.
// CreatedBy holds the scheduling user's identity and gates cancel/complete.
type Activity struct {
	ID          int64                `gorm:"primaryKey;autoIncrement" json:"id"`
	VolunteerID uuid.UUID            `gorm:"column:volunteer_id;type:uuid;not null;index" json:"volunteer_id"`
	Name        string               `gorm:"not null" json:"name"`
	Date        time.Time            `gorm:"type:date;not null" json:"date"`
	TimeSlot    string               `gorm:"column:time_slot;not null" json:"time_slot"`
	Notes       *string              `json:"notes,omitempty"`
	Status      enums.ActivityStatus `gorm:"type:text;not null;default:'scheduled'" json:"status"`
	CreatedBy   string               `gorm:"column:created_by;type:text;not null;index" json:"created_by"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
