package activities

import (
	"time"

	"github.com/google/uuid"

	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
	"github.com/kindbridge/kindbridge-backend/pkg/enums"
	"github.com/kindbridge/kindbridge-backend/pkg/normalize"
)

// ActivityDTO is the public projection of a scheduled activity.
type ActivityDTO struct {
	ID          int64                `json:"id"`
	VolunteerID uuid.UUID            `json:"volunteer_id"`
	Name        string               `json:"name"`
	Date        time.Time            `json:"date"`
	TimeSlot    string               `json:"time_slot"`
	Notes       *string              `json:"notes,omitempty"`
	Status      enums.ActivityStatus `json:"status"`
	CreatedBy   string               `json:"created_by"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// AssignActivityDTO is the orphanage-side scheduling payload.
type AssignActivityDTO struct {
	VolunteerID string `json:"volunteer_id" validate:"required,uuid"`
	Name        string `json:"name" validate:"required,min=2"`
	Date        string `json:"date" validate:"required"`
	TimeSlot    string `json:"time_slot" validate:"required"`
	Notes       string `json:"notes"`
}

// Normalize trims the free-text fields.
func (d *AssignActivityDTO) Normalize() {
	d.VolunteerID = normalize.TrimmedString(d.VolunteerID)
	d.Name = normalize.TrimmedString(d.Name)
	d.Date = normalize.TrimmedString(d.Date)
	d.TimeSlot = normalize.TrimmedString(d.TimeSlot)
	d.Notes = normalize.TrimmedString(d.Notes)
}

// ToDTO converts an activity model into the public projection.
func ToDTO(a *models.Activity) ActivityDTO {
	return ActivityDTO{
		ID:          a.ID,
		VolunteerID: a.VolunteerID,
		Name:        a.Name,
		Date:        a.Date,
		TimeSlot:    a.TimeSlot,
		Notes:       a.Notes,
		Status:      a.Status,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
