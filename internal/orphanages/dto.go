package orphanages

import (
	"time"

	"github.com/google/uuid"

	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
	"github.com/kindbridge/kindbridge-backend/pkg/normalize"
)

// OrphanageDTO is the public projection of an orphanage row.
type OrphanageDTO struct {
	ID                 uuid.UUID `json:"id"`
	UserID             string    `json:"user_id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Country            string    `json:"country"`
	PostalCode         string    `json:"postal_code"`
	Description        string    `json:"description"`
	Capacity           int       `json:"capacity"`
	Website            *string   `json:"website"`
	RegistrationNumber string    `json:"registration_number"`
	IsApproved         bool      `json:"is_approved"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// RegisterOrphanageDTO is the registration request payload.
type RegisterOrphanageDTO struct {
	Name               string `json:"name" validate:"required,min=2"`
	Email              string `json:"email" validate:"required,email"`
	Phone              string `json:"phone" validate:"required"`
	Address            string `json:"address" validate:"required,min=5"`
	City               string `json:"city" validate:"required,min=2"`
	State              string `json:"state" validate:"required,min=2"`
	Country            string `json:"country" validate:"required,min=2"`
	PostalCode         string `json:"postal_code" validate:"required,min=3"`
	Description        string `json:"description" validate:"required,min=20"`
	Capacity           int    `json:"capacity" validate:"required,min=1"`
	Website            string `json:"website" validate:"omitempty,url"`
	RegistrationNumber string `json:"registration_number" validate:"required,min=5"`
}

// Normalize trims text fields and reduces the phone to digits.
func (d *RegisterOrphanageDTO) Normalize() {
	d.Name = normalize.TrimmedString(d.Name)
	d.Email = normalize.TrimmedString(d.Email)
	d.Phone = normalize.DigitsOnly(d.Phone)
	d.Address = normalize.TrimmedString(d.Address)
	d.City = normalize.TrimmedString(d.City)
	d.State = normalize.TrimmedString(d.State)
	d.Country = normalize.TrimmedString(d.Country)
	d.PostalCode = normalize.TrimmedString(d.PostalCode)
	d.Description = normalize.TrimmedString(d.Description)
	d.Website = normalize.TrimmedString(d.Website)
	d.RegistrationNumber = normalize.TrimmedString(d.RegistrationNumber)
}

// ToModel converts the registration payload into a persistable row.
func (d RegisterOrphanageDTO) ToModel(userID string) *models.Orphanage {
	var website *string
	if d.Website != "" {
		w := d.Website
		website = &w
	}
	return &models.Orphanage{
		UserID:             userID,
		Name:               d.Name,
		Email:              d.Email,
		Phone:              d.Phone,
		Address:            d.Address,
		City:               d.City,
		State:              d.State,
		Country:            d.Country,
		PostalCode:         d.PostalCode,
		Description:        d.Description,
		Capacity:           d.Capacity,
		Website:            website,
		RegistrationNumber: d.RegistrationNumber,
	}
}

// UpdateOrphanageDTO carries a partial settings update. Server-owned fields
// are not representable here.
type UpdateOrphanageDTO struct {
	Name               *string `json:"name" validate:"omitempty,min=2"`
	Email              *string `json:"email" validate:"omitempty,email"`
	Phone              *string `json:"phone"`
	Address            *string `json:"address" validate:"omitempty,min=5"`
	City               *string `json:"city" validate:"omitempty,min=2"`
	State              *string `json:"state" validate:"omitempty,min=2"`
	Country            *string `json:"country" validate:"omitempty,min=2"`
	PostalCode         *string `json:"postal_code" validate:"omitempty,min=3"`
	Description        *string `json:"description" validate:"omitempty,min=20"`
	Capacity           *int    `json:"capacity" validate:"omitempty,min=1"`
	Website            *string `json:"website" validate:"omitempty,url"`
	RegistrationNumber *string `json:"registration_number" validate:"omitempty,min=5"`
}

// Fields builds the normalized column assignments for the patch.
func (d UpdateOrphanageDTO) Fields() map[string]any {
	fields := map[string]any{}
	setTrimmed := func(column string, value *string) {
		if value != nil {
			fields[column] = normalize.TrimmedString(*value)
		}
	}
	setTrimmed("name", d.Name)
	setTrimmed("email", d.Email)
	setTrimmed("address", d.Address)
	setTrimmed("city", d.City)
	setTrimmed("state", d.State)
	setTrimmed("country", d.Country)
	setTrimmed("postal_code", d.PostalCode)
	setTrimmed("description", d.Description)
	setTrimmed("registration_number", d.RegistrationNumber)
	if d.Phone != nil {
		fields["phone"] = normalize.DigitsOnly(*d.Phone)
	}
	if d.Capacity != nil {
		fields["capacity"] = *d.Capacity
	}
	if d.Website != nil {
		site := normalize.TrimmedString(*d.Website)
		if site == "" {
			fields["website"] = nil
		} else {
			fields["website"] = site
		}
	}
	return fields
}

// ToDTO converts an orphanage model into the public projection.
func ToDTO(o *models.Orphanage) OrphanageDTO {
	return OrphanageDTO{
		ID:                 o.ID,
		UserID:             o.UserID,
		Name:               o.Name,
		Email:              o.Email,
		Phone:              o.Phone,
		Address:            o.Address,
		City:               o.City,
		State:              o.State,
		Country:            o.Country,
		PostalCode:         o.PostalCode,
		Description:        o.Description,
		Capacity:           o.Capacity,
		Website:            o.Website,
		RegistrationNumber: o.RegistrationNumber,
		IsApproved:         o.IsApproved,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
