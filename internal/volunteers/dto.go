package volunteers

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/kindbridge/kindbridge-backend/internal/users"
	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
	"github.com/kindbridge/kindbridge-backend/pkg/normalize"
)

// VolunteerProfileDTO is the public projection of a volunteer profile.
type VolunteerProfileDTO struct {
	ID                    uuid.UUID `json:"id"`
	UserID                string    `json:"user_id"`
	FirstName             string    `json:"first_name"`
	LastName              string    `json:"last_name"`
	PhoneNumber           string    `json:"phone_number"`
	Address               string    `json:"address"`
	City                  string    `json:"city"`
	ZipCode               string    `json:"zip_code"`
	DateOfBirth           time.Time `json:"date_of_birth"`
	EmergencyContactPhone string    `json:"emergency_contact_phone"`
	Skills                []string  `json:"skills"`
	Availability          []string  `json:"availability"`
	About                 string    `json:"about"`
	ProfileComplete       bool      `json:"profile_complete"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ProfileWithUserDTO pairs the mirrored user with their profile, which may
// not exist yet.
type ProfileWithUserDTO struct {
	Profile *VolunteerProfileDTO `json:"profile"`
	User    users.UserDTO        `json:"user"`
}

// VolunteerListItemDTO is one row of the orphanage-facing volunteer listing.
type VolunteerListItemDTO struct {
	Profile VolunteerProfileDTO `json:"profile"`
	User    users.UserDTO       `json:"user"`
}

// SaveProfileDTO is the create-or-update payload for the caller's profile.
type SaveProfileDTO struct {
	FirstName             string `json:"first_name" validate:"required,min=1"`
	LastName              string `json:"last_name"`
	PhoneNumber           string `json:"phone_number" validate:"required"`
	Address               string `json:"address"`
	City                  string `json:"city"`
	ZipCode               string `json:"zip_code" validate:"required"`
	DateOfBirth           string `json:"date_of_birth" validate:"required"`
	EmergencyContactPhone string `json:"emergency_contact_phone" validate:"required"`
	Skills                any    `json:"skills"`
	Availability          any    `json:"availability"`
	About                 string `json:"about" validate:"required"`
}

// Normalize trims free text, reduces phones to digits, and truncates the
// zip to five digits.
func (d *SaveProfileDTO) Normalize() {
	d.FirstName = normalize.TrimmedString(d.FirstName)
	d.LastName = normalize.TrimmedString(d.LastName)
	d.PhoneNumber = normalize.DigitsOnly(d.PhoneNumber)
	d.Address = normalize.TrimmedString(d.Address)
	d.City = normalize.TrimmedString(d.City)
	d.ZipCode = normalize.Zip5(d.ZipCode)
	d.DateOfBirth = normalize.TrimmedString(d.DateOfBirth)
	d.EmergencyContactPhone = normalize.DigitsOnly(d.EmergencyContactPhone)
	d.About = normalize.TrimmedString(d.About)
}

// SkillList returns the skills when they arrived as a list; anything else
// coerces to empty and fails the minimum-skills validation.
func (d SaveProfileDTO) SkillList() []string {
	return normalize.StringListStrict(d.Skills)
}

// AvailabilityList returns the availability slots when they arrived as a
// list, coercing anything else to empty.
func (d SaveProfileDTO) AvailabilityList() []string {
	return normalize.StringListStrict(d.Availability)
}

// ToDTO converts a profile model into the public projection.
func ToDTO(p *models.VolunteerProfile) VolunteerProfileDTO {
	return VolunteerProfileDTO{
		ID:                    p.ID,
		UserID:                p.UserID,
		FirstName:             p.FirstName,
		LastName:              p.LastName,
		PhoneNumber:           p.PhoneNumber,
		Address:               p.Address,
		City:                  p.City,
		ZipCode:               p.ZipCode,
		DateOfBirth:           p.DateOfBirth,
		EmergencyContactPhone: p.EmergencyContactPhone,
		Skills:                p.Skills,
		Availability:          p.Availability,
		About:                 p.About,
		ProfileComplete:       p.ProfileComplete,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func listsToArrays(skills, availability []string) (pq.StringArray, pq.StringArray) {
	return pq.StringArray(skills), pq.StringArray(availability)
}
