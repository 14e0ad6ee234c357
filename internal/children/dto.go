package children

import (
	"time"

	"github.com/google/uuid"

	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
	"github.com/kindbridge/kindbridge-backend/pkg/enums"
	"github.com/kindbridge/kindbridge-backend/pkg/normalize"
)

// ChildDTO is the owner-facing projection of a child row.
type ChildDTO struct {
	ID          uuid.UUID    `json:"id"`
	OrphanageID uuid.UUID    `json:"orphanage_id"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	DateOfBirth time.Time    `json:"date_of_birth"`
	Gender      enums.Gender `json:"gender"`
	PhotoURL    *string      `json:"photo_url"`
	Bio         *string      `json:"bio"`
	Needs       []string     `json:"needs"`
	Interests   []string     `json:"interests"`
	IsAdopted   bool         `json:"is_adopted"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// OrphanageSummary is the subset of orphanage fields shown on public listings.
type OrphanageSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	City  string    `json:"city"`
	State string    `json:"state"`
}

// PublicChildDTO is the adoption-listing projection.
type PublicChildDTO struct {
	ID          uuid.UUID        `json:"id"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	DateOfBirth time.Time        `json:"date_of_birth"`
	Gender      enums.Gender     `json:"gender"`
	PhotoURL    *string          `json:"photo_url"`
	Bio         *string          `json:"bio"`
	Needs       []string         `json:"needs"`
	Interests   []string         `json:"interests"`
	CreatedAt   time.Time        `json:"created_at"`
	Orphanage   OrphanageSummary `json:"orphanage"`
}

// PublicChildrenPageDTO is a cursor-paginated public listing.
type PublicChildrenPageDTO struct {
	Items      []PublicChildDTO `json:"items"`
	NextCursor string           `json:"next_cursor,omitempty"`
	Total      int              `json:"total"`
}

// CreateChildDTO is the multipart create payload (minus the photo part).
type CreateChildDTO struct {
	FirstName   string   `json:"first_name" validate:"required,min=1"`
	LastName    string   `json:"last_name"`
	DateOfBirth string   `json:"date_of_birth" validate:"required"`
	Gender      string   `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	Bio         string   `json:"bio"`
	Needs       []string `json:"needs"`
	Interests   []string `json:"interests"`
}

// Normalize trims free-text fields.
func (d *CreateChildDTO) Normalize() {
	d.FirstName = normalize.TrimmedString(d.FirstName)
	d.LastName = normalize.TrimmedString(d.LastName)
	d.DateOfBirth = normalize.TrimmedString(d.DateOfBirth)
	d.Gender = normalize.TrimmedString(d.Gender)
	d.Bio = normalize.TrimmedString(d.Bio)
}

// UpdateChildDTO is the JSON patch payload. id, orphanage_id, created_at,
// and updated_at are accepted for wire compatibility but never applied;
// clients round-trip full rows from the listing response.
type UpdateChildDTO struct {
	ID          *string `json:"id"`
	OrphanageID *string `json:"orphanage_id"`
	CreatedAt   *string `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
	FirstName   *string `json:"first_name" validate:"omitempty,min=1"`
	LastName    *string `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Bio         *string `json:"bio"`
	PhotoURL    *string `json:"photo_url"`
	Needs       any     `json:"needs"`
	Interests   any     `json:"interests"`
	IsAdopted   *bool   `json:"is_adopted"`
}

// ToDTO converts a child model into the owner-facing projection.
func ToDTO(c *models.Child) ChildDTO {
	return ChildDTO{
		ID:          c.ID,
		OrphanageID: c.OrphanageID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		DateOfBirth: c.DateOfBirth,
		Gender:      c.Gender,
		PhotoURL:    c.PhotoURL,
		Bio:         c.Bio,
		Needs:       c.Needs,
		Interests:   c.Interests,
		IsAdopted:   c.IsAdopted,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
