package users

import (
	"time"

	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
	"github.com/kindbridge/kindbridge-backend/pkg/identity"
	"github.com/kindbridge/kindbridge-backend/pkg/normalize"
)

// UserDTO is the public projection of a mirrored user row.
type UserDTO struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	ProfileImageURL string    `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SyncUserDTO carries identity provider claims into the local mirror.
type SyncUserDTO struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

// FromIdentity builds the mirror payload from verified claims.
func FromIdentity(id *identity.Identity) SyncUserDTO {
	return SyncUserDTO{
		ID:              id.ID,
		Email:           normalize.TrimmedString(id.Email),
		FirstName:       normalize.TrimmedString(id.FirstName),
		LastName:        normalize.TrimmedString(id.LastName),
		ProfileImageURL: normalize.TrimmedString(id.ProfileImageURL),
	}
}

// ToModel converts the sync payload to a persistable row.
func (d SyncUserDTO) ToModel() *models.User {
	return &models.User{
		ID:              d.ID,
		Email:           d.Email,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		ProfileImageURL: d.ProfileImageURL,
	}
}

// ToDTO converts a user model into the public projection.
func ToDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		ProfileImageURL: user.ProfileImageURL,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}
