package volunteers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/kindbridge/kindbridge-backend/internal/users"
	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
)

// Repository encapsulates volunteer profile persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a volunteers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert creates a fresh profile. The unique index on user_id backs the
// one-profile-per-user rule.
func (r *Repository) Insert(ctx context.Context, profile *models.VolunteerProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(profile).Error
}

// FindByUserID loads the profile owned by the given user.
func (r *Repository) FindByUserID(ctx context.Context, userID string) (*models.VolunteerProfile, error) {
	var profile models.VolunteerProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByID loads a profile by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.VolunteerProfile, error) {
	var profile models.VolunteerProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateByUserID applies a full-field refresh keyed by user, preserving
// created_at, and reports touched rows.
func (r *Repository) UpdateByUserID(ctx context.Context, userID string, fields map[string]any) (int64, error) {
	fields["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.VolunteerProfile{}).
		Where("user_id = ?", userID).
		Updates(fields)
	return result.RowsAffected, result.Error
}

type volunteerListRecord struct {
	ProfileID             uuid.UUID      `gorm:"column:profile_id"`
	UserID                string         `gorm:"column:user_id"`
	FirstName             string         `gorm:"column:first_name"`
	LastName              string         `gorm:"column:last_name"`
	PhoneNumber           string         `gorm:"column:phone_number"`
	Address               string         `gorm:"column:address"`
	City                  string         `gorm:"column:city"`
	ZipCode               string         `gorm:"column:zip_code"`
	DateOfBirth           time.Time      `gorm:"column:date_of_birth"`
	EmergencyContactPhone string         `gorm:"column:emergency_contact_phone"`
	Skills                pq.StringArray `gorm:"column:skills;type:text[]"`
	Availability          pq.StringArray `gorm:"column:availability;type:text[]"`
	About                 string         `gorm:"column:about"`
	CreatedAt             time.Time      `gorm:"column:profile_created_at"`
	UpdatedAt             time.Time      `gorm:"column:profile_updated_at"`
	UserEmail             string         `gorm:"column:user_email"`
	UserFirstName         string         `gorm:"column:user_first_name"`
	UserLastName          string         `gorm:"column:user_last_name"`
	UserImageURL          string         `gorm:"column:user_image_url"`
}

// ListComplete returns completed profiles joined with the mirrored user.
func (r *Repository) ListComplete(ctx context.Context) ([]VolunteerListItemDTO, error) {
	columns := []string{
		"vp.id AS profile_id",
		"vp.user_id",
		"vp.first_name",
		"vp.last_name",
		"vp.phone_number",
		"vp.address",
		"vp.city",
		"vp.zip_code",
		"vp.date_of_birth",
		"vp.emergency_contact_phone",
		"vp.skills",
		"vp.availability",
		"vp.about",
		"vp.created_at AS profile_created_at",
		"vp.updated_at AS profile_updated_at",
		"u.email AS user_email",
		"u.first_name AS user_first_name",
		"u.last_name AS user_last_name",
		"u.profile_image_url AS user_image_url",
	}

	var records []volunteerListRecord
	err := r.db.WithContext(ctx).
		Table("volunteer_profiles vp").
		Select(columns).
		Joins("JOIN users u ON u.id = vp.user_id").
		Where("vp.profile_complete = ?", true).
		Order("vp.created_at DESC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	items := make([]VolunteerListItemDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.toDTO())
	}
	return items, nil
}

// CountComplete counts volunteers with a finished profile.
func (r *Repository) CountComplete(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.VolunteerProfile{}).
		Where("profile_complete = ?", true).
		Count(&count).Error
	return count, err
}

func (rec volunteerListRecord) toDTO() VolunteerListItemDTO {
	return VolunteerListItemDTO{
		Profile: VolunteerProfileDTO{
			ID:                    rec.ProfileID,
			UserID:                rec.UserID,
			FirstName:             rec.FirstName,
			LastName:              rec.LastName,
			PhoneNumber:           rec.PhoneNumber,
			Address:               rec.Address,
			City:                  rec.City,
			ZipCode:               rec.ZipCode,
			DateOfBirth:           rec.DateOfBirth,
			EmergencyContactPhone: rec.EmergencyContactPhone,
			Skills:                rec.Skills,
			Availability:          rec.Availability,
			About:                 rec.About,
			ProfileComplete:       true,
			CreatedAt:             rec.CreatedAt,
			UpdatedAt:             rec.UpdatedAt,
		},
		User: users.UserDTO{
			ID:              rec.UserID,
			Email:           rec.UserEmail,
			FirstName:       rec.UserFirstName,
			LastName:        rec.UserLastName,
			ProfileImageURL: rec.UserImageURL,
		},
	}
}
