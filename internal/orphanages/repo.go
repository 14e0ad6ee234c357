package orphanages

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
)

// Repository encapsulates orphanage persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orphanages repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new orphanage row. The unique index on user_id backs the
// one-registration-per-user rule.
func (r *Repository) Create(ctx context.Context, orphanage *models.Orphanage) error {
	if orphanage.ID == uuid.Nil {
		orphanage.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(orphanage).Error
}

// FindByUserID loads the orphanage owned by the given user.
func (r *Repository) FindByUserID(ctx context.Context, userID string) (*models.Orphanage, error) {
	var orphanage models.Orphanage
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&orphanage).Error; err != nil {
		return nil, err
	}
	return &orphanage, nil
}

// FindByID loads an orphanage by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Orphanage, error) {
	var orphanage models.Orphanage
	if err := r.db.WithContext(ctx).First(&orphanage, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &orphanage, nil
}

// UpdateFields applies a partial column update and refreshes updated_at.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Orphanage{}).
		Where("id = ?", id).
		Updates(fields).Error
}
