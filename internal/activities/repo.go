package activities

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
	"github.com/kindbridge/kindbridge-backend/pkg/enums"
)

// Repository encapsulates activity persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an activities repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new activity row.
func (r *Repository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// FindByIDAndCreator loads an activity only when the given user scheduled it.
func (r *Repository) FindByIDAndCreator(ctx context.Context, id int64, createdBy string) (*models.Activity, error) {
	var activity models.Activity
	err := r.db.WithContext(ctx).
		Where("id = ? AND created_by = ?", id, createdBy).
		First(&activity).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// UpdateStatusFromScheduled moves a scheduled activity into a terminal state
// and reports whether a row was touched. The status guard in the WHERE clause
// keeps two racing transitions from both succeeding.
func (r *Repository) UpdateStatusFromScheduled(ctx context.Context, id int64, createdBy string, status enums.ActivityStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Activity{}).
		Where("id = ? AND created_by = ? AND status = ?", id, createdBy, enums.ActivityStatusScheduled).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// ListByVolunteer returns a volunteer's activities, soonest date first.
func (r *Repository) ListByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]models.Activity, error) {
	var rows []models.Activity
	err := r.db.WithContext(ctx).
		Where("volunteer_id = ?", volunteerID).
		Order("date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
