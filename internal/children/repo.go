package children

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
	"github.com/kindbridge/kindbridge-backend/pkg/enums"
	"github.com/kindbridge/kindbridge-backend/pkg/pagination"
)

// Repository encapsulates child persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a children repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a child row.
func (r *Repository) Create(ctx context.Context, child *models.Child) error {
	if child.ID == uuid.Nil {
		child.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(child).Error
}

// FindOwned loads a child restricted by id and owning orphanage.
func (r *Repository) FindOwned(ctx context.Context, childID, orphanageID uuid.UUID) (*models.Child, error) {
	var child models.Child
	err := r.db.WithContext(ctx).
		Where("id = ? AND orphanage_id = ?", childID, orphanageID).
		First(&child).Error
	if err != nil {
		return nil, err
	}
	return &child, nil
}

// ListByOrphanage returns all children of one orphanage, newest first.
func (r *Repository) ListByOrphanage(ctx context.Context, orphanageID uuid.UUID) ([]models.Child, error) {
	var rows []models.Child
	err := r.db.WithContext(ctx).
		Where("orphanage_id = ?", orphanageID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateOwned applies a partial update restricted by id and orphanage,
// returning the number of rows touched. updated_at is always refreshed,
// even when the patch carries no other fields.
func (r *Repository) UpdateOwned(ctx context.Context, childID, orphanageID uuid.UUID, fields map[string]any) (int64, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Child{}).
		Where("id = ? AND orphanage_id = ?", childID, orphanageID).
		Updates(fields)
	return result.RowsAffected, result.Error
}

// DeleteOwned removes a child restricted by id and orphanage.
func (r *Repository) DeleteOwned(ctx context.Context, childID, orphanageID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND orphanage_id = ?", childID, orphanageID).
		Delete(&models.Child{})
	return result.RowsAffected, result.Error
}

// CountByOrphanage returns the total child count for an orphanage.
func (r *Repository) CountByOrphanage(ctx context.Context, orphanageID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Child{}).
		Where("orphanage_id = ?", orphanageID).
		Count(&count).Error
	return count, err
}

// CountAvailableByOrphanage returns how many children are not yet adopted.
func (r *Repository) CountAvailableByOrphanage(ctx context.Context, orphanageID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Child{}).
		Where("orphanage_id = ? AND is_adopted = ?", orphanageID, false).
		Count(&count).Error
	return count, err
}

// CountAdoptedSince counts adopted children whose rows changed at or after
// the given instant.
func (r *Repository) CountAdoptedSince(ctx context.Context, orphanageID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Child{}).
		Where("orphanage_id = ? AND is_adopted = ? AND updated_at >= ?", orphanageID, true, since).
		Count(&count).Error
	return count, err
}

type publicChildRecord struct {
	ID             uuid.UUID      `gorm:"column:id"`
	FirstName      string         `gorm:"column:first_name"`
	LastName       string         `gorm:"column:last_name"`
	DateOfBirth    time.Time      `gorm:"column:date_of_birth"`
	Gender         string         `gorm:"column:gender"`
	PhotoURL       *string        `gorm:"column:photo_url"`
	Bio            *string        `gorm:"column:bio"`
	Needs          pq.StringArray `gorm:"column:needs;type:text[]"`
	Interests      pq.StringArray `gorm:"column:interests;type:text[]"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	OrphanageID    uuid.UUID      `gorm:"column:orphanage_id"`
	OrphanageName  string         `gorm:"column:orphanage_name"`
	OrphanageCity  string         `gorm:"column:orphanage_city"`
	OrphanageState string         `gorm:"column:orphanage_state"`
}

// ListPublic returns non-adopted children joined with their orphanage
// summary, cursor-paginated newest first.
func (r *Repository) ListPublic(ctx context.Context, cursor string, limit int) (PublicChildrenPageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	cursorValue := strings.TrimSpace(cursor)
	decodedCursor, err := pagination.ParseCursor(cursorValue)
	if err != nil {
		return PublicChildrenPageDTO{}, err
	}

	selectColumns := []string{
		"c.id",
		"c.first_name",
		"c.last_name",
		"c.date_of_birth",
		"c.gender",
		"c.photo_url",
		"c.bio",
		"c.needs",
		"c.interests",
		"c.created_at",
		"o.id AS orphanage_id",
		"o.name AS orphanage_name",
		"o.city AS orphanage_city",
		"o.state AS orphanage_state",
	}

	query := r.db.WithContext(ctx).
		Table("children c").
		Select(strings.Join(selectColumns, ", ")).
		Joins("JOIN orphanages o ON o.id = c.orphanage_id").
		Where("c.is_adopted = ?", false)

	if decodedCursor != nil {
		query = query.Where("(c.created_at < ?) OR (c.created_at = ? AND c.id < ?)", decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	query = query.Order("c.created_at DESC").Order("c.id DESC").Limit(limitWithBuffer)

	var records []publicChildRecord
	if err := query.Scan(&records).Error; err != nil {
		return PublicChildrenPageDTO{}, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > normalizedLimit {
		resultRows = records[:normalizedLimit]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Child{}).
		Where("is_adopted = ?", false).
		Count(&total).Error; err != nil {
		return PublicChildrenPageDTO{}, err
	}

	items := make([]PublicChildDTO, 0, len(resultRows))
	for _, record := range resultRows {
		items = append(items, record.toDTO())
	}

	return PublicChildrenPageDTO{
		Items:      items,
		NextCursor: nextCursor,
		Total:      int(total),
	}, nil
}

func (rec publicChildRecord) toDTO() PublicChildDTO {
	return PublicChildDTO{
		ID:          rec.ID,
		FirstName:   rec.FirstName,
		LastName:    rec.LastName,
		DateOfBirth: rec.DateOfBirth,
		Gender:      enums.Gender(rec.Gender),
		PhotoURL:    rec.PhotoURL,
		Bio:         rec.Bio,
		Needs:       rec.Needs,
		Interests:   rec.Interests,
		CreatedAt:   rec.CreatedAt,
		Orphanage: OrphanageSummary{
			ID:    rec.OrphanageID,
			Name:  rec.OrphanageName,
			City:  rec.OrphanageCity,
			State: rec.OrphanageState,
		},
	}
}
