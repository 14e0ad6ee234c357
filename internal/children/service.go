package children

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
	"github.com/kindbridge/kindbridge-backend/pkg/enums"
	pkgerrors "github.com/kindbridge/kindbridge-backend/pkg/errors"
	"github.com/kindbridge/kindbridge-backend/pkg/logger"
	"github.com/kindbridge/kindbridge-backend/pkg/normalize"
)

type orphanageFinder interface {
	FindByUserID(ctx context.Context, userID string) (*models.Orphanage, error)
}

type childRepository interface {
	Create(ctx context.Context, child *models.Child) error
	FindOwned(ctx context.Context, childID, orphanageID uuid.UUID) (*models.Child, error)
	ListByOrphanage(ctx context.Context, orphanageID uuid.UUID) ([]models.Child, error)
	UpdateOwned(ctx context.Context, childID, orphanageID uuid.UUID, fields map[string]any) (int64, error)
	DeleteOwned(ctx context.Context, childID, orphanageID uuid.UUID) (int64, error)
	ListPublic(ctx context.Context, cursor string, limit int) (PublicChildrenPageDTO, error)
}

type imageStore interface {
	SaveImage(ctx context.Context, contentType string, r io.Reader) (string, error)
	Remove(ctx context.Context, publicURL string) error
}

// PhotoUpload carries an optional child photo from the multipart form.
type PhotoUpload struct {
	ContentType string
	Data        io.Reader
}

// ServiceParams groups dependencies for the children service.
type ServiceParams struct {
	ChildRepo     childRepository
	OrphanageRepo orphanageFinder
	Images        imageStore
	Logger        *logger.Logger
	DatePolicy    normalize.DatePolicy
}

// Service exposes business rules for child management and public listings.
type Service interface {
	Create(ctx context.Context, userID string, dto CreateChildDTO, photo *PhotoUpload) (ChildDTO, error)
	List(ctx context.Context, userID string) ([]ChildDTO, error)
	Update(ctx context.Context, userID string, childID uuid.UUID, dto UpdateChildDTO) (ChildDTO, error)
	Delete(ctx context.Context, userID string, childID uuid.UUID) error
	ListPublic(ctx context.Context, cursor string, limit int) (PublicChildrenPageDTO, error)
}

type service struct {
	repo       childRepository
	orphanages orphanageFinder
	images     imageStore
	logg       *logger.Logger
	datePolicy normalize.DatePolicy
}

// NewService builds a children service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ChildRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "child repo is required")
	}
	if params.OrphanageRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orphanage repo is required")
	}
	if params.Images == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image store is required")
	}
	return &service{
		repo:       params.ChildRepo,
		orphanages: params.OrphanageRepo,
		images:     params.Images,
		logg:       params.Logger,
		datePolicy: params.DatePolicy,
	}, nil
}

// Create stores the photo (if any) and inserts the child row. The photo is
// written before the insert; a crash in between leaves an orphaned file.
func (s *service) Create(ctx context.Context, userID string, dto CreateChildDTO, photo *PhotoUpload) (ChildDTO, error) {
	orphanage, err := s.requireOrphanage(ctx, userID)
	if err != nil {
		return ChildDTO{}, err
	}

	dto.Normalize()

	dob, ok, err := normalize.ParseDate(dto.DateOfBirth, s.datePolicy)
	if err != nil || !ok {
		return ChildDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"date_of_birth": "must be a valid date"})
	}

	gender, err := enums.ParseGender(dto.Gender)
	if err != nil {
		return ChildDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"gender": "must be one of MALE FEMALE OTHER"})
	}

	var photoURL *string
	if photo != nil && photo.Data != nil {
		url, err := s.images.SaveImage(ctx, photo.ContentType, photo.Data)
		if err != nil {
			return ChildDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid image upload")
		}
		photoURL = &url
	}

	var bio *string
	if dto.Bio != "" {
		b := dto.Bio
		bio = &b
	}

	child := &models.Child{
		OrphanageID: orphanage.ID,
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		DateOfBirth: normalize.DayPrecision(dob),
		Gender:      gender,
		PhotoURL:    photoURL,
		Bio:         bio,
		Needs:       pq.StringArray(normalize.StringList(dto.Needs)),
		Interests:   pq.StringArray(normalize.StringList(dto.Interests)),
	}
	if err := s.repo.Create(ctx, child); err != nil {
		return ChildDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create child")
	}

	return ToDTO(child), nil
}

// List returns the caller's children. A caller without an orphanage gets an
// empty list rather than an error.
func (s *service) List(ctx context.Context, userID string) ([]ChildDTO, error) {
	orphanage, err := s.orphanages.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []ChildDTO{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orphanage")
	}

	rows, err := s.repo.ListByOrphanage(ctx, orphanage.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list children")
	}

	out := make([]ChildDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ToDTO(&rows[i]))
	}
	return out, nil
}

// Update applies a partial patch to an owned child. Client-supplied id,
// orphanage_id, and created_at never reach the row.
func (s *service) Update(ctx context.Context, userID string, childID uuid.UUID, dto UpdateChildDTO) (ChildDTO, error) {
	orphanage, err := s.requireOrphanage(ctx, userID)
	if err != nil {
		return ChildDTO{}, err
	}

	if _, err := s.repo.FindOwned(ctx, childID, orphanage.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChildDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "child not found")
		}
		return ChildDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load child")
	}

	fields, err := s.patchFields(ctx, dto)
	if err != nil {
		return ChildDTO{}, err
	}

	rows, err := s.repo.UpdateOwned(ctx, childID, orphanage.ID, fields)
	if err != nil {
		return ChildDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update child")
	}
	if rows == 0 {
		return ChildDTO{}, pkgerrors.New(pkgerrors.CodeInternal, "child update touched no rows")
	}

	updated, err := s.repo.FindOwned(ctx, childID, orphanage.ID)
	if err != nil {
		return ChildDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload child")
	}
	return ToDTO(updated), nil
}

// Delete removes an owned child and its stored photo.
func (s *service) Delete(ctx context.Context, userID string, childID uuid.UUID) error {
	orphanage, err := s.requireOrphanage(ctx, userID)
	if err != nil {
		return err
	}

	child, err := s.repo.FindOwned(ctx, childID, orphanage.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "child not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load child")
	}

	rows, err := s.repo.DeleteOwned(ctx, childID, orphanage.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete child")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "child not found")
	}

	if child.PhotoURL != nil {
		if err := s.images.Remove(ctx, *child.PhotoURL); err != nil && s.logg != nil {
			warnCtx := s.logg.WithFields(ctx, map[string]any{"photo_url": *child.PhotoURL})
			s.logg.Warn(warnCtx, "child.delete.photo_cleanup_failed")
		}
	}
	return nil
}

// ListPublic returns the adoption listing page.
func (s *service) ListPublic(ctx context.Context, cursor string, limit int) (PublicChildrenPageDTO, error) {
	page, err := s.repo.ListPublic(ctx, cursor, limit)
	if err != nil {
		return PublicChildrenPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid listing request")
	}
	return page, nil
}

func (s *service) patchFields(ctx context.Context, dto UpdateChildDTO) (map[string]any, error) {
	fields := map[string]any{}

	if dto.FirstName != nil {
		fields["first_name"] = normalize.TrimmedString(*dto.FirstName)
	}
	if dto.LastName != nil {
		fields["last_name"] = normalize.TrimmedString(*dto.LastName)
	}
	if dto.Bio != nil {
		fields["bio"] = normalize.TrimmedString(*dto.Bio)
	}
	if dto.PhotoURL != nil {
		fields["photo_url"] = normalize.TrimmedString(*dto.PhotoURL)
	}
	if dto.IsAdopted != nil {
		fields["is_adopted"] = *dto.IsAdopted
	}
	if dto.Gender != nil {
		gender, err := enums.ParseGender(*dto.Gender)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"gender": "must be one of MALE FEMALE OTHER"})
		}
		fields["gender"] = gender
	}
	if dto.Needs != nil {
		fields["needs"] = pq.StringArray(normalize.StringList(dto.Needs))
	}
	if dto.Interests != nil {
		fields["interests"] = pq.StringArray(normalize.StringList(dto.Interests))
	}
	if dto.DateOfBirth != nil {
		dob, ok, err := normalize.ParseDate(*dto.DateOfBirth, s.datePolicy)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed").
				WithDetails(map[string]string{"date_of_birth": "must be a valid date"})
		}
		if ok {
			fields["date_of_birth"] = normalize.DayPrecision(dob)
		} else if s.logg != nil {
			warnCtx := s.logg.WithFields(ctx, map[string]any{"raw_date": *dto.DateOfBirth})
			s.logg.Warn(warnCtx, "child.update.unparsed_date_skipped")
		}
	}

	return fields, nil
}

func (s *service) requireOrphanage(ctx context.Context, userID string) (*models.Orphanage, error) {
	if normalize.TrimmedString(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing caller identity")
	}
	orphanage, err := s.orphanages.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "orphanage not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orphanage")
	}
	return orphanage, nil
}
