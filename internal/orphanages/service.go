package orphanages

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kindbridge/kindbridge-backend/internal/users"
	"github.com/kindbridge/kindbridge-backend/pkg/db"
	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
	pkgerrors "github.com/kindbridge/kindbridge-backend/pkg/errors"
	"github.com/kindbridge/kindbridge-backend/pkg/identity"
	"github.com/kindbridge/kindbridge-backend/pkg/normalize"
)

const minPhoneDigits = 10

type userMirror interface {
	Upsert(ctx context.Context, dto users.SyncUserDTO) (*models.User, error)
}

type orphanageRepository interface {
	Create(ctx context.Context, orphanage *models.Orphanage) error
	FindByUserID(ctx context.Context, userID string) (*models.Orphanage, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
}

// ServiceParams groups dependencies for the orphanage service.
type ServiceParams struct {
	OrphanageRepo orphanageRepository
	UserRepo      userMirror
}

// Service exposes business rules for orphanage registration and settings.
type Service interface {
	Register(ctx context.Context, caller *identity.Identity, dto RegisterOrphanageDTO) (OrphanageDTO, error)
	GetMine(ctx context.Context, userID string) (OrphanageDTO, error)
	Update(ctx context.Context, userID string, dto UpdateOrphanageDTO) (OrphanageDTO, error)
}

type service struct {
	repo     orphanageRepository
	userRepo userMirror
}

// NewService builds an orphanage service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.OrphanageRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orphanage repo is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	return &service{repo: params.OrphanageRepo, userRepo: params.UserRepo}, nil
}

// Register mirrors the caller's user row and creates their orphanage. A
// second registration for the same user fails validation on both the
// pre-check and the unique-index fallback.
func (s *service) Register(ctx context.Context, caller *identity.Identity, dto RegisterOrphanageDTO) (OrphanageDTO, error) {
	if caller == nil || caller.ID == "" {
		return OrphanageDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing caller identity")
	}

	dto.Normalize()
	if len(dto.Phone) < minPhoneDigits {
		return OrphanageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"phone": "must contain at least 10 digits"})
	}

	if _, err := s.userRepo.Upsert(ctx, users.FromIdentity(caller)); err != nil {
		return OrphanageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sync user")
	}

	if _, err := s.repo.FindByUserID(ctx, caller.ID); err == nil {
		return OrphanageDTO{}, alreadyRegistered()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return OrphanageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check registration")
	}

	orphanage := dto.ToModel(caller.ID)
	if err := s.repo.Create(ctx, orphanage); err != nil {
		if db.IsUniqueViolation(err) {
			return OrphanageDTO{}, alreadyRegistered()
		}
		return OrphanageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create orphanage")
	}

	return ToDTO(orphanage), nil
}

// GetMine returns the caller's orphanage.
func (s *service) GetMine(ctx context.Context, userID string) (OrphanageDTO, error) {
	orphanage, err := s.findOwned(ctx, userID)
	if err != nil {
		return OrphanageDTO{}, err
	}
	return ToDTO(orphanage), nil
}

// Update applies a partial settings change and returns the updated row.
func (s *service) Update(ctx context.Context, userID string, dto UpdateOrphanageDTO) (OrphanageDTO, error) {
	orphanage, err := s.findOwned(ctx, userID)
	if err != nil {
		return OrphanageDTO{}, err
	}

	fields := dto.Fields()
	if phone, ok := fields["phone"].(string); ok && len(phone) < minPhoneDigits {
		return OrphanageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"phone": "must contain at least 10 digits"})
	}

	if err := s.repo.UpdateFields(ctx, orphanage.ID, fields); err != nil {
		return OrphanageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update orphanage")
	}

	updated, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return OrphanageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload orphanage")
	}
	return ToDTO(updated), nil
}

func (s *service) findOwned(ctx context.Context, userID string) (*models.Orphanage, error) {
	if normalize.TrimmedString(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing caller identity")
	}
	orphanage, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "orphanage not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orphanage")
	}
	return orphanage, nil
}

func alreadyRegistered() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, "orphanage already registered").
		WithDetails(map[string]string{"orphanage": "already registered"})
}
