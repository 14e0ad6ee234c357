package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
	pkgerrors "github.com/kindbridge/kindbridge-backend/pkg/errors"
	"github.com/kindbridge/kindbridge-backend/pkg/normalize"
)

// DashboardDTO is the orphanage admin's aggregate view.
type DashboardDTO struct {
	OrphanageName     string `json:"orphanage_name"`
	TotalChildren     int64  `json:"total_children"`
	AvailableChildren int64  `json:"available_children"`
	AdoptedThisMonth  int64  `json:"adopted_this_month"`
	Volunteers        int64  `json:"volunteers"`
}

type orphanageFinder interface {
	FindByUserID(ctx context.Context, userID string) (*models.Orphanage, error)
}

type childCounter interface {
	CountByOrphanage(ctx context.Context, orphanageID uuid.UUID) (int64, error)
	CountAvailableByOrphanage(ctx context.Context, orphanageID uuid.UUID) (int64, error)
	CountAdoptedSince(ctx context.Context, orphanageID uuid.UUID, since time.Time) (int64, error)
}

type volunteerCounter interface {
	CountComplete(ctx context.Context) (int64, error)
}

// ServiceParams groups dependencies for the dashboard service.
type ServiceParams struct {
	OrphanageRepo orphanageFinder
	ChildRepo     childCounter
	VolunteerRepo volunteerCounter
	Now           func() time.Time
}

// Service produces the orphanage dashboard aggregate.
type Service interface {
	Summary(ctx context.Context, userID string) (DashboardDTO, error)
}

type service struct {
	orphanageRepo orphanageFinder
	childRepo     childCounter
	volunteerRepo volunteerCounter
	now           func() time.Time
}

// NewService builds a dashboard service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.OrphanageRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orphanage repo is required")
	}
	if params.ChildRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "child repo is required")
	}
	if params.VolunteerRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "volunteer repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		orphanageRepo: params.OrphanageRepo,
		childRepo:     params.ChildRepo,
		volunteerRepo: params.VolunteerRepo,
		now:           now,
	}, nil
}

// Summary fans the four counts out concurrently and assembles the aggregate.
func (s *service) Summary(ctx context.Context, userID string) (DashboardDTO, error) {
	if normalize.TrimmedString(userID) == "" {
		return DashboardDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing caller identity")
	}

	orphanage, err := s.orphanageRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "orphanage not found")
		}
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orphanage")
	}

	monthStart := startOfMonth(s.now())
	result := DashboardDTO{OrphanageName: orphanage.Name}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		count, err := s.childRepo.CountByOrphanage(groupCtx, orphanage.ID)
		result.TotalChildren = count
		return err
	})
	group.Go(func() error {
		count, err := s.childRepo.CountAvailableByOrphanage(groupCtx, orphanage.ID)
		result.AvailableChildren = count
		return err
	})
	group.Go(func() error {
		count, err := s.childRepo.CountAdoptedSince(groupCtx, orphanage.ID, monthStart)
		result.AdoptedThisMonth = count
		return err
	})
	group.Go(func() error {
		count, err := s.volunteerRepo.CountComplete(groupCtx)
		result.Volunteers = count
		return err
	})
	if err := group.Wait(); err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dashboard counts")
	}

	return result, nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
