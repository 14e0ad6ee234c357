package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
	pkgerrors "github.com/kindbridge/kindbridge-backend/pkg/errors"
)

type stubOrphanageFinder struct {
	orphanage *models.Orphanage
}

func (s *stubOrphanageFinder) FindByUserID(_ context.Context, userID string) (*models.Orphanage, error) {
	if s.orphanage == nil || s.orphanage.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.orphanage, nil
}

type stubChildCounter struct {
	total      int64
	available  int64
	adopted    int64
	adoptedErr error
	sinceSeen  time.Time
}

func (s *stubChildCounter) CountByOrphanage(_ context.Context, _ uuid.UUID) (int64, error) {
	return s.total, nil
}

func (s *stubChildCounter) CountAvailableByOrphanage(_ context.Context, _ uuid.UUID) (int64, error) {
	return s.available, nil
}

func (s *stubChildCounter) CountAdoptedSince(_ context.Context, _ uuid.UUID, since time.Time) (int64, error) {
	s.sinceSeen = since
	if s.adoptedErr != nil {
		return 0, s.adoptedErr
	}
	return s.adopted, nil
}

type stubVolunteerCounter struct {
	count int64
}

func (s *stubVolunteerCounter) CountComplete(_ context.Context) (int64, error) {
	return s.count, nil
}

func newDashboardService(t *testing.T, orphanages *stubOrphanageFinder, children *stubChildCounter, volunteers *stubVolunteerCounter, now func() time.Time) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		OrphanageRepo: orphanages,
		ChildRepo:     children,
		VolunteerRepo: volunteers,
		Now:           now,
	})
	if err != nil {
		t.Fatalf("constructing service: %v", err)
	}
	return svc
}

func TestSummaryAggregatesCounts(t *testing.T) {
	orphanages := &stubOrphanageFinder{orphanage: &models.Orphanage{
		ID:     uuid.New(),
		UserID: "user_1",
		Name:   "Sunrise Home",
	}}
	children := &stubChildCounter{total: 12, available: 9, adopted: 2}
	volunteers := &stubVolunteerCounter{count: 5}
	fixed := func() time.Time { return time.Date(2026, time.September, 18, 14, 30, 0, 0, time.Local) }
	svc := newDashboardService(t, orphanages, children, volunteers, fixed)

	dto, err := svc.Summary(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dto.OrphanageName != "Sunrise Home" {
		t.Fatalf("expected orphanage name, got %q", dto.OrphanageName)
	}
	if dto.TotalChildren != 12 || dto.AvailableChildren != 9 || dto.AdoptedThisMonth != 2 || dto.Volunteers != 5 {
		t.Fatalf("unexpected counts: %+v", dto)
	}

	wantSince := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.Local)
	if !children.sinceSeen.Equal(wantSince) {
		t.Fatalf("expected month start %v, got %v", wantSince, children.sinceSeen)
	}
}

func TestSummaryWithoutOrphanageNotFound(t *testing.T) {
	svc := newDashboardService(t, &stubOrphanageFinder{}, &stubChildCounter{}, &stubVolunteerCounter{}, nil)

	_, err := svc.Summary(context.Background(), "user_unknown")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSummaryPropagatesCountFailure(t *testing.T) {
	orphanages := &stubOrphanageFinder{orphanage: &models.Orphanage{ID: uuid.New(), UserID: "user_1"}}
	children := &stubChildCounter{adoptedErr: errors.New("connection reset")}
	svc := newDashboardService(t, orphanages, children, &stubVolunteerCounter{}, nil)

	_, err := svc.Summary(context.Background(), "user_1")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
