package activities

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
	"github.com/kindbridge/kindbridge-backend/pkg/enums"
	pkgerrors "github.com/kindbridge/kindbridge-backend/pkg/errors"
)

type stubVolunteerDirectory struct {
	profile *models.VolunteerProfile
}

func (s *stubVolunteerDirectory) FindByID(_ context.Context, id uuid.UUID) (*models.VolunteerProfile, error) {
	if s.profile == nil || s.profile.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.profile, nil
}

func (s *stubVolunteerDirectory) FindByUserID(_ context.Context, userID string) (*models.VolunteerProfile, error) {
	if s.profile == nil || s.profile.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.profile, nil
}

type stubActivityRepo struct {
	created     *models.Activity
	existing    *models.Activity
	updatedRows int64
	listed      []models.Activity
}

func (s *stubActivityRepo) Create(_ context.Context, activity *models.Activity) error {
	activity.ID = 1
	s.created = activity
	return nil
}

func (s *stubActivityRepo) FindByIDAndCreator(_ context.Context, id int64, createdBy string) (*models.Activity, error) {
	if s.existing == nil || s.existing.ID != id || s.existing.CreatedBy != createdBy {
		return nil, gorm.ErrRecordNotFound
	}
	return s.existing, nil
}

func (s *stubActivityRepo) UpdateStatusFromScheduled(_ context.Context, id int64, createdBy string, status enums.ActivityStatus) (int64, error) {
	if s.existing == nil || s.existing.ID != id || s.existing.CreatedBy != createdBy {
		return 0, nil
	}
	if s.existing.Status != enums.ActivityStatusScheduled {
		return 0, nil
	}
	s.existing.Status = status
	s.updatedRows = 1
	return 1, nil
}

func (s *stubActivityRepo) ListByVolunteer(_ context.Context, volunteerID uuid.UUID) ([]models.Activity, error) {
	out := make([]models.Activity, 0, len(s.listed))
	for _, row := range s.listed {
		if row.VolunteerID == volunteerID {
			out = append(out, row)
		}
	}
	return out, nil
}

func newActivityService(t *testing.T, repo *stubActivityRepo, volunteers *stubVolunteerDirectory) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{ActivityRepo: repo, VolunteerRepo: volunteers})
	if err != nil {
		t.Fatalf("constructing service: %v", err)
	}
	return svc
}

func scheduledActivity(createdBy string) *models.Activity {
	return &models.Activity{
		ID:          7,
		VolunteerID: uuid.New(),
		Name:        "Reading hour",
		Date:        time.Date(2026, time.October, 2, 0, 0, 0, 0, time.Local),
		TimeSlot:    "morning",
		Status:      enums.ActivityStatusScheduled,
		CreatedBy:   createdBy,
	}
}

func TestAssignSchedulesForExistingVolunteer(t *testing.T) {
	volunteerID := uuid.New()
	repo := &stubActivityRepo{}
	volunteers := &stubVolunteerDirectory{profile: &models.VolunteerProfile{ID: volunteerID, UserID: "vol_1"}}
	svc := newActivityService(t, repo, volunteers)

	dto, err := svc.Assign(context.Background(), "admin_1", AssignActivityDTO{
		VolunteerID: volunteerID.String(),
		Name:        "  Reading hour  ",
		Date:        "2026-10-02",
		TimeSlot:    "morning",
		Notes:       "bring picture books",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dto.Status != enums.ActivityStatusScheduled {
		t.Fatalf("expected scheduled status, got %s", dto.Status)
	}
	if dto.Name != "Reading hour" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
	if dto.CreatedBy != "admin_1" {
		t.Fatalf("expected creator recorded, got %q", dto.CreatedBy)
	}
	if repo.created.Notes == nil || *repo.created.Notes != "bring picture books" {
		t.Fatalf("expected notes persisted, got %v", repo.created.Notes)
	}
}

func TestAssignUnknownVolunteerNotFound(t *testing.T) {
	svc := newActivityService(t, &stubActivityRepo{}, &stubVolunteerDirectory{})

	_, err := svc.Assign(context.Background(), "admin_1", AssignActivityDTO{
		VolunteerID: uuid.New().String(),
		Name:        "Reading hour",
		Date:        "2026-10-02",
		TimeSlot:    "morning",
	})

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAssignRejectsBadDate(t *testing.T) {
	volunteers := &stubVolunteerDirectory{profile: &models.VolunteerProfile{ID: uuid.New()}}
	svc := newActivityService(t, &stubActivityRepo{}, volunteers)

	_, err := svc.Assign(context.Background(), "admin_1", AssignActivityDTO{
		VolunteerID: volunteers.profile.ID.String(),
		Name:        "Reading hour",
		Date:        "next tuesday",
		TimeSlot:    "morning",
	})

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCancelScheduledActivity(t *testing.T) {
	repo := &stubActivityRepo{existing: scheduledActivity("admin_1")}
	svc := newActivityService(t, repo, &stubVolunteerDirectory{})

	dto, err := svc.Cancel(context.Background(), "admin_1", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Status != enums.ActivityStatusCancelled {
		t.Fatalf("expected cancelled, got %s", dto.Status)
	}
}

func TestCompleteTerminalActivityStateConflict(t *testing.T) {
	activity := scheduledActivity("admin_1")
	activity.Status = enums.ActivityStatusCancelled
	repo := &stubActivityRepo{existing: activity}
	svc := newActivityService(t, repo, &stubVolunteerDirectory{})

	_, err := svc.Complete(context.Background(), "admin_1", 7)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestTransitionForeignActivityNotFound(t *testing.T) {
	repo := &stubActivityRepo{existing: scheduledActivity("someone_else")}
	svc := newActivityService(t, repo, &stubVolunteerDirectory{})

	_, err := svc.Cancel(context.Background(), "admin_1", 7)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign activity, got %v", err)
	}
}

func TestListForVolunteerWithoutProfileIsEmpty(t *testing.T) {
	svc := newActivityService(t, &stubActivityRepo{}, &stubVolunteerDirectory{})

	items, err := svc.ListForVolunteer(context.Background(), "vol_unknown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty slice, got %v", items)
	}
}

func TestListForVolunteerReturnsOwnActivities(t *testing.T) {
	volunteerID := uuid.New()
	repo := &stubActivityRepo{listed: []models.Activity{
		{ID: 1, VolunteerID: volunteerID, Name: "Reading hour", Status: enums.ActivityStatusScheduled},
		{ID: 2, VolunteerID: uuid.New(), Name: "Garden day", Status: enums.ActivityStatusScheduled},
	}}
	volunteers := &stubVolunteerDirectory{profile: &models.VolunteerProfile{ID: volunteerID, UserID: "vol_1"}}
	svc := newActivityService(t, repo, volunteers)

	items, err := svc.ListForVolunteer(context.Background(), "vol_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Reading hour" {
		t.Fatalf("expected only own activities, got %v", items)
	}
}
