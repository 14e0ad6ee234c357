package orphanages

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kindbridge/kindbridge-backend/internal/users"
	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
	pkgerrors "github.com/kindbridge/kindbridge-backend/pkg/errors"
	"github.com/kindbridge/kindbridge-backend/pkg/identity"
)

type stubUserMirror struct {
	synced []users.SyncUserDTO
	err    error
}

func (s *stubUserMirror) Upsert(_ context.Context, dto users.SyncUserDTO) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.synced = append(s.synced, dto)
	return dto.ToModel(), nil
}

type stubOrphanageRepo struct {
	existing  *models.Orphanage
	findErr   error
	createErr error
	created   *models.Orphanage
	updated   map[string]any
}

func (s *stubOrphanageRepo) Create(_ context.Context, o *models.Orphanage) error {
	if s.createErr != nil {
		return s.createErr
	}
	o.ID = uuid.New()
	s.created = o
	s.existing = o
	return nil
}

func (s *stubOrphanageRepo) FindByUserID(_ context.Context, userID string) (*models.Orphanage, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.existing == nil || s.existing.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.existing, nil
}

func (s *stubOrphanageRepo) UpdateFields(_ context.Context, _ uuid.UUID, fields map[string]any) error {
	s.updated = fields
	return nil
}

func validRegistration() RegisterOrphanageDTO {
	return RegisterOrphanageDTO{
		Name:               "Sunrise Home",
		Email:              "contact@sunrise.example",
		Phone:              "(555) 123-4567 x89",
		Address:            "12 Hillside Road",
		City:               "Springfield",
		State:              "IL",
		Country:            "US",
		PostalCode:         "62704",
		Description:        "A safe home for children awaiting adoption in Springfield.",
		Capacity:           40,
		RegistrationNumber: "REG-2021-0042",
	}
}

func newTestService(t *testing.T, repo *stubOrphanageRepo, mirror *stubUserMirror) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{OrphanageRepo: repo, UserRepo: mirror})
	if err != nil {
		t.Fatalf("constructing service: %v", err)
	}
	return svc
}

func TestNewServiceRequiresDeps(t *testing.T) {
	if _, err := NewService(ServiceParams{UserRepo: &stubUserMirror{}}); err == nil {
		t.Fatal("expected error without orphanage repo")
	}
	if _, err := NewService(ServiceParams{OrphanageRepo: &stubOrphanageRepo{}}); err == nil {
		t.Fatal("expected error without user repo")
	}
}

func TestRegisterMirrorsUserAndNormalizes(t *testing.T) {
	repo := &stubOrphanageRepo{}
	mirror := &stubUserMirror{}
	svc := newTestService(t, repo, mirror)

	caller := &identity.Identity{ID: "user_1", Email: " jane@example.com "}
	dto, err := svc.Register(context.Background(), caller, validRegistration())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mirror.synced) != 1 || mirror.synced[0].ID != "user_1" {
		t.Fatalf("expected user mirror call, got %+v", mirror.synced)
	}
	if dto.Phone != "555123456789" {
		t.Fatalf("expected digits-only phone, got %q", dto.Phone)
	}
	if repo.created == nil || repo.created.UserID != "user_1" {
		t.Fatalf("expected created row bound to caller, got %+v", repo.created)
	}
}

func TestRegisterRejectsShortPhone(t *testing.T) {
	svc := newTestService(t, &stubOrphanageRepo{}, &stubUserMirror{})

	dto := validRegistration()
	dto.Phone = "555-123"
	_, err := svc.Register(context.Background(), &identity.Identity{ID: "user_1"}, dto)

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterRejectsDuplicatePreCheck(t *testing.T) {
	repo := &stubOrphanageRepo{existing: &models.Orphanage{ID: uuid.New(), UserID: "user_1"}}
	svc := newTestService(t, repo, &stubUserMirror{})

	_, err := svc.Register(context.Background(), &identity.Identity{ID: "user_1"}, validRegistration())

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["orphanage"] != "already registered" {
		t.Fatalf("expected already-registered detail, got %v", typed.Details())
	}
}

func TestRegisterMapsUniqueViolationToValidation(t *testing.T) {
	repo := &stubOrphanageRepo{createErr: errors.New(`duplicate key value violates unique constraint "idx_orphanages_user_id"`)}
	svc := newTestService(t, repo, &stubUserMirror{})

	_, err := svc.Register(context.Background(), &identity.Identity{ID: "user_1"}, validRegistration())

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unique violation, got %v", err)
	}
}

func TestGetMineMapsMissingToNotFound(t *testing.T) {
	svc := newTestService(t, &stubOrphanageRepo{}, &stubUserMirror{})

	_, err := svc.GetMine(context.Background(), "user_unknown")

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateNormalizesAndClearsWebsite(t *testing.T) {
	repo := &stubOrphanageRepo{existing: &models.Orphanage{ID: uuid.New(), UserID: "user_1"}}
	svc := newTestService(t, repo, &stubUserMirror{})

	name := "  Renamed Home  "
	website := "   "
	_, err := svc.Update(context.Background(), "user_1", UpdateOrphanageDTO{Name: &name, Website: &website})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.updated["name"] != "Renamed Home" {
		t.Fatalf("expected trimmed name, got %v", repo.updated["name"])
	}
	if value, present := repo.updated["website"]; !present || value != nil {
		t.Fatalf("expected website cleared to null, got %v (present=%v)", value, present)
	}
}
