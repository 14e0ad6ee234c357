package volunteers

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kindbridge/kindbridge-backend/internal/users"
	"github.com/kindbridge/kindbridge-backend/pkg/db"
	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
	pkgerrors "github.com/kindbridge/kindbridge-backend/pkg/errors"
	"github.com/kindbridge/kindbridge-backend/pkg/identity"
	"github.com/kindbridge/kindbridge-backend/pkg/normalize"
)

const (
	minPhoneDigits = 10
	zipLength      = 5
	minAboutRunes  = 20
	maxAboutRunes  = 1000
)

type userDirectory interface {
	Upsert(ctx context.Context, dto users.SyncUserDTO) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type profileRepository interface {
	Insert(ctx context.Context, profile *models.VolunteerProfile) error
	FindByUserID(ctx context.Context, userID string) (*models.VolunteerProfile, error)
	UpdateByUserID(ctx context.Context, userID string, fields map[string]any) (int64, error)
	ListComplete(ctx context.Context) ([]VolunteerListItemDTO, error)
}

// ServiceParams groups dependencies for the volunteer service.
type ServiceParams struct {
	ProfileRepo profileRepository
	UserRepo    userDirectory
	DatePolicy  normalize.DatePolicy
}

// Service exposes volunteer profile management and the orphanage-facing
// volunteer directory.
type Service interface {
	GetProfile(ctx context.Context, userID string) (ProfileWithUserDTO, error)
	Save(ctx context.Context, caller *identity.Identity, dto SaveProfileDTO) (VolunteerProfileDTO, error)
	ListComplete(ctx context.Context) ([]VolunteerListItemDTO, error)
}

type service struct {
	repo       profileRepository
	userRepo   userDirectory
	datePolicy normalize.DatePolicy
}

// NewService builds a volunteer service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ProfileRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile repo is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	policy := params.DatePolicy
	if policy == "" {
		policy = normalize.DatePassthrough
	}
	return &service{repo: params.ProfileRepo, userRepo: params.UserRepo, datePolicy: policy}, nil
}

// GetProfile returns the caller's mirrored user together with their profile.
// A user without a profile yet gets a nil profile, not an error.
func (s *service) GetProfile(ctx context.Context, userID string) (ProfileWithUserDTO, error) {
	if normalize.TrimmedString(userID) == "" {
		return ProfileWithUserDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing caller identity")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileWithUserDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return ProfileWithUserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	result := ProfileWithUserDTO{User: users.ToDTO(user)}

	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}
		return ProfileWithUserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}

	dto := ToDTO(profile)
	result.Profile = &dto
	return result, nil
}

// Save creates the caller's profile or replaces it in place. Saving always
// marks the profile complete.
func (s *service) Save(ctx context.Context, caller *identity.Identity, dto SaveProfileDTO) (VolunteerProfileDTO, error) {
	if caller == nil || caller.ID == "" {
		return VolunteerProfileDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing caller identity")
	}

	dto.Normalize()
	skills := dto.SkillList()
	availability := dto.AvailabilityList()

	if details := validateProfile(dto, skills, availability); len(details) > 0 {
		return VolunteerProfileDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(details)
	}

	dob, ok, err := normalize.ParseDate(dto.DateOfBirth, s.datePolicy)
	if err != nil || !ok {
		return VolunteerProfileDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"date_of_birth": "must be a valid date"})
	}

	if _, err := s.userRepo.Upsert(ctx, users.FromIdentity(caller)); err != nil {
		return VolunteerProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sync user")
	}

	skillsArr, availArr := listsToArrays(skills, availability)

	if _, err := s.repo.FindByUserID(ctx, caller.ID); err == nil {
		return s.replace(ctx, caller.ID, dto, dob, skills, availability)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return VolunteerProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check profile")
	}

	profile := &models.VolunteerProfile{
		UserID:                caller.ID,
		FirstName:             dto.FirstName,
		LastName:              dto.LastName,
		PhoneNumber:           dto.PhoneNumber,
		Address:               dto.Address,
		City:                  dto.City,
		ZipCode:               dto.ZipCode,
		DateOfBirth:           dob,
		EmergencyContactPhone: dto.EmergencyContactPhone,
		Skills:                skillsArr,
		Availability:          availArr,
		About:                 dto.About,
		ProfileComplete:       true,
	}
	if err := s.repo.Insert(ctx, profile); err != nil {
		// Two concurrent first saves can race past the existence check.
		if db.IsUniqueViolation(err) {
			return s.replace(ctx, caller.ID, dto, dob, skills, availability)
		}
		return VolunteerProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create profile")
	}

	return ToDTO(profile), nil
}

// ListComplete returns every volunteer with a finished profile.
func (s *service) ListComplete(ctx context.Context) ([]VolunteerListItemDTO, error) {
	items, err := s.repo.ListComplete(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list volunteers")
	}
	if items == nil {
		items = []VolunteerListItemDTO{}
	}
	return items, nil
}

func (s *service) replace(ctx context.Context, userID string, dto SaveProfileDTO, dob time.Time, skills, availability []string) (VolunteerProfileDTO, error) {
	skillsArr, availArr := listsToArrays(skills, availability)
	fields := map[string]any{
		"first_name":              dto.FirstName,
		"last_name":               dto.LastName,
		"phone_number":            dto.PhoneNumber,
		"address":                 dto.Address,
		"city":                    dto.City,
		"zip_code":                dto.ZipCode,
		"date_of_birth":           dob,
		"emergency_contact_phone": dto.EmergencyContactPhone,
		"skills":                  skillsArr,
		"availability":            availArr,
		"about":                   dto.About,
		"profile_complete":        true,
	}

	rows, err := s.repo.UpdateByUserID(ctx, userID, fields)
	if err != nil {
		return VolunteerProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	if rows == 0 {
		return VolunteerProfileDTO{}, pkgerrors.New(pkgerrors.CodeInternal, "profile update touched no rows")
	}

	updated, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return VolunteerProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload profile")
	}
	return ToDTO(updated), nil
}

func validateProfile(dto SaveProfileDTO, skills, availability []string) map[string]string {
	details := map[string]string{}
	if len(dto.PhoneNumber) < minPhoneDigits {
		details["phone_number"] = "must contain at least 10 digits"
	}
	if len(dto.EmergencyContactPhone) < minPhoneDigits {
		details["emergency_contact_phone"] = "must contain at least 10 digits"
	}
	if len(dto.ZipCode) != zipLength {
		details["zip_code"] = "must be a 5-digit zip code"
	}
	if n := len([]rune(dto.About)); n < minAboutRunes || n > maxAboutRunes {
		details["about"] = "must be between 20 and 1000 characters"
	}
	if len(skills) == 0 {
		details["skills"] = "select at least one skill"
	}
	if len(availability) == 0 {
		details["availability"] = "select at least one availability window"
	}
	return details
}
