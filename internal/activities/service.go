package activities

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
	"github.com/kindbridge/kindbridge-backend/pkg/enums"
	pkgerrors "github.com/kindbridge/kindbridge-backend/pkg/errors"
	"github.com/kindbridge/kindbridge-backend/pkg/normalize"
)

type activityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	FindByIDAndCreator(ctx context.Context, id int64, createdBy string) (*models.Activity, error)
	UpdateStatusFromScheduled(ctx context.Context, id int64, createdBy string, status enums.ActivityStatus) (int64, error)
	ListByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]models.Activity, error)
}

type volunteerDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.VolunteerProfile, error)
	FindByUserID(ctx context.Context, userID string) (*models.VolunteerProfile, error)
}

// ServiceParams groups dependencies for the activity service.
type ServiceParams struct {
	ActivityRepo  activityRepository
	VolunteerRepo volunteerDirectory
	DatePolicy    normalize.DatePolicy
}

// Service exposes activity scheduling and lifecycle transitions.
type Service interface {
	Assign(ctx context.Context, callerID string, dto AssignActivityDTO) (ActivityDTO, error)
	Cancel(ctx context.Context, callerID string, activityID int64) (ActivityDTO, error)
	Complete(ctx context.Context, callerID string, activityID int64) (ActivityDTO, error)
	ListForVolunteer(ctx context.Context, userID string) ([]ActivityDTO, error)
}

type service struct {
	repo          activityRepository
	volunteerRepo volunteerDirectory
	datePolicy    normalize.DatePolicy
}

// NewService builds an activity service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ActivityRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "activity repo is required")
	}
	if params.VolunteerRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "volunteer repo is required")
	}
	policy := params.DatePolicy
	if policy == "" {
		policy = normalize.DatePassthrough
	}
	return &service{repo: params.ActivityRepo, volunteerRepo: params.VolunteerRepo, datePolicy: policy}, nil
}

// Assign schedules an activity for an existing volunteer. New activities
// always start out scheduled.
func (s *service) Assign(ctx context.Context, callerID string, dto AssignActivityDTO) (ActivityDTO, error) {
	if normalize.TrimmedString(callerID) == "" {
		return ActivityDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing caller identity")
	}

	dto.Normalize()
	volunteerID, err := uuid.Parse(dto.VolunteerID)
	if err != nil {
		return ActivityDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"volunteer_id": "must be a valid id"})
	}

	date, ok, err := normalize.ParseDate(dto.Date, s.datePolicy)
	if err != nil || !ok {
		return ActivityDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"date": "must be a valid date"})
	}

	if _, err := s.volunteerRepo.FindByID(ctx, volunteerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ActivityDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "volunteer not found")
		}
		return ActivityDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load volunteer")
	}

	activity := &models.Activity{
		VolunteerID: volunteerID,
		Name:        dto.Name,
		Date:        date,
		TimeSlot:    dto.TimeSlot,
		Status:      enums.ActivityStatusScheduled,
		CreatedBy:   callerID,
	}
	if dto.Notes != "" {
		notes := dto.Notes
		activity.Notes = &notes
	}

	if err := s.repo.Create(ctx, activity); err != nil {
		return ActivityDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create activity")
	}
	return ToDTO(activity), nil
}

// Cancel moves a scheduled activity to cancelled.
func (s *service) Cancel(ctx context.Context, callerID string, activityID int64) (ActivityDTO, error) {
	return s.transition(ctx, callerID, activityID, enums.ActivityStatusCancelled)
}

// Complete moves a scheduled activity to completed.
func (s *service) Complete(ctx context.Context, callerID string, activityID int64) (ActivityDTO, error) {
	return s.transition(ctx, callerID, activityID, enums.ActivityStatusCompleted)
}

// ListForVolunteer returns the caller's activities. A user without a
// volunteer profile simply has none yet.
func (s *service) ListForVolunteer(ctx context.Context, userID string) ([]ActivityDTO, error) {
	if normalize.TrimmedString(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing caller identity")
	}

	profile, err := s.volunteerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []ActivityDTO{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}

	rows, err := s.repo.ListByVolunteer(ctx, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list activities")
	}

	items := make([]ActivityDTO, 0, len(rows))
	for i := range rows {
		items = append(items, ToDTO(&rows[i]))
	}
	return items, nil
}

func (s *service) transition(ctx context.Context, callerID string, activityID int64, status enums.ActivityStatus) (ActivityDTO, error) {
	if normalize.TrimmedString(callerID) == "" {
		return ActivityDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing caller identity")
	}

	activity, err := s.repo.FindByIDAndCreator(ctx, activityID, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ActivityDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "activity not found")
		}
		return ActivityDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load activity")
	}

	if activity.Status.IsTerminal() {
		return ActivityDTO{}, stateConflict(activity.Status, status)
	}

	rows, err := s.repo.UpdateStatusFromScheduled(ctx, activityID, callerID, status)
	if err != nil {
		return ActivityDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update activity status")
	}
	if rows == 0 {
		// A concurrent transition won the race between load and update.
		return ActivityDTO{}, stateConflict(activity.Status, status)
	}

	activity.Status = status
	return ToDTO(activity), nil
}

func stateConflict(current, requested enums.ActivityStatus) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "activity is no longer scheduled").
		WithDetails(map[string]string{
			"status":    current.String(),
			"requested": requested.String(),
		})
}
