package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kindbridge/kindbridge-backend/api/middleware"
	"github.com/kindbridge/kindbridge-backend/api/responses"
	"github.com/kindbridge/kindbridge-backend/api/validators"
	"github.com/kindbridge/kindbridge-backend/internal/activities"
	pkgerrors "github.com/kindbridge/kindbridge-backend/pkg/errors"
	"github.com/kindbridge/kindbridge-backend/pkg/logger"
)

// ActivityAssign schedules an activity for a volunteer.
func ActivityAssign(svc activities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "activity service unavailable"))
			return
		}

		var payload activities.AssignActivityDTO
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Assign(ctx, middleware.UserIDFromContext(ctx), payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithField(ctx, "activity_id", dto.ID), "activity.assigned")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ActivityCancel moves a scheduled activity to cancelled.
func ActivityCancel(svc activities.Service, logg *logger.Logger) http.HandlerFunc {
	return activityTransition(svc, logg, "activity.cancelled", activities.Service.Cancel)
}

// ActivityComplete moves a scheduled activity to completed.
func ActivityComplete(svc activities.Service, logg *logger.Logger) http.HandlerFunc {
	return activityTransition(svc, logg, "activity.completed", activities.Service.Complete)
}

// VolunteerActivities lists the caller's assigned activities.
func VolunteerActivities(svc activities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "activity service unavailable"))
			return
		}

		items, err := svc.ListForVolunteer(ctx, middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

func activityTransition(
	svc activities.Service,
	logg *logger.Logger,
	event string,
	transition func(activities.Service, context.Context, string, int64) (activities.ActivityDTO, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "activity service unavailable"))
			return
		}

		activityID, err := strconv.ParseInt(chi.URLParam(r, "activityId"), 10, 64)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"activityId": "must be a numeric id"}))
			return
		}

		dto, err := transition(svc, ctx, middleware.UserIDFromContext(ctx), activityID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithField(ctx, "activity_id", dto.ID), event)
		}
		responses.WriteSuccess(w, dto)
	}
}
