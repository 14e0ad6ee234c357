package controllers

import (
	"net/http"

	"github.com/kindbridge/kindbridge-backend/api/middleware"
	"github.com/kindbridge/kindbridge-backend/api/responses"
	"github.com/kindbridge/kindbridge-backend/api/validators"
	"github.com/kindbridge/kindbridge-backend/internal/volunteers"
	pkgerrors "github.com/kindbridge/kindbridge-backend/pkg/errors"
	"github.com/kindbridge/kindbridge-backend/pkg/logger"
)

// OrphanageVolunteers lists volunteers with a completed profile.
func OrphanageVolunteers(svc volunteers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "volunteer service unavailable"))
			return
		}

		items, err := svc.ListComplete(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// VolunteerProfileGet returns the caller's user row with their profile, which
// may not exist yet.
func VolunteerProfileGet(svc volunteers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "volunteer service unavailable"))
			return
		}

		result, err := svc.GetProfile(ctx, middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// VolunteerProfileSave creates or replaces the caller's profile.
func VolunteerProfileSave(svc volunteers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "volunteer service unavailable"))
			return
		}

		caller := middleware.IdentityFromContext(ctx)
		if caller == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing caller identity"))
			return
		}

		var payload volunteers.SaveProfileDTO
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Save(ctx, caller, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(ctx, "volunteer.profile_saved")
		}
		responses.WriteSuccess(w, dto)
	}
}
