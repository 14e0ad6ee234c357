package controllers

import (
	"net/http"

	"github.com/kindbridge/kindbridge-backend/api/middleware"
	"github.com/kindbridge/kindbridge-backend/api/responses"
	"github.com/kindbridge/kindbridge-backend/api/validators"
	"github.com/kindbridge/kindbridge-backend/internal/orphanages"
	pkgerrors "github.com/kindbridge/kindbridge-backend/pkg/errors"
	"github.com/kindbridge/kindbridge-backend/pkg/logger"
)

// OrphanageRegister creates the caller's orphanage.
func OrphanageRegister(svc orphanages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orphanage service unavailable"))
			return
		}

		caller := middleware.IdentityFromContext(ctx)
		if caller == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing caller identity"))
			return
		}

		var payload orphanages.RegisterOrphanageDTO
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Register(ctx, caller, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithOrphanageID(ctx, dto.ID.String()), "orphanage.registered")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// OrphanageProfile returns the caller's orphanage.
func OrphanageProfile(svc orphanages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orphanage service unavailable"))
			return
		}

		dto, err := svc.GetMine(ctx, middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// OrphanageUpdate applies a partial settings change to the caller's orphanage.
func OrphanageUpdate(svc orphanages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orphanage service unavailable"))
			return
		}

		var payload orphanages.UpdateOrphanageDTO
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Update(ctx, middleware.UserIDFromContext(ctx), payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}
