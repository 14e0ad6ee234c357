package controllers

import (
	"net/http"

	"github.com/kindbridge/kindbridge-backend/api/middleware"
	"github.com/kindbridge/kindbridge-backend/api/responses"
	"github.com/kindbridge/kindbridge-backend/internal/dashboard"
	pkgerrors "github.com/kindbridge/kindbridge-backend/pkg/errors"
	"github.com/kindbridge/kindbridge-backend/pkg/logger"
)

// OrphanageDashboard returns the caller's aggregate counts.
func OrphanageDashboard(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		dto, err := svc.Summary(ctx, middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}
