package controllers

import (
	"context"
	"net/http"

	"github.com/kindbridge/kindbridge-backend/api/responses"
	"github.com/kindbridge/kindbridge-backend/pkg/config"
	pkgerrors "github.com/kindbridge/kindbridge-backend/pkg/errors"
	"github.com/kindbridge/kindbridge-backend/pkg/logger"
	"go.uber.org/multierr"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-KindBridge-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the database and redis before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, database, cache pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-KindBridge-Env", cfg.App.Env)

		checks := []struct {
			name string
			dep  pinger
		}{
			{"database", database},
			{"redis", cache},
		}

		var errs []error
		for _, check := range checks {
			if check.dep == nil {
				errs = append(errs, pkgerrors.New(pkgerrors.CodeDependency, check.name+" unavailable"))
				continue
			}
			if err := check.dep.Ping(ctx); err != nil {
				errs = append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, check.name+" not ready"))
			}
		}
		if combined := multierr.Combine(errs...); combined != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "dependencies not ready"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
