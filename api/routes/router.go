package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kindbridge/kindbridge-backend/api/controllers"
	"github.com/kindbridge/kindbridge-backend/api/middleware"
	"github.com/kindbridge/kindbridge-backend/internal/activities"
	"github.com/kindbridge/kindbridge-backend/internal/children"
	"github.com/kindbridge/kindbridge-backend/internal/dashboard"
	"github.com/kindbridge/kindbridge-backend/internal/orphanages"
	"github.com/kindbridge/kindbridge-backend/internal/volunteers"
	"github.com/kindbridge/kindbridge-backend/pkg/config"
	"github.com/kindbridge/kindbridge-backend/pkg/db"
	"github.com/kindbridge/kindbridge-backend/pkg/identity"
	"github.com/kindbridge/kindbridge-backend/pkg/logger"
	"github.com/kindbridge/kindbridge-backend/pkg/metrics"
	"github.com/kindbridge/kindbridge-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config           *config.Config
	Logger           *logger.Logger
	DB               db.Pinger
	Redis            *redis.Client
	Verifier         identity.Verifier
	HTTPMetrics      *metrics.HTTPMetrics
	MetricsRegistry  *prometheus.Registry
	UploadsDir       string
	OrphanageService orphanages.Service
	ChildrenService  children.Service
	VolunteerService volunteers.Service
	ActivityService  activities.Service
	DashboardService dashboard.Service
}

// NewRouter assembles the HTTP surface: health and metrics, the public
// adoption listing, static uploads, and the authenticated API.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(deps.HTTPMetrics),
	)

	registerPolicy := middleware.NewRateLimitPolicy(
		"register",
		cfg.RateLimit.RegisterWindow,
		cfg.RateLimit.RegisterIPLimit,
		cfg.RateLimit.RegisterUserLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	if deps.UploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadsDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Get("/api/v1/children", controllers.PublicChildren(deps.ChildrenService, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Verifier, logg))

		r.Route("/orphanage", func(r chi.Router) {
			r.With(middleware.RateLimit(registerPolicy, deps.Redis, logg)).
				Post("/register", controllers.OrphanageRegister(deps.OrphanageService, logg))
			r.Get("/", controllers.OrphanageProfile(deps.OrphanageService, logg))
			r.Patch("/", controllers.OrphanageUpdate(deps.OrphanageService, logg))

			r.Route("/children", func(r chi.Router) {
				r.Get("/", controllers.OrphanageChildren(deps.ChildrenService, logg))
				r.Post("/", controllers.OrphanageChildCreate(deps.ChildrenService, cfg.Uploads.MaxUploadBytes(), logg))
				r.Put("/{childId}", controllers.OrphanageChildUpdate(deps.ChildrenService, logg))
				r.Delete("/{childId}", controllers.OrphanageChildDelete(deps.ChildrenService, logg))
			})

			r.Get("/volunteers", controllers.OrphanageVolunteers(deps.VolunteerService, logg))
			r.Get("/dashboard", controllers.OrphanageDashboard(deps.DashboardService, logg))
			r.Post("/activities/assign", controllers.ActivityAssign(deps.ActivityService, logg))
		})

		r.Route("/activities", func(r chi.Router) {
			r.Post("/{activityId}/cancel", controllers.ActivityCancel(deps.ActivityService, logg))
			r.Post("/{activityId}/complete", controllers.ActivityComplete(deps.ActivityService, logg))
		})

		r.Route("/volunteer", func(r chi.Router) {
			r.Get("/activities", controllers.VolunteerActivities(deps.ActivityService, logg))
		})

		r.Route("/volunteer-profile", func(r chi.Router) {
			r.Get("/", controllers.VolunteerProfileGet(deps.VolunteerService, logg))
			r.Post("/", controllers.VolunteerProfileSave(deps.VolunteerService, logg))
		})
	})

	return r
}
