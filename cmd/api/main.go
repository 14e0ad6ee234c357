package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kindbridge/kindbridge-backend/api/routes"
	"github.com/kindbridge/kindbridge-backend/internal/activities"
	"github.com/kindbridge/kindbridge-backend/internal/children"
	"github.com/kindbridge/kindbridge-backend/internal/dashboard"
	"github.com/kindbridge/kindbridge-backend/internal/orphanages"
	"github.com/kindbridge/kindbridge-backend/internal/users"
	"github.com/kindbridge/kindbridge-backend/internal/volunteers"
	"github.com/kindbridge/kindbridge-backend/pkg/config"
	"github.com/kindbridge/kindbridge-backend/pkg/db"
	"github.com/kindbridge/kindbridge-backend/pkg/identity"
	"github.com/kindbridge/kindbridge-backend/pkg/logger"
	"github.com/kindbridge/kindbridge-backend/pkg/metrics"
	"github.com/kindbridge/kindbridge-backend/pkg/migrate"
	"github.com/kindbridge/kindbridge-backend/pkg/normalize"
	"github.com/kindbridge/kindbridge-backend/pkg/redis"
	"github.com/kindbridge/kindbridge-backend/pkg/storage"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	verifier, err := identity.NewJWKSVerifier(context.Background(), cfg.Identity)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap identity verifier", err)
		os.Exit(1)
	}
	defer verifier.Close()

	imageStore, err := storage.NewLocalStore(cfg.Uploads)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare uploads directory", err)
		os.Exit(1)
	}

	datePolicy := normalize.DatePassthrough
	if cfg.Normalize.RejectsBadDates() {
		datePolicy = normalize.DateReject
	}

	userRepo := users.NewRepository(dbClient.DB())
	orphanageRepo := orphanages.NewRepository(dbClient.DB())
	childRepo := children.NewRepository(dbClient.DB())
	volunteerRepo := volunteers.NewRepository(dbClient.DB())
	activityRepo := activities.NewRepository(dbClient.DB())

	orphanageService, err := orphanages.NewService(orphanages.ServiceParams{
		OrphanageRepo: orphanageRepo,
		UserRepo:      userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orphanage service", err)
		os.Exit(1)
	}

	childrenService, err := children.NewService(children.ServiceParams{
		ChildRepo:     childRepo,
		OrphanageRepo: orphanageRepo,
		Images:        imageStore,
		Logger:        logg,
		DatePolicy:    datePolicy,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create children service", err)
		os.Exit(1)
	}

	volunteerService, err := volunteers.NewService(volunteers.ServiceParams{
		ProfileRepo: volunteerRepo,
		UserRepo:    userRepo,
		DatePolicy:  datePolicy,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create volunteer service", err)
		os.Exit(1)
	}

	activityService, err := activities.NewService(activities.ServiceParams{
		ActivityRepo:  activityRepo,
		VolunteerRepo: volunteerRepo,
		DatePolicy:    datePolicy,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create activity service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		OrphanageRepo: orphanageRepo,
		ChildRepo:     childRepo,
		VolunteerRepo: volunteerRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:           cfg,
			Logger:           logg,
			DB:               dbClient,
			Redis:            redisClient,
			Verifier:         verifier,
			HTTPMetrics:      httpMetrics,
			MetricsRegistry:  registry,
			UploadsDir:       imageStore.Dir(),
			OrphanageService: orphanageService,
			ChildrenService:  childrenService,
			VolunteerService: volunteerService,
			ActivityService:  activityService,
			DashboardService: dashboardService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
