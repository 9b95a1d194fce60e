package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"skyward-mro/shopfloor/internal/api"
	"skyward-mro/shopfloor/internal/config"
	"skyward-mro/shopfloor/internal/db"
	"skyward-mro/shopfloor/internal/logging"
	"skyward-mro/shopfloor/internal/metrics"
	"skyward-mro/shopfloor/internal/middleware"
	"skyward-mro/shopfloor/internal/registry"
	"skyward-mro/shopfloor/internal/workers"
)

// RegisterRoutes builds the router, wires the dependency graph and
// starts the sweep worker. ctx bounds the worker's lifetime.
func RegisterRoutes(ctx context.Context, cfg *config.Config, reg *registry.Registry, upSince time.Time) (http.Handler, error) {

	r := chi.NewRouter()

	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	deps, err := api.InitDependencies(cfg, reg, metricsReg)
	if err != nil {
		return nil, err
	}
	handlers := api.NewHandlers(deps)

	// health check and login stay outside the auth wall
	r.Get("/healthCheck", api.HealthCheckHandler(reg, db.DB, upSince))
	r.Post("/api/v1/auth/login", handlers.Login())

	// reload persisted state before serving traffic
	if err := deps.Services.Snapshot.Restore(ctx); err != nil {
		logging.Warn("Snapshot restore failed, continuing with seeded state", "error", err.Error())
	}

	workers.InitWorkers(ctx, reg, deps.Services.Evaluator, metricsReg, cfg.SweepInterval)

	RegisterAPIRoutes(r, handlers, deps)

	return r, nil
}
