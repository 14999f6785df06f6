package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/lexfirm/backoffice-api/internal/config"
	"github.com/lexfirm/backoffice-api/internal/database"
	"github.com/lexfirm/backoffice-api/internal/http/handler"
	"github.com/lexfirm/backoffice-api/internal/http/middleware"
	"github.com/lexfirm/backoffice-api/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/lexfirm/backoffice-api/docs" // Import generated swagger docs
)

// Handlers groups the HTTP handlers mounted under /api/v1
type Handlers struct {
	Lawyers       *handler.LawyerHandler
	Clients       *handler.ClientHandler
	Services      *handler.LegalServiceHandler
	Cases         *handler.CaseHandler
	Dashboard     *handler.DashboardHandler
	Finances      *handler.FinanceHandler
	Settings      *handler.SettingsHandler
	Notifications *handler.NotificationHandler
}

type Router struct {
	cfg         *config.Config
	logger      *zap.Logger
	db          *gorm.DB
	registry    *prometheus.Registry
	rateLimiter *middleware.RateLimiter
	handlers    Handlers
}

// NewRouter wires the handlers. registry may be nil when metrics are disabled.
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	registry *prometheus.Registry,
	rateLimiter *middleware.RateLimiter,
	handlers Handlers,
) *Router {
	return &Router{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		registry:    registry,
		rateLimiter: rateLimiter,
		handlers:    handlers,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/health/db", rt.databaseHealth)
	r.Get("/health/ready", rt.readiness)

	if rt.registry != nil {
		r.Handle("/metrics", metrics.Handler(rt.registry))
	}

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	h := rt.handlers
	r.Route("/api/v1", func(r chi.Router) {
		if timeout := rt.cfg.Server.RequestTimeoutDuration(); timeout > 0 {
			r.Use(chimiddleware.Timeout(timeout))
		}

		r.Route("/lawyers", func(r chi.Router) {
			r.Get("/", h.Lawyers.List)
			r.Post("/", h.Lawyers.Create)
			r.Get("/active", h.Lawyers.ListActive)
			r.Get("/{id}", h.Lawyers.GetByID)
			r.Put("/{id}", h.Lawyers.Update)
			r.Delete("/{id}", h.Lawyers.Delete)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.Clients.List)
			r.Post("/", h.Clients.Create)
			r.Get("/{id}", h.Clients.GetByID)
			r.Put("/{id}", h.Clients.Update)
			r.Delete("/{id}", h.Clients.Delete)
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", h.Services.List)
			r.Post("/", h.Services.Create)
			r.Get("/active", h.Services.ListActive)
			r.Get("/{id}", h.Services.GetByID)
			r.Put("/{id}", h.Services.Update)
			r.Delete("/{id}", h.Services.Delete)
		})

		r.Route("/cases", func(r chi.Router) {
			r.Get("/", h.Cases.List)
			r.Post("/", h.Cases.Create)
			r.Get("/next-number", h.Cases.NextNumber)
			r.Get("/{id}", h.Cases.GetByID)
			r.Put("/{id}", h.Cases.Update)
			r.Delete("/{id}", h.Cases.Delete)
			r.Post("/{id}/recalculate", h.Cases.Recalculate)
		})

		r.Get("/dashboard/stats", h.Dashboard.GetStats)
		r.Get("/dashboard/ranking", h.Dashboard.GetRanking)

		r.Route("/finances", func(r chi.Router) {
			r.Get("/summary", h.Finances.GetSummary)
			r.Get("/export.xlsx", h.Finances.Export)
			r.Post("/commissions/liquidate-all", h.Finances.LiquidateAll)
			r.Post("/commissions/{id}/liquidate", h.Finances.LiquidateOne)
			r.Post("/commissions/{id}/lawyers/{lawyerId}/liquidate", h.Finances.LiquidateLawyer)
		})

		r.Get("/settings", h.Settings.Get)
		r.Put("/settings", h.Settings.Update)

		r.Get("/notifications", h.Notifications.List)
	})

	return r
}

// databaseHealth is the readiness probe with connection pool stats
func (rt *Router) databaseHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	stats, err := database.HealthCheckWithStats(r.Context(), rt.db)
	if err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "database",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"driver":  rt.cfg.Database.Driver,
		"stats":   stats,
	})
}

// readiness checks every dependency the API needs to serve requests
func (rt *Router) readiness(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]interface{})
	healthy := true

	if err := database.HealthCheck(r.Context(), rt.db); err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		checks["database"] = map[string]interface{}{"status": "unhealthy", "error": err.Error()}
		healthy = false
	} else {
		checks["database"] = map[string]interface{}{"status": "healthy"}
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}
