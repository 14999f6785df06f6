package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexfirm/backoffice-api/docs"
	"github.com/lexfirm/backoffice-api/internal/cache"
	"github.com/lexfirm/backoffice-api/internal/config"
	"github.com/lexfirm/backoffice-api/internal/database"
	"github.com/lexfirm/backoffice-api/internal/http/handler"
	"github.com/lexfirm/backoffice-api/internal/http/middleware"
	"github.com/lexfirm/backoffice-api/internal/http/router"
	"github.com/lexfirm/backoffice-api/internal/jobs"
	"github.com/lexfirm/backoffice-api/internal/logger"
	"github.com/lexfirm/backoffice-api/internal/metrics"
	"github.com/lexfirm/backoffice-api/internal/repository"
	"github.com/lexfirm/backoffice-api/internal/service"
	"github.com/lexfirm/backoffice-api/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// @title Bufete Backoffice API
// @version 1.0
// @description Back office API for lawyers, clients, legal services, cases and commissions

// @host localhost:8080
// @BasePath /api/v1

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Basic configuration first so the logger can be built
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	if host := os.Getenv("SWAGGER_HOST"); host != "" {
		docs.SwaggerInfo.Host = host
	}

	// In staging/production the DB and storage credentials may come from Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("Error closing database", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("Database schema migrated")
	}

	var registry *prometheus.Registry
	if cfg.Server.EnableMetrics {
		registry, err = metrics.NewRegistry()
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	queryCache, err := cache.New(cfg.Cache.Size, log)
	if err != nil {
		return fmt.Errorf("failed to create query cache: %w", err)
	}

	location := cfg.App.Location()

	// Repositories
	gw := repository.NewGateway(db)
	lawyerRepo := repository.NewLawyerRepository(gw)
	clientRepo := repository.NewClientRepository(gw)
	legalServiceRepo := repository.NewLegalServiceRepository(gw)
	caseRepo := repository.NewCaseRepository(gw)
	numberSequenceRepo := repository.NewNumberSequenceRepository(db)
	settingsRepo := repository.NewSettingsRepository(gw)

	// Services
	notificationService := service.NewNotificationService(cfg.Feed.Size, log)
	lawyerService := service.NewLawyerService(lawyerRepo, queryCache, notificationService, log)
	clientService := service.NewClientService(clientRepo, queryCache, notificationService, log)
	legalServiceService := service.NewLegalServiceService(legalServiceRepo, queryCache, notificationService, log)
	caseNumberService := service.NewCaseNumberService(numberSequenceRepo, location, log)
	caseService := service.NewCaseService(
		caseRepo,
		clientService,
		legalServiceService,
		lawyerService,
		caseNumberService,
		queryCache,
		notificationService,
		location,
		log,
	)
	commissionService := service.NewCommissionService(caseService, notificationService, log)
	dashboardService := service.NewDashboardService(caseService, lawyerService, clientService, location, log)
	settingsService := service.NewSettingsService(settingsRepo, queryCache, notificationService, log)
	reportService := service.NewReportService(dashboardService, log)

	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	rt := router.NewRouter(cfg, log, db, registry, rateLimiter, router.Handlers{
		Lawyers:       handler.NewLawyerHandler(lawyerService, log),
		Clients:       handler.NewClientHandler(clientService, log),
		Services:      handler.NewLegalServiceHandler(legalServiceService, log),
		Cases:         handler.NewCaseHandler(caseService, log),
		Dashboard:     handler.NewDashboardHandler(dashboardService, log),
		Finances:      handler.NewFinanceHandler(dashboardService, commissionService, reportService, log),
		Settings:      handler.NewSettingsHandler(settingsService, log),
		Notifications: handler.NewNotificationHandler(notificationService, log),
	})

	// Scheduled finance report archive
	var scheduler *jobs.Scheduler
	if cfg.Reports.Enabled {
		reportStorage, err := storage.NewStorage(&cfg.Storage, log)
		if err != nil {
			return fmt.Errorf("failed to initialize report storage: %w", err)
		}

		scheduler = jobs.NewScheduler(log)
		if _, err := jobs.RegisterFinanceReportJob(
			scheduler,
			reportService,
			reportStorage,
			service.ReportFilename,
			service.ReportContentType,
			log,
			cfg.Reports.Cron,
			cfg.Reports.TimeoutDuration(),
		); err != nil {
			return fmt.Errorf("failed to register finance report job: %w", err)
		}
		scheduler.Start()
		log.Info("Finance report job scheduled",
			zap.String("cron_expr", cfg.Reports.Cron),
			zap.String("storage_mode", cfg.Storage.Mode),
		)
	} else {
		log.Info("Finance report job disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	if scheduler != nil {
		<-scheduler.Stop().Done()
		log.Info("Scheduler stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shutdown gracefully", zap.Error(err))
		return err
	}

	log.Info("Server stopped gracefully")
	return nil
}
