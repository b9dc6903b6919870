package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rakatama/koperasi-admin/internal/infra/gateway/platform"
	infraRedis "github.com/rakatama/koperasi-admin/internal/infra/redis"
	"github.com/rakatama/koperasi-admin/internal/platform/coa"
	"github.com/rakatama/koperasi-admin/internal/platform/journal"
	"github.com/rakatama/koperasi-admin/internal/platform/notify"
	"github.com/rakatama/koperasi-admin/internal/platform/report"
	"github.com/rakatama/koperasi-admin/internal/platform/resource"
	"github.com/rakatama/koperasi-admin/internal/platform/session"
	"github.com/rakatama/koperasi-admin/internal/transport/httpapi"
	"github.com/rakatama/koperasi-admin/internal/transport/httpapi/handler"
	"github.com/rakatama/koperasi-admin/internal/transport/httpapi/middleware"
	"github.com/rakatama/koperasi-admin/pkg/config"
	"github.com/rakatama/koperasi-admin/pkg/logger"
)

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting back office API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Initialize Redis client for session and navigation state
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	// Test Redis connection
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("Redis connection established")

	store := infraRedis.NewStore(redisClient, log)

	// Initialize the platform API gateway
	gateway := platform.NewClient(cfg.PlatformAPIURL, log)
	log.Info("Platform gateway initialized", "base_url", cfg.PlatformAPIURL)

	// Initialize the notification bus shared by every mutating service
	bus := notify.NewBus()

	// Initialize services
	sessionSvc := session.NewService(store, gateway, cfg.SessionTTL, log)
	resourceCtrl := resource.NewController(gateway, bus, log)
	accountsSvc := coa.NewService(gateway, log)
	journalSvc := journal.NewService(gateway, bus, log)
	reportSvc := report.NewService(gateway, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(sessionSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	resourceHandler := handler.NewResourceHandler(resourceCtrl, log)
	accountsHandler := handler.NewAccountsHandler(accountsSvc)
	journalHandler := handler.NewJournalHandler(journalSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	notificationHandler := handler.NewNotificationHandler(bus)
	healthHandler := handler.NewHealthHandler(store)

	// Create HTTP router
	routerCfg := httpapi.Config{
		Logger:              log,
		AllowedOrigins:      cfg.AllowedOrigins,
		AuthHandler:         authHandler,
		SessionHandler:      sessionHandler,
		ResourceHandler:     resourceHandler,
		AccountsHandler:     accountsHandler,
		JournalHandler:      journalHandler,
		ReportHandler:       reportHandler,
		NotificationHandler: notificationHandler,
		HealthHandler:       healthHandler,
		SessionMiddleware:   middleware.SessionAuth(sessionSvc),
	}
	r := httpapi.NewRouter(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()
	log.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}
