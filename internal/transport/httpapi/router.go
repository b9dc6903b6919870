package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rakatama/koperasi-admin/internal/transport/httpapi/handler"
	"github.com/rakatama/koperasi-admin/internal/transport/httpapi/middleware"
	"github.com/rakatama/koperasi-admin/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger              *logger.Logger
	AllowedOrigins      []string
	AuthHandler         *handler.AuthHandler
	SessionHandler      *handler.SessionHandler
	ResourceHandler     *handler.ResourceHandler
	AccountsHandler     *handler.AccountsHandler
	JournalHandler      *handler.JournalHandler
	ReportHandler       *handler.ReportHandler
	NotificationHandler *handler.NotificationHandler
	HealthHandler       *handler.HealthHandler
	SessionMiddleware   func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit()) // Rate limiting: 100 req/s with burst of 20

	// Health check endpoints (no authentication required)
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)
	if cfg.HealthHandler != nil {
		r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public - no authentication required)
		if cfg.AuthHandler != nil {
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		// Protected routes (require a resolved session)
		if cfg.SessionMiddleware != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.SessionMiddleware)

				if cfg.AuthHandler != nil {
					r.Post("/auth/logout", cfg.AuthHandler.Logout)
				}

				// Navigation state routes
				if cfg.SessionHandler != nil {
					r.Get("/session", cfg.SessionHandler.GetState)
					r.Put("/session", cfg.SessionHandler.UpdateView)
					r.Put("/session/business-unit", cfg.SessionHandler.SelectBusinessUnit)
				}

				// Notification routes
				if cfg.NotificationHandler != nil {
					r.Get("/notifications", cfg.NotificationHandler.List)
					r.Delete("/notifications/{id}", cfg.NotificationHandler.Dismiss)
				}

				// Master data routes (generic, registry driven)
				if cfg.ResourceHandler != nil {
					r.Route("/resources/{resource}", func(r chi.Router) {
						r.Get("/", cfg.ResourceHandler.List)
						r.Post("/", cfg.ResourceHandler.Create)
						r.Get("/{id}", cfg.ResourceHandler.Get)
						r.Put("/{id}", cfg.ResourceHandler.Update)
						r.Delete("/{id}", cfg.ResourceHandler.Delete)
					})
				}

				// Chart of accounts routes
				if cfg.AccountsHandler != nil {
					r.Get("/accounts/tree", cfg.AccountsHandler.GetTree)
				}

				// Journal routes
				if cfg.JournalHandler != nil {
					r.Get("/journal-entries", cfg.JournalHandler.List)
					r.Post("/journal-entries", cfg.JournalHandler.Create)
					r.Delete("/journal-entries/{id}", cfg.JournalHandler.Delete)
				}

				// Report routes
				if cfg.ReportHandler != nil {
					r.Get("/reports/{kind}", cfg.ReportHandler.Generate)
				}
			})
		}
	})

	return r
}
