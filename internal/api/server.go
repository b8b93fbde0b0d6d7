package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/amaumene/catarr/internal/api/handlers"
	"github.com/amaumene/catarr/internal/api/middleware"
	"github.com/amaumene/catarr/internal/auth"
	"github.com/amaumene/catarr/internal/config"
	"github.com/amaumene/catarr/internal/controllers"
	"github.com/amaumene/catarr/internal/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	server       *http.Server
	db           *models.Database
	authSvc      *auth.Service
	catalogCtrl  *controllers.CatalogController
	draftCtrl    *controllers.DraftController
	settingsCtrl *controllers.SettingsController
	seedCtrl     *controllers.SeedController
	logger       *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.Config,
	db *models.Database,
	authSvc *auth.Service,
	catalogCtrl *controllers.CatalogController,
	draftCtrl *controllers.DraftController,
	settingsCtrl *controllers.SettingsController,
	seedCtrl *controllers.SeedController,
	logger *logrus.Logger,
) *Server {
	s := &Server{
		db:           db,
		authSvc:      authSvc,
		catalogCtrl:  catalogCtrl,
		draftCtrl:    draftCtrl,
		settingsCtrl: settingsCtrl,
		seedCtrl:     seedCtrl,
		logger:       logger,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux, cfg)

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.Logging(middleware.Metrics(mux), logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux, cfg *config.Config) {
	// Health check and metrics
	healthHandler := handlers.NewHealthHandler(s.logger)
	mux.Handle("GET /health", healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Status endpoint
	statusHandler := handlers.NewStatusHandler(s.db, s.logger)
	mux.Handle("GET /status", statusHandler)

	// Auth
	authHandler := handlers.NewAuthHandler(s.authSvc, s.draftCtrl, s.logger)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.Handle("POST /api/logout", s.protected(authHandler.Logout))

	// Catalog records
	recordsHandler := handlers.NewRecordsHandler(s.catalogCtrl, cfg.ListLimit, s.logger)
	mux.Handle("GET /api/records", s.protected(recordsHandler.List))
	mux.Handle("POST /api/records", s.protected(recordsHandler.Create))
	mux.Handle("GET /api/records/{id}", s.protected(recordsHandler.Get))
	mux.Handle("PUT /api/records/{id}", s.protected(recordsHandler.Update))
	mux.Handle("DELETE /api/records/{id}", s.protected(recordsHandler.Delete))

	// Draft session
	draftHandler := handlers.NewDraftHandler(s.draftCtrl, s.logger)
	mux.Handle("GET /api/draft", s.protected(draftHandler.Get))
	mux.Handle("PUT /api/draft/fields", s.protected(draftHandler.SetFields))
	mux.Handle("POST /api/draft/episodes", s.protected(draftHandler.AddEpisode))
	mux.Handle("DELETE /api/draft/episodes/{id}", s.protected(draftHandler.RemoveEpisode))
	mux.Handle("POST /api/draft/reset", s.protected(draftHandler.Reset))
	mux.Handle("POST /api/draft/load/{id}", s.protected(draftHandler.Load))
	mux.Handle("POST /api/draft/publish", s.protected(draftHandler.Publish))

	// Settings
	settingsHandler := handlers.NewSettingsHandler(s.settingsCtrl, s.logger)
	mux.Handle("GET /api/settings", s.protected(settingsHandler.Get))
	mux.Handle("PUT /api/settings", s.protected(settingsHandler.Put))

	// Demo data seeding
	seedHandler := handlers.NewSeedHandler(s.seedCtrl, s.logger)
	mux.Handle("POST /api/seed", s.protected(seedHandler.Seed))
}

// protected wraps a handler with the session check
func (s *Server) protected(fn http.HandlerFunc) http.Handler {
	return middleware.RequireSession(fn, s.authSvc)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
