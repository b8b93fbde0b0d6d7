package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/amaumene/catarr/internal/api"
	"github.com/amaumene/catarr/internal/auth"
	"github.com/amaumene/catarr/internal/config"
	"github.com/amaumene/catarr/internal/controllers"
	"github.com/amaumene/catarr/internal/models"
	"github.com/amaumene/catarr/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting Catarr")
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Info("Configuration loaded")

	// 3. Initialize database
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.Info("Database initialized")

	// 4. Initialize auth
	credStore := auth.NewFileCredentialStore(cfg.CredentialFile)
	created, err := auth.Bootstrap(credStore, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to bootstrap credentials: %w", err)
	}
	if created {
		logger.WithField("username", cfg.AdminUsername).Info("Operator account created")
	}

	authSvc := auth.NewService(credStore, time.Duration(cfg.SessionTTLMinutes)*time.Minute, logger)
	logger.Info("Auth service initialized")

	// 5. Initialize controllers
	catalogCtrl := controllers.NewCatalogController(db, logger)
	draftCtrl := controllers.NewDraftController(catalogCtrl, logger)
	settingsCtrl := controllers.NewSettingsController(db, logger)
	seedCtrl := controllers.NewSeedController(db, logger)
	logger.Info("Controllers initialized")

	// Log session changes for the lifetime of the console
	authSvc.Observe(func(session *auth.Session) {
		if session != nil {
			logger.WithField("username", session.Username).Debug("Session opened")
		} else {
			logger.Debug("Session closed")
		}
	})

	// 6. Initialize HTTP server
	server := api.NewServer(cfg, db, authSvc, catalogCtrl, draftCtrl, settingsCtrl, seedCtrl, logger)

	// Start server in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 7. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("Catarr is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("Catarr stopped")
	return nil
}
