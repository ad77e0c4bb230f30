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

	"github.com/andresuchdata/smart-reorder/backend-go/internal/app"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/config"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/drive"
	"github.com/andresuchdata/smart-reorder/backend-go/pkg/logger"
	"github.com/gorilla/mux"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Setup(cfg.Server.LogLevel, cfg.Server.LogFormat)

	if !cfg.Database.Enabled {
		logger.Log.Fatal().Msg("importer requires DB_ENABLED=true so imports outlive the process")
	}
	if cfg.Drive.CredentialsJSON == "" {
		logger.Log.Fatal().Msg("GOOGLE_DRIVE_CREDENTIALS_JSON is required")
	}

	ctx := context.Background()

	// Initialize Google Drive service
	driveService, err := drive.NewService(ctx, cfg.Drive.CredentialsJSON)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize Google Drive service")
	}

	// Initialize repositories and services
	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	// Create router
	r := mux.NewRouter()

	// Register routes
	importer := drive.NewImporter(driveService, application.ProductService)
	drive.NewHandler(driveService, importer).RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: 5 * time.Minute,
	}

	go func() {
		logger.Log.Info().Str("addr", addr).Msg("Importer starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Failed to start importer")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("Importer forced to shutdown")
	}
}
