// Package app wires repositories, cache, storage and services from config.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/cache"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/config"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/repository"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/repository/memory"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/service"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
)

type App struct {
	Products       repository.ProductRepository
	ProductService *service.ProductService
	ReportService  *service.ReportService

	closers []func() error
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	repo, err := a.openRepository(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	a.Products = repo

	reportCache, err := cache.NewReportCache(ctx, cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize report cache, continuing without cache")
		reportCache = cache.NewNoopReportCache()
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	if store == nil {
		log.Info().Msg("object storage disabled, report export unavailable")
		a.ReportService = service.NewReportService(repo, reportCache, nil, reportOptions(cfg))
	} else {
		a.ReportService = service.NewReportService(repo, reportCache, store, reportOptions(cfg))
	}
	a.ProductService = service.NewProductService(repo, reportCache)

	return a, nil
}

func reportOptions(cfg *config.Config) service.ReportOptions {
	return service.ReportOptions{
		DefaultMultiplier: cfg.App.DefaultSimulationMultiplier,
		ExportPrefix:      cfg.Storage.ExportPrefix,
	}
}

func (a *App) openRepository(ctx context.Context, cfg config.DatabaseConfig) (repository.ProductRepository, error) {
	if !cfg.Enabled {
		log.Info().Msg("database disabled, using in-memory product repository")
		return memory.NewProductRepository(), nil
	}

	db, err := postgres.NewDB(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.closers = append(a.closers, db.Close)

	if err := db.EnsureSchema(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return postgres.NewProductRepository(db), nil
}

// Close releases the database pool, if one was opened.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
