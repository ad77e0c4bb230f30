package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/cache"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/reorder"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ProductView is a product with its current coverage, as shown in the inventory listing.
type ProductView struct {
	domain.Product
	reorder.CoverageView
}

func newProductView(p domain.Product) ProductView {
	return ProductView{Product: p, CoverageView: reorder.Coverage(p)}
}

type ProductService struct {
	repo  repository.ProductRepository
	cache cache.ReportCache
	newID func() string
}

func NewProductService(repo repository.ProductRepository, cacheImpl cache.ReportCache) *ProductService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &ProductService{repo: repo, cache: cacheImpl, newID: uuid.NewString}
}

func (s *ProductService) List(ctx context.Context) ([]ProductView, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return views, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (ProductView, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return ProductView{}, err
	}
	return newProductView(p), nil
}

// Create validates and stores a new product. A caller-supplied id is kept when unused.
func (s *ProductService) Create(ctx context.Context, in domain.ProductInput) (ProductView, error) {
	p, err := domain.NewProduct(in)
	if err != nil {
		return ProductView{}, err
	}

	if p.ID == "" {
		p = p.WithID(s.newID())
	} else if _, err := s.repo.Get(ctx, p.ID); err == nil {
		return ProductView{}, fmt.Errorf("%w: product %s already exists", domain.ErrDuplicate, p.ID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return ProductView{}, err
	}

	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		return ProductView{}, err
	}
	s.invalidateReports(ctx)

	log.Info().Str("product_id", saved.ID).Msg("product added")
	return newProductView(saved), nil
}

func (s *ProductService) Update(ctx context.Context, id string, in domain.ProductInput) (ProductView, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return ProductView{}, err
	}

	p, err := domain.NewProduct(in)
	if err != nil {
		return ProductView{}, err
	}

	saved, err := s.repo.Save(ctx, p.WithID(id))
	if err != nil {
		return ProductView{}, err
	}
	s.invalidateReports(ctx)

	log.Info().Str("product_id", id).Msg("product updated")
	return newProductView(saved), nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx)

	log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// Import stores already validated products in one batch, assigning ids where missing.
func (s *ProductService) Import(ctx context.Context, products []domain.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	batch := make([]domain.Product, len(products))
	for i, p := range products {
		if p.ID == "" {
			p = p.WithID(s.newID())
		}
		batch[i] = p
	}

	if err := s.repo.SaveAll(ctx, batch); err != nil {
		return 0, fmt.Errorf("failed to import products: %w", err)
	}
	s.invalidateReports(ctx)

	log.Info().Int("count", len(batch)).Msg("products imported")
	return len(batch), nil
}

func (s *ProductService) invalidateReports(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("reorder report: cache invalidate failed")
	}
}
