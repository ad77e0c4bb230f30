package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/repository"
)

type productRepository struct {
	mu       sync.RWMutex
	order    []string
	products map[string]domain.Product
	now      func() time.Time
}

// NewProductRepository returns an in-process repository, used when no database is configured.
func NewProductRepository() repository.ProductRepository {
	return &productRepository{
		products: make(map[string]domain.Product),
		now:      time.Now,
	}
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, r.products[id])
	}
	return products, nil
}

func (r *productRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func (r *productRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.saveLocked(product)
}

func (r *productRepository) SaveAll(ctx context.Context, products []domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range products {
		if _, err := r.saveLocked(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *productRepository) saveLocked(product domain.Product) (domain.Product, error) {
	if product.ID == "" {
		return domain.Product{}, fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}

	now := r.now()
	if existing, ok := r.products[product.ID]; ok {
		product.CreatedAt = existing.CreatedAt
	} else {
		product.CreatedAt = now
		r.order = append(r.order, product.ID)
	}
	product.UpdatedAt = now

	r.products[product.ID] = product
	return product, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}

	delete(r.products, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
