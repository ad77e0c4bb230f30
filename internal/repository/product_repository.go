// backend-go/internal/repository/product_repository.go
package repository

import (
	"context"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
)

// ProductRepository persists the product collection. List returns products in
// insertion order; Get and Delete return domain.ErrNotFound for unknown ids.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Save(ctx context.Context, product domain.Product) (domain.Product, error)
	SaveAll(ctx context.Context, products []domain.Product) error
	Delete(ctx context.Context, id string) error
}
