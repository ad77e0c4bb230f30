// backend-go/internal/repository/postgres/product_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/repository"
	"github.com/jmoiron/sqlx"
)

const productColumns = `
	id, name, current_stock, average_daily_sales, supplier_lead_time,
	minimum_reorder_quantity, cost_per_unit, criticality, created_at, updated_at`

const upsertProductQuery = `
	INSERT INTO products (
		id, name, current_stock, average_daily_sales, supplier_lead_time,
		minimum_reorder_quantity, cost_per_unit, criticality
	) VALUES (
		:id, :name, :current_stock, :average_daily_sales, :supplier_lead_time,
		:minimum_reorder_quantity, :cost_per_unit, :criticality
	)
	ON CONFLICT (id)
	DO UPDATE SET
		name = EXCLUDED.name,
		current_stock = EXCLUDED.current_stock,
		average_daily_sales = EXCLUDED.average_daily_sales,
		supplier_lead_time = EXCLUDED.supplier_lead_time,
		minimum_reorder_quantity = EXCLUDED.minimum_reorder_quantity,
		cost_per_unit = EXCLUDED.cost_per_unit,
		criticality = EXCLUDED.criticality,
		updated_at = NOW()
	RETURNING` + productColumns

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT` + productColumns + ` FROM products ORDER BY position`

	products := make([]domain.Product, 0)
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	return products, nil
}

func (r *productRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE id = $1`

	var p domain.Product
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("error getting product %s: %w", id, err)
	}
	return p, nil
}

func (r *productRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	var saved domain.Product
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		saved, err = upsertProduct(ctx, tx, product)
		return err
	})
	return saved, err
}

func (r *productRepository) SaveAll(ctx context.Context, products []domain.Product) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, p := range products {
			if _, err := upsertProduct(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting product %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting product %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func upsertProduct(ctx context.Context, tx *sqlx.Tx, product domain.Product) (domain.Product, error) {
	if product.ID == "" {
		return domain.Product{}, fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}

	rows, err := sqlx.NamedQueryContext(ctx, tx, upsertProductQuery, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("error saving product %s: %w", product.ID, err)
	}
	defer rows.Close()

	var saved domain.Product
	if rows.Next() {
		if err := rows.StructScan(&saved); err != nil {
			return domain.Product{}, fmt.Errorf("error scanning product %s: %w", product.ID, err)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("error saving product %s: %w", product.ID, err)
	}
	return saved, nil
}
