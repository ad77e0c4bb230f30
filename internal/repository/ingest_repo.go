package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
)

// IngestRepository bulk-loads products over a plain database/sql handle. The
// seed CLI opens it with the pgx stdlib driver.
type IngestRepository struct {
	db *sql.DB
}

func NewIngestRepository(db *sql.DB) *IngestRepository {
	return &IngestRepository{db: db}
}

// UpsertProducts writes all products in one transaction and returns how many rows were written.
func (r *IngestRepository) UpsertProducts(ctx context.Context, products []domain.Product) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (
			id, name, current_stock, average_daily_sales, supplier_lead_time,
			minimum_reorder_quantity, cost_per_unit, criticality, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
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
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.ExecContext(ctx,
			p.ID,
			p.Name,
			p.CurrentStock,
			p.AverageDailySales,
			p.SupplierLeadTime,
			p.MinimumReorderQuantity,
			p.CostPerUnit,
			string(p.Criticality),
		); err != nil {
			return 0, fmt.Errorf("failed to upsert product %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(products), nil
}
