// backend-go/internal/domain/models.go
package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// MaxQuantity bounds every numeric product field so sales projections stay
// far inside integer range.
const MaxQuantity = 1e9

// Product is a validated inventory record. Build it with NewProduct so that the
// non-negativity invariants hold everywhere downstream.
type Product struct {
	ID                     string      `json:"id" db:"id"`
	Name                   string      `json:"name" db:"name"`
	CurrentStock           float64     `json:"current_stock" db:"current_stock"`
	AverageDailySales      float64     `json:"average_daily_sales" db:"average_daily_sales"`
	SupplierLeadTime       float64     `json:"supplier_lead_time" db:"supplier_lead_time"`
	MinimumReorderQuantity float64     `json:"minimum_reorder_quantity" db:"minimum_reorder_quantity"`
	CostPerUnit            float64     `json:"cost_per_unit" db:"cost_per_unit"`
	Criticality            Criticality `json:"criticality" db:"criticality"`
	CreatedAt              time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time   `json:"updated_at" db:"updated_at"`
}

// ProductInput is the raw shape accepted from hosts (HTTP, CSV, Drive).
type ProductInput struct {
	ID                     string  `json:"id,omitempty"`
	Name                   string  `json:"name"`
	CurrentStock           float64 `json:"current_stock"`
	AverageDailySales      float64 `json:"average_daily_sales"`
	SupplierLeadTime       float64 `json:"supplier_lead_time"`
	MinimumReorderQuantity float64 `json:"minimum_reorder_quantity"`
	CostPerUnit            float64 `json:"cost_per_unit"`
	Criticality            string  `json:"criticality"`
}

// NewProduct validates input once at the boundary.
func NewProduct(in ProductInput) (Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Product{}, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}

	numeric := []struct {
		field string
		value float64
	}{
		{"current_stock", in.CurrentStock},
		{"average_daily_sales", in.AverageDailySales},
		{"supplier_lead_time", in.SupplierLeadTime},
		{"minimum_reorder_quantity", in.MinimumReorderQuantity},
		{"cost_per_unit", in.CostPerUnit},
	}
	for _, n := range numeric {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return Product{}, fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, n.field)
		}
		if n.value < 0 {
			return Product{}, fmt.Errorf("%w: %s must be non-negative", ErrInvalidInput, n.field)
		}
		if n.value > MaxQuantity {
			return Product{}, fmt.Errorf("%w: %s must not exceed %g", ErrInvalidInput, n.field, MaxQuantity)
		}
	}

	criticality, err := ParseCriticality(in.Criticality)
	if err != nil {
		return Product{}, err
	}

	return Product{
		ID:                     strings.TrimSpace(in.ID),
		Name:                   name,
		CurrentStock:           in.CurrentStock,
		AverageDailySales:      in.AverageDailySales,
		SupplierLeadTime:       in.SupplierLeadTime,
		MinimumReorderQuantity: in.MinimumReorderQuantity,
		CostPerUnit:            in.CostPerUnit,
		Criticality:            criticality,
	}, nil
}

// WithID returns a copy of p carrying the given id.
func (p Product) WithID(id string) Product {
	p.ID = id
	return p
}
