package reorder

import (
	"math"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
)

const (
	// SafetyStockBufferDays is the extra coverage held beyond the supplier lead time.
	SafetyStockBufferDays = 5
	// FutureSalesCoverageDays is the horizon a reorder should cover from zero stock.
	FutureSalesCoverageDays = 60
	// DefaultSimulationMultiplier doubles the simulated product's sales rate.
	DefaultSimulationMultiplier = 2
	// MaxOrderQuantity caps a single suggestion so it always fits an int.
	MaxOrderQuantity = math.MaxInt32
)

// Reason labels why a report was produced.
type Reason string

const (
	ReasonLowStock    Reason = "Low Stock"
	ReasonDemandSpike Reason = "Demand Spike Simulation"
)

// Simulation describes an optional demand spike applied to one product.
type Simulation struct {
	Active     bool    `json:"active"`
	ProductID  string  `json:"product_id"`
	Multiplier float64 `json:"multiplier"`
}

// targets reports whether the simulation overrides the sales rate of p.
func (s Simulation) targets(p domain.Product) bool {
	return s.Active && p.ID == s.ProductID
}

// ReportEntry is one product that needs reordering.
type ReportEntry struct {
	ProductID   string             `json:"product_id"`
	ProductName string             `json:"product_name"`
	Criticality domain.Criticality `json:"criticality"`

	// Actual, non-simulated values
	CurrentStock      float64 `json:"current_stock"`
	AverageDailySales float64 `json:"average_daily_sales"`

	// Set only for the product targeted by an active simulation
	SimulatedAverageDailySales *float64 `json:"simulated_average_daily_sales"`

	DaysOfStockRemaining float64 `json:"days_of_stock_remaining"` // Effective rate, 2 decimals
	SuggestedQuantity    int     `json:"suggested_quantity"`
	EstimatedCost        float64 `json:"estimated_cost"` // 2 decimals
	Reason               Reason  `json:"reason"`
}

// CoverageView is the per-product row of the inventory listing.
type CoverageView struct {
	// nil when coverage is infinite (no sales)
	DaysOfStockRemaining *float64 `json:"days_of_stock_remaining"`
	NeedsReorder         bool     `json:"needs_reorder"`
}

// ReportSummary aggregates a report.
type ReportSummary struct {
	Items      int     `json:"items"`
	TotalUnits int     `json:"total_units"`
	TotalCost  float64 `json:"total_cost"`
}
