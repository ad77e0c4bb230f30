package reorder

import (
	"math"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
)

// DaysOfStockRemaining returns how many days current stock lasts at the current
// sales rate. A product that does not sell has infinite coverage.
func DaysOfStockRemaining(p domain.Product) float64 {
	if p.AverageDailySales <= 0 {
		return math.Inf(1)
	}
	return p.CurrentStock / p.AverageDailySales
}

// NeedsReorder reports whether coverage has fallen to lead time plus the safety buffer.
func NeedsReorder(p domain.Product) bool {
	threshold := p.SupplierLeadTime + SafetyStockBufferDays
	return DaysOfStockRemaining(p) <= threshold
}

// OptimalReorderQuantity returns the whole units to order so that stock covers
// FutureSalesCoverageDays of sales, never below the supplier minimum and never
// above MaxOrderQuantity.
func OptimalReorderQuantity(p domain.Product) int {
	// 1. Units needed to cover the horizon from zero stock
	neededForFutureSales := p.AverageDailySales * FutureSalesCoverageDays

	// 2. Shortfall against what is on hand
	quantityToOrder := math.Max(0, neededForFutureSales-p.CurrentStock)

	// 3. Supplier minimum wins, rounded up to a whole unit
	quantity := math.Ceil(math.Max(p.MinimumReorderQuantity, quantityToOrder))

	// 4. Clamp before converting
	if quantity > MaxOrderQuantity {
		return MaxOrderQuantity
	}
	return int(quantity)
}

// Coverage computes the inventory listing view for p.
func Coverage(p domain.Product) CoverageView {
	view := CoverageView{NeedsReorder: NeedsReorder(p)}
	if days := DaysOfStockRemaining(p); !math.IsInf(days, 1) {
		rounded := roundFloat(days, 2)
		view.DaysOfStockRemaining = &rounded
	}
	return view
}
