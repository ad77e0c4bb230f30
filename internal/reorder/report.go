package reorder

import (
	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

// GenerateReport returns an entry for every product that needs reordering, in
// input order. When sim is active, the targeted product is evaluated with its
// sales rate multiplied by sim.Multiplier. products is never modified.
func GenerateReport(products []domain.Product, sim Simulation) []ReportEntry {
	reason := ReasonLowStock
	if sim.Active {
		// Report-wide label, also applied to products the simulation did not touch
		reason = ReasonDemandSpike
	}

	report := make([]ReportEntry, 0)
	for _, product := range products {
		simulated := sim.targets(product)

		// Working copy with the effective sales rate
		effective := product
		if simulated {
			effective.AverageDailySales = product.AverageDailySales * sim.Multiplier
		}

		if !NeedsReorder(effective) {
			continue
		}

		quantity := OptimalReorderQuantity(effective)
		entry := ReportEntry{
			ProductID:            product.ID,
			ProductName:          product.Name,
			Criticality:          product.Criticality,
			CurrentStock:         product.CurrentStock,
			AverageDailySales:    product.AverageDailySales,
			DaysOfStockRemaining: roundFloat(DaysOfStockRemaining(effective), 2),
			SuggestedQuantity:    quantity,
			EstimatedCost:        estimateCost(quantity, effective.CostPerUnit),
			Reason:               reason,
		}
		if simulated {
			rate := effective.AverageDailySales
			entry.SimulatedAverageDailySales = &rate
		}

		report = append(report, entry)
	}

	return report
}

// Summarize totals the units and cost of a report.
func Summarize(entries []ReportEntry) ReportSummary {
	total := decimal.Zero
	units := 0
	for _, e := range entries {
		total = total.Add(decimal.NewFromFloat(e.EstimatedCost))
		units += e.SuggestedQuantity
	}

	return ReportSummary{
		Items:      len(entries),
		TotalUnits: units,
		TotalCost:  total.Round(2).InexactFloat64(),
	}
}

func estimateCost(quantity int, costPerUnit float64) float64 {
	cost := decimal.NewFromInt(int64(quantity)).Mul(decimal.NewFromFloat(costPerUnit))
	return cost.Round(2).InexactFloat64()
}
