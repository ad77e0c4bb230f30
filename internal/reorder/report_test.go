package reorder

import (
	"testing"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "a", Name: "Alpha", CurrentStock: 10, AverageDailySales: 2, SupplierLeadTime: 3, MinimumReorderQuantity: 5, CostPerUnit: 1.5},
		{ID: "b", Name: "Bravo", CurrentStock: 500, AverageDailySales: 1, SupplierLeadTime: 2},
		{ID: "c", Name: "Charlie", CurrentStock: 3, AverageDailySales: 0, SupplierLeadTime: 10, CostPerUnit: 9},
		{ID: "p1", Name: "Spiky", CurrentStock: 20, AverageDailySales: 2, SupplierLeadTime: 2, CostPerUnit: 0.25},
		{ID: "d", Name: "Delta", CurrentStock: 1, AverageDailySales: 1, SupplierLeadTime: 1, CostPerUnit: 2.335},
	}
}

func TestGenerateReport_LowStockScenario(t *testing.T) {
	report := GenerateReport(sampleProducts()[:1], Simulation{})
	require.Len(t, report, 1)

	entry := report[0]
	assert.Equal(t, "a", entry.ProductID)
	assert.Equal(t, "Alpha", entry.ProductName)
	assert.Equal(t, 5.0, entry.DaysOfStockRemaining)
	assert.Equal(t, 110, entry.SuggestedQuantity)
	assert.Equal(t, 165.0, entry.EstimatedCost)
	assert.Equal(t, ReasonLowStock, entry.Reason)
	assert.Nil(t, entry.SimulatedAverageDailySales)
}

func TestGenerateReport_OmitsCoveredAndNonSellingProducts(t *testing.T) {
	report := GenerateReport(sampleProducts(), Simulation{})

	ids := make([]string, 0, len(report))
	for _, e := range report {
		ids = append(ids, e.ProductID)
	}
	// Bravo has 500 days of cover, Charlie never sells, Spiky has 10 days against a 7 day threshold
	assert.Equal(t, []string{"a", "d"}, ids)
}

func TestGenerateReport_NoSimulationNeverLabelsSpike(t *testing.T) {
	for _, e := range GenerateReport(sampleProducts(), Simulation{ProductID: "p1", Multiplier: 5}) {
		assert.Equal(t, ReasonLowStock, e.Reason)
		assert.Nil(t, e.SimulatedAverageDailySales)
	}
}

func TestGenerateReport_DemandSpikeScenario(t *testing.T) {
	products := sampleProducts()
	report := GenerateReport(products, Simulation{Active: true, ProductID: "p1", Multiplier: 5})
	require.Len(t, report, 3)

	byID := make(map[string]ReportEntry, len(report))
	for _, e := range report {
		byID[e.ProductID] = e
		// Every entry carries the report-wide label
		assert.Equal(t, ReasonDemandSpike, e.Reason)
	}

	spiky, ok := byID["p1"]
	require.True(t, ok)
	require.NotNil(t, spiky.SimulatedAverageDailySales)
	assert.Equal(t, 10.0, *spiky.SimulatedAverageDailySales)
	assert.Equal(t, 2.0, spiky.AverageDailySales)
	assert.Equal(t, 2.0, spiky.DaysOfStockRemaining)
	assert.Equal(t, 580, spiky.SuggestedQuantity)
	assert.Equal(t, 145.0, spiky.EstimatedCost)

	alpha := byID["a"]
	assert.Nil(t, alpha.SimulatedAverageDailySales)
	assert.Equal(t, 110, alpha.SuggestedQuantity)

	// Input slice untouched
	assert.Equal(t, 2.0, products[3].AverageDailySales)
}

func TestGenerateReport_UnknownSimulatedProduct(t *testing.T) {
	base := GenerateReport(sampleProducts(), Simulation{})
	sim := GenerateReport(sampleProducts(), Simulation{Active: true, ProductID: "missing", Multiplier: 3})

	require.Len(t, sim, len(base))
	for i := range sim {
		assert.Equal(t, base[i].SuggestedQuantity, sim[i].SuggestedQuantity)
		assert.Equal(t, ReasonDemandSpike, sim[i].Reason)
	}
}

func TestGenerateReport_Idempotent(t *testing.T) {
	sim := Simulation{Active: true, ProductID: "p1", Multiplier: 2}
	assert.Equal(t, GenerateReport(sampleProducts(), sim), GenerateReport(sampleProducts(), sim))
}

func TestGenerateReport_EmptyInput(t *testing.T) {
	report := GenerateReport(nil, Simulation{})
	assert.NotNil(t, report)
	assert.Empty(t, report)
}

func TestGenerateReport_RoundsCostAndCoverage(t *testing.T) {
	report := GenerateReport(sampleProducts()[4:], Simulation{})
	require.Len(t, report, 1)

	// 59 units at 2.335
	assert.Equal(t, 59, report[0].SuggestedQuantity)
	assert.Equal(t, 137.77, report[0].EstimatedCost)
	assert.Equal(t, 1.0, report[0].DaysOfStockRemaining)
}

func TestSummarize(t *testing.T) {
	report := GenerateReport(sampleProducts(), Simulation{})
	summary := Summarize(report)

	assert.Equal(t, 2, summary.Items)
	assert.Equal(t, 169, summary.TotalUnits)
	assert.Equal(t, 302.77, summary.TotalCost)

	assert.Equal(t, ReportSummary{}, Summarize(nil))
}

func TestGenerateReport_HugeSimulationStaysNonNegative(t *testing.T) {
	products := []domain.Product{{ID: "x", Name: "Bulk", CurrentStock: 1, AverageDailySales: 1000, CostPerUnit: 1}}

	report := GenerateReport(products, Simulation{Active: true, ProductID: "x", Multiplier: 1e17})
	require.Len(t, report, 1)
	assert.Equal(t, MaxOrderQuantity, report[0].SuggestedQuantity)
	assert.Equal(t, float64(MaxOrderQuantity), report[0].EstimatedCost)
}
