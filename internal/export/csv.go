package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/reorder"
)

// WriteReportCSV writes entries as CSV. The simulated sales column is only
// present when simulating, with "N/A" for products the simulation did not target.
func WriteReportCSV(w io.Writer, entries []reorder.ReportEntry, simulating bool) error {
	writer := csv.NewWriter(w)

	header := []string{"Product ID", "Product Name", "Criticality", "Current Stock", "Avg. Daily Sales"}
	if simulating {
		header = append(header, "Simulated Sales")
	}
	header = append(header, "Days Stock Left", "Suggested Quantity", "Estimated Cost", "Reason")
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, e := range entries {
		record := []string{
			e.ProductID,
			e.ProductName,
			string(e.Criticality),
			formatNumber(e.CurrentStock),
			formatNumber(e.AverageDailySales),
		}
		if simulating {
			simulated := "N/A"
			if e.SimulatedAverageDailySales != nil {
				simulated = fmt.Sprintf("%.2f", *e.SimulatedAverageDailySales)
			}
			record = append(record, simulated)
		}
		record = append(record,
			reorder.FormatDays(e.DaysOfStockRemaining),
			strconv.Itoa(e.SuggestedQuantity),
			fmt.Sprintf("%.2f", e.EstimatedCost),
			string(e.Reason),
		)
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", e.ProductID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatNumber drops the fractional part for whole quantities.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
