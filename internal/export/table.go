package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/reorder"
)

// WriteReportTable renders entries as an aligned text table for terminals.
func WriteReportTable(w io.Writer, entries []reorder.ReportEntry, simulating bool) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No products currently need reordering.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if simulating {
		fmt.Fprintln(tw, "PRODUCT\tSTOCK\tAVG SALES\tSIMULATED\tDAYS LEFT\tQTY\tCOST\tREASON")
	} else {
		fmt.Fprintln(tw, "PRODUCT\tSTOCK\tAVG SALES\tDAYS LEFT\tQTY\tCOST\tREASON")
	}

	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t", e.ProductName, formatNumber(e.CurrentStock), formatNumber(e.AverageDailySales))
		if simulating {
			simulated := "N/A"
			if e.SimulatedAverageDailySales != nil {
				simulated = fmt.Sprintf("%.2f", *e.SimulatedAverageDailySales)
			}
			fmt.Fprintf(tw, "%s\t", simulated)
		}
		fmt.Fprintf(tw, "%s\t%d\t$%.2f\t%s\n", reorder.FormatDays(e.DaysOfStockRemaining), e.SuggestedQuantity, e.EstimatedCost, e.Reason)
	}

	summary := reorder.Summarize(entries)
	pad := "\t\t"
	if simulating {
		pad += "\t"
	}
	fmt.Fprintf(tw, "\nTOTAL\t%s%d items\t%d\t$%.2f\t\n", pad, summary.Items, summary.TotalUnits, summary.TotalCost)

	return tw.Flush()
}
