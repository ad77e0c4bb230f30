package reorder

import (
	"math"
	"strconv"
)

// roundFloat rounds v to the given number of decimal places.
func roundFloat(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}

	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// FormatDays renders a coverage value with 2 decimals, or "∞" for infinite coverage.
func FormatDays(days float64) string {
	if math.IsInf(days, 1) {
		return "∞"
	}
	return strconv.FormatFloat(days, 'f', 2, 64)
}
