// Package currency formats rupiah amounts for display. It is decoupled
// from the split engine: calculations stay in exact floats, formatting and
// rounding happen only here, at the presentation edge.
package currency

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// Format renders an amount as whole rupiah with locale grouping,
// e.g. Format(25000) == "Rp 25.000".
func Format(amount float64) string {
	return printer.Sprintf("Rp %d", Round(amount))
}

// Round rounds to the nearest whole currency unit.
func Round(amount float64) int64 {
	return int64(math.Round(amount))
}

// Percentage returns amount as a percentage of total, 0 when total is 0.
func Percentage(amount, total float64) float64 {
	if total == 0 {
		return 0
	}
	return amount / total * 100
}

// SplitEqually divides a whole-rupiah amount into n parts that sum exactly
// to the amount, spreading the remainder one unit at a time from the first
// part. Returns nil when n <= 0.
func SplitEqually(amount int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	base := amount / int64(n)
	remainder := amount % int64(n)

	parts := make([]int64, n)
	for i := range parts {
		parts[i] = base
		if int64(i) < remainder {
			parts[i]++
		}
	}
	return parts
}
