package split

// Stats summarizes a calculation for display.
type Stats struct {
	// TotalPeople is the number of people in the breakdown.
	TotalPeople int

	// TotalItems is the count of original receipt items, not per-person
	// shares. The calculation does not carry the receipt, so callers pass
	// the count in.
	TotalItems int

	AveragePerPerson float64
	HighestBill      float64
	LowestBill       float64
}

// Summarize derives summary statistics from a calculation. Every division
// is guarded: an empty breakdown yields zeroes across the board.
func Summarize(calc SplitCalculation, itemCount int) Stats {
	stats := Stats{
		TotalPeople: len(calc.PerPersonBreakdown),
		TotalItems:  itemCount,
	}
	if stats.TotalPeople == 0 {
		return stats
	}

	stats.AveragePerPerson = calc.Total / float64(stats.TotalPeople)
	stats.HighestBill = calc.PerPersonBreakdown[0].Total
	stats.LowestBill = calc.PerPersonBreakdown[0].Total
	for _, b := range calc.PerPersonBreakdown[1:] {
		if b.Total > stats.HighestBill {
			stats.HighestBill = b.Total
		}
		if b.Total < stats.LowestBill {
			stats.LowestBill = b.Total
		}
	}
	return stats
}
