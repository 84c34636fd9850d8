package split

// Calculate computes the full split for people that already carry their
// allocated subtotal (see Allocate). Each receipt charge is distributed
// independently, proportional to the person's share of the combined
// subtotal: share = charge × personTotal / Σ personTotal.
//
// Degenerate inputs never error: with no people, or with every subtotal at
// zero, all charge shares are zero and the result is well-typed.
func Calculate(receipt ReceiptData, people []Person) SplitCalculation {
	var totalSubtotal float64
	for _, p := range people {
		totalSubtotal += p.Total
	}

	breakdowns := make([]PersonBreakdown, len(people))
	var subtotal, tax float64
	for i, p := range people {
		b := PersonBreakdown{
			Person:       p,
			Subtotal:     p.Total,
			ChargeShares: make([]ChargeShare, len(receipt.Charges)),
			Items:        p.Items,
		}
		for j, c := range receipt.Charges {
			var amount float64
			if totalSubtotal != 0 {
				amount = c.Amount * p.Total / totalSubtotal
			}
			b.ChargeShares[j] = ChargeShare{Name: c.Name, Amount: amount}
			b.TaxAmount += amount
		}
		b.Total = b.Subtotal + b.TaxAmount

		subtotal += b.Subtotal
		tax += b.TaxAmount
		breakdowns[i] = b
	}

	return SplitCalculation{
		Subtotal:           subtotal,
		Tax:                tax,
		Total:              subtotal + tax,
		PerPersonBreakdown: breakdowns,
	}
}
