// Package split implements the receipt split engine: assigning line items
// (possibly shared) to people, allocating item shares, and distributing
// proportional charges such as tax and service charge.
//
// Every function in this package is a pure computation over its inputs.
// There is no I/O and no shared state; callers re-invoke the engine from
// scratch on every assignment change.
package split

// Well-known proportional charge names. The engine itself does not care
// about the name; these exist so collaborators agree on spelling.
const (
	ChargeTax     = "tax"
	ChargeService = "service_charge"
)

// MenuItem is a line item on a receipt. Inside a Person it represents that
// person's share of an original item: Price holds the share cost and
// Quantity the fractional portion, not the original values.
type MenuItem struct {
	// ID is unique within a receipt.
	ID string

	// Name is the item description (e.g., "Nasi Goreng").
	Name string

	// Price is the unit price in currency units.
	Price float64

	// Quantity is the number of units; must be > 0 on an original item.
	Quantity float64
}

// Cost returns Price × Quantity, the full cost of the line.
func (m MenuItem) Cost() float64 {
	return m.Price * m.Quantity
}

// Person is one participant in a split session.
type Person struct {
	// ID is unique within a split session.
	ID string

	// Name is unique (case-insensitive) within the session.
	Name string

	// Items holds this person's shares of assigned items, one synthesized
	// entry per assignment. Populated by Allocate.
	Items []MenuItem

	// Total is the sum of this person's item-share costs, excluding
	// charges. Populated by Allocate.
	Total float64
}

// Charge is a named amount distributed across people in proportion to
// their share of the item subtotal.
type Charge struct {
	Name   string
	Amount float64
}

// ReceiptData is a normalized receipt as produced by the OCR collaborator
// and edited by the user.
type ReceiptData struct {
	// Restaurant is the store name on the receipt.
	Restaurant string

	// Items are the original, unsplit line items.
	Items []MenuItem

	// Subtotal is the stated pre-charge amount.
	Subtotal float64

	// Charges are the proportional additions (tax, service charge, ...).
	Charges []Charge

	// Total is the stated final amount. Validated, not enforced, to be
	// Subtotal plus the sum of Charges within rounding tolerance.
	Total float64
}

// NewReceipt builds a ReceiptData with the conventional tax and service
// charge entries. Zero-valued charges are still recorded so breakdowns
// keep a stable shape.
func NewReceipt(restaurant string, items []MenuItem, subtotal, taxTotal, serviceCharge, total float64) ReceiptData {
	return ReceiptData{
		Restaurant: restaurant,
		Items:      items,
		Subtotal:   subtotal,
		Charges: []Charge{
			{Name: ChargeTax, Amount: taxTotal},
			{Name: ChargeService, Amount: serviceCharge},
		},
		Total: total,
	}
}

// ChargeTotal returns the sum of all proportional charges.
func (r ReceiptData) ChargeTotal() float64 {
	var sum float64
	for _, c := range r.Charges {
		sum += c.Amount
	}
	return sum
}

// ChargeAmount returns the amount of the named charge, or 0 if absent.
func (r ReceiptData) ChargeAmount(name string) float64 {
	for _, c := range r.Charges {
		if c.Name == name {
			return c.Amount
		}
	}
	return 0
}

// ItemsSubtotal returns the sum of Cost over all original items. This can
// differ from the stated Subtotal on a malformed receipt; validation
// reports the discrepancy.
func (r ReceiptData) ItemsSubtotal() float64 {
	var sum float64
	for _, item := range r.Items {
		sum += item.Cost()
	}
	return sum
}

// ChargeShare is one person's portion of a named charge.
type ChargeShare struct {
	Name   string
	Amount float64
}

// PersonBreakdown is the derived per-person view of a calculation.
type PersonBreakdown struct {
	Person Person

	// Subtotal is the person's pre-charge total (Person.Total).
	Subtotal float64

	// ChargeShares holds the person's portion of each receipt charge,
	// in receipt order.
	ChargeShares []ChargeShare

	// TaxAmount is the person's combined share of the proportional
	// charge pool (tax plus service charge and any other charges).
	TaxAmount float64

	// Total is Subtotal + TaxAmount.
	Total float64

	// Items are the person's item shares.
	Items []MenuItem
}

// SplitCalculation is the full derived output of a split. It is ephemeral:
// recomputed on every assignment change and discarded after use.
type SplitCalculation struct {
	Subtotal           float64
	Tax                float64
	Total              float64
	PerPersonBreakdown []PersonBreakdown
}
