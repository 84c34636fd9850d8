package split

import (
	"fmt"
	"math"
	"strings"
)

// Tolerances for reconciliation checks. Share quantities sum back to the
// original up to float error only, so the per-item check is tight; the
// subtotal check allows a cent of receipt rounding.
const (
	quantityTolerance = 1e-9
	amountTolerance   = 0.01
)

// ValidationResult reports business-rule violations as data. The engine
// never fails mid-calculation; callers decide whether a violation blocks
// progression.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

func newValidationResult(errs []string) ValidationResult {
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateAssignments performs a full diagnostic sweep over an allocated
// roster. It does not short-circuit: every violation found is reported.
//
// Two checks run. Per item, the quantity shares across all people must sum
// to the original quantity; a partially assigned or unassigned item is
// reported in "assigned/expected" form. Then the computed subtotal is
// reconciled against the receipt-stated subtotal within 0.01.
func ValidateAssignments(receipt ReceiptData, people []Person) ValidationResult {
	var errs []string

	for _, item := range receipt.Items {
		var assigned float64
		for _, p := range people {
			for _, share := range p.Items {
				if share.ID == item.ID {
					assigned += share.Quantity
				}
			}
		}
		if math.Abs(assigned-item.Quantity) > quantityTolerance {
			errs = append(errs, fmt.Sprintf("%s: %s/%s assigned",
				item.Name, formatQuantity(assigned), formatQuantity(item.Quantity)))
		}
	}

	var calculated float64
	for _, p := range people {
		calculated += p.Total
	}
	if math.Abs(calculated-receipt.Subtotal) > amountTolerance {
		errs = append(errs, fmt.Sprintf("subtotal mismatch: calculated %.2f, expected %.2f",
			calculated, receipt.Subtotal))
	}

	return newValidationResult(errs)
}

// ValidateReceiptData checks the shape of a receipt before it enters a
// session: required fields, positive amounts, and the soft invariant that
// total ≈ subtotal + charges within rounding tolerance.
func ValidateReceiptData(receipt ReceiptData) ValidationResult {
	var errs []string

	if strings.TrimSpace(receipt.Restaurant) == "" {
		errs = append(errs, "restaurant name is required")
	}
	if len(receipt.Items) == 0 {
		errs = append(errs, "at least one item is required")
	}
	if receipt.Subtotal <= 0 {
		errs = append(errs, "subtotal must be greater than 0")
	}
	for _, c := range receipt.Charges {
		if c.Amount < 0 {
			errs = append(errs, fmt.Sprintf("%s cannot be negative", c.Name))
		}
	}
	if math.Abs(receipt.Total-(receipt.Subtotal+receipt.ChargeTotal())) > amountTolerance {
		errs = append(errs, "total must equal subtotal plus charges")
	}

	for i, item := range receipt.Items {
		if strings.TrimSpace(item.Name) == "" {
			errs = append(errs, fmt.Sprintf("item %d: name is required", i+1))
		}
		if item.Price <= 0 {
			errs = append(errs, fmt.Sprintf("item %d: price must be greater than 0", i+1))
		}
		if item.Quantity <= 0 {
			errs = append(errs, fmt.Sprintf("item %d: quantity must be greater than 0", i+1))
		}
	}

	return newValidationResult(errs)
}

// formatQuantity renders a quantity without trailing zeros ("2", "0.5").
func formatQuantity(q float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", q), "0"), ".")
}
