// Package export turns computed splits into consumer-facing shapes:
// human-readable payment instructions, a shareable summary, and the
// backend submission payload. It is pure presentation; no split math
// happens here beyond string and payload construction.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/patungan-app/backend/internal/currency"
	"github.com/patungan-app/backend/internal/split"
)

// PaymentInstructions renders one line per person: the rounded amount owed
// and the list of item shares, e.g.
//
//	Alice: Rp 27.500 - Nasi Goreng (1x), Es Teh (0.5x)
func PaymentInstructions(calc split.SplitCalculation) []string {
	lines := make([]string, len(calc.PerPersonBreakdown))
	for i, b := range calc.PerPersonBreakdown {
		shares := make([]string, len(b.Items))
		for j, item := range b.Items {
			shares[j] = fmt.Sprintf("%s (%sx)", item.Name, formatNumber(item.Quantity))
		}
		lines[i] = fmt.Sprintf("%s: %s - %s",
			b.Person.Name, currency.Format(b.Total), strings.Join(shares, ", "))
	}
	return lines
}

// ExportData is the shareable summary of a finished split.
type ExportData struct {
	Restaurant          string         `json:"restaurant"`
	Date                string         `json:"date"`
	Summary             ExportSummary  `json:"summary"`
	Breakdown           []ExportPerson `json:"breakdown"`
	PaymentInstructions []string       `json:"paymentInstructions"`
}

// ExportSummary carries the headline numbers.
type ExportSummary struct {
	TotalBill        float64 `json:"totalBill"`
	TotalPeople      int     `json:"totalPeople"`
	AveragePerPerson float64 `json:"averagePerPerson"`
}

// ExportPerson is one person's slice of the shareable summary.
type ExportPerson struct {
	Name     string       `json:"name"`
	Items    []ExportItem `json:"items"`
	Subtotal float64      `json:"subtotal"`
	Tax      float64      `json:"tax"`
	Total    float64      `json:"total"`
}

// ExportItem is an item share inside an ExportPerson.
type ExportItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// BuildExportData assembles the shareable summary from a receipt and its
// calculation. The timestamp is injected so output is deterministic.
func BuildExportData(receipt split.ReceiptData, calc split.SplitCalculation, now time.Time) ExportData {
	stats := split.Summarize(calc, len(receipt.Items))

	breakdown := make([]ExportPerson, len(calc.PerPersonBreakdown))
	for i, b := range calc.PerPersonBreakdown {
		items := make([]ExportItem, len(b.Items))
		for j, item := range b.Items {
			items[j] = ExportItem{Name: item.Name, Quantity: item.Quantity, Price: item.Price}
		}
		breakdown[i] = ExportPerson{
			Name:     b.Person.Name,
			Items:    items,
			Subtotal: b.Subtotal,
			Tax:      b.TaxAmount,
			Total:    b.Total,
		}
	}

	return ExportData{
		Restaurant: receipt.Restaurant,
		Date:       now.UTC().Format(time.RFC3339),
		Summary: ExportSummary{
			TotalBill:        calc.Total,
			TotalPeople:      stats.TotalPeople,
			AveragePerPerson: stats.AveragePerPerson,
		},
		Breakdown:           breakdown,
		PaymentInstructions: PaymentInstructions(calc),
	}
}

// formatNumber renders a float without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
