package export

import (
	"fmt"
	"time"

	"github.com/patungan-app/backend/internal/currency"
	"github.com/patungan-app/backend/internal/split"
)

// SummaryPayload is the backend submission format: enough structure for
// the receiving service to reconstruct who owes what for which item.
// Numeric item fields are strings by contract with that service.
type SummaryPayload struct {
	Items                  []PayloadItem          `json:"items"`
	StoreInformation       StoreInformation       `json:"store_information"`
	Totals                 PayloadTotals          `json:"totals"`
	TransactionInformation TransactionInformation `json:"transaction_information"`
}

// PayloadItem is an original receipt item with its owners.
type PayloadItem struct {
	Name     string         `json:"name"`
	Price    string         `json:"price"`
	Quantity string         `json:"quantity"`
	Total    string         `json:"total"`
	Owners   []PayloadOwner `json:"owners"`
}

// PayloadOwner is one person's claim on an item.
type PayloadOwner struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Tax      int64  `json:"tax"`
	Total    string `json:"total"`
}

// StoreInformation carries receipt store metadata. Fields the OCR
// collaborator did not supply default to "-".
type StoreInformation struct {
	StoreName   string `json:"store_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Npwp        string `json:"npwp"`
	Address     string `json:"address"`
}

// PayloadTotals aggregates the money fields of the submission.
type PayloadTotals struct {
	Change               float64              `json:"change"`
	Discount             float64              `json:"discount"`
	Payment              float64              `json:"payment"`
	Subtotal             float64              `json:"subtotal"`
	AdditionalComponents AdditionalComponents `json:"additional_components"`
	Total                float64              `json:"total"`
}

// AdditionalComponents breaks out the proportional charges. Dpp is the
// charge base (the items subtotal).
type AdditionalComponents struct {
	ServiceCharge   float64 `json:"service_charge"`
	Dpp             float64 `json:"dpp"`
	TaxAmount       float64 `json:"tax_amount"`
	TotalAdditional float64 `json:"total_additional"`
}

// TransactionInformation identifies the submission.
type TransactionInformation struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	OcrID string `json:"ocr_id"`
}

// BuildSummaryPayload assembles the backend submission from the receipt,
// the allocated people, and the current assignment map. Each item lists
// its owners with their share quantity, share cost, and rounded share of
// the charge pool attributable to the item.
func BuildSummaryPayload(receipt split.ReceiptData, people []split.Person, assignments split.Assignments, now time.Time) SummaryPayload {
	itemsSubtotal := receipt.ItemsSubtotal()
	chargeTotal := receipt.ChargeTotal()

	// Charge attributable to one unit of subtotal; guarded for empty receipts.
	var chargeRate float64
	if itemsSubtotal != 0 {
		chargeRate = chargeTotal / itemsSubtotal
	}

	byID := make(map[string]split.Person, len(people))
	for _, p := range people {
		byID[p.ID] = p
	}

	items := make([]PayloadItem, len(receipt.Items))
	for i, item := range receipt.Items {
		assignees := assignments.Assignees(item.ID)

		owners := make([]PayloadOwner, 0, len(assignees))
		if n := float64(len(assignees)); n > 0 {
			shareCost := item.Cost() / n
			shareQuantity := item.Quantity / n
			ownerTax := currency.Round(item.Cost() * chargeRate / n)
			for _, personID := range assignees {
				p, ok := byID[personID]
				if !ok {
					continue
				}
				owners = append(owners, PayloadOwner{
					Name:     p.Name,
					Quantity: formatNumber(shareQuantity),
					Tax:      ownerTax,
					Total:    formatNumber(shareCost),
				})
			}
		}

		items[i] = PayloadItem{
			Name:     item.Name,
			Price:    formatNumber(item.Price),
			Quantity: formatNumber(item.Quantity),
			Total:    formatNumber(item.Cost()),
			Owners:   owners,
		}
	}

	totalValue := itemsSubtotal + chargeTotal

	return SummaryPayload{
		Items: items,
		StoreInformation: StoreInformation{
			StoreName:   storeName(receipt.Restaurant),
			Email:       "-",
			PhoneNumber: "-",
			Npwp:        "-",
			Address:     "-",
		},
		Totals: PayloadTotals{
			Payment:  totalValue,
			Subtotal: itemsSubtotal,
			AdditionalComponents: AdditionalComponents{
				ServiceCharge:   receipt.ChargeAmount(split.ChargeService),
				Dpp:             itemsSubtotal,
				TaxAmount:       receipt.ChargeAmount(split.ChargeTax),
				TotalAdditional: chargeTotal,
			},
			Total: totalValue,
		},
		TransactionInformation: TransactionInformation{
			Date:  now.UTC().Format("2006-01-02"),
			Time:  now.UTC().Format("15:04:05"),
			OcrID: fmt.Sprintf("AUTO-%d", now.UnixMilli()),
		},
	}
}

func storeName(restaurant string) string {
	if restaurant == "" {
		return "Unknown Store"
	}
	return restaurant
}
