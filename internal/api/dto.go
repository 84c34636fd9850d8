package api

import (
	"github.com/patungan-app/backend/internal/export"
	"github.com/patungan-app/backend/internal/models"
	"github.com/patungan-app/backend/internal/service"
	"github.com/patungan-app/backend/internal/split"
)

// Explicit request/response shapes: the engine's correctness depends on
// these being exact, so nothing duck-typed crosses the API boundary.

// ItemPayload is a receipt line item on the wire. In breakdown responses
// price and quantity hold the person's share, not the original values.
type ItemPayload struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// ReceiptPayload is the normalized receipt as the OCR collaborator
// produces it and the editing UI amends it.
type ReceiptPayload struct {
	Restaurant    string        `json:"restaurant"`
	Items         []ItemPayload `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	TaxTotal      float64       `json:"taxTotal"`
	ServiceCharge float64       `json:"serviceCharge"`
	Total         float64       `json:"total"`
}

func (r ReceiptPayload) toDomain() split.ReceiptData {
	items := make([]split.MenuItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = split.MenuItem(item)
	}
	return split.NewReceipt(r.Restaurant, items, r.Subtotal, r.TaxTotal, r.ServiceCharge, r.Total)
}

func receiptFromDomain(receipt split.ReceiptData) ReceiptPayload {
	return ReceiptPayload{
		Restaurant:    receipt.Restaurant,
		Items:         itemsFromDomain(receipt.Items),
		Subtotal:      receipt.Subtotal,
		TaxTotal:      receipt.ChargeAmount(split.ChargeTax),
		ServiceCharge: receipt.ChargeAmount(split.ChargeService),
		Total:         receipt.Total,
	}
}

func itemsFromDomain(items []split.MenuItem) []ItemPayload {
	out := make([]ItemPayload, len(items))
	for i, item := range items {
		out[i] = ItemPayload(item)
	}
	return out
}

// CreateSessionRequest opens a new split session.
type CreateSessionRequest struct {
	Receipt ReceiptPayload `json:"receipt" binding:"required"`
	People  []string       `json:"people" binding:"required"`
}

// PeopleRequest replaces the session roster.
type PeopleRequest struct {
	People []string `json:"people" binding:"required"`
}

// AssignmentsRequest replaces the full assignment map.
type AssignmentsRequest struct {
	Assignments map[string][]string `json:"assignments" binding:"required"`
}

// ToggleRequest flips one person on one item.
type ToggleRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	PersonID string `json:"personId" binding:"required"`
}

// PersonResponse is a roster entry with its allocated shares.
type PersonResponse struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Items []ItemPayload `json:"items"`
	Total float64       `json:"total"`
}

// ChargeShareResponse is one person's portion of a named charge.
type ChargeShareResponse struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// BreakdownResponse is the per-person slice of a calculation.
type BreakdownResponse struct {
	PersonID     string                `json:"personId"`
	Name         string                `json:"name"`
	Subtotal     float64               `json:"subtotal"`
	TaxAmount    float64               `json:"taxAmount"`
	ChargeShares []ChargeShareResponse `json:"chargeShares"`
	Total        float64               `json:"total"`
	Items        []ItemPayload         `json:"items"`
}

// CalculationResponse is the full derived split.
type CalculationResponse struct {
	Subtotal           float64             `json:"subtotal"`
	Tax                float64             `json:"tax"`
	Total              float64             `json:"total"`
	PerPersonBreakdown []BreakdownResponse `json:"perPersonBreakdown"`
}

// ValidationResponse reports reconciliation results.
type ValidationResponse struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// StatsResponse carries summary statistics.
type StatsResponse struct {
	TotalPeople      int     `json:"totalPeople"`
	TotalItems       int     `json:"totalItems"`
	AveragePerPerson float64 `json:"averagePerPerson"`
	HighestBill      float64 `json:"highestBill"`
	LowestBill       float64 `json:"lowestBill"`
}

// SessionResponse is the full session view returned by every read and
// mutation: stored inputs plus freshly recomputed derived state.
type SessionResponse struct {
	ID          string              `json:"id"`
	Receipt     ReceiptPayload      `json:"receipt"`
	People      []PersonResponse    `json:"people"`
	Assignments map[string][]string `json:"assignments"`
	Calculation CalculationResponse `json:"calculation"`
	Validation  ValidationResponse  `json:"validation"`
	Stats       StatsResponse       `json:"stats"`
	Complete    bool                `json:"complete"`
	CreatedAt   int64               `json:"createdAt"`
	UpdatedAt   int64               `json:"updatedAt"`
}

// SessionSummary is the list view of a session.
type SessionSummary struct {
	ID          string  `json:"id"`
	Restaurant  string  `json:"restaurant"`
	Total       float64 `json:"total"`
	PeopleCount int     `json:"peopleCount"`
	ItemCount   int     `json:"itemCount"`
	CreatedAt   int64   `json:"createdAt"`
}

// SummaryResponse bundles presentation outputs for the final step.
type SummaryResponse struct {
	Stats               StatsResponse     `json:"stats"`
	PaymentInstructions []string          `json:"paymentInstructions"`
	Export              export.ExportData `json:"export"`
}

// ErrorResponse is the error envelope. Details carries the individual
// validation messages when present.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func sessionResponse(view *service.SessionView) SessionResponse {
	people := make([]PersonResponse, len(view.People))
	for i, p := range view.People {
		people[i] = PersonResponse{
			ID:    p.ID,
			Name:  p.Name,
			Items: itemsFromDomain(p.Items),
			Total: p.Total,
		}
	}

	breakdowns := make([]BreakdownResponse, len(view.Calculation.PerPersonBreakdown))
	for i, b := range view.Calculation.PerPersonBreakdown {
		shares := make([]ChargeShareResponse, len(b.ChargeShares))
		for j, share := range b.ChargeShares {
			shares[j] = ChargeShareResponse(share)
		}
		breakdowns[i] = BreakdownResponse{
			PersonID:     b.Person.ID,
			Name:         b.Person.Name,
			Subtotal:     b.Subtotal,
			TaxAmount:    b.TaxAmount,
			ChargeShares: shares,
			Total:        b.Total,
			Items:        itemsFromDomain(b.Items),
		}
	}

	return SessionResponse{
		ID:          view.Session.ID,
		Receipt:     receiptFromDomain(view.Session.Receipt),
		People:      people,
		Assignments: view.Session.Assignments,
		Calculation: CalculationResponse{
			Subtotal:           view.Calculation.Subtotal,
			Tax:                view.Calculation.Tax,
			Total:              view.Calculation.Total,
			PerPersonBreakdown: breakdowns,
		},
		Validation: ValidationResponse(view.Validation),
		Stats:      StatsResponse(view.Stats),
		Complete:   view.Complete,
		CreatedAt:  view.Session.CreatedAt,
		UpdatedAt:  view.Session.UpdatedAt,
	}
}

func sessionSummary(session *models.Session) SessionSummary {
	return SessionSummary{
		ID:          session.ID,
		Restaurant:  session.Receipt.Restaurant,
		Total:       session.Receipt.Total,
		PeopleCount: len(session.People),
		ItemCount:   len(session.Receipt.Items),
		CreatedAt:   session.CreatedAt,
	}
}
