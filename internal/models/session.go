package models

import "github.com/patungan-app/backend/internal/split"

// Session represents one split session: a receipt, the roster of people
// splitting it, and the current assignment state.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// Receipt is the normalized receipt being split.
	Receipt split.ReceiptData

	// People is the roster. Only ID and Name are persisted; Items and
	// Total are allocation output and never stored.
	People []split.Person

	// Assignments maps item IDs to assigned person IDs.
	Assignments split.Assignments

	// CreatedAt is the Unix timestamp when the session was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last mutation.
	UpdatedAt int64
}
