// Package models defines the persistence-facing domain models.
//
// A Session is the unit of storage: one receipt, the people splitting it,
// and the current item-to-people assignment map. Only inputs are stored.
// Allocated shares, totals, and breakdowns are derived data, recomputed by
// the split engine on every read so stored state can never go stale.
//
// Participants are identified by session-scoped IDs; there are no user
// accounts. The authentication layer, when present, sits in front of the
// API and is invisible here.
package models
