// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/patungan-app/backend/internal/models"
	"github.com/patungan-app/backend/internal/split"
)

// ErrNotFound is returned when the requested session does not exist.
var ErrNotFound = errors.New("session not found")

// Store defines the interface for session storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateSession persists a new session. Missing IDs and timestamps
	// are populated by the store.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session by its ID, including receipt items,
	// people, and assignments. Returns ErrNotFound if absent.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// ListSessions returns all sessions, newest first.
	ListSessions(ctx context.Context) ([]*models.Session, error)

	// UpdateSession replaces the receipt, people, and assignments of an
	// existing session.
	UpdateSession(ctx context.Context, session *models.Session) error

	// UpdateAssignments replaces only the assignment map. This is the hot
	// path: every toggle in the assignment UI lands here.
	UpdateAssignments(ctx context.Context, sessionID string, assignments split.Assignments) error

	// DeleteSession removes a session and all dependent rows.
	DeleteSession(ctx context.Context, sessionID string) error

	// Close releases any resources held by the store.
	Close() error
}
