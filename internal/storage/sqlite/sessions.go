package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/patungan-app/backend/internal/models"
	"github.com/patungan-app/backend/internal/split"
	"github.com/patungan-app/backend/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// CreateSession persists a new session to the database.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if session.CreatedAt == 0 {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO sessions (id, restaurant, subtotal, total, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		session.ID, session.Receipt.Restaurant, session.Receipt.Subtotal, session.Receipt.Total,
		session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	if err := insertChildren(ctx, tx, session); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID, including items, people, charges,
// and assignments.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, restaurant, subtotal, total, created_at, updated_at FROM sessions WHERE id = ?",
		sessionID,
	).Scan(&session.ID, &session.Receipt.Restaurant, &session.Receipt.Subtotal,
		&session.Receipt.Total, &session.CreatedAt, &session.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	// Charges
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, amount FROM charges WHERE session_id = ? ORDER BY position",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get charges: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c split.Charge
		if err := rows.Scan(&c.Name, &c.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan charge: %w", err)
		}
		session.Receipt.Charges = append(session.Receipt.Charges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate charges: %w", err)
	}

	// Items
	itemRows, err := s.db.QueryContext(ctx,
		"SELECT id, name, price, quantity FROM items WHERE session_id = ? ORDER BY position",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var item split.MenuItem
		if err := itemRows.Scan(&item.ID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		session.Receipt.Items = append(session.Receipt.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	// People
	peopleRows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM people WHERE session_id = ? ORDER BY position",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get people: %w", err)
	}
	defer peopleRows.Close()
	for peopleRows.Next() {
		var p split.Person
		if err := peopleRows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		session.People = append(session.People, p)
	}
	if err := peopleRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	// Assignments
	session.Assignments = make(split.Assignments)
	assignRows, err := s.db.QueryContext(ctx,
		`SELECT ia.item_id, ia.person_id
		 FROM item_assignments ia
		 JOIN items i ON i.id = ia.item_id
		 WHERE i.session_id = ?
		 ORDER BY ia.item_id, ia.person_id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	defer assignRows.Close()
	for assignRows.Next() {
		var itemID, personID string
		if err := assignRows.Scan(&itemID, &personID); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		session.Assignments[itemID] = append(session.Assignments[itemID], personID)
	}
	if err := assignRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return session, nil
}

// ListSessions returns all sessions, newest first.
func (s *SQLiteStore) ListSessions(ctx context.Context) ([]*models.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM sessions ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	sessions := make([]*models.Session, 0, len(ids))
	for _, id := range ids {
		session, err := s.GetSession(ctx, id)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// UpdateSession replaces the receipt, people, and assignments of an
// existing session. Child rows are rewritten wholesale; assignment rows
// follow their items via cascade.
func (s *SQLiteStore) UpdateSession(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE sessions SET restaurant = ?, subtotal = ?, total = ?, updated_at = ? WHERE id = ?",
		session.Receipt.Restaurant, session.Receipt.Subtotal, session.Receipt.Total,
		session.UpdatedAt, session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}

	for _, table := range []string{"charges", "items", "people"} {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE session_id = ?", table), session.ID,
		); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := insertChildren(ctx, tx, session); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateAssignments replaces the assignment map of an existing session.
func (s *SQLiteStore) UpdateAssignments(ctx context.Context, sessionID string, assignments split.Assignments) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE sessions SET updated_at = ? WHERE id = ?",
		time.Now().Unix(), sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM item_assignments WHERE item_id IN (SELECT id FROM items WHERE session_id = ?)",
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	if err := insertAssignments(ctx, tx, assignments); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteSession removes a session and all dependent rows.
func (s *SQLiteStore) DeleteSession(ctx context.Context, sessionID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// insertChildren writes charges, items, people, and assignments for the
// session, generating item and person IDs where missing.
func insertChildren(ctx context.Context, tx *sql.Tx, session *models.Session) error {
	for i, c := range session.Receipt.Charges {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO charges (session_id, position, name, amount) VALUES (?, ?, ?, ?)",
			session.ID, i, c.Name, c.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert charge: %w", err)
		}
	}

	for i := range session.Receipt.Items {
		item := &session.Receipt.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO items (id, session_id, position, name, price, quantity) VALUES (?, ?, ?, ?, ?, ?)",
			item.ID, session.ID, i, item.Name, item.Price, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
	}

	for i := range session.People {
		person := &session.People[i]
		if person.ID == "" {
			person.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO people (id, session_id, position, name) VALUES (?, ?, ?, ?)",
			person.ID, session.ID, i, person.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
	}

	return insertAssignments(ctx, tx, session.Assignments)
}

// insertAssignments writes assignment rows. Foreign keys reject pairs that
// reference unknown items or people.
func insertAssignments(ctx context.Context, tx *sql.Tx, assignments split.Assignments) error {
	for itemID, personIDs := range assignments {
		for _, personID := range personIDs {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO item_assignments (item_id, person_id) VALUES (?, ?)",
				itemID, personID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert assignment: %w", err)
			}
		}
	}
	return nil
}
