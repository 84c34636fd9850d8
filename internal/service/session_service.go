// Package service orchestrates split sessions: it validates inputs,
// persists session state, and re-runs the split engine from scratch on
// every read and mutation so derived output can never go stale.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/patungan-app/backend/internal/export"
	"github.com/patungan-app/backend/internal/models"
	"github.com/patungan-app/backend/internal/split"
	"github.com/patungan-app/backend/internal/storage"
)

var (
	recomputations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "patungan_split_recomputations_total",
		Help: "Number of full split recomputations.",
	})
	finalizations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "patungan_session_finalizations_total",
		Help: "Number of sessions finalized into a summary payload.",
	})
)

// SessionService manages split sessions on top of a storage backend.
type SessionService struct {
	store storage.Store
}

// NewSessionService creates a new SessionService with the given storage
// backend.
func NewSessionService(store storage.Store) *SessionService {
	return &SessionService{store: store}
}

// SessionView is a session together with its freshly computed derived
// state.
type SessionView struct {
	Session     *models.Session
	People      []split.Person
	Calculation split.SplitCalculation
	Validation  split.ValidationResult
	Stats       split.Stats
	Complete    bool
}

// SummaryView bundles the presentation outputs for a session.
type SummaryView struct {
	Stats               split.Stats
	PaymentInstructions []string
	Export              export.ExportData
}

// CreateSession validates the receipt and roster, then persists a new
// session with an empty assignment map.
func (s *SessionService) CreateSession(ctx context.Context, receipt split.ReceiptData, peopleNames []string) (*SessionView, error) {
	if result := split.ValidateReceiptData(receipt); !result.IsValid {
		slog.Warn("CreateSession rejected receipt", "errors", result.Errors)
		return nil, &ValidationError{Errors: result.Errors}
	}
	people, err := buildRoster(peopleNames)
	if err != nil {
		slog.Warn("CreateSession rejected roster", "error", err)
		return nil, err
	}

	session := &models.Session{
		Receipt:     receipt,
		People:      people,
		Assignments: make(split.Assignments),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("Session created",
		"session_id", session.ID,
		"restaurant", receipt.Restaurant,
		"items", len(receipt.Items),
		"people", len(people),
	)
	return s.view(session), nil
}

// GetSession loads a session and recomputes its derived state.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// ListSessions returns all stored sessions, newest first.
func (s *SessionService) ListSessions(ctx context.Context) ([]*models.Session, error) {
	return s.store.ListSessions(ctx)
}

// UpdateReceipt replaces the session's receipt (item edits, charge edits).
// Assignments referring to items no longer on the receipt are pruned.
func (s *SessionService) UpdateReceipt(ctx context.Context, sessionID string, receipt split.ReceiptData) (*SessionView, error) {
	if result := split.ValidateReceiptData(receipt); !result.IsValid {
		return nil, &ValidationError{Errors: result.Errors}
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Receipt = receipt
	session.Assignments = pruneAssignments(session.Assignments, receipt.Items, session.People)
	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return s.view(session), nil
}

// UpdatePeople replaces the roster. People whose name survives the edit
// (case-insensitively) keep their ID, and with it their assignments;
// assignments of removed people are pruned.
func (s *SessionService) UpdatePeople(ctx context.Context, sessionID string, peopleNames []string) (*SessionView, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	people, err := buildRoster(peopleNames)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]string, len(session.People)) // lowercased name -> ID
	for _, p := range session.People {
		existing[strings.ToLower(p.Name)] = p.ID
	}
	for i := range people {
		if id, ok := existing[strings.ToLower(people[i].Name)]; ok {
			people[i].ID = id
		}
	}

	session.People = people
	session.Assignments = pruneAssignments(session.Assignments, session.Receipt.Items, people)
	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return s.view(session), nil
}

// SetAssignments replaces the whole assignment map.
func (s *SessionService) SetAssignments(ctx context.Context, sessionID string, assignments split.Assignments) (*SessionView, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if errs := unknownIDs(assignments, session); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	session.Assignments = assignments.Clone()
	if err := s.store.UpdateAssignments(ctx, sessionID, session.Assignments); err != nil {
		return nil, fmt.Errorf("failed to update assignments: %w", err)
	}
	return s.view(session), nil
}

// ToggleAssignment flips one person's membership in one item's assignee
// set, the single-click operation of the assignment UI.
func (s *SessionService) ToggleAssignment(ctx context.Context, sessionID, itemID, personID string) (*SessionView, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !hasItem(session, itemID) {
		return nil, &ValidationError{Errors: []string{fmt.Sprintf("unknown item id %q", itemID)}}
	}
	if !hasPerson(session, personID) {
		return nil, &ValidationError{Errors: []string{fmt.Sprintf("unknown person id %q", personID)}}
	}

	session.Assignments = session.Assignments.Clone()
	session.Assignments.Toggle(itemID, personID)
	if err := s.store.UpdateAssignments(ctx, sessionID, session.Assignments); err != nil {
		return nil, fmt.Errorf("failed to update assignments: %w", err)
	}

	slog.Debug("Assignment toggled",
		"session_id", sessionID,
		"item_id", itemID,
		"person_id", personID,
		"assignees", len(session.Assignments.Assignees(itemID)),
	)
	return s.view(session), nil
}

// Summary returns the presentation outputs for a session: statistics,
// payment instructions, and the shareable export.
func (s *SessionService) Summary(ctx context.Context, sessionID string) (*SummaryView, error) {
	view, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &SummaryView{
		Stats:               view.Stats,
		PaymentInstructions: export.PaymentInstructions(view.Calculation),
		Export:              export.BuildExportData(view.Session.Receipt, view.Calculation, time.Now()),
	}, nil
}

// Finalize checks that assignment is complete and reconciles, then builds
// the backend submission payload. The session itself is left untouched.
func (s *SessionService) Finalize(ctx context.Context, sessionID string) (*export.SummaryPayload, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !split.IsComplete(session.Receipt.Items, session.Assignments) {
		return nil, ErrIncompleteAssignment
	}

	people := split.Allocate(session.Receipt.Items, session.Assignments, session.People)
	if result := split.ValidateAssignments(session.Receipt, people); !result.IsValid {
		slog.Warn("Finalize blocked by validation", "session_id", sessionID, "errors", result.Errors)
		return nil, &ValidationError{Errors: result.Errors}
	}

	payload := export.BuildSummaryPayload(session.Receipt, people, session.Assignments, time.Now())
	finalizations.Inc()
	slog.Info("Session finalized", "session_id", sessionID, "total", payload.Totals.Total)
	return &payload, nil
}

// DeleteSession removes a session.
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.store.DeleteSession(ctx, sessionID)
}

// view recomputes all derived state for the session.
func (s *SessionService) view(session *models.Session) *SessionView {
	people := split.Allocate(session.Receipt.Items, session.Assignments, session.People)
	calc := split.Calculate(session.Receipt, people)
	recomputations.Inc()

	return &SessionView{
		Session:     session,
		People:      people,
		Calculation: calc,
		Validation:  split.ValidateAssignments(session.Receipt, people),
		Stats:       split.Summarize(calc, len(session.Receipt.Items)),
		Complete:    split.IsComplete(session.Receipt.Items, session.Assignments),
	}
}

// buildRoster validates people names: non-blank and unique within the
// session, case-insensitively.
func buildRoster(names []string) ([]split.Person, error) {
	var errs []string
	if len(names) == 0 {
		errs = append(errs, "at least one person is required")
	}

	seen := make(map[string]bool, len(names))
	people := make([]split.Person, 0, len(names))
	for i, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			errs = append(errs, fmt.Sprintf("person %d: name is required", i+1))
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			errs = append(errs, fmt.Sprintf("duplicate person name %q", trimmed))
			continue
		}
		seen[key] = true
		people = append(people, split.Person{Name: trimmed})
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return people, nil
}

// pruneAssignments drops entries referring to items or people no longer in
// the session.
func pruneAssignments(assignments split.Assignments, items []split.MenuItem, people []split.Person) split.Assignments {
	itemIDs := make(map[string]bool, len(items))
	for _, item := range items {
		itemIDs[item.ID] = true
	}
	personIDs := make(map[string]bool, len(people))
	for _, p := range people {
		personIDs[p.ID] = true
	}

	out := make(split.Assignments, len(assignments))
	for itemID, ids := range assignments {
		if !itemIDs[itemID] {
			continue
		}
		for _, personID := range ids {
			if personIDs[personID] {
				out[itemID] = append(out[itemID], personID)
			}
		}
	}
	return out
}

func unknownIDs(assignments split.Assignments, session *models.Session) []string {
	var errs []string
	for itemID, ids := range assignments {
		if !hasItem(session, itemID) {
			errs = append(errs, fmt.Sprintf("unknown item id %q", itemID))
		}
		for _, personID := range ids {
			if !hasPerson(session, personID) {
				errs = append(errs, fmt.Sprintf("unknown person id %q", personID))
			}
		}
	}
	return errs
}

func hasItem(session *models.Session, itemID string) bool {
	for _, item := range session.Receipt.Items {
		if item.ID == itemID {
			return true
		}
	}
	return false
}

func hasPerson(session *models.Session, personID string) bool {
	for _, p := range session.People {
		if p.ID == personID {
			return true
		}
	}
	return false
}
