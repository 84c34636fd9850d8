package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/patungan-app/backend/internal/split"
	"github.com/patungan-app/backend/internal/storage"
	"github.com/patungan-app/backend/internal/storage/sqlite"
)

func newTestService(t *testing.T) *SessionService {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "patungan-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewSessionService(store)
}

func testReceipt() split.ReceiptData {
	return split.NewReceipt("Warung Tekko",
		[]split.MenuItem{
			{Name: "Nasi Goreng", Price: 25000, Quantity: 2},
			{Name: "Es Teh", Price: 5000, Quantity: 1},
		},
		55000, 5500, 0, 60500,
	)
}

func TestSessionLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	view, err := svc.CreateSession(ctx, testReceipt(), []string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	sessionID := view.Session.ID
	if sessionID == "" {
		t.Fatal("expected session ID")
	}
	if view.Complete {
		t.Error("fresh session should not be complete")
	}
	if view.Calculation.Total != 0 {
		t.Errorf("nothing assigned, total = %v, want 0", view.Calculation.Total)
	}

	// Finalize must be blocked while items are unassigned.
	if _, err := svc.Finalize(ctx, sessionID); !errors.Is(err, ErrIncompleteAssignment) {
		t.Fatalf("Finalize err = %v, want ErrIncompleteAssignment", err)
	}

	items := view.Session.Receipt.Items
	alice, bob := view.Session.People[0], view.Session.People[1]

	// Share the first item, give the second to Alice.
	if view, err = svc.ToggleAssignment(ctx, sessionID, items[0].ID, alice.ID); err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}
	if view, err = svc.ToggleAssignment(ctx, sessionID, items[0].ID, bob.ID); err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}
	if view, err = svc.ToggleAssignment(ctx, sessionID, items[1].ID, alice.ID); err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}

	if !view.Complete {
		t.Error("all items assigned, session should be complete")
	}
	if !view.Validation.IsValid {
		t.Errorf("validation errors: %v", view.Validation.Errors)
	}
	if view.Calculation.Total != 60500 {
		t.Errorf("total = %v, want 60500", view.Calculation.Total)
	}
	if got := view.Calculation.PerPersonBreakdown[0].Total; got != 33000 {
		t.Errorf("Alice total = %v, want 33000", got)
	}

	payload, err := svc.Finalize(ctx, sessionID)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if payload.Totals.Total != 60500 {
		t.Errorf("payload total = %v, want 60500", payload.Totals.Total)
	}
	if len(payload.Items[0].Owners) != 2 {
		t.Errorf("shared item owners = %d, want 2", len(payload.Items[0].Owners))
	}

	summary, err := svc.Summary(ctx, sessionID)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.Stats.TotalPeople != 2 || summary.Stats.TotalItems != 2 {
		t.Errorf("stats = %+v", summary.Stats)
	}
	if len(summary.PaymentInstructions) != 2 {
		t.Errorf("instructions = %v", summary.PaymentInstructions)
	}

	if err := svc.DeleteSession(ctx, sessionID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := svc.GetSession(ctx, sessionID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("deleted session err = %v, want ErrNotFound", err)
	}
}

func TestCreateSessionValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		receipt split.ReceiptData
		people  []string
	}{
		{
			name:    "invalid receipt",
			receipt: split.NewReceipt("", nil, 0, 0, 0, 0),
			people:  []string{"Alice"},
		},
		{
			name:    "no people",
			receipt: testReceipt(),
			people:  nil,
		},
		{
			name:    "duplicate names differ only by case",
			receipt: testReceipt(),
			people:  []string{"Alice", "alice"},
		},
		{
			name:    "blank name",
			receipt: testReceipt(),
			people:  []string{"Alice", "  "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSession(ctx, tt.receipt, tt.people)
			if _, ok := AsValidationError(err); !ok {
				t.Errorf("err = %v, want *ValidationError", err)
			}
		})
	}
}

func TestToggleAssignmentUnknownIDs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	view, err := svc.CreateSession(ctx, testReceipt(), []string{"Alice"})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if _, err := svc.ToggleAssignment(ctx, view.Session.ID, "ghost", view.Session.People[0].ID); err == nil {
		t.Error("unknown item should be rejected")
	}
	if _, err := svc.ToggleAssignment(ctx, view.Session.ID, view.Session.Receipt.Items[0].ID, "ghost"); err == nil {
		t.Error("unknown person should be rejected")
	}
}

func TestUpdatePeoplePreservesAssignments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	view, err := svc.CreateSession(ctx, testReceipt(), []string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	sessionID := view.Session.ID
	itemID := view.Session.Receipt.Items[0].ID
	aliceID := view.Session.People[0].ID

	if _, err := svc.ToggleAssignment(ctx, sessionID, itemID, aliceID); err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}

	// Replace Bob with Charlie; Alice keeps her ID and assignment.
	view, err = svc.UpdatePeople(ctx, sessionID, []string{"alice", "Charlie"})
	if err != nil {
		t.Fatalf("UpdatePeople failed: %v", err)
	}

	if view.Session.People[0].ID != aliceID {
		t.Error("Alice should keep her ID across a case-insensitive rename")
	}
	if !view.Session.Assignments.Assigned(itemID, aliceID) {
		t.Error("Alice's assignment was lost")
	}
}

func TestUpdateReceiptPrunesStaleAssignments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	view, err := svc.CreateSession(ctx, testReceipt(), []string{"Alice"})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	sessionID := view.Session.ID
	keep := view.Session.Receipt.Items[0]
	dropID := view.Session.Receipt.Items[1].ID
	aliceID := view.Session.People[0].ID

	for _, itemID := range []string{keep.ID, dropID} {
		if _, err := svc.ToggleAssignment(ctx, sessionID, itemID, aliceID); err != nil {
			t.Fatalf("ToggleAssignment failed: %v", err)
		}
	}

	// Drop the second item from the receipt.
	view, err = svc.UpdateReceipt(ctx, sessionID, split.NewReceipt("Warung Tekko",
		[]split.MenuItem{keep}, keep.Cost(), 5000, 0, keep.Cost()+5000,
	))
	if err != nil {
		t.Fatalf("UpdateReceipt failed: %v", err)
	}

	if _, ok := view.Session.Assignments[dropID]; ok {
		t.Error("assignment for removed item survived")
	}
	if !view.Session.Assignments.Assigned(keep.ID, aliceID) {
		t.Error("assignment for kept item was lost")
	}
}
