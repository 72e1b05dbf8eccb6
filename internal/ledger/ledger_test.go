package ledger

import (
	"errors"
	"testing"

	"github.com/divvyhq/divvy/internal/models"
	"github.com/divvyhq/divvy/internal/money"
)

var members = []models.UserID{"alice", "bob", "carol"}

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := New(members, "alice", money.DefaultCeiling)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return l
}

func TestNewSeedsCurrentUser(t *testing.T) {
	l := newTestLedger(t)
	if l.Len() != 1 {
		t.Fatalf("expected 1 seeded entry, got %d", l.Len())
	}
	view := l.View("alice")
	if view.Entries[0].User != "alice" {
		t.Errorf("seeded entry user = %q, want alice", view.Entries[0].User)
	}
	if view.Entries[0].Amount != 0 {
		t.Errorf("seeded entry amount = %d, want 0", view.Entries[0].Amount)
	}
}

func TestNewRejectsOutsider(t *testing.T) {
	if _, err := New(members, "mallory", money.DefaultCeiling); !errors.Is(err, ErrNotMember) {
		t.Errorf("expected ErrNotMember, got %v", err)
	}
}

func TestSinglePayerAutoSync(t *testing.T) {
	l := newTestLedger(t)

	// With exactly one entry, the entry amount follows every total change.
	for _, total := range []money.Amount{500, 700} {
		l.OnExpenseAmountChanged(total)
		if got := l.Total(); got != total {
			t.Errorf("after retarget to %d: total = %d", total, got)
		}
		if got := l.Remainder(); got != 0 {
			t.Errorf("after retarget to %d: remainder = %d, want 0", total, got)
		}
	}
	if !l.Valid() {
		t.Error("single synced entry should be valid")
	}
}

func TestMultiEntryAmountsUntouchedOnRetarget(t *testing.T) {
	l := newTestLedger(t)
	l.OnExpenseAmountChanged(1000)

	second, ok := l.AddEntry()
	if !ok {
		t.Fatal("AddEntry refused with room left")
	}
	if err := l.SetAmount(second.ID, 400); err != nil {
		t.Fatalf("SetAmount failed: %v", err)
	}
	if err := l.SetAmount(1, 600); err != nil {
		t.Fatalf("SetAmount failed: %v", err)
	}

	l.OnExpenseAmountChanged(2000)
	if got := l.Total(); got != 1000 {
		t.Errorf("entry amounts changed on retarget: total = %d, want 1000", got)
	}
	if got := l.Remainder(); got != 1000 {
		t.Errorf("remainder = %d, want 1000", got)
	}
}

func TestAddEntryCapacity(t *testing.T) {
	l := newTestLedger(t)
	if _, ok := l.AddEntry(); !ok {
		t.Fatal("second entry refused")
	}
	if _, ok := l.AddEntry(); !ok {
		t.Fatal("third entry refused")
	}
	// One entry per group member: a fourth must leave the set unchanged.
	if _, ok := l.AddEntry(); ok {
		t.Error("AddEntry exceeded one entry per member")
	}
	if l.Len() != 3 {
		t.Errorf("len = %d, want 3", l.Len())
	}
}

func TestEntryIDsNeverReused(t *testing.T) {
	l := newTestLedger(t)
	second, _ := l.AddEntry()
	if err := l.RemoveEntry(second.ID); err != nil {
		t.Fatalf("RemoveEntry failed: %v", err)
	}
	third, _ := l.AddEntry()
	if third.ID <= second.ID {
		t.Errorf("entry ID %d reused after removal of %d", third.ID, second.ID)
	}
	// The stale ID must not alias the new entry.
	if err := l.SetAmount(second.ID, 100); !errors.Is(err, ErrUnknownEntry) {
		t.Errorf("stale ID accepted: %v", err)
	}
}

func TestRemoveLastEntryRefused(t *testing.T) {
	l := newTestLedger(t)
	if err := l.RemoveEntry(1); !errors.Is(err, ErrLastEntry) {
		t.Errorf("expected ErrLastEntry, got %v", err)
	}
}

func TestAssignUser(t *testing.T) {
	l := newTestLedger(t)
	second, _ := l.AddEntry()

	res, err := l.AssignUser(second.ID, "bob")
	if err != nil {
		t.Fatalf("AssignUser failed: %v", err)
	}
	if res.Assigned != "bob" || res.Freed != "" {
		t.Errorf("assignment = %+v, want assigned bob, nothing freed", res)
	}

	// Reassigning frees the previous user.
	res, err = l.AssignUser(second.ID, "carol")
	if err != nil {
		t.Fatalf("reassign failed: %v", err)
	}
	if res.Assigned != "carol" || res.Freed != "bob" {
		t.Errorf("assignment = %+v, want carol assigned, bob freed", res)
	}
}

func TestAssignUserNoDuplicates(t *testing.T) {
	l := newTestLedger(t)
	second, _ := l.AddEntry()

	if _, err := l.AssignUser(second.ID, "alice"); !errors.Is(err, ErrUserTaken) {
		t.Errorf("duplicate assignment allowed: %v", err)
	}
	// Re-assigning an entry its own user is not a duplicate.
	res, err := l.AssignUser(1, "alice")
	if err != nil {
		t.Fatalf("self reassign failed: %v", err)
	}
	if res.Freed != "" {
		t.Errorf("self reassign freed %q, want nothing", res.Freed)
	}
}

func TestAssignUserRejectsOutsider(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.AssignUser(1, "mallory"); !errors.Is(err, ErrNotMember) {
		t.Errorf("expected ErrNotMember, got %v", err)
	}
}

func TestValidity(t *testing.T) {
	l := newTestLedger(t)
	l.OnExpenseAmountChanged(1000)
	if !l.Valid() {
		t.Fatal("synced single-payer ledger should be valid")
	}

	second, _ := l.AddEntry()
	if l.Valid() {
		t.Error("unassigned entry should invalidate the ledger")
	}
	if _, err := l.AssignUser(second.ID, "bob"); err != nil {
		t.Fatalf("AssignUser failed: %v", err)
	}
	if l.Valid() {
		t.Error("remainder is non-zero, ledger should stay invalid")
	}
	if err := l.SetAmount(1, 600); err != nil {
		t.Fatal(err)
	}
	if err := l.SetAmount(second.ID, 400); err != nil {
		t.Fatal(err)
	}
	if !l.Valid() {
		t.Errorf("600+400 against 1000 should be valid, remainder=%d", l.Remainder())
	}
}

func TestSetAmountClamps(t *testing.T) {
	l, err := New(members, "alice", 1000)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.SetAmount(1, 12345); err != nil {
		t.Fatal(err)
	}
	if got := l.Total(); got != 1234 {
		t.Errorf("amount over ceiling not corrected: total = %d, want 1234", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, l *Ledger)
		want  models.PaidByKind
	}{
		{
			name:  "nobody with zero amounts",
			setup: func(t *testing.T, l *Ledger) {},
			want:  models.PaidByNobody,
		},
		{
			name: "current user paid",
			setup: func(t *testing.T, l *Ledger) {
				l.OnExpenseAmountChanged(500)
			},
			want: models.PaidByCurrentUser,
		},
		{
			name: "single other user paid",
			setup: func(t *testing.T, l *Ledger) {
				l.OnExpenseAmountChanged(500)
				second, _ := l.AddEntry()
				if _, err := l.AssignUser(second.ID, "bob"); err != nil {
					t.Fatal(err)
				}
				if err := l.SetAmount(second.ID, 500); err != nil {
					t.Fatal(err)
				}
				// Adding the second entry stops auto-sync; zero out alice.
				if err := l.SetAmount(1, 0); err != nil {
					t.Fatal(err)
				}
			},
			want: models.PaidByOtherUser,
		},
		{
			name: "multiple payers",
			setup: func(t *testing.T, l *Ledger) {
				l.OnExpenseAmountChanged(500)
				second, _ := l.AddEntry()
				if _, err := l.AssignUser(second.ID, "bob"); err != nil {
					t.Fatal(err)
				}
				if err := l.SetAmount(second.ID, 250); err != nil {
					t.Fatal(err)
				}
			},
			want: models.PaidByMultiple,
		},
		{
			name: "zero-amount entry does not count as paid",
			setup: func(t *testing.T, l *Ledger) {
				l.OnExpenseAmountChanged(500)
				second, _ := l.AddEntry()
				if _, err := l.AssignUser(second.ID, "bob"); err != nil {
					t.Fatal(err)
				}
			},
			want: models.PaidByCurrentUser,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger(t)
			tt.setup(t, l)
			if got := l.Classify("alice"); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaidBy(t *testing.T) {
	l := newTestLedger(t)
	l.OnExpenseAmountChanged(900)
	second, _ := l.AddEntry()
	if _, err := l.AssignUser(second.ID, "bob"); err != nil {
		t.Fatal(err)
	}
	if err := l.SetAmount(second.ID, 300); err != nil {
		t.Fatal(err)
	}
	if got := l.PaidBy("alice"); got != 900 {
		t.Errorf("PaidBy(alice) = %d, want 900", got)
	}
	if got := l.PaidBy("bob"); got != 300 {
		t.Errorf("PaidBy(bob) = %d, want 300", got)
	}
	if got := l.PaidBy("carol"); got != 0 {
		t.Errorf("PaidBy(carol) = %d, want 0", got)
	}
}
