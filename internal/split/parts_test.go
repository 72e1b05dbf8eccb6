package split

import (
	"errors"
	"testing"

	"github.com/divvyhq/divvy/internal/models"
	"github.com/divvyhq/divvy/internal/money"
)

func TestPartsValidWhenAmountsCoverTotal(t *testing.T) {
	p := NewParts(members)
	p.Recompute(1000)

	if p.Valid() {
		t.Fatal("all-zero parts against 1000 should be invalid")
	}
	if err := p.SetAmount("alice", 400); err != nil {
		t.Fatal(err)
	}
	if err := p.SetAmount("bob", 600); err != nil {
		t.Fatal(err)
	}

	v := p.View()
	if v.Total != 1000 || v.Remainder != 0 {
		t.Errorf("total=%d remainder=%d, want 1000 and 0", v.Total, v.Remainder)
	}
	if !p.Valid() {
		t.Error("400+600 against 1000 should be valid")
	}
}

func TestPartsRemainderTracksEdits(t *testing.T) {
	p := NewParts(members)
	p.Recompute(1000)

	steps := []struct {
		user          string
		amount        money.Amount
		wantRemainder money.Amount
	}{
		{"alice", 500, 500},
		{"bob", 700, -200},
		{"bob", 500, 0},
		{"alice", 0, 500},
	}
	for _, s := range steps {
		if err := p.SetAmount(models.UserID(s.user), s.amount); err != nil {
			t.Fatal(err)
		}
		if got := p.View().Remainder; got != s.wantRemainder {
			t.Errorf("after %s=%d: remainder = %d, want %d", s.user, s.amount, got, s.wantRemainder)
		}
	}
}

func TestPartsZeroRowRetained(t *testing.T) {
	p := NewParts(members)
	p.Recompute(100)
	if err := p.SetAmount("alice", 100); err != nil {
		t.Fatal(err)
	}
	if err := p.SetAmount("alice", 0); err != nil {
		t.Fatal(err)
	}
	// The zero row stays in state; inactive rendering is the UI's concern.
	v := p.View()
	if _, ok := v.Amounts["alice"]; !ok {
		t.Error("zero row dropped from state")
	}
}

func TestPartsRetargetKeepsAmounts(t *testing.T) {
	p := NewParts(members)
	p.Recompute(1000)
	if err := p.SetAmount("alice", 1000); err != nil {
		t.Fatal(err)
	}
	p.Recompute(500)
	if got := p.AmountFor("alice"); got != 1000 {
		t.Errorf("retarget changed alice's part to %d, want 1000", got)
	}
	if p.Valid() {
		t.Error("1000 against 500 should be invalid")
	}
}

func TestPartsUnknownUser(t *testing.T) {
	p := NewParts(members)
	if err := p.SetAmount("mallory", 1); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("expected ErrUnknownUser, got %v", err)
	}
}
