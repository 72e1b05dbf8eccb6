// Package split implements the three cost-splitting strategies for a draft
// expense: equally, by parts, and by percentage shares. All three instances
// are created together when a draft opens and live for the draft's whole
// lifetime, so switching between them never loses prior edits.
package split

import (
	"errors"
	"fmt"

	"github.com/divvyhq/divvy/internal/models"
	"github.com/divvyhq/divvy/internal/money"
)

var (
	// ErrUnknownUser is returned for a user outside the draft's group.
	ErrUnknownUser = errors.New("user is not part of the split")
	// ErrUnknownType is returned for an unrecognized strategy tag.
	ErrUnknownType = errors.New("unknown split type")
)

// Strategy is the interface all three splitting strategies implement.
// A strategy keeps its own per-user state and recomputes the derived
// amounts whenever the expense total or one of its inputs changes.
type Strategy interface {
	// Type returns the strategy's tag.
	Type() models.SplitType

	// Recompute refreshes the derived per-user amounts against a new
	// expense total.
	Recompute(total money.Amount)

	// AmountFor returns the share currently allocated to one user.
	AmountFor(user models.UserID) money.Amount

	// Valid reports whether the allocation covers the expense exactly.
	Valid() bool

	// View returns a rendering snapshot with copied maps.
	View() models.SplitView
}

// Set holds the three persisted strategy instances for one draft, keyed by
// tag, with exactly one active at a time. A new draft starts on equally.
type Set struct {
	strategies map[models.SplitType]Strategy
	active     Strategy
}

// NewSet creates all three strategies seeded with one row per group member
// and activates the equally strategy.
func NewSet(members []models.UserID) *Set {
	eq := NewEqually(members)
	s := &Set{
		strategies: map[models.SplitType]Strategy{
			models.SplitEqually: eq,
			models.SplitParts:   NewParts(members),
			models.SplitShares:  NewShares(members),
		},
	}
	s.active = eq
	return s
}

// Active returns the strategy currently in use.
func (s *Set) Active() Strategy { return s.active }

// Get returns the persisted instance for a tag, active or not.
func (s *Set) Get(t models.SplitType) (Strategy, error) {
	st, ok := s.strategies[t]
	if !ok {
		return nil, fmt.Errorf("split type %q: %w", t, ErrUnknownType)
	}
	return st, nil
}

// Switch activates the persisted instance for t and refreshes it against
// the current expense total. Prior per-user edits survive the switch.
// Switching to the already-active type is a no-op.
func (s *Set) Switch(t models.SplitType, total money.Amount) error {
	if s.active.Type() == t {
		return nil
	}
	st, err := s.Get(t)
	if err != nil {
		return err
	}
	st.Recompute(total)
	s.active = st
	return nil
}
