package split

import (
	"fmt"

	"github.com/divvyhq/divvy/internal/models"
	"github.com/divvyhq/divvy/internal/money"
)

// Equally divides the expense evenly among the selected members. When the
// amount does not divide cleanly, the leftover minor units go one each to
// the earliest selected members in group order, so the allocation is stable
// across recomputes with unchanged inputs.
type Equally struct {
	// order fixes the tie-break for the extra minor units.
	order    []models.UserID
	selected map[models.UserID]bool
	amounts  map[models.UserID]money.Amount
	target   money.Amount
}

// NewEqually creates the strategy with every group member selected.
func NewEqually(members []models.UserID) *Equally {
	e := &Equally{
		order:    append([]models.UserID(nil), members...),
		selected: make(map[models.UserID]bool, len(members)),
		amounts:  make(map[models.UserID]money.Amount, len(members)),
	}
	for _, m := range members {
		e.selected[m] = true
		e.amounts[m] = 0
	}
	return e
}

// Type implements Strategy.
func (e *Equally) Type() models.SplitType { return models.SplitEqually }

// Toggle flips a member's participation and recomputes the allocation.
func (e *Equally) Toggle(user models.UserID) error {
	if _, ok := e.amounts[user]; !ok {
		return fmt.Errorf("toggle %q: %w", user, ErrUnknownUser)
	}
	e.selected[user] = !e.selected[user]
	e.Recompute(e.target)
	return nil
}

// Selected reports whether a member currently owes a share.
func (e *Equally) Selected(user models.UserID) bool { return e.selected[user] }

// Recompute implements Strategy. With no one selected or a zero total,
// every amount is 0.
func (e *Equally) Recompute(total money.Amount) {
	e.target = total
	n := 0
	for _, on := range e.selected {
		if on {
			n++
		}
	}
	if n == 0 || total == 0 {
		for u := range e.amounts {
			e.amounts[u] = 0
		}
		return
	}

	base, extra := money.SplitEvenly(total, n)
	for _, u := range e.order {
		if !e.selected[u] {
			e.amounts[u] = 0
			continue
		}
		e.amounts[u] = base
		if extra > 0 {
			e.amounts[u]++
			extra--
		}
	}
}

// AmountFor implements Strategy.
func (e *Equally) AmountFor(user models.UserID) money.Amount { return e.amounts[user] }

// Valid implements Strategy. The equal split adds up by construction, so it
// only requires at least one selected member.
func (e *Equally) Valid() bool {
	for _, on := range e.selected {
		if on {
			return true
		}
	}
	return false
}

// View implements Strategy.
func (e *Equally) View() models.SplitView {
	amounts := make(map[models.UserID]money.Amount, len(e.amounts))
	var total money.Amount
	for u, a := range e.amounts {
		amounts[u] = a
		total += a
	}
	selected := make(map[models.UserID]bool, len(e.selected))
	for u, on := range e.selected {
		selected[u] = on
	}
	return models.SplitView{
		Type:      models.SplitEqually,
		Amounts:   amounts,
		Selected:  selected,
		Total:     total,
		Remainder: e.target - total,
		Valid:     e.Valid(),
	}
}
