package split

import (
	"fmt"

	"github.com/divvyhq/divvy/internal/models"
	"github.com/divvyhq/divvy/internal/money"
)

// Parts lets each member owe a hand-entered amount. The split is valid only
// when the entered amounts sum to the expense total exactly. A row set to 0
// is kept in state; rendering it as inactive is the caller's concern.
type Parts struct {
	amounts   map[models.UserID]money.Amount
	target    money.Amount
	total     money.Amount
	remainder money.Amount
}

// NewParts creates the strategy with a zero row per group member.
func NewParts(members []models.UserID) *Parts {
	p := &Parts{amounts: make(map[models.UserID]money.Amount, len(members))}
	for _, m := range members {
		p.amounts[m] = 0
	}
	return p
}

// Type implements Strategy.
func (p *Parts) Type() models.SplitType { return models.SplitParts }

// SetAmount records the amount one member owes and recomputes totals.
func (p *Parts) SetAmount(user models.UserID, amount money.Amount) error {
	if _, ok := p.amounts[user]; !ok {
		return fmt.Errorf("set part for %q: %w", user, ErrUnknownUser)
	}
	p.amounts[user] = amount
	p.Recompute(p.target)
	return nil
}

// Recompute implements Strategy.
func (p *Parts) Recompute(total money.Amount) {
	p.target = total
	p.total = 0
	for _, a := range p.amounts {
		p.total += a
	}
	p.remainder = total - p.total
}

// AmountFor implements Strategy.
func (p *Parts) AmountFor(user models.UserID) money.Amount { return p.amounts[user] }

// Valid implements Strategy.
func (p *Parts) Valid() bool { return p.remainder == 0 }

// View implements Strategy.
func (p *Parts) View() models.SplitView {
	amounts := make(map[models.UserID]money.Amount, len(p.amounts))
	for u, a := range p.amounts {
		amounts[u] = a
	}
	return models.SplitView{
		Type:      models.SplitParts,
		Amounts:   amounts,
		Total:     p.total,
		Remainder: p.remainder,
		Valid:     p.Valid(),
	}
}
