// Package engine owns the full allocation state for one draft expense: the
// expense amount, the payer ledger, and the three split strategies. Every
// mutator finishes its whole recomputation chain (ledger, split, validity)
// before returning, so the engine is safe to drive keystroke by keystroke.
//
// An engine has exactly one single-threaded owner; it takes no locks.
package engine

import (
	"errors"

	"github.com/divvyhq/divvy/internal/calculator"
	"github.com/divvyhq/divvy/internal/config"
	"github.com/divvyhq/divvy/internal/ledger"
	"github.com/divvyhq/divvy/internal/models"
	"github.com/divvyhq/divvy/internal/money"
	"github.com/divvyhq/divvy/internal/split"
)

// Engine is the per-draft aggregate. Create one when an add/edit-expense
// draft opens and discard it when the draft closes.
type Engine struct {
	limits      config.Limits
	currentUser models.UserID

	amount money.Amount
	ledger *ledger.Ledger
	splits *split.Set
	valid  bool
}

// New creates an engine for a draft opened by currentUser in a group with
// the given members. The ledger is seeded with one entry for the current
// user and all three strategies are created up front.
func New(members []models.UserID, currentUser models.UserID, limits config.Limits) (*Engine, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	led, err := ledger.New(members, currentUser, limits.AmountCeiling)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		limits:      limits,
		currentUser: currentUser,
		ledger:      led,
		splits:      split.NewSet(members),
	}
	e.refresh()
	return e, nil
}

// SetAmount parses and clamps the raw expense amount, retargets the ledger,
// and recomputes the active split.
func (e *Engine) SetAmount(raw string) {
	e.amount = money.Clamp(money.ParseAmount(raw), e.limits.AmountCeiling)
	e.ledger.OnExpenseAmountChanged(e.amount)
	e.splits.Active().Recompute(e.amount)
	e.refresh()
}

// SwitchSplit activates the persisted strategy for t, refreshed against the
// current amount. Edits made under t before a switch away are still there.
func (e *Engine) SwitchSplit(t models.SplitType) error {
	if err := e.splits.Switch(t, e.amount); err != nil {
		return err
	}
	e.refresh()
	return nil
}

// AddPayerEntry appends an unassigned payer entry; false when the ledger
// already has one entry per member.
func (e *Engine) AddPayerEntry() (models.PayerEntry, bool) {
	entry, ok := e.ledger.AddEntry()
	e.refresh()
	return entry, ok
}

// RemovePayerEntry deletes a payer entry.
func (e *Engine) RemovePayerEntry(id models.EntryID) error {
	if err := e.ledger.RemoveEntry(id); err != nil {
		return err
	}
	e.refresh()
	return nil
}

// AssignPayer sets the user on a payer entry.
func (e *Engine) AssignPayer(id models.EntryID, user models.UserID) (ledger.Assignment, error) {
	res, err := e.ledger.AssignUser(id, user)
	if err != nil {
		return ledger.Assignment{}, err
	}
	e.refresh()
	return res, nil
}

// SetPayerAmount parses raw input into a payer entry's amount. With a
// single-entry ledger the stored amount stays forced to the expense total,
// so the edit has no effect there.
func (e *Engine) SetPayerAmount(id models.EntryID, raw string) error {
	if e.ledger.Len() == 1 {
		// Single-payer auto-sync owns the amount; ignore direct edits but
		// still surface an unknown ID.
		if err := e.ledger.SetAmount(id, e.amount); err != nil {
			return err
		}
		e.refresh()
		return nil
	}
	if err := e.ledger.SetAmount(id, money.ParseAmount(raw)); err != nil {
		return err
	}
	e.refresh()
	return nil
}

// ToggleSplitUser flips a member's participation in the equally strategy.
func (e *Engine) ToggleSplitUser(user models.UserID) error {
	st, err := e.splits.Get(models.SplitEqually)
	if err != nil {
		return err
	}
	eq, ok := st.(*split.Equally)
	if !ok {
		return errors.New("equally strategy has unexpected type")
	}
	if err := eq.Toggle(user); err != nil {
		return err
	}
	e.refresh()
	return nil
}

// SetSplitPart parses raw input into a member's hand-entered part.
func (e *Engine) SetSplitPart(user models.UserID, raw string) error {
	st, err := e.splits.Get(models.SplitParts)
	if err != nil {
		return err
	}
	parts, ok := st.(*split.Parts)
	if !ok {
		return errors.New("parts strategy has unexpected type")
	}
	if err := parts.SetAmount(user, money.ParseAmount(raw)); err != nil {
		return err
	}
	e.refresh()
	return nil
}

// SetSplitShare parses raw input into a member's percentage. A percent
// still over 100 after correction is rejected and the previous share kept;
// the first return reports whether the update was applied.
func (e *Engine) SetSplitShare(user models.UserID, raw string) (bool, error) {
	st, err := e.splits.Get(models.SplitShares)
	if err != nil {
		return false, err
	}
	shares, ok := st.(*split.Shares)
	if !ok {
		return false, errors.New("shares strategy has unexpected type")
	}
	applied, err := shares.SetShare(user, money.ParsePercent(raw))
	if err != nil {
		return false, err
	}
	e.refresh()
	return applied, nil
}

func (e *Engine) refresh() {
	e.valid = e.ledger.Valid() && e.splits.Active().Valid()
}

// Amount is the draft's current expense amount.
func (e *Engine) Amount() money.Amount { return e.amount }

// Valid reports whether both the ledger and the active split add up.
func (e *Engine) Valid() bool { return e.valid }

// ActiveSplit is the tag of the strategy currently in use.
func (e *Engine) ActiveSplit() models.SplitType { return e.splits.Active().Type() }

// Balance derives the current user's display status and signed balance.
func (e *Engine) Balance() calculator.Result {
	return calculator.Balance(calculator.Input{
		Amount:      e.amount,
		LedgerValid: e.ledger.Valid(),
		SplitValid:  e.splits.Active().Valid(),
		Paid:        e.ledger.PaidBy(e.currentUser),
		Owed:        e.splits.Active().AmountFor(e.currentUser),
		Minimum:     e.limits.AmountMinimum,
	})
}

// View assembles the full rendering snapshot for the draft.
func (e *Engine) View() models.DraftView {
	bal := e.Balance()
	return models.DraftView{
		Amount:        e.amount,
		Ledger:        e.ledger.View(e.currentUser),
		Split:         e.splits.Active().View(),
		BalanceStatus: bal.Status,
		BalanceAmount: bal.Amount,
		Valid:         e.valid,
	}
}
