// Package ledger tracks which group members fronted money for a draft
// expense. The ledger is valid when its entries sum to the expense amount
// exactly and every entry has an assigned user.
package ledger

import (
	"errors"
	"fmt"

	"github.com/divvyhq/divvy/internal/models"
	"github.com/divvyhq/divvy/internal/money"
)

var (
	// ErrUnknownEntry is returned for an entry ID that does not exist
	// (or existed and was removed; IDs are never reused).
	ErrUnknownEntry = errors.New("unknown payer entry")
	// ErrLastEntry is returned when removing an entry would leave the
	// ledger empty.
	ErrLastEntry = errors.New("cannot remove the last payer entry")
	// ErrUserTaken is returned when assigning a user already held by
	// another entry.
	ErrUserTaken = errors.New("user already assigned to another entry")
	// ErrNotMember is returned when assigning a user outside the group.
	ErrNotMember = errors.New("user is not a group member")
)

// Assignment reports the outcome of AssignUser so collaborators can update
// the selection affordances for both users involved.
type Assignment struct {
	// Assigned is the user that now holds the entry.
	Assigned models.UserID
	// Freed is the user the entry held before, if any.
	Freed models.UserID
}

// Ledger is the set of payer entries for one draft expense. It is owned by
// a single AllocationEngine and must not be shared across goroutines.
type Ledger struct {
	members map[models.UserID]bool
	entries []*models.PayerEntry
	nextID  models.EntryID
	ceiling money.Amount

	// target is the expense amount the entries must add up to.
	target    money.Amount
	total     money.Amount
	remainder money.Amount
	valid     bool
}

// New creates a ledger for the given group, seeded with one entry assigned
// to the current user with amount 0.
func New(members []models.UserID, currentUser models.UserID, ceiling money.Amount) (*Ledger, error) {
	if len(members) == 0 {
		return nil, errors.New("ledger needs at least one group member")
	}
	set := make(map[models.UserID]bool, len(members))
	for _, m := range members {
		if !m.IsAssigned() {
			return nil, errors.New("group member IDs must be non-empty")
		}
		set[m] = true
	}
	if !set[currentUser] {
		return nil, fmt.Errorf("current user %q: %w", currentUser, ErrNotMember)
	}

	l := &Ledger{
		members: set,
		nextID:  1,
		ceiling: ceiling,
	}
	l.entries = append(l.entries, &models.PayerEntry{ID: l.takeID(), User: currentUser})
	l.recompute()
	return l, nil
}

func (l *Ledger) takeID() models.EntryID {
	id := l.nextID
	l.nextID++
	return id
}

// AddEntry appends an unassigned entry with amount 0 and returns it. The
// second return is false when the ledger already has one entry per group
// member; the entry set is left unchanged in that case.
func (l *Ledger) AddEntry() (models.PayerEntry, bool) {
	if len(l.entries) >= len(l.members) {
		return models.PayerEntry{}, false
	}
	e := &models.PayerEntry{ID: l.takeID()}
	l.entries = append(l.entries, e)
	l.recompute()
	return *e, true
}

// RemoveEntry deletes the entry and recomputes totals. Removing the final
// entry is refused; protecting the first entry specifically is a UI
// affordance, not enforced here.
func (l *Ledger) RemoveEntry(id models.EntryID) error {
	if len(l.entries) == 1 {
		return ErrLastEntry
	}
	for i, e := range l.entries {
		if e.ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			l.recompute()
			return nil
		}
	}
	return fmt.Errorf("remove entry %d: %w", id, ErrUnknownEntry)
}

// AssignUser sets the entry's user. No two entries may hold the same user;
// assigning a user already held elsewhere is refused. The returned
// Assignment names the user that became taken and the one that became free.
func (l *Ledger) AssignUser(id models.EntryID, user models.UserID) (Assignment, error) {
	if !user.IsAssigned() {
		return Assignment{}, errors.New("cannot assign an empty user")
	}
	if !l.members[user] {
		return Assignment{}, fmt.Errorf("assign user %q: %w", user, ErrNotMember)
	}
	target := l.find(id)
	if target == nil {
		return Assignment{}, fmt.Errorf("assign entry %d: %w", id, ErrUnknownEntry)
	}
	for _, e := range l.entries {
		if e != target && e.User == user {
			return Assignment{}, fmt.Errorf("assign user %q: %w", user, ErrUserTaken)
		}
	}

	res := Assignment{Assigned: user, Freed: target.User}
	if res.Freed == user {
		res.Freed = ""
	}
	target.User = user
	l.recompute()
	return res, nil
}

// SetAmount sets a clamped amount on one entry and recomputes totals.
func (l *Ledger) SetAmount(id models.EntryID, amount money.Amount) error {
	e := l.find(id)
	if e == nil {
		return fmt.Errorf("set amount on entry %d: %w", id, ErrUnknownEntry)
	}
	e.Amount = money.Clamp(amount, l.ceiling)
	l.recompute()
	return nil
}

// OnExpenseAmountChanged retargets the ledger to a new expense amount.
// With exactly one entry, that entry's amount is forced to the new total
// (single-payer auto-sync); otherwise the entries are left untouched and
// only the totals are refreshed.
func (l *Ledger) OnExpenseAmountChanged(total money.Amount) {
	l.target = total
	if len(l.entries) == 1 {
		l.entries[0].Amount = total
	}
	l.recompute()
}

func (l *Ledger) find(id models.EntryID) *models.PayerEntry {
	for _, e := range l.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (l *Ledger) recompute() {
	l.total = 0
	l.valid = true
	for _, e := range l.entries {
		l.total += e.Amount
		if !e.User.IsAssigned() {
			l.valid = false
		}
	}
	l.remainder = l.target - l.total
	if l.remainder != 0 {
		l.valid = false
	}
}

// Total is the sum of all entry amounts.
func (l *Ledger) Total() money.Amount { return l.total }

// Remainder is the expense amount minus Total; 0 when the ledger adds up.
func (l *Ledger) Remainder() money.Amount { return l.remainder }

// Valid reports whether the ledger adds up and every entry has a user.
func (l *Ledger) Valid() bool { return l.valid }

// Len is the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// PaidBy returns the sum fronted by one user across all entries.
func (l *Ledger) PaidBy(user models.UserID) money.Amount {
	var paid money.Amount
	for _, e := range l.entries {
		if e.User == user {
			paid += e.Amount
		}
	}
	return paid
}

// Classify derives who paid for the draft. An entry counts only if it has
// both an assigned user and a non-zero amount.
func (l *Ledger) Classify(currentUser models.UserID) models.PaidByKind {
	payers := make(map[models.UserID]bool)
	for _, e := range l.entries {
		if e.User.IsAssigned() && e.Amount != 0 {
			payers[e.User] = true
		}
	}
	switch {
	case len(payers) == 0:
		return models.PaidByNobody
	case len(payers) > 1:
		return models.PaidByMultiple
	case payers[currentUser]:
		return models.PaidByCurrentUser
	default:
		return models.PaidByOtherUser
	}
}

// View returns a rendering snapshot with copied entries.
func (l *Ledger) View(currentUser models.UserID) models.LedgerView {
	entries := make([]models.PayerEntry, len(l.entries))
	for i, e := range l.entries {
		entries[i] = *e
	}
	return models.LedgerView{
		Entries:   entries,
		Total:     l.total,
		Remainder: l.remainder,
		Valid:     l.valid,
		PaidBy:    l.Classify(currentUser),
	}
}
