package models

import "github.com/divvyhq/divvy/internal/money"

// UserID identifies a group member. The zero value ("") means unassigned;
// a payer entry keeps it empty until the user picks someone.
type UserID string

// IsAssigned reports whether the ID refers to an actual member.
func (u UserID) IsAssigned() bool {
	return u != ""
}

// EntryID identifies one payer entry within a draft. IDs are assigned
// monotonically for the draft's lifetime and never reused, even after the
// entry is removed, so a stale reference can never alias a new entry.
type EntryID int64

// PayerEntry records that one member fronted part of the expense.
type PayerEntry struct {
	ID     EntryID
	User   UserID
	Amount money.Amount
}

// PaidByKind classifies who fronted money for the draft. Only entries with
// an assigned user and a non-zero amount count as having paid.
type PaidByKind int

const (
	// PaidByNobody means no entry has both a user and a non-zero amount.
	PaidByNobody PaidByKind = iota
	// PaidByCurrentUser means the current user is the only payer.
	PaidByCurrentUser
	// PaidByOtherUser means exactly one payer exists and it is not the
	// current user.
	PaidByOtherUser
	// PaidByMultiple means two or more distinct users paid.
	PaidByMultiple
)

// BalanceStatus is the display-state code derived for the current user.
// The order of the constants is the precedence order: an earlier status
// wins even when a later condition also holds.
type BalanceStatus int

const (
	// BalanceZeroAmount: the expense amount is still 0.
	BalanceZeroAmount BalanceStatus = iota
	// BalanceCheckPaidBy: the payer ledger does not add up or has an
	// unassigned entry.
	BalanceCheckPaidBy
	// BalanceCheckSplit: the active split does not add up.
	BalanceCheckSplit
	// BalanceBelowMinimum: everything adds up but the amount is under the
	// configured floor.
	BalanceBelowMinimum
	// BalanceDefault: the draft is valid; show the signed balance.
	BalanceDefault
)

// String returns the status name used in logs.
func (s BalanceStatus) String() string {
	switch s {
	case BalanceZeroAmount:
		return "zero_amount"
	case BalanceCheckPaidBy:
		return "check_paid_by"
	case BalanceCheckSplit:
		return "check_split"
	case BalanceBelowMinimum:
		return "amount_below_minimum"
	case BalanceDefault:
		return "default"
	default:
		return "unknown"
	}
}
