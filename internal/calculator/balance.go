// Package calculator derives the current user's signed balance and display
// status from allocation state. It holds no state of its own.
package calculator

import (
	"github.com/divvyhq/divvy/internal/models"
	"github.com/divvyhq/divvy/internal/money"
)

// Input is the slice of engine state the balance derivation needs.
type Input struct {
	// Amount is the draft's expense amount.
	Amount money.Amount
	// LedgerValid reports whether the payer ledger adds up with every
	// entry assigned.
	LedgerValid bool
	// SplitValid reports whether the active split covers the expense.
	SplitValid bool
	// Paid is what the current user fronted across all payer entries.
	Paid money.Amount
	// Owed is the current user's share under the active split.
	Owed money.Amount
	// Minimum is the configured floor below which a non-zero expense is
	// flagged instead of balanced.
	Minimum money.Amount
}

// Result is the derived display state for the current user.
type Result struct {
	Status models.BalanceStatus
	// Amount is the signed balance: positive when the user is owed money,
	// negative when the user owes.
	Amount money.Amount
}

// Balance combines engine state into a display status and signed balance.
//
// Precedence is fixed: a zero amount wins over everything, an invalid
// ledger is reported even when the split is also invalid, and the minimum
// check runs only once both are valid.
func Balance(in Input) Result {
	balance := in.Paid - in.Owed
	switch {
	case in.Amount == 0:
		return Result{Status: models.BalanceZeroAmount, Amount: balance}
	case !in.LedgerValid:
		return Result{Status: models.BalanceCheckPaidBy, Amount: balance}
	case !in.SplitValid:
		return Result{Status: models.BalanceCheckSplit, Amount: balance}
	case in.Amount < in.Minimum:
		return Result{Status: models.BalanceBelowMinimum, Amount: balance}
	default:
		return Result{Status: models.BalanceDefault, Amount: balance}
	}
}
