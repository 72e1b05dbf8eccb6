package models

import "github.com/divvyhq/divvy/internal/money"

// SplitType tags the three splitting strategies.
type SplitType string

const (
	SplitEqually SplitType = "equally"
	SplitParts   SplitType = "parts"
	SplitShares  SplitType = "shares"
)

// LedgerView is the rendering snapshot of the payer ledger.
type LedgerView struct {
	Entries   []PayerEntry
	Total     money.Amount
	Remainder money.Amount
	Valid     bool
	PaidBy    PaidByKind
}

// SplitView is the rendering snapshot of the active split strategy.
// Selected and Shares are populated only by the strategies that use them.
type SplitView struct {
	Type    SplitType
	Amounts map[UserID]money.Amount
	// Selected is non-nil for the equally strategy.
	Selected map[UserID]bool
	// Shares is non-nil for the shares strategy (percent per user).
	Shares         map[UserID]int
	Total          money.Amount
	Remainder      money.Amount
	TotalShare     int
	RemainderShare int
	Valid          bool
}

// DraftView is the full view model exposed after every mutation (one open
// add/edit-expense draft).
type DraftView struct {
	Amount        money.Amount
	Ledger        LedgerView
	Split         SplitView
	BalanceStatus BalanceStatus
	BalanceAmount money.Amount
	Valid         bool
}
