package split

import (
	"fmt"

	"github.com/divvyhq/divvy/internal/models"
	"github.com/divvyhq/divvy/internal/money"
)

// Shares divides the expense by per-member percentages. The per-user
// amounts are derived with half-up rounding, so shares summing to 100 do
// not guarantee validity: the rounded amounts themselves must cover the
// expense exactly.
type Shares struct {
	shares  map[models.UserID]int
	amounts map[models.UserID]money.Amount
	target  money.Amount

	totalShare      int
	totalAmount     money.Amount
	remainderShare  int
	remainderAmount money.Amount
}

// NewShares creates the strategy with a zero-percent row per group member.
func NewShares(members []models.UserID) *Shares {
	s := &Shares{
		shares:  make(map[models.UserID]int, len(members)),
		amounts: make(map[models.UserID]money.Amount, len(members)),
	}
	for _, m := range members {
		s.shares[m] = 0
		s.amounts[m] = 0
	}
	return s
}

// Type implements Strategy.
func (s *Shares) Type() models.SplitType { return models.SplitShares }

// SetShare records one member's percentage. A percent still above 100 after
// the extra-digit correction is rejected and the previous share kept; the
// first return reports whether the update was applied.
func (s *Shares) SetShare(user models.UserID, percent int) (bool, error) {
	if _, ok := s.shares[user]; !ok {
		return false, fmt.Errorf("set share for %q: %w", user, ErrUnknownUser)
	}
	if percent < 0 || percent > 100 {
		return false, nil
	}
	s.shares[user] = percent
	s.Recompute(s.target)
	return true, nil
}

// ShareFor returns one member's percentage.
func (s *Shares) ShareFor(user models.UserID) int { return s.shares[user] }

// Recompute implements Strategy.
func (s *Shares) Recompute(total money.Amount) {
	s.target = total
	s.totalShare = 0
	s.totalAmount = 0
	for u, pct := range s.shares {
		s.totalShare += pct
		a := money.PercentAmount(total, pct)
		s.amounts[u] = a
		s.totalAmount += a
	}
	s.remainderAmount = total - s.totalAmount
	if total == 0 {
		s.remainderShare = 0
	} else {
		s.remainderShare = 100 - s.totalShare
	}
}

// AmountFor implements Strategy.
func (s *Shares) AmountFor(user models.UserID) money.Amount { return s.amounts[user] }

// Valid implements Strategy. Validity is judged on the derived amounts, not
// the percentages.
func (s *Shares) Valid() bool { return s.remainderAmount == 0 }

// View implements Strategy.
func (s *Shares) View() models.SplitView {
	amounts := make(map[models.UserID]money.Amount, len(s.amounts))
	for u, a := range s.amounts {
		amounts[u] = a
	}
	shares := make(map[models.UserID]int, len(s.shares))
	for u, pct := range s.shares {
		shares[u] = pct
	}
	return models.SplitView{
		Type:           models.SplitShares,
		Amounts:        amounts,
		Shares:         shares,
		Total:          s.totalAmount,
		Remainder:      s.remainderAmount,
		TotalShare:     s.totalShare,
		RemainderShare: s.remainderShare,
		Valid:          s.Valid(),
	}
}
