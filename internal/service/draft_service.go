// Package service exposes the allocation engine to the layer that opens
// and closes draft expenses. It replaces any ambient global form state with
// an explicit registry: each open draft is one engine instance keyed by a
// generated draft ID, owned by whichever collaborator opened it.
//
// Each draft has exactly one single-threaded owner at a time, so the
// registry itself takes no locks; rate-limiting rapid input is the
// caller's concern.
package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/divvyhq/divvy/internal/config"
	"github.com/divvyhq/divvy/internal/engine"
	"github.com/divvyhq/divvy/internal/ledger"
	"github.com/divvyhq/divvy/internal/metrics"
	"github.com/divvyhq/divvy/internal/models"
)

// ErrUnknownDraft is returned for a draft ID that is not open.
var ErrUnknownDraft = errors.New("unknown draft")

// DraftService manages the open draft expenses for a session.
type DraftService struct {
	limits  config.Limits
	metrics *metrics.Metrics
	drafts  map[string]*engine.Engine
}

// NewDraftService creates the registry. metrics may be nil.
func NewDraftService(limits config.Limits, m *metrics.Metrics) (*DraftService, error) {
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("draft service limits: %w", err)
	}
	return &DraftService{
		limits:  limits,
		metrics: m,
		drafts:  make(map[string]*engine.Engine),
	}, nil
}

// OpenDraft creates an engine for a new add/edit-expense draft and returns
// its ID plus the initial view model.
func (s *DraftService) OpenDraft(members []models.UserID, currentUser models.UserID) (string, models.DraftView, error) {
	eng, err := engine.New(members, currentUser, s.limits)
	if err != nil {
		return "", models.DraftView{}, fmt.Errorf("open draft: %w", err)
	}
	id := uuid.NewString()
	s.drafts[id] = eng
	s.metrics.DraftOpened()
	slog.Info("draft opened", "draft_id", id, "members", len(members), "current_user", currentUser)
	return id, eng.View(), nil
}

// CloseDraft discards a draft's engine and all its state.
func (s *DraftService) CloseDraft(id string) error {
	if _, ok := s.drafts[id]; !ok {
		return fmt.Errorf("close draft %s: %w", id, ErrUnknownDraft)
	}
	delete(s.drafts, id)
	s.metrics.DraftClosed()
	slog.Info("draft closed", "draft_id", id)
	return nil
}

// View returns the current view model without mutating anything.
func (s *DraftService) View(id string) (models.DraftView, error) {
	eng, err := s.draft(id)
	if err != nil {
		return models.DraftView{}, err
	}
	return eng.View(), nil
}

// SetAmount applies a keystroke on the expense amount field.
func (s *DraftService) SetAmount(id, raw string) (models.DraftView, error) {
	eng, err := s.draft(id)
	if err != nil {
		return models.DraftView{}, err
	}
	eng.SetAmount(raw)
	s.done(id, eng, "set_amount")
	return eng.View(), nil
}

// SwitchSplit changes the active splitting strategy.
func (s *DraftService) SwitchSplit(id string, t models.SplitType) (models.DraftView, error) {
	eng, err := s.draft(id)
	if err != nil {
		return models.DraftView{}, err
	}
	if err := eng.SwitchSplit(t); err != nil {
		return models.DraftView{}, err
	}
	s.done(id, eng, "switch_split")
	return eng.View(), nil
}

// AddPayerEntry appends an unassigned payer row. The returned entry is the
// narrow delta for rendering; added is false when the ledger is full.
func (s *DraftService) AddPayerEntry(id string) (models.PayerEntry, bool, models.DraftView, error) {
	eng, err := s.draft(id)
	if err != nil {
		return models.PayerEntry{}, false, models.DraftView{}, err
	}
	entry, added := eng.AddPayerEntry()
	if added {
		s.done(id, eng, "add_payer_entry")
	}
	return entry, added, eng.View(), nil
}

// RemovePayerEntry deletes a payer row.
func (s *DraftService) RemovePayerEntry(id string, entryID models.EntryID) (models.DraftView, error) {
	eng, err := s.draft(id)
	if err != nil {
		return models.DraftView{}, err
	}
	if err := eng.RemovePayerEntry(entryID); err != nil {
		return models.DraftView{}, err
	}
	s.done(id, eng, "remove_payer_entry")
	return eng.View(), nil
}

// AssignPayer sets the user on a payer row. The Assignment reports which
// user became taken and which became free so selection affordances can be
// updated without re-reading the whole view.
func (s *DraftService) AssignPayer(id string, entryID models.EntryID, user models.UserID) (ledger.Assignment, models.DraftView, error) {
	eng, err := s.draft(id)
	if err != nil {
		return ledger.Assignment{}, models.DraftView{}, err
	}
	res, err := eng.AssignPayer(entryID, user)
	if err != nil {
		return ledger.Assignment{}, models.DraftView{}, err
	}
	s.done(id, eng, "assign_payer")
	return res, eng.View(), nil
}

// SetPayerAmount applies a keystroke on one payer row's amount field.
func (s *DraftService) SetPayerAmount(id string, entryID models.EntryID, raw string) (models.DraftView, error) {
	eng, err := s.draft(id)
	if err != nil {
		return models.DraftView{}, err
	}
	if err := eng.SetPayerAmount(entryID, raw); err != nil {
		return models.DraftView{}, err
	}
	s.done(id, eng, "set_payer_amount")
	return eng.View(), nil
}

// ToggleSplitUser flips a member's participation in the equally strategy.
func (s *DraftService) ToggleSplitUser(id string, user models.UserID) (models.DraftView, error) {
	eng, err := s.draft(id)
	if err != nil {
		return models.DraftView{}, err
	}
	if err := eng.ToggleSplitUser(user); err != nil {
		return models.DraftView{}, err
	}
	s.done(id, eng, "toggle_split_user")
	return eng.View(), nil
}

// SetSplitPart applies a keystroke on one member's part amount.
func (s *DraftService) SetSplitPart(id string, user models.UserID, raw string) (models.DraftView, error) {
	eng, err := s.draft(id)
	if err != nil {
		return models.DraftView{}, err
	}
	if err := eng.SetSplitPart(user, raw); err != nil {
		return models.DraftView{}, err
	}
	s.done(id, eng, "set_split_part")
	return eng.View(), nil
}

// SetSplitShare applies a keystroke on one member's percentage. applied is
// false when the percent was rejected and the previous share kept.
func (s *DraftService) SetSplitShare(id string, user models.UserID, raw string) (bool, models.DraftView, error) {
	eng, err := s.draft(id)
	if err != nil {
		return false, models.DraftView{}, err
	}
	applied, err := eng.SetSplitShare(user, raw)
	if err != nil {
		return false, models.DraftView{}, err
	}
	if applied {
		s.done(id, eng, "set_split_share")
	}
	return applied, eng.View(), nil
}

func (s *DraftService) draft(id string) (*engine.Engine, error) {
	eng, ok := s.drafts[id]
	if !ok {
		return nil, fmt.Errorf("draft %s: %w", id, ErrUnknownDraft)
	}
	return eng, nil
}

func (s *DraftService) done(id string, eng *engine.Engine, op string) {
	s.metrics.Mutation(op)
	slog.Debug("draft mutated",
		"draft_id", id,
		"op", op,
		"amount", eng.Amount(),
		"active_split", eng.ActiveSplit(),
		"valid", eng.Valid(),
	)
}
