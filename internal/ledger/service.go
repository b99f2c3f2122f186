package ledger

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bet_tracker/internal/wager"
)

// Ledger owns the wagers of one account. Every mutation renumbers the whole
// ledger and persists it before the new state becomes visible.
type Ledger struct {
	accountID string
	wagers    []wager.Wager
	store     Store
	log       *zap.Logger
	now       func() time.Time
}

// Edit lists the fields to change on a wager; nil fields keep their value.
// Outcome, when set, is declared after the other fields are applied.
type Edit struct {
	WagerType      *wager.Type
	Match          *string
	Prediction     *string
	Odds           *decimal.Decimal
	SelectionsText *string
	BetAmount      *decimal.Decimal
	Date           *time.Time
	Outcome        *wager.Declaration
}

func (e Edit) changesCore() bool {
	return e.WagerType != nil || e.Match != nil || e.Prediction != nil ||
		e.Odds != nil || e.SelectionsText != nil || e.BetAmount != nil
}

func Open(ctx context.Context, store Store, accountID string, log *zap.Logger) (*Ledger, error) {
	wagers, err := store.Load(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	Renumber(wagers)
	return &Ledger{
		accountID: accountID,
		wagers:    wagers,
		store:     store,
		log:       log,
		now:       time.Now,
	}, nil
}

func (l *Ledger) AccountID() string {
	return l.accountID
}

func (l *Ledger) Len() int {
	return len(l.wagers)
}

// Wagers returns a copy of the ledger in slip order.
func (l *Ledger) Wagers() []wager.Wager {
	out := make([]wager.Wager, len(l.wagers))
	for i, w := range l.wagers {
		out[i] = w.Clone()
	}
	return out
}

func (l *Ledger) Get(id string) (*wager.Wager, error) {
	i, err := l.indexOf(id)
	if err != nil {
		return nil, err
	}
	w := l.wagers[i].Clone()
	return &w, nil
}

// IDAt resolves a display position (0-based, slip order) to a wager id.
func (l *Ledger) IDAt(index int) (string, error) {
	if index < 0 || index >= len(l.wagers) {
		return "", wager.NotFound(fmt.Sprintf("No bet at row %d.", index))
	}
	return l.wagers[index].WagerID, nil
}

func (l *Ledger) Add(ctx context.Context, draft wager.Draft) (*wager.Wager, error) {
	core, err := draft.Build()
	if err != nil {
		return nil, err
	}

	w := wager.Wager{
		WagerID:   uuid.New().String(),
		AccountID: l.accountID,
		Date:      draft.Date,
	}
	if w.Date.IsZero() {
		w.Date = l.now()
	}
	w.ApplyCore(core)
	w.Apply(wager.Settlement{Status: wager.StatusPending})

	next := append(l.Wagers(), w)
	if err := l.commit(ctx, next); err != nil {
		return nil, err
	}

	added, _ := l.Get(w.WagerID)
	l.log.Info("wager added",
		zap.String("account_id", l.accountID),
		zap.String("wager_id", added.WagerID),
		zap.Int("slip_no", added.SlipNo),
		zap.String("wager_type", string(added.WagerType)),
		zap.String("bet_amount", added.BetAmount.String()))
	return added, nil
}

func (l *Ledger) Update(ctx context.Context, id string, edit Edit) (*wager.Wager, error) {
	i, err := l.indexOf(id)
	if err != nil {
		return nil, err
	}
	next := l.Wagers()
	w := &next[i]

	decl := edit.Outcome
	if edit.changesCore() {
		draft, err := mergeDraft(*w, edit)
		if err != nil {
			return nil, err
		}
		core, err := draft.Build()
		if err != nil {
			return nil, err
		}
		if decl == nil {
			prior := wager.PriorDeclaration(*w, core.WagerType)
			decl = &prior
		}
		w.ApplyCore(core)
	}
	if edit.Date != nil {
		w.Date = *edit.Date
	}
	if decl != nil {
		s, err := wager.Settle(*w, *decl)
		if err != nil {
			return nil, err
		}
		w.Apply(s)
	}

	if err := l.commit(ctx, next); err != nil {
		return nil, err
	}

	updated, _ := l.Get(id)
	l.log.Info("wager updated",
		zap.String("account_id", l.accountID),
		zap.String("wager_id", id),
		zap.Int("slip_no", updated.SlipNo),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

// Settle declares an outcome without touching any other field.
func (l *Ledger) Settle(ctx context.Context, id string, decl wager.Declaration) (*wager.Wager, error) {
	return l.Update(ctx, id, Edit{Outcome: &decl})
}

func (l *Ledger) Remove(ctx context.Context, id string) error {
	i, err := l.indexOf(id)
	if err != nil {
		return err
	}
	next := l.Wagers()
	next = slices.Delete(next, i, i+1)
	if err := l.commit(ctx, next); err != nil {
		return err
	}
	l.log.Info("wager removed",
		zap.String("account_id", l.accountID),
		zap.String("wager_id", id),
		zap.Int("remaining", len(next)))
	return nil
}

// Renumber orders wagers by date, keeping the relative order of equal
// dates, and assigns slip numbers 1..N.
func Renumber(wagers []wager.Wager) {
	slices.SortStableFunc(wagers, func(a, b wager.Wager) int {
		return a.Date.Compare(b.Date)
	})
	for i := range wagers {
		wagers[i].SlipNo = i + 1
	}
}

func (l *Ledger) commit(ctx context.Context, next []wager.Wager) error {
	Renumber(next)
	if err := l.store.Save(ctx, l.accountID, next); err != nil {
		l.log.Error("failed to save ledger", zap.String("account_id", l.accountID), zap.Error(err))
		return err
	}
	l.wagers = next
	return nil
}

func (l *Ledger) indexOf(id string) (int, error) {
	for i, w := range l.wagers {
		if w.WagerID == id {
			return i, nil
		}
	}
	return -1, wager.NotFound(fmt.Sprintf("Bet %s not found.", id))
}

// mergeDraft overlays the edit on the wager's current values. Switching a
// Single to an Accumulator without new selections reuses the existing one.
// Selections text sent for a wager that ends up Single is rejected.
func mergeDraft(w wager.Wager, e Edit) (wager.Draft, error) {
	d := wager.Draft{
		WagerType:  w.WagerType,
		Match:      w.Match,
		Prediction: w.Prediction,
		Odds:       w.Odds,
		Selections: []wager.Selection(w.Selections),
		BetAmount:  w.BetAmount,
	}
	if e.WagerType != nil {
		d.WagerType = *e.WagerType
		if d.WagerType == wager.TypeSingle && w.WagerType == wager.TypeAccumulator {
			d.Match, d.Prediction, d.Odds = "", "", decimal.Zero
		}
	}
	if e.Match != nil {
		d.Match = *e.Match
	}
	if e.Prediction != nil {
		d.Prediction = *e.Prediction
	}
	if e.Odds != nil {
		d.Odds = *e.Odds
	}
	if e.SelectionsText != nil && strings.TrimSpace(*e.SelectionsText) != "" {
		if d.WagerType != wager.TypeAccumulator {
			return wager.Draft{}, wager.Invalid("Selections only apply to Accumulator bets.")
		}
		d.SelectionsText = *e.SelectionsText
	}
	if e.BetAmount != nil {
		d.BetAmount = *e.BetAmount
	}
	return d, nil
}
