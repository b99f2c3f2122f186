package wager

import "github.com/shopspring/decimal"

type DeclarationKind int

const (
	DeclarePending DeclarationKind = iota
	DeclareWin
	DeclareLoss
	DeclareOutcome
)

// Declaration is what the caller says happened to a wager. "Win" and "Loss"
// confirm or reject the stored prediction; DeclareOutcome asserts the actual
// result, which only Single wagers accept.
type Declaration struct {
	Kind    DeclarationKind
	Outcome string
}

func Pending() Declaration     { return Declaration{Kind: DeclarePending} }
func ConfirmWin() Declaration  { return Declaration{Kind: DeclareWin} }
func ConfirmLoss() Declaration { return Declaration{Kind: DeclareLoss} }

func AssertOutcome(outcome string) Declaration {
	return Declaration{Kind: DeclareOutcome, Outcome: outcome}
}

// ParseDeclaration maps the raw outcome text of a form or request.
func ParseDeclaration(raw string) Declaration {
	switch raw {
	case "", string(StatusPending):
		return Pending()
	case OutcomeWin:
		return ConfirmWin()
	case OutcomeLoss:
		return ConfirmLoss()
	default:
		return AssertOutcome(raw)
	}
}

func (d Declaration) String() string {
	switch d.Kind {
	case DeclareWin:
		return OutcomeWin
	case DeclareLoss:
		return OutcomeLoss
	case DeclareOutcome:
		return d.Outcome
	default:
		return string(StatusPending)
	}
}

type Settlement struct {
	Outcome      *string
	ResultAmount decimal.Decimal
	ProfitLoss   decimal.Decimal
	Status       Status
}

// Settle computes the financial result of declaring d on w. It reads only
// the wager's type, prediction, stake and odds and never modifies w.
func Settle(w Wager, d Declaration) (Settlement, error) {
	if d.Kind == DeclarePending || (d.Kind == DeclareOutcome && d.Outcome == "") {
		return Settlement{
			ResultAmount: decimal.Zero,
			ProfitLoss:   decimal.Zero,
			Status:       StatusPending,
		}, nil
	}

	if w.WagerType == TypeAccumulator {
		switch d.Kind {
		case DeclareWin:
			return won(w, OutcomeWin), nil
		case DeclareLoss:
			return lost(w, OutcomeLoss), nil
		default:
			return Settlement{}, newError(ErrInvalidOutcome, "Invalid outcome for Accumulator. Use 'Win', 'Loss', or 'Pending'.")
		}
	}

	switch d.Kind {
	case DeclareWin:
		return won(w, w.Prediction), nil
	case DeclareLoss:
		return lost(w, OutcomeLoss), nil
	}
	if d.Outcome == w.Prediction {
		return won(w, d.Outcome), nil
	}
	return lost(w, d.Outcome), nil
}

func won(w Wager, outcome string) Settlement {
	result := w.BetAmount.Mul(w.Odds).Round(2)
	profit := result.Sub(w.BetAmount).Round(2)
	return Settlement{
		Outcome:      &outcome,
		ResultAmount: result,
		ProfitLoss:   profit,
		Status:       DeriveStatus(&outcome, profit),
	}
}

func lost(w Wager, outcome string) Settlement {
	profit := w.BetAmount.Neg().Round(2)
	return Settlement{
		Outcome:      &outcome,
		ResultAmount: decimal.Zero,
		ProfitLoss:   profit,
		Status:       DeriveStatus(&outcome, profit),
	}
}

// DeriveStatus is Pending without an outcome, otherwise Win exactly when
// the wager made a profit.
func DeriveStatus(outcome *string, profitLoss decimal.Decimal) Status {
	if outcome == nil {
		return StatusPending
	}
	if profitLoss.IsPositive() {
		return StatusWin
	}
	return StatusLoss
}

// PriorDeclaration re-expresses the wager's current settlement so it can be
// replayed after its core fields are edited and the wager becomes next. A
// Single that stays Single replays its recorded result, so editing the
// prediction re-judges what actually happened.
func PriorDeclaration(w Wager, next Type) Declaration {
	switch {
	case w.Outcome == nil:
		return Pending()
	case w.WagerType == TypeAccumulator:
		if *w.Outcome == OutcomeWin {
			return ConfirmWin()
		}
		return ConfirmLoss()
	case next == TypeAccumulator:
		if *w.Outcome == w.Prediction {
			return ConfirmWin()
		}
		return ConfirmLoss()
	case *w.Outcome == OutcomeLoss:
		return ConfirmLoss()
	default:
		return AssertOutcome(*w.Outcome)
	}
}

// Apply writes a settlement onto the wager.
func (w *Wager) Apply(s Settlement) {
	w.Outcome = s.Outcome
	w.ResultAmount = s.ResultAmount
	w.ProfitLoss = s.ProfitLoss
	w.Status = s.Status
}
