package wager

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Type string

const (
	TypeSingle      Type = "Single"
	TypeAccumulator Type = "Accumulator"
)

type Status string

const (
	StatusPending Status = "Pending"
	StatusWin     Status = "Win"
	StatusLoss    Status = "Loss"
)

// OutcomeLoss marks a Single lost without recording what actually happened.
// OutcomeWin is the settled outcome of a won Accumulator.
const (
	OutcomeWin  = "Win"
	OutcomeLoss = "Loss"
)

const AccumulatorPrediction = "Accumulator Win"

type Selection struct {
	Match      string          `json:"match"`
	Prediction string          `json:"prediction"`
	Odds       decimal.Decimal `json:"odds"`
}

type Wager struct {
	WagerID      string                         `gorm:"column:wager_id;primaryKey;type:uuid" json:"wager_id"`
	AccountID    string                         `gorm:"column:account_id;type:uuid;not null;index" json:"account_id"`
	SlipNo       int                            `gorm:"column:slip_no;not null" json:"slip_no"`
	Date         time.Time                      `gorm:"column:date;not null" json:"date"`
	WagerType    Type                           `gorm:"column:wager_type;type:varchar(20);not null" json:"wager_type"`
	Match        string                         `gorm:"column:match;type:text;not null" json:"match"`
	Prediction   string                         `gorm:"column:prediction;type:text;not null" json:"prediction"`
	BetAmount    decimal.Decimal                `gorm:"column:bet_amount;type:numeric(20,2);not null" json:"bet_amount"`
	Odds         decimal.Decimal                `gorm:"column:odds;type:numeric(20,6);not null" json:"odds"`
	Selections   datatypes.JSONSlice[Selection] `gorm:"column:selections" json:"selections"`
	Outcome      *string                        `gorm:"column:outcome;type:text" json:"outcome"`
	ResultAmount decimal.Decimal                `gorm:"column:result_amount;type:numeric(20,2);not null;default:0" json:"result_amount"`
	ProfitLoss   decimal.Decimal                `gorm:"column:profit_loss;type:numeric(20,2);not null;default:0" json:"profit_loss"`
	Status       Status                         `gorm:"column:status;type:varchar(20);not null" json:"status"`
}

func (Wager) TableName() string {
	return "wagers"
}

// Settled reports whether an outcome has been recorded.
func (w Wager) Settled() bool {
	return w.Outcome != nil
}

// IsWin reads the win flag the way analytics does: a Single wins when the
// outcome matches its prediction, an Accumulator when the outcome is "Win".
func (w Wager) IsWin() bool {
	if w.Outcome == nil {
		return false
	}
	if w.WagerType == TypeAccumulator {
		return *w.Outcome == OutcomeWin
	}
	return *w.Outcome == w.Prediction
}

// Clone copies the wager including its selections and outcome.
func (w Wager) Clone() Wager {
	c := w
	if w.Selections != nil {
		c.Selections = append(datatypes.JSONSlice[Selection]{}, w.Selections...)
	}
	if w.Outcome != nil {
		o := *w.Outcome
		c.Outcome = &o
	}
	return c
}

// Draft carries the raw input of a new wager. Single wagers use Match,
// Prediction and Odds; Accumulators use SelectionsText, or Selections when
// no text is given.
type Draft struct {
	WagerType      Type            `json:"wager_type"`
	Match          string          `json:"match"`
	Prediction     string          `json:"prediction"`
	Odds           decimal.Decimal `json:"odds"`
	SelectionsText string          `json:"selections_text"`
	Selections     []Selection     `json:"selections"`
	BetAmount      decimal.Decimal `json:"bet_amount"`
	Date           time.Time       `json:"date"`
}

// Core holds the fields a Draft resolves to.
type Core struct {
	WagerType  Type
	Match      string
	Prediction string
	Odds       decimal.Decimal
	Selections []Selection
	BetAmount  decimal.Decimal
}

// Build validates the draft and resolves its display fields and odds.
func (d Draft) Build() (Core, error) {
	if !d.BetAmount.IsPositive() {
		return Core{}, newError(ErrValidation, "Bet amount must be a positive number.")
	}

	switch d.WagerType {
	case TypeSingle:
		sel, err := SingleSelection(d.Match, d.Prediction, d.Odds)
		if err != nil {
			return Core{}, err
		}
		return Core{
			WagerType:  TypeSingle,
			Match:      sel.Match,
			Prediction: sel.Prediction,
			Odds:       sel.Odds,
			Selections: []Selection{sel},
			BetAmount:  d.BetAmount,
		}, nil
	case TypeAccumulator:
		sels, err := d.accumulatorSelections()
		if err != nil {
			return Core{}, err
		}
		return Core{
			WagerType:  TypeAccumulator,
			Match:      AccumulatorMatch(len(sels)),
			Prediction: AccumulatorPrediction,
			Odds:       CombinedOdds(sels),
			Selections: sels,
			BetAmount:  d.BetAmount,
		}, nil
	default:
		return Core{}, newError(ErrValidation, "Wager type must be 'Single' or 'Accumulator'.")
	}
}

func (d Draft) accumulatorSelections() ([]Selection, error) {
	if d.SelectionsText != "" {
		return ParseSelections(d.SelectionsText)
	}
	if len(d.Selections) == 0 {
		return nil, newError(ErrValidation, "Missing selections for Accumulator.")
	}
	sels := make([]Selection, 0, len(d.Selections))
	for _, s := range d.Selections {
		sel, err := SingleSelection(s.Match, s.Prediction, s.Odds)
		if err != nil {
			return nil, newError(ErrValidation, "Each selection needs a match, prediction and positive odds.")
		}
		sels = append(sels, sel)
	}
	return sels, nil
}

// ApplyCore overwrites the wager's core fields. Settlement fields are untouched.
func (w *Wager) ApplyCore(c Core) {
	w.WagerType = c.WagerType
	w.Match = c.Match
	w.Prediction = c.Prediction
	w.Odds = c.Odds
	w.Selections = datatypes.NewJSONSlice(c.Selections)
	w.BetAmount = c.BetAmount
}
