package display

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bet_tracker/internal/wager"
)

const DateLayout = "2006-01-02 15:04"

var symbols = map[string]string{
	"NLE": "Le",
	"USD": "$",
	"EUR": "€",
}

// Symbol returns the display symbol for a currency code; unknown codes get "$".
func Symbol(currency string) string {
	if s, ok := symbols[strings.ToUpper(currency)]; ok {
		return s
	}
	return "$"
}

func Money(currency string, d decimal.Decimal) string {
	return Symbol(currency) + d.StringFixed(2)
}

// SignedMoney always shows the sign after the symbol, as in "$+12.50".
func SignedMoney(currency string, d decimal.Decimal) string {
	s := d.StringFixed(2)
	if !d.IsNegative() {
		s = "+" + s
	}
	return Symbol(currency) + s
}

func Date(t time.Time) string {
	return t.Format(DateLayout)
}

func Outcome(outcome *string) string {
	if outcome == nil {
		return string(wager.StatusPending)
	}
	return *outcome
}

func Selections(sels []wager.Selection) string {
	parts := make([]string, 0, len(sels))
	for _, s := range sels {
		parts = append(parts, fmt.Sprintf("%s %s @ %s", s.Match, s.Prediction, s.Odds.StringFixed(2)))
	}
	return strings.Join(parts, ", ")
}

type Row struct {
	WagerID      string `json:"wager_id"`
	SlipNo       string `json:"slip_no"`
	Date         string `json:"date"`
	WagerType    string `json:"wager_type"`
	Match        string `json:"match"`
	Prediction   string `json:"prediction"`
	Selections   string `json:"selections"`
	BetAmount    string `json:"bet_amount"`
	Odds         string `json:"odds"`
	Outcome      string `json:"outcome"`
	ResultAmount string `json:"result_amount"`
	ProfitLoss   string `json:"profit_loss"`
	Status       string `json:"status"`
}

// Rows projects wagers for a table. The projection carries no state of its own.
func Rows(wagers []wager.Wager, currency string) []Row {
	rows := make([]Row, 0, len(wagers))
	for _, w := range wagers {
		rows = append(rows, Row{
			WagerID:      w.WagerID,
			SlipNo:       fmt.Sprintf("Slip No: %d", w.SlipNo),
			Date:         Date(w.Date),
			WagerType:    string(w.WagerType),
			Match:        w.Match,
			Prediction:   w.Prediction,
			Selections:   Selections(w.Selections),
			BetAmount:    Money(currency, w.BetAmount),
			Odds:         w.Odds.StringFixed(2),
			Outcome:      Outcome(w.Outcome),
			ResultAmount: Money(currency, w.ResultAmount),
			ProfitLoss:   SignedMoney(currency, w.ProfitLoss),
			Status:       string(w.Status),
		})
	}
	return rows
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

type Feedback struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// SettledFeedback describes a settlement the way the ledger table reports it.
func SettledFeedback(w wager.Wager, currency string) Feedback {
	switch w.Status {
	case wager.StatusWin:
		return Feedback{
			Message:  fmt.Sprintf("Updated slip %d to Win, Profit/Loss: %s", w.SlipNo, SignedMoney(currency, w.ProfitLoss)),
			Severity: SeveritySuccess,
		}
	case wager.StatusLoss:
		return Feedback{
			Message:  fmt.Sprintf("Updated slip %d to Loss, Profit/Loss: %s", w.SlipNo, SignedMoney(currency, w.ProfitLoss)),
			Severity: SeverityDanger,
		}
	default:
		return Feedback{Message: fmt.Sprintf("Set slip %d to Pending", w.SlipNo), Severity: SeverityInfo}
	}
}

// AddedFeedback confirms a new wager; a risky stake turns it into a warning.
func AddedFeedback(w wager.Wager, risky bool) Feedback {
	f := Feedback{
		Message:  fmt.Sprintf("%s bet added for %s!", w.WagerType, w.Match),
		Severity: SeveritySuccess,
	}
	if risky {
		f.Severity = SeverityWarning
	}
	return f
}

func UpdatedFeedback(w wager.Wager) Feedback {
	switch w.Status {
	case wager.StatusWin:
		return Feedback{Message: "Bet updated to Win!", Severity: SeveritySuccess}
	case wager.StatusLoss:
		return Feedback{Message: "Bet updated to Loss!", Severity: SeverityDanger}
	default:
		return Feedback{Message: "Bet set to Pending!", Severity: SeverityInfo}
	}
}

func DeletedFeedback() Feedback {
	return Feedback{Message: "Bet deleted successfully!", Severity: SeverityWarning}
}

func SettingsFeedback() Feedback {
	return Feedback{Message: "Settings updated successfully!", Severity: SeveritySuccess}
}

// ErrorFeedback surfaces core errors verbatim; anything else is reported
// without internals.
func ErrorFeedback(err error) Feedback {
	var we *wager.Error
	if errors.As(err, &we) {
		return Feedback{Message: we.Msg, Severity: SeverityDanger}
	}
	return Feedback{Message: "Operation failed: " + err.Error(), Severity: SeverityDanger}
}
