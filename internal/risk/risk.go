package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"bet_tracker/internal/display"
	"bet_tracker/internal/wager"
)

var hundred = decimal.NewFromInt(100)

// Policy caps a single stake at MaxBetPercent of the current bankroll.
type Policy struct {
	InitialBankroll decimal.Decimal
	MaxBetPercent   decimal.Decimal
}

type Assessment struct {
	IsRisky         bool            `json:"is_risky"`
	Message         string          `json:"message,omitempty"`
	BetAmount       decimal.Decimal `json:"bet_amount"`
	CurrentBankroll decimal.Decimal `json:"current_bankroll"`
	MaxAllowed      decimal.Decimal `json:"max_allowed"`
}

// CurrentBankroll is the initial bankroll plus every recorded profit/loss.
func CurrentBankroll(initial decimal.Decimal, wagers []wager.Wager) decimal.Decimal {
	total := initial
	for _, w := range wagers {
		total = total.Add(w.ProfitLoss)
	}
	return total
}

// Assess flags a stake above the policy limit. The result is advisory;
// nothing stops the wager from being recorded.
func Assess(betAmount decimal.Decimal, p Policy, wagers []wager.Wager, currency string) Assessment {
	bankroll := CurrentBankroll(p.InitialBankroll, wagers)
	maxAllowed := p.MaxBetPercent.Div(hundred).Mul(bankroll)

	a := Assessment{
		IsRisky:         betAmount.GreaterThan(maxAllowed),
		BetAmount:       betAmount,
		CurrentBankroll: bankroll,
		MaxAllowed:      maxAllowed,
	}
	if a.IsRisky {
		a.Message = fmt.Sprintf("Warning: Bet amount (%s) exceeds %s%% of current bankroll (%s). Max allowed: %s",
			display.Money(currency, betAmount),
			p.MaxBetPercent.String(),
			display.Money(currency, bankroll),
			display.Money(currency, maxAllowed))
	}
	return a
}
