package wager

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const selectionsFormatMsg = "Invalid selections format for Accumulator. Each line should be 'Match Prediction Odds'."

// ParseSelections reads one "Match Prediction Odds" selection per line.
// Lines that do not fit the format are skipped; it fails only when nothing
// valid remains.
func ParseSelections(text string) ([]Selection, error) {
	var selections []Selection
	for _, line := range strings.Split(text, "\n") {
		sel, ok := parseLine(line)
		if !ok {
			continue
		}
		selections = append(selections, sel)
	}
	if len(selections) == 0 {
		return nil, newError(ErrParse, selectionsFormatMsg)
	}
	return selections, nil
}

func parseLine(line string) (Selection, bool) {
	words := strings.Fields(line)
	if len(words) < 3 {
		return Selection{}, false
	}
	odds, err := decimal.NewFromString(words[len(words)-1])
	if err != nil || !odds.IsPositive() {
		return Selection{}, false
	}
	return Selection{
		Match:      strings.Join(words[:len(words)-2], " "),
		Prediction: words[len(words)-2],
		Odds:       odds,
	}, true
}

// SingleSelection builds the one selection of a Single wager from its
// discrete fields. Unlike the line parser, a missing field is an error.
func SingleSelection(match, prediction string, odds decimal.Decimal) (Selection, error) {
	if strings.TrimSpace(match) == "" || strings.TrimSpace(prediction) == "" || odds.IsZero() {
		return Selection{}, newError(ErrValidation, "Missing match, prediction, or odds for Single bet.")
	}
	if odds.IsNegative() {
		return Selection{}, newError(ErrValidation, "Odds must be a positive number.")
	}
	return Selection{Match: match, Prediction: prediction, Odds: odds}, nil
}

// CombinedOdds multiplies the odds of every selection.
func CombinedOdds(selections []Selection) decimal.Decimal {
	total := decimal.NewFromInt(1)
	for _, s := range selections {
		total = total.Mul(s.Odds)
	}
	return total
}

func AccumulatorMatch(n int) string {
	return fmt.Sprintf("Accumulator (%d selections)", n)
}

// FormatSelections renders selections back into the text ParseSelections reads.
func FormatSelections(selections []Selection) string {
	lines := make([]string, 0, len(selections))
	for _, s := range selections {
		lines = append(lines, fmt.Sprintf("%s %s %s", s.Match, s.Prediction, s.Odds.StringFixed(2)))
	}
	return strings.Join(lines, "\n")
}
