package wager

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func single(prediction, amount, odds string) Wager {
	return Wager{
		WagerType:  TypeSingle,
		Match:      "Arsenal vs Chelsea",
		Prediction: prediction,
		BetAmount:  dec(amount),
		Odds:       dec(odds),
		Status:     StatusPending,
	}
}

func accumulator(amount, odds string) Wager {
	return Wager{
		WagerType:  TypeAccumulator,
		Match:      AccumulatorMatch(2),
		Prediction: AccumulatorPrediction,
		BetAmount:  dec(amount),
		Odds:       dec(odds),
		Status:     StatusPending,
	}
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Fatalf("got %s want %s", got.String(), want)
	}
}

func TestSettle_AccumulatorWin(t *testing.T) {
	s, err := Settle(accumulator("100", "3.5"), ConfirmWin())
	require.NoError(t, err)

	require.NotNil(t, s.Outcome)
	assert.Equal(t, "Win", *s.Outcome)
	assertMoney(t, "350.00", s.ResultAmount)
	assertMoney(t, "250.00", s.ProfitLoss)
	assert.Equal(t, StatusWin, s.Status)
}

func TestSettle_AccumulatorLoss(t *testing.T) {
	s, err := Settle(accumulator("40", "6.2"), ConfirmLoss())
	require.NoError(t, err)

	assert.Equal(t, "Loss", *s.Outcome)
	assertMoney(t, "0", s.ResultAmount)
	assertMoney(t, "-40", s.ProfitLoss)
	assert.Equal(t, StatusLoss, s.Status)
}

func TestSettle_AccumulatorRejectsAssertedOutcome(t *testing.T) {
	_, err := Settle(accumulator("10", "2"), AssertOutcome("Arsenal"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOutcome))
}

func TestSettle_SingleAssertedOutcomeLoss(t *testing.T) {
	s, err := Settle(single("Arsenal", "50", "2.0"), ParseDeclaration("Chelsea"))
	require.NoError(t, err)

	assert.Equal(t, "Chelsea", *s.Outcome)
	assertMoney(t, "0", s.ResultAmount)
	assertMoney(t, "-50.00", s.ProfitLoss)
	assert.Equal(t, StatusLoss, s.Status)
}

func TestSettle_SingleAssertedOutcomeMatchesPrediction(t *testing.T) {
	s, err := Settle(single("Arsenal", "50", "2.0"), ParseDeclaration("Arsenal"))
	require.NoError(t, err)

	assert.Equal(t, "Arsenal", *s.Outcome)
	assertMoney(t, "100", s.ResultAmount)
	assertMoney(t, "50", s.ProfitLoss)
	assert.Equal(t, StatusWin, s.Status)
}

func TestSettle_SingleMatchIsCaseSensitive(t *testing.T) {
	s, err := Settle(single("Arsenal", "50", "2.0"), ParseDeclaration("arsenal"))
	require.NoError(t, err)
	assert.Equal(t, StatusLoss, s.Status)
	assert.Equal(t, "arsenal", *s.Outcome)
}

func TestSettle_SingleConfirmWinUsesPrediction(t *testing.T) {
	s, err := Settle(single("Draw", "20", "3.1"), ParseDeclaration("Win"))
	require.NoError(t, err)

	assert.Equal(t, "Draw", *s.Outcome)
	assertMoney(t, "62", s.ResultAmount)
	assertMoney(t, "42", s.ProfitLoss)
	assert.Equal(t, StatusWin, s.Status)
}

func TestSettle_SingleConfirmLossUsesSentinel(t *testing.T) {
	s, err := Settle(single("Draw", "20", "3.1"), ParseDeclaration("Loss"))
	require.NoError(t, err)

	assert.Equal(t, OutcomeLoss, *s.Outcome)
	assertMoney(t, "-20", s.ProfitLoss)
	assert.Equal(t, StatusLoss, s.Status)
}

func TestSettle_RoundsToCents(t *testing.T) {
	s, err := Settle(single("Home", "33.33", "1.333"), ConfirmWin())
	require.NoError(t, err)
	assertMoney(t, "44.43", s.ResultAmount)
	assertMoney(t, "11.10", s.ProfitLoss)
}

func TestSettle_ResetToPending(t *testing.T) {
	w := single("Arsenal", "50", "2.0")
	settled, err := Settle(w, ConfirmWin())
	require.NoError(t, err)
	w.Apply(settled)
	require.True(t, w.Settled())

	for _, raw := range []string{"Pending", ""} {
		s, err := Settle(w, ParseDeclaration(raw))
		require.NoError(t, err)
		assert.Nil(t, s.Outcome)
		assertMoney(t, "0", s.ResultAmount)
		assertMoney(t, "0", s.ProfitLoss)
		assert.Equal(t, StatusPending, s.Status)
	}
}

func TestSettle_IsDeterministic(t *testing.T) {
	w := accumulator("12.5", "4.44")
	a, err := Settle(w, ConfirmWin())
	require.NoError(t, err)
	b, err := Settle(w, ConfirmWin())
	require.NoError(t, err)

	assert.Equal(t, *a.Outcome, *b.Outcome)
	assert.True(t, a.ResultAmount.Equal(b.ResultAmount))
	assert.True(t, a.ProfitLoss.Equal(b.ProfitLoss))
	assert.Equal(t, a.Status, b.Status)
	assert.Nil(t, w.Outcome, "settle must not touch the wager")
}

func TestParseDeclaration(t *testing.T) {
	assert.Equal(t, DeclarePending, ParseDeclaration("").Kind)
	assert.Equal(t, DeclarePending, ParseDeclaration("Pending").Kind)
	assert.Equal(t, DeclareWin, ParseDeclaration("Win").Kind)
	assert.Equal(t, DeclareLoss, ParseDeclaration("Loss").Kind)

	d := ParseDeclaration("Chelsea")
	assert.Equal(t, DeclareOutcome, d.Kind)
	assert.Equal(t, "Chelsea", d.Outcome)
	assert.Equal(t, "Chelsea", d.String())
}

func TestPriorDeclaration(t *testing.T) {
	w := single("Arsenal", "10", "2")
	assert.Equal(t, DeclarePending, PriorDeclaration(w, TypeSingle).Kind)

	for _, tc := range []struct {
		decl        Declaration
		want        Declaration
		wantAsAccum DeclarationKind
	}{
		{ConfirmWin(), AssertOutcome("Arsenal"), DeclareWin},
		{AssertOutcome("Arsenal"), AssertOutcome("Arsenal"), DeclareWin},
		{ConfirmLoss(), ConfirmLoss(), DeclareLoss},
		{AssertOutcome("Chelsea"), AssertOutcome("Chelsea"), DeclareLoss},
	} {
		c := w.Clone()
		s, err := Settle(c, tc.decl)
		require.NoError(t, err)
		c.Apply(s)
		assert.Equal(t, tc.want, PriorDeclaration(c, TypeSingle), "declared %s", tc.decl)
		assert.Equal(t, tc.wantAsAccum, PriorDeclaration(c, TypeAccumulator).Kind, "declared %s", tc.decl)
	}

	acc := accumulator("10", "3")
	s, err := Settle(acc, ConfirmLoss())
	require.NoError(t, err)
	acc.Apply(s)
	assert.Equal(t, DeclareLoss, PriorDeclaration(acc, TypeAccumulator).Kind)
	assert.Equal(t, DeclareLoss, PriorDeclaration(acc, TypeSingle).Kind)
}
