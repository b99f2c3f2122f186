package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bet_tracker/internal/wager"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// settledSingle returns a Single on date settled as won or lost.
func settledSingle(t *testing.T, date time.Time, amount, odds string, win bool) wager.Wager {
	t.Helper()
	w := wager.Wager{
		WagerID:    date.String(),
		Date:       date,
		WagerType:  wager.TypeSingle,
		Match:      "Home vs Away",
		Prediction: "Home",
		BetAmount:  dec(amount),
		Odds:       dec(odds),
	}
	decl := wager.AssertOutcome("Away")
	if win {
		decl = wager.ConfirmWin()
	}
	s, err := wager.Settle(w, decl)
	require.NoError(t, err)
	w.Apply(s)
	return w
}

func pending(date time.Time, amount, odds string) wager.Wager {
	return wager.Wager{
		Date:       date,
		WagerType:  wager.TypeSingle,
		Prediction: "Home",
		BetAmount:  dec(amount),
		Odds:       dec(odds),
		Status:     wager.StatusPending,
	}
}

func TestStreaks(t *testing.T) {
	pattern := []bool{true, true, false, true, true, true, false, false}
	var wagers []wager.Wager
	for i, win := range pattern {
		wagers = append(wagers, settledSingle(t, at(2024, 1, i+1), "10", "2", win))
	}
	// Shuffle storage order; streaks follow dates.
	wagers[0], wagers[7] = wagers[7], wagers[0]
	wagers = append(wagers, pending(at(2024, 1, 4), "10", "2"))

	maxWin, maxLoss := Streaks(wagers)
	assert.Equal(t, 3, maxWin)
	assert.Equal(t, 2, maxLoss)
}

func TestStreaks_Empty(t *testing.T) {
	maxWin, maxLoss := Streaks([]wager.Wager{pending(at(2024, 1, 1), "5", "2")})
	assert.Zero(t, maxWin)
	assert.Zero(t, maxLoss)
}

func TestSummarize_Counters(t *testing.T) {
	wagers := []wager.Wager{
		settledSingle(t, at(2024, 1, 1), "100", "2.5", true), // +150
		settledSingle(t, at(2024, 1, 2), "50", "2", false),   // -50
		pending(at(2024, 1, 3), "50", "1.5"),
	}

	s := Summarize(wagers, dec("1000"))

	assert.Equal(t, 3, s.TotalBets)
	assert.Equal(t, 2, s.SettledBets)
	assert.Equal(t, 1, s.UnsettledBets)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 50.0, s.WinRate)
	assert.True(t, s.TotalProfit.Equal(dec("100")), "profit=%s", s.TotalProfit)
	assert.True(t, s.TotalStaked.Equal(dec("200")), "staked=%s", s.TotalStaked)
	assert.Equal(t, 50.0, s.ROI)
	assert.True(t, s.AvgOdds.Equal(dec("2")), "avg odds=%s", s.AvgOdds)
	assert.True(t, s.AvgBet.Equal(dec("66.67")), "avg bet=%s", s.AvgBet)
	assert.True(t, s.CurrentBankroll.Equal(dec("1100")))
	assert.Equal(t, 110.0, s.BankrollHealth)
	assert.Equal(t, 1, s.MaxWinStreak)
	assert.Equal(t, 1, s.MaxLossStreak)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, dec("500"))
	assert.Zero(t, s.TotalBets)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.ROI)
	assert.True(t, s.CurrentBankroll.Equal(dec("500")))
	assert.Equal(t, 100.0, s.BankrollHealth)
	assert.Empty(t, s.Calendar)
	assert.Empty(t, s.Series)
}

func TestSummarize_ResetWagerLeavesSettledSubset(t *testing.T) {
	w := settledSingle(t, at(2024, 2, 1), "20", "3", true)
	s, err := wager.Settle(w, wager.Pending())
	require.NoError(t, err)
	w.Apply(s)

	sum := Summarize([]wager.Wager{w}, dec("100"))
	assert.Zero(t, sum.SettledBets)
	assert.Equal(t, 1, sum.UnsettledBets)
	assert.Empty(t, sum.ByMonth)
	assert.True(t, sum.TotalProfit.IsZero())
}

func TestAccumulatorWinUsesOutcome(t *testing.T) {
	acc := wager.Wager{
		Date:       at(2024, 3, 1),
		WagerType:  wager.TypeAccumulator,
		Prediction: wager.AccumulatorPrediction,
		BetAmount:  dec("10"),
		Odds:       dec("5"),
	}
	s, err := wager.Settle(acc, wager.ConfirmWin())
	require.NoError(t, err)
	acc.Apply(s)

	sum := Summarize([]wager.Wager{acc}, dec("100"))
	assert.Equal(t, 1, sum.Wins)
	require.Len(t, sum.ByType, 1)
	assert.Equal(t, "Accumulator", sum.ByType[0].Key)
	assert.True(t, sum.ByType[0].ProfitLoss.Equal(dec("40")))
}

func TestTimeBuckets(t *testing.T) {
	wagers := []wager.Wager{
		settledSingle(t, at(2024, 12, 30), "10", "2", true),  // Monday, ISO 2025-W01, +10
		settledSingle(t, at(2025, 1, 5), "10", "2", false),   // Sunday, ISO 2025-W01, -10
		settledSingle(t, at(2025, 1, 6), "20", "1.5", true),  // Monday, ISO 2025-W02, +10
		settledSingle(t, at(2025, 1, 6), "5", "2", false),    // Monday, -5
		settledSingle(t, at(2025, 2, 12), "10", "3.1", true), // Wednesday, +21
		pending(at(2025, 2, 13), "10", "2"),
	}

	years := ByYear(Settled(wagers))
	require.Len(t, years, 2)
	assert.Equal(t, 2024, years[0].Year)
	assert.True(t, years[0].ProfitLoss.Equal(dec("10")))
	assert.Equal(t, 2025, years[1].Year)
	assert.True(t, years[1].ProfitLoss.Equal(dec("16")), "2025=%s", years[1].ProfitLoss)
	assert.Equal(t, 2, years[1].Wins)
	assert.Equal(t, 2, years[1].Losses)
	assert.Equal(t, 4, years[1].Bets)

	months := ByMonth(Settled(wagers))
	require.Len(t, months, 3)
	assert.Equal(t, []string{"2024-12", "2025-01", "2025-02"}, keys(months))
	assert.True(t, months[1].ProfitLoss.Equal(dec("-5")))

	weeks := ByWeek(Settled(wagers))
	assert.Equal(t, []string{"2025-W01", "2025-W02", "2025-W07"}, keys(weeks))
	assert.True(t, weeks[0].ProfitLoss.IsZero())

	days := ByWeekday(Settled(wagers))
	assert.Equal(t, []string{"Monday", "Wednesday", "Sunday"}, keys(days))
	assert.True(t, days[0].ProfitLoss.Equal(dec("15")), "monday=%s", days[0].ProfitLoss)
}

func TestCalendar(t *testing.T) {
	wagers := []wager.Wager{
		settledSingle(t, at(2024, 3, 31), "10", "2", true),
		settledSingle(t, at(2024, 1, 1), "10", "2", false),
		settledSingle(t, at(2024, 1, 1), "4", "2.5", true),
		pending(at(2024, 2, 10), "10", "2"),
	}

	cal := Calendar(Settled(wagers))
	require.Len(t, cal, 2)
	assert.Equal(t, "2024-01", cal[0].Month)
	assert.Equal(t, "2024-03", cal[1].Month)
	assert.Len(t, cal[0].Days, 31)

	assert.True(t, cal[0].Days[0].Equal(dec("-4")), "jan 1=%s", cal[0].Days[0])
	assert.True(t, cal[0].Days[1].IsZero())
	assert.True(t, cal[1].Days[30].Equal(dec("10")))
}

func TestSeries(t *testing.T) {
	wagers := []wager.Wager{
		settledSingle(t, at(2024, 1, 3), "10", "2", false),
		settledSingle(t, at(2024, 1, 1), "10", "2", true),
		pending(at(2024, 1, 2), "10", "2"),
	}
	series := Series(wagers)
	require.Len(t, series, 3)
	assert.True(t, series[0].Cumulative.Equal(dec("10")))
	assert.True(t, series[1].Cumulative.Equal(dec("10")))
	assert.True(t, series[2].Cumulative.IsZero())
}

func keys(buckets []Bucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Key
	}
	return out
}
