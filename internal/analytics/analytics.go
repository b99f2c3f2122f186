// Package analytics derives ledger statistics. Everything is recomputed from
// the snapshot it is given; nothing is cached between calls.
package analytics

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"bet_tracker/internal/wager"
)

const calendarDays = 31

var (
	hundred  = decimal.NewFromInt(100)
	weekdays = []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
)

type Summary struct {
	TotalBets       int             `json:"total_bets"`
	SettledBets     int             `json:"settled_bets"`
	UnsettledBets   int             `json:"unsettled_bets"`
	Wins            int             `json:"wins"`
	Losses          int             `json:"losses"`
	WinRate         float64         `json:"win_rate"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
	TotalStaked     decimal.Decimal `json:"total_staked"`
	ROI             float64         `json:"roi"`
	AvgOdds         decimal.Decimal `json:"avg_odds"`
	AvgBet          decimal.Decimal `json:"avg_bet"`
	InitialBankroll decimal.Decimal `json:"initial_bankroll"`
	CurrentBankroll decimal.Decimal `json:"current_bankroll"`
	BankrollHealth  float64         `json:"bankroll_health"`
	MaxWinStreak    int             `json:"max_win_streak"`
	MaxLossStreak   int             `json:"max_loss_streak"`

	ByType    []Bucket      `json:"by_type"`
	ByYear    []YearBucket  `json:"by_year"`
	ByMonth   []Bucket      `json:"by_month"`
	ByWeek    []Bucket      `json:"by_week"`
	ByWeekday []Bucket      `json:"by_weekday"`
	Calendar  []CalendarRow `json:"calendar"`
	Series    []Point       `json:"series"`
}

type Bucket struct {
	Key        string          `json:"key"`
	ProfitLoss decimal.Decimal `json:"profit_loss"`
}

type YearBucket struct {
	Year       int             `json:"year"`
	ProfitLoss decimal.Decimal `json:"profit_loss"`
	Wins       int             `json:"wins"`
	Losses     int             `json:"losses"`
	Bets       int             `json:"bets"`
}

// CalendarRow holds one month's daily profit/loss; Days[0] is the 1st.
type CalendarRow struct {
	Month string                        `json:"month"`
	Days  [calendarDays]decimal.Decimal `json:"days"`
}

// Point is one wager on the profit/loss timeline.
type Point struct {
	Date       time.Time       `json:"date"`
	SlipNo     int             `json:"slip_no"`
	ProfitLoss decimal.Decimal `json:"profit_loss"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// Summarize computes every statistic over the ledger snapshot.
func Summarize(wagers []wager.Wager, initialBankroll decimal.Decimal) Summary {
	sorted := byDate(wagers)
	settled := Settled(sorted)

	s := Summary{
		TotalBets:       len(wagers),
		SettledBets:     len(settled),
		UnsettledBets:   len(wagers) - len(settled),
		TotalProfit:     decimal.Zero,
		TotalStaked:     decimal.Zero,
		AvgOdds:         decimal.Zero,
		AvgBet:          decimal.Zero,
		InitialBankroll: initialBankroll,
	}

	for _, w := range settled {
		if w.IsWin() {
			s.Wins++
		}
	}
	s.Losses = s.SettledBets - s.Wins
	if s.SettledBets > 0 {
		s.WinRate = float64(s.Wins) / float64(s.SettledBets) * 100
	}

	oddsSum := decimal.Zero
	for _, w := range wagers {
		s.TotalProfit = s.TotalProfit.Add(w.ProfitLoss)
		s.TotalStaked = s.TotalStaked.Add(w.BetAmount)
		oddsSum = oddsSum.Add(w.Odds)
	}
	s.TotalProfit = s.TotalProfit.Round(2)
	s.TotalStaked = s.TotalStaked.Round(2)
	if n := len(wagers); n > 0 {
		count := decimal.NewFromInt(int64(n))
		s.AvgOdds = oddsSum.Div(count).Round(2)
		s.AvgBet = s.TotalStaked.Div(count).Round(2)
	}
	if s.TotalStaked.IsPositive() {
		s.ROI = percent(s.TotalProfit, s.TotalStaked)
	}

	s.CurrentBankroll = initialBankroll.Add(s.TotalProfit).Round(2)
	if initialBankroll.IsPositive() {
		s.BankrollHealth = percent(s.CurrentBankroll, initialBankroll)
	}

	s.MaxWinStreak, s.MaxLossStreak = Streaks(settled)
	s.ByType = ByType(settled)
	s.ByYear = ByYear(settled)
	s.ByMonth = ByMonth(settled)
	s.ByWeek = ByWeek(settled)
	s.ByWeekday = ByWeekday(settled)
	s.Calendar = Calendar(settled)
	s.Series = Series(sorted)
	return s
}

// Settled keeps wagers that have an outcome, preserving order.
func Settled(wagers []wager.Wager) []wager.Wager {
	var out []wager.Wager
	for _, w := range wagers {
		if w.Settled() {
			out = append(out, w)
		}
	}
	return out
}

// Streaks returns the longest runs of consecutive wins and losses among
// settled wagers in date order.
func Streaks(wagers []wager.Wager) (maxWin, maxLoss int) {
	run := 0
	var prev bool
	for i, w := range byDate(Settled(wagers)) {
		win := w.IsWin()
		if i == 0 || win != prev {
			run = 0
		}
		run++
		prev = win
		if win && run > maxWin {
			maxWin = run
		}
		if !win && run > maxLoss {
			maxLoss = run
		}
	}
	return maxWin, maxLoss
}

func ByType(settled []wager.Wager) []Bucket {
	return group(settled, func(w wager.Wager) string { return string(w.WagerType) })
}

func ByMonth(settled []wager.Wager) []Bucket {
	return group(settled, monthKey)
}

// ByWeek groups by ISO 8601 week, keyed "2024-W09".
func ByWeek(settled []wager.Wager) []Bucket {
	return group(settled, func(w wager.Wager) string {
		year, week := w.Date.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	})
}

// ByWeekday returns the weekdays that have settled activity, Monday first.
func ByWeekday(settled []wager.Wager) []Bucket {
	sums := make(map[time.Weekday]decimal.Decimal)
	for _, w := range settled {
		d := w.Date.Weekday()
		sums[d] = sums[d].Add(w.ProfitLoss)
	}
	var out []Bucket
	for _, d := range weekdays {
		if pl, ok := sums[d]; ok {
			out = append(out, Bucket{Key: d.String(), ProfitLoss: pl.Round(2)})
		}
	}
	return out
}

func ByYear(settled []wager.Wager) []YearBucket {
	index := make(map[int]int)
	var out []YearBucket
	for _, w := range settled {
		y := w.Date.Year()
		i, ok := index[y]
		if !ok {
			i = len(out)
			index[y] = i
			out = append(out, YearBucket{Year: y, ProfitLoss: decimal.Zero})
		}
		b := &out[i]
		b.ProfitLoss = b.ProfitLoss.Add(w.ProfitLoss)
		b.Bets++
		if w.IsWin() {
			b.Wins++
		} else {
			b.Losses++
		}
	}
	for i := range out {
		out[i].ProfitLoss = out[i].ProfitLoss.Round(2)
	}
	slices.SortFunc(out, func(a, b YearBucket) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// Calendar builds one row per settled month, ascending, with the summed
// profit/loss of each day of the month.
func Calendar(settled []wager.Wager) []CalendarRow {
	index := make(map[string]int)
	var out []CalendarRow
	for _, w := range settled {
		key := monthKey(w)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			row := CalendarRow{Month: key}
			for d := range row.Days {
				row.Days[d] = decimal.Zero
			}
			out = append(out, row)
		}
		day := w.Date.Day() - 1
		out[i].Days[day] = out[i].Days[day].Add(w.ProfitLoss)
	}
	for i := range out {
		for d := range out[i].Days {
			out[i].Days[d] = out[i].Days[d].Round(2)
		}
	}
	slices.SortFunc(out, func(a, b CalendarRow) int { return cmp.Compare(a.Month, b.Month) })
	return out
}

// Series is the per-wager and running profit/loss over all wagers in date
// order. Pending wagers contribute zero.
func Series(wagers []wager.Wager) []Point {
	running := decimal.Zero
	out := make([]Point, 0, len(wagers))
	for _, w := range byDate(wagers) {
		running = running.Add(w.ProfitLoss)
		out = append(out, Point{
			Date:       w.Date,
			SlipNo:     w.SlipNo,
			ProfitLoss: w.ProfitLoss,
			Cumulative: running.Round(2),
		})
	}
	return out
}

func group(wagers []wager.Wager, key func(wager.Wager) string) []Bucket {
	sums := make(map[string]decimal.Decimal)
	for _, w := range wagers {
		k := key(w)
		sums[k] = sums[k].Add(w.ProfitLoss)
	}
	out := make([]Bucket, 0, len(sums))
	for k, pl := range sums {
		out = append(out, Bucket{Key: k, ProfitLoss: pl.Round(2)})
	}
	slices.SortFunc(out, func(a, b Bucket) int { return cmp.Compare(a.Key, b.Key) })
	return out
}

func monthKey(w wager.Wager) string {
	return w.Date.Format("2006-01")
}

func byDate(wagers []wager.Wager) []wager.Wager {
	out := slices.Clone(wagers)
	slices.SortStableFunc(out, func(a, b wager.Wager) int { return a.Date.Compare(b.Date) })
	return out
}

func percent(part, whole decimal.Decimal) float64 {
	return part.Div(whole).Mul(hundred).Round(1).InexactFloat64()
}
