package usecase

import (
	"math"
	"time"

	"github.com/vitos/trade_stats_bridge/internal/domain"
)

// Finalize derives the ratio and classification metrics from the
// accumulated totals. It is a pure read of the accumulators: calling it
// twice yields identical records. Every division is guarded, so a zero
// denominator resolves to 0 rather than NaN.
func (a *StatsAggregator) Finalize(balance, equity float64) *domain.DailyStats {
	s := &domain.DailyStats{
		Balance:              balance,
		Equity:               equity,
		FloatingPL:           round2(equity - balance),
		TotalProfit:          round2(a.totalProfit),
		TotalPoints:          int64(a.totalPoints),
		TotalTrades:          a.totalTrades,
		Wins:                 a.wins,
		Losses:               a.losses,
		BuyTrades:            a.buyTrades,
		BuyWins:              a.buyWins,
		SellTrades:           a.sellTrades,
		SellWins:             a.sellWins,
		GrossProfit:          round2(a.grossProfit),
		GrossLoss:            round2(a.grossLoss),
		MaxDrawdownValue:     round2(a.maxDrawdown),
		MaxConsecutiveWins:   a.maxWins,
		MaxConsecutiveLosses: a.maxLosses,
		TradingStyle:         domain.StyleUnknown,
		FavoriteSymbol:       "-",
	}

	if a.totalTrades > 0 {
		s.WinRate = round2(float64(a.wins) / float64(a.totalTrades) * 100)
		// The ±inf sentinels only ever leak into a record with no trades.
		s.BestTrade = round2(a.bestTrade)
		s.WorstTrade = round2(a.worstTrade)
	}
	if a.buyTrades > 0 {
		s.WinRateBuy = round2(float64(a.buyWins) / float64(a.buyTrades) * 100)
	}
	if a.sellTrades > 0 {
		s.WinRateSell = round2(float64(a.sellWins) / float64(a.sellTrades) * 100)
	}

	switch {
	case a.grossLoss > 0:
		s.ProfitFactor = round2(a.grossProfit / a.grossLoss)
	case a.grossProfit > 0:
		s.ProfitFactor = round2(a.grossProfit)
	}

	// Peak balance = starting balance plus the highest point of the realized
	// profit curve.
	if a.totalTrades > 0 {
		peakBalance := (balance - a.totalProfit) + a.peakProfit
		if peakBalance > 0 {
			s.MaxDrawdown = round2(a.maxDrawdown / peakBalance * 100)
		}
	}

	var avgWin, avgLoss float64
	if a.wins > 0 {
		avgWin = a.grossProfit / float64(a.wins)
	}
	if a.losses > 0 {
		// Average loss is sign-negative by convention.
		avgLoss = -(a.grossLoss / float64(a.losses))
	}
	s.AvgWin = round2(avgWin)
	s.AvgLoss = round2(avgLoss)
	if avgLoss != 0 {
		s.RiskReward = round2(math.Abs(avgWin / avgLoss))
	}

	if a.durCount > 0 {
		avg := (a.totalDur / time.Duration(a.durCount)).Truncate(time.Second)
		s.AvgHoldingTime = avg
		switch {
		case avg < 30*time.Minute:
			s.TradingStyle = domain.StyleScalping
		case avg < 24*time.Hour:
			s.TradingStyle = domain.StyleIntraday
		default:
			s.TradingStyle = domain.StyleSwing
		}
	}
	if a.winDurCount > 0 {
		s.AvgHoldingTimeWin = (a.winDur / time.Duration(a.winDurCount)).Truncate(time.Second)
	}
	if a.lossDurCount > 0 {
		s.AvgHoldingTimeLoss = (a.lossDur / time.Duration(a.lossDurCount)).Truncate(time.Second)
	}

	s.SessionAsian = finalizeSession(a.asian)
	s.SessionLondon = finalizeSession(a.london)
	s.SessionNewYork = finalizeSession(a.newYork)

	if fav := a.favoriteSymbol(); fav != "" {
		s.FavoriteSymbol = fav
	}

	return s
}

func finalizeSession(t sessionTotals) domain.SessionStats {
	ss := domain.SessionStats{
		Profit: round2(t.profit),
		Trades: t.trades,
		Wins:   t.wins,
	}
	if t.trades > 0 {
		ss.WinRate = round2(float64(t.wins) / float64(t.trades) * 100)
	}
	return ss
}

// favoriteSymbol picks the symbol with the most source deals among closed
// positions; ties break to the lexicographically smallest for determinism.
func (a *StatsAggregator) favoriteSymbol() string {
	best := ""
	bestCount := 0
	for sym, n := range a.symbolDeals {
		if n > bestCount || (n == bestCount && best != "" && sym < best) {
			best = sym
			bestCount = n
		}
	}
	return best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
