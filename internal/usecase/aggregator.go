package usecase

import (
	"context"
	"math"
	"time"

	"github.com/vitos/trade_stats_bridge/internal/domain"
)

// PointSizer reports the native point size of an instrument. Implemented by
// the terminal gateway; a zero point size means "unavailable".
type PointSizer interface {
	PointSize(ctx context.Context, symbol string) (float64, error)
}

// Session windows on the UTC hour of the open time. They overlap on purpose:
// a trade opened at 07:xx belongs to both the Asian and London sessions.
const (
	asianStart, asianEnd     = 0, 8
	londonStart, londonEnd   = 7, 16
	newYorkStart, newYorkEnd = 12, 21
)

type sessionTotals struct {
	profit float64
	trades int
	wins   int
}

// StatsAggregator accumulates trade statistics in a single forward pass over
// a chronologically ordered closed-position sequence. One instance per run;
// the per-symbol point cache dies with it.
type StatsAggregator struct {
	points     PointSizer
	pointCache map[string]float64

	totalTrades int
	totalProfit float64
	wins        int
	losses      int
	grossProfit float64
	grossLoss   float64
	bestTrade   float64
	worstTrade  float64

	buyTrades  int
	buyWins    int
	sellTrades int
	sellWins   int

	totalPoints float64

	profitCurve float64
	peakProfit  float64
	maxDrawdown float64

	curWins   int
	curLosses int
	maxWins   int
	maxLosses int

	asian   sessionTotals
	london  sessionTotals
	newYork sessionTotals

	totalDur     time.Duration
	durCount     int
	winDur       time.Duration
	winDurCount  int
	lossDur      time.Duration
	lossDurCount int

	symbolDeals map[string]int
}

func NewStatsAggregator(points PointSizer) *StatsAggregator {
	return &StatsAggregator{
		points:      points,
		pointCache:  make(map[string]float64),
		bestTrade:   math.Inf(-1),
		worstTrade:  math.Inf(1),
		peakProfit:  math.Inf(-1),
		symbolDeals: make(map[string]int),
	}
}

// Walk feeds every closed position, in the order produced by
// ClosedPositionIDs, through the accumulators.
func (a *StatsAggregator) Walk(ctx context.Context, positions map[int64]*domain.Position, closedIDs []int64) {
	for _, id := range closedIDs {
		a.add(ctx, positions[id])
	}
}

func (a *StatsAggregator) add(ctx context.Context, pos *domain.Position) {
	profit := pos.Profit

	a.totalTrades++
	a.totalProfit += profit

	switch {
	case profit > 0:
		a.wins++
		a.grossProfit += profit
	case profit < 0:
		a.losses++
		a.grossLoss += -profit
	}

	if profit > a.bestTrade {
		a.bestTrade = profit
	}
	if profit < a.worstTrade {
		a.worstTrade = profit
	}

	switch pos.Side {
	case domain.SideBuy:
		a.buyTrades++
		if profit > 0 {
			a.buyWins++
		}
	case domain.SideSell:
		a.sellTrades++
		if profit > 0 {
			a.sellWins++
		}
	}

	a.addPoints(ctx, pos)

	// High-water-mark walk over realized profit, not floating equity.
	a.profitCurve += profit
	if a.profitCurve > a.peakProfit {
		a.peakProfit = a.profitCurve
	}
	if dd := a.peakProfit - a.profitCurve; dd > a.maxDrawdown {
		a.maxDrawdown = dd
	}

	// A zero-profit trade breaks neither streak.
	switch {
	case profit > 0:
		a.curWins++
		a.curLosses = 0
		if a.curWins > a.maxWins {
			a.maxWins = a.curWins
		}
	case profit < 0:
		a.curLosses++
		a.curWins = 0
		if a.curLosses > a.maxLosses {
			a.maxLosses = a.curLosses
		}
	}

	if !pos.OpenTime.IsZero() {
		a.addSession(pos)
		a.addDuration(pos)
	}

	if pos.Symbol != "" {
		a.symbolDeals[pos.Symbol] += pos.DealCount
	}
}

// addPoints accumulates the volume-weighted price movement in point units.
// A missing or zero point size skips the position's contribution; the
// failure is cached so a dead symbol is asked once per run.
func (a *StatsAggregator) addPoints(ctx context.Context, pos *domain.Position) {
	if pos.OpenPrice <= 0 || pos.Symbol == "" || pos.Lot <= 0 {
		return
	}

	point, ok := a.pointCache[pos.Symbol]
	if !ok {
		p, err := a.points.PointSize(ctx, pos.Symbol)
		if err != nil {
			p = 0
		}
		point = p
		a.pointCache[pos.Symbol] = point
	}
	if point <= 0 {
		return
	}

	for _, exit := range pos.ExitDeals {
		diff := exit.Price - pos.OpenPrice
		if pos.Side != domain.SideBuy {
			diff = pos.OpenPrice - exit.Price
		}
		a.totalPoints += (diff / point) * (exit.Volume / pos.Lot)
	}
}

func (a *StatsAggregator) addSession(pos *domain.Position) {
	hour := pos.OpenTime.UTC().Hour()
	win := pos.Profit > 0

	bump := func(t *sessionTotals) {
		t.profit += pos.Profit
		t.trades++
		if win {
			t.wins++
		}
	}

	if hour >= asianStart && hour < asianEnd {
		bump(&a.asian)
	}
	if hour >= londonStart && hour < londonEnd {
		bump(&a.london)
	}
	if hour >= newYorkStart && hour < newYorkEnd {
		bump(&a.newYork)
	}
}

func (a *StatsAggregator) addDuration(pos *domain.Position) {
	if pos.CloseTime.IsZero() {
		return
	}
	dur := pos.CloseTime.Sub(pos.OpenTime)
	if dur < 0 {
		return
	}
	a.totalDur += dur
	a.durCount++
	switch {
	case pos.Profit > 0:
		a.winDur += dur
		a.winDurCount++
	case pos.Profit < 0:
		a.lossDur += dur
		a.lossDurCount++
	}
}
