package usecase_test

import (
	"testing"
	"time"

	"github.com/vitos/trade_stats_bridge/internal/domain"
)

func TestFinalizeAveragesAndRiskReward(t *testing.T) {
	agg := walk(t, NewMockPointSizer(nil),
		closedPosition(1, domain.SideBuy, 1000, 2000, 2400, 2410, 0.10, 100),
		closedPosition(2, domain.SideBuy, 3000, 4000, 2400, 2412, 0.10, 120),
		closedPosition(3, domain.SideSell, 5000, 6000, 2410, 2415, 0.10, -40),
	)
	stats := agg.Finalize(10180, 10180)

	if !floatEquals(stats.AvgWin, 110) {
		t.Errorf("AvgWin = %f, want 110", stats.AvgWin)
	}
	if !floatEquals(stats.AvgLoss, -40) {
		t.Errorf("AvgLoss = %f, want -40 (sign-negative)", stats.AvgLoss)
	}
	if !floatEquals(stats.RiskReward, 2.75) {
		t.Errorf("RiskReward = %f, want 2.75", stats.RiskReward)
	}
}

func TestFinalizeRiskRewardZeroWhenNoLosses(t *testing.T) {
	agg := walk(t, NewMockPointSizer(nil),
		closedPosition(1, domain.SideBuy, 1000, 2000, 2400, 2410, 0.10, 100),
	)
	stats := agg.Finalize(10100, 10100)
	if stats.RiskReward != 0 {
		t.Errorf("RiskReward = %f, want 0", stats.RiskReward)
	}
}

func TestFinalizeTradingStyle(t *testing.T) {
	tests := []struct {
		name      string
		holdSec   int64
		wantStyle string
	}{
		{"scalping under 30m", 10 * 60, domain.StyleScalping},
		{"intraday under a day", 4 * 3600, domain.StyleIntraday},
		{"swing beyond a day", 3 * 86400, domain.StyleSwing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := walk(t, NewMockPointSizer(nil),
				closedPosition(1, domain.SideBuy, 1000, 1000+tt.holdSec, 2400, 2410, 0.10, 10),
			)
			stats := agg.Finalize(10010, 10010)
			if stats.TradingStyle != tt.wantStyle {
				t.Errorf("TradingStyle = %q, want %q", stats.TradingStyle, tt.wantStyle)
			}
		})
	}
}

func TestFinalizeHoldingTimeSplits(t *testing.T) {
	agg := walk(t, NewMockPointSizer(nil),
		closedPosition(1, domain.SideBuy, 1000, 1000+600, 2400, 2410, 0.10, 10),   // win, 10m
		closedPosition(2, domain.SideBuy, 5000, 5000+1200, 2400, 2390, 0.10, -10), // loss, 20m
	)
	stats := agg.Finalize(10000, 10000)

	if stats.AvgHoldingTime != 15*time.Minute {
		t.Errorf("AvgHoldingTime = %v, want 15m", stats.AvgHoldingTime)
	}
	if stats.AvgHoldingTimeWin != 10*time.Minute {
		t.Errorf("AvgHoldingTimeWin = %v, want 10m", stats.AvgHoldingTimeWin)
	}
	if stats.AvgHoldingTimeLoss != 20*time.Minute {
		t.Errorf("AvgHoldingTimeLoss = %v, want 20m", stats.AvgHoldingTimeLoss)
	}
}

func TestFinalizeFavoriteSymbol(t *testing.T) {
	a := closedPosition(1, domain.SideBuy, 1000, 2000, 2400, 2410, 0.10, 10)
	a.Symbol = "EURUSD"
	a.DealCount = 2
	b := closedPosition(2, domain.SideBuy, 3000, 4000, 2400, 2410, 0.10, 10)
	b.Symbol = "XAUUSD"
	b.DealCount = 5

	agg := walk(t, NewMockPointSizer(nil), a, b)
	stats := agg.Finalize(10020, 10020)
	if stats.FavoriteSymbol != "XAUUSD" {
		t.Errorf("FavoriteSymbol = %q, want XAUUSD", stats.FavoriteSymbol)
	}
}

func TestFinalizeFavoriteSymbolTieLexicographic(t *testing.T) {
	a := closedPosition(1, domain.SideBuy, 1000, 2000, 2400, 2410, 0.10, 10)
	a.Symbol = "XAUUSD"
	b := closedPosition(2, domain.SideBuy, 3000, 4000, 2400, 2410, 0.10, 10)
	b.Symbol = "EURUSD"

	agg := walk(t, NewMockPointSizer(nil), a, b)
	stats := agg.Finalize(10020, 10020)
	if stats.FavoriteSymbol != "EURUSD" {
		t.Errorf("FavoriteSymbol = %q, want EURUSD on tie", stats.FavoriteSymbol)
	}
}

func TestFinalizeFloatingPL(t *testing.T) {
	agg := walk(t, NewMockPointSizer(nil),
		closedPosition(1, domain.SideBuy, 1000, 2000, 2400, 2410, 0.10, 10),
	)
	stats := agg.Finalize(10010, 9985.5)
	if !floatEquals(stats.FloatingPL, -24.5) {
		t.Errorf("FloatingPL = %f, want -24.5", stats.FloatingPL)
	}
}
