package usecase_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/vitos/trade_stats_bridge/internal/domain"
	"github.com/vitos/trade_stats_bridge/internal/usecase"
)

func TestMarketDataSyncNormalizesSymbolAndTime(t *testing.T) {
	barTime := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC) // broker-local
	terminal := &MockTerminal{
		symbols: map[string]bool{"XAUUSD.s": true},
		candles: map[string][]domain.Candle{
			"H1": {{Symbol: "XAUUSD.s", Timeframe: "H1", Time: barTime, Open: 2400, High: 2410, Low: 2395, Close: 2405, Volume: 1234}},
		},
	}
	repo := NewMockMarketRepo()
	svc := usecase.NewMarketDataService(terminal, repo, zap.NewNop(), 3*time.Hour,
		[]string{"XAUUSD", "XAUUSD.s", "GOLD"})

	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	bars := repo.candles["H1"]
	if len(bars) != 1 {
		t.Fatalf("H1 bars = %d, want 1", len(bars))
	}
	if bars[0].Symbol != "XAUUSD" {
		t.Errorf("Symbol = %q, want canonical XAUUSD", bars[0].Symbol)
	}
	if !bars[0].Time.Equal(barTime.Add(-3 * time.Hour)) {
		t.Errorf("Time = %v, want broker offset removed", bars[0].Time)
	}
}

func TestMarketDataSyncNoSymbolAvailable(t *testing.T) {
	terminal := &MockTerminal{symbols: map[string]bool{}}
	svc := usecase.NewMarketDataService(terminal, NewMockMarketRepo(), zap.NewNop(), 0, nil)

	if err := svc.Sync(context.Background()); err == nil {
		t.Error("expected error when no symbol variant is available")
	}
}

func TestMarketDataSyncPrunesBoundedTimeframes(t *testing.T) {
	terminal := &MockTerminal{
		symbols: map[string]bool{"XAUUSD": true},
		candles: map[string][]domain.Candle{},
	}
	repo := NewMockMarketRepo()
	svc := usecase.NewMarketDataService(terminal, repo, zap.NewNop(), 0, nil)

	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	for _, tf := range []string{"M1", "M5", "M15", "H1", "H4"} {
		if _, ok := repo.pruned[tf]; !ok {
			t.Errorf("timeframe %s not pruned", tf)
		}
	}
	// Daily bars are kept forever.
	if _, ok := repo.pruned["D1"]; ok {
		t.Errorf("D1 should never be pruned")
	}
}
