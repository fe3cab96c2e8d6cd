package usecase_test

import (
	"testing"
	"time"

	"github.com/vitos/trade_stats_bridge/internal/domain"
	"github.com/vitos/trade_stats_bridge/internal/usecase"
)

const epsilon = 0.000001

func floatEquals(a, b float64) bool {
	return (a-b) < epsilon && (b-a) < epsilon
}

func ts(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func entry(posID int64, side domain.Side, symbol string, t time.Time, price, volume float64) domain.Deal {
	return domain.Deal{
		PositionID: posID,
		Role:       domain.RoleEntry,
		Side:       side,
		Symbol:     symbol,
		Time:       t,
		Price:      price,
		Volume:     volume,
	}
}

func exit(posID int64, t time.Time, price, volume, profit float64) domain.Deal {
	return domain.Deal{
		PositionID: posID,
		Role:       domain.RoleExit,
		Symbol:     "XAUUSD",
		Time:       t,
		Price:      price,
		Volume:     volume,
		Profit:     profit,
	}
}

func TestPositionBuilderSingleRoundTrip(t *testing.T) {
	b := usecase.NewPositionBuilder()
	b.Add(entry(1, domain.SideBuy, "XAUUSD", ts(1000), 2400.0, 0.10))
	b.Add(exit(1, ts(2000), 2410.0, 0.10, 100.0))

	pos := b.Positions()[1]
	if pos == nil {
		t.Fatal("position 1 not built")
	}
	if pos.Side != domain.SideBuy {
		t.Errorf("Side = %v, want BUY", pos.Side)
	}
	if !floatEquals(pos.Lot, 0.10) || !floatEquals(pos.VolumeOut, 0.10) {
		t.Errorf("Lot/VolumeOut = %f/%f, want 0.10/0.10", pos.Lot, pos.VolumeOut)
	}
	if !floatEquals(pos.Profit, 100.0) {
		t.Errorf("Profit = %f, want 100", pos.Profit)
	}
	if !pos.CloseTime.Equal(ts(2000)) || !floatEquals(pos.ClosePrice, 2410.0) {
		t.Errorf("close attrs = %v/%f", pos.CloseTime, pos.ClosePrice)
	}
	if pos.DealCount != 2 {
		t.Errorf("DealCount = %d, want 2", pos.DealCount)
	}
}

func TestPositionBuilderPartialEntriesAccumulate(t *testing.T) {
	b := usecase.NewPositionBuilder()
	b.Add(entry(7, domain.SideSell, "XAUUSD", ts(1000), 2400.0, 0.10))
	b.Add(entry(7, domain.SideSell, "XAUUSD", ts(1500), 2405.0, 0.20))

	pos := b.Positions()[7]
	if !floatEquals(pos.Lot, 0.30) {
		t.Errorf("Lot = %f, want 0.30", pos.Lot)
	}
	// Open attributes follow the last entry seen.
	if !floatEquals(pos.OpenPrice, 2405.0) || !pos.OpenTime.Equal(ts(1500)) {
		t.Errorf("open attrs = %f/%v, want 2405/%v", pos.OpenPrice, pos.OpenTime, ts(1500))
	}
}

func TestPositionBuilderPartialExitsAccumulate(t *testing.T) {
	b := usecase.NewPositionBuilder()
	b.Add(entry(3, domain.SideBuy, "XAUUSD", ts(1000), 2400.0, 0.30))
	b.Add(exit(3, ts(2000), 2410.0, 0.10, 30.0))
	b.Add(exit(3, ts(3000), 2420.0, 0.20, 120.0))

	pos := b.Positions()[3]
	if !floatEquals(pos.VolumeOut, 0.30) {
		t.Errorf("VolumeOut = %f, want 0.30", pos.VolumeOut)
	}
	if !floatEquals(pos.Profit, 150.0) {
		t.Errorf("Profit = %f, want 150", pos.Profit)
	}
	if !floatEquals(pos.ClosePrice, 2420.0) || !pos.CloseTime.Equal(ts(3000)) {
		t.Errorf("close attrs should follow last exit, got %f/%v", pos.ClosePrice, pos.CloseTime)
	}
	if len(pos.ExitDeals) != 2 {
		t.Errorf("ExitDeals = %d, want 2", len(pos.ExitDeals))
	}
}

func TestPositionBuilderOutOfOrderExits(t *testing.T) {
	// The chronologically last exit wins the close attributes no matter the
	// arrival order.
	b := usecase.NewPositionBuilder()
	b.Add(entry(4, domain.SideBuy, "XAUUSD", ts(1000), 2400.0, 0.20))
	b.Add(exit(4, ts(3000), 2430.0, 0.10, 30.0))
	b.Add(exit(4, ts(2000), 2410.0, 0.10, 10.0))

	pos := b.Positions()[4]
	if !floatEquals(pos.ClosePrice, 2430.0) || !pos.CloseTime.Equal(ts(3000)) {
		t.Errorf("close attrs = %f/%v, want 2430/%v", pos.ClosePrice, pos.CloseTime, ts(3000))
	}
}

func TestPositionBuilderExitBeforeEntry(t *testing.T) {
	// History windows can clip the entry; the exit alone still builds a
	// closed position with zero open attributes.
	b := usecase.NewPositionBuilder()
	b.Add(exit(9, ts(2000), 2410.0, 0.10, 42.0))

	pos := b.Positions()[9]
	if pos == nil {
		t.Fatal("position 9 not built")
	}
	if pos.Side != domain.SideUnknown {
		t.Errorf("Side = %v, want UNKNOWN", pos.Side)
	}
	if !pos.OpenTime.IsZero() || pos.OpenPrice != 0 {
		t.Errorf("open attrs should stay zero, got %v/%f", pos.OpenTime, pos.OpenPrice)
	}

	closed := usecase.ClosedPositionIDs(b.Positions(), nil)
	if len(closed) != 1 || closed[0] != 9 {
		t.Errorf("ClosedPositionIDs = %v, want [9]", closed)
	}
}

func TestClosedPositionIDs(t *testing.T) {
	b := usecase.NewPositionBuilder()
	// Fully closed.
	b.Add(entry(1, domain.SideBuy, "XAUUSD", ts(1000), 2400.0, 0.10))
	b.Add(exit(1, ts(5000), 2410.0, 0.10, 10.0))
	// Entry only, still open.
	b.Add(entry(2, domain.SideBuy, "XAUUSD", ts(1100), 2401.0, 0.10))
	// Partially exited but listed in the live open set.
	b.Add(entry(3, domain.SideSell, "XAUUSD", ts(1200), 2402.0, 0.20))
	b.Add(exit(3, ts(4000), 2398.0, 0.10, 8.0))
	// Closed earlier than position 1.
	b.Add(entry(4, domain.SideBuy, "XAUUSD", ts(1300), 2403.0, 0.10))
	b.Add(exit(4, ts(2000), 2405.0, 0.10, 2.0))

	openIDs := map[int64]bool{3: true}
	closed := usecase.ClosedPositionIDs(b.Positions(), openIDs)

	if len(closed) != 2 {
		t.Fatalf("closed = %v, want 2 ids", closed)
	}
	if closed[0] != 4 || closed[1] != 1 {
		t.Errorf("order = %v, want [4 1] (close time ascending)", closed)
	}
}

func TestClosedPositionIDsTieBreaksByID(t *testing.T) {
	b := usecase.NewPositionBuilder()
	b.Add(entry(20, domain.SideBuy, "XAUUSD", ts(1000), 2400.0, 0.10))
	b.Add(exit(20, ts(2000), 2410.0, 0.10, 10.0))
	b.Add(entry(10, domain.SideBuy, "XAUUSD", ts(1000), 2400.0, 0.10))
	b.Add(exit(10, ts(2000), 2410.0, 0.10, 10.0))

	closed := usecase.ClosedPositionIDs(b.Positions(), nil)
	if len(closed) != 2 || closed[0] != 10 || closed[1] != 20 {
		t.Errorf("closed = %v, want [10 20]", closed)
	}
}

func TestTotalLots(t *testing.T) {
	b := usecase.NewPositionBuilder()
	b.Add(entry(1, domain.SideBuy, "XAUUSD", ts(1000), 2400.0, 0.10))
	b.Add(exit(1, ts(2000), 2410.0, 0.10, 10.0))
	b.Add(entry(2, domain.SideSell, "XAUUSD", ts(1500), 2405.0, 0.25))
	// Exit-only position, no entry volume.
	b.Add(exit(3, ts(2500), 2408.0, 0.10, 5.0))

	got := usecase.TotalLots(b.Positions())
	if !floatEquals(got, 0.35) {
		t.Errorf("TotalLots = %f, want 0.35", got)
	}
}
