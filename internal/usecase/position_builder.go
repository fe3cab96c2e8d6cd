package usecase

import (
	"sort"

	"github.com/vitos/trade_stats_bridge/internal/domain"
)

// PositionBuilder groups normalized deals by position id. A position is
// created on the first deal referencing its id and mutated additively by
// every later one; the open/closed split happens in ClosedPositionIDs.
type PositionBuilder struct {
	positions map[int64]*domain.Position
}

func NewPositionBuilder() *PositionBuilder {
	return &PositionBuilder{positions: make(map[int64]*domain.Position)}
}

func (b *PositionBuilder) Add(d domain.Deal) {
	pos, ok := b.positions[d.PositionID]
	if !ok {
		pos = &domain.Position{ID: d.PositionID, Symbol: d.Symbol, Side: domain.SideUnknown}
		b.positions[d.PositionID] = pos
	}
	pos.DealCount++

	switch d.Role {
	case domain.RoleEntry:
		// Partial entries accumulate volume; the latest entry's price/time
		// win for the open attributes.
		pos.Lot += d.Volume
		pos.OpenTime = d.Time
		pos.OpenPrice = d.Price
		pos.Side = d.Side
		pos.StopLoss = d.StopLoss
		pos.TakeProfit = d.TakeProfit
	case domain.RoleExit:
		pos.VolumeOut += d.Volume
		pos.Profit += d.Profit
		// Close attributes follow the chronologically last exit deal,
		// regardless of the order deals arrive in.
		if pos.CloseTime.IsZero() || !d.Time.Before(pos.CloseTime) {
			pos.CloseTime = d.Time
			pos.ClosePrice = d.Price
		}
		pos.ExitDeals = append(pos.ExitDeals, d)
	}
}

func (b *PositionBuilder) Positions() map[int64]*domain.Position {
	return b.positions
}

// ClosedPositionIDs returns the ids of fully resolved positions ordered by
// close time ascending, ties broken by id. A position still in the live open
// set is not closed no matter its exit volume, and a position with no exit
// volume is not closed even if the open set lost track of it (guards a stale
// snapshot).
func ClosedPositionIDs(positions map[int64]*domain.Position, openIDs map[int64]bool) []int64 {
	ids := make([]int64, 0, len(positions))
	for id, pos := range positions {
		if pos.VolumeOut > 0 && !openIDs[id] {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := positions[ids[i]], positions[ids[j]]
		if !a.CloseTime.Equal(b.CloseTime) {
			return a.CloseTime.Before(b.CloseTime)
		}
		return ids[i] < ids[j]
	})
	return ids
}

// TotalLots sums the entry volume across every built position, open ones
// included. It measures account activity, not closed-trade performance.
func TotalLots(positions map[int64]*domain.Position) float64 {
	var total float64
	for _, pos := range positions {
		if pos.Lot > 0 {
			total += pos.Lot
		}
	}
	return round2(total)
}
