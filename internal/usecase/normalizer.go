package usecase

import (
	"context"
	"time"

	"github.com/vitos/trade_stats_bridge/internal/domain"
)

// OrderLookup resolves stop/target levels from the order history when a deal
// does not carry them. The terminal gateway implements it.
type OrderLookup interface {
	OrderStops(ctx context.Context, orderRef int64) (sl, tp float64, err error)
}

// DealNormalizer maps raw terminal deals into canonical form: role and side
// resolved, broker-local timestamps corrected to UTC, stop/target backfilled
// from the order history where the deal carries zeros.
type DealNormalizer struct {
	orders       OrderLookup
	brokerOffset time.Duration
}

func NewDealNormalizer(orders OrderLookup, brokerOffset time.Duration) *DealNormalizer {
	return &DealNormalizer{orders: orders, brokerOffset: brokerOffset}
}

// Normalize converts one raw deal. ok is false for deals that are neither an
// entry nor an exit fill (balance operations, corrections); those never
// reach the position builder.
func (n *DealNormalizer) Normalize(ctx context.Context, raw domain.RawDeal) (domain.Deal, bool) {
	var role domain.DealRole
	switch raw.Entry {
	case domain.DealEntryIn:
		role = domain.RoleEntry
	case domain.DealEntryOut:
		role = domain.RoleExit
	default:
		return domain.Deal{}, false
	}

	d := domain.Deal{
		PositionID: raw.PositionID,
		Role:       role,
		Side:       sideFromType(raw.Type),
		Symbol:     raw.Symbol,
		Price:      raw.Price,
		Volume:     raw.Volume,
		Profit:     raw.Profit,
		Time:       time.Unix(raw.Time, 0).Add(-n.brokerOffset).UTC(),
		StopLoss:   raw.StopLoss,
		TakeProfit: raw.TakeProfit,
	}

	// A lookup failure leaves the stops at zero; a missing order record must
	// not abort the sync.
	if role == domain.RoleEntry && (d.StopLoss == 0 || d.TakeProfit == 0) && raw.OrderRef > 0 && n.orders != nil {
		if sl, tp, err := n.orders.OrderStops(ctx, raw.OrderRef); err == nil {
			if d.StopLoss == 0 {
				d.StopLoss = sl
			}
			if d.TakeProfit == 0 {
				d.TakeProfit = tp
			}
		}
	}

	return d, true
}

func sideFromType(code int) domain.Side {
	if code == domain.DealTypeBuy {
		return domain.SideBuy
	}
	return domain.SideSell
}
