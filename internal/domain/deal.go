package domain

import "time"

type Side string

const (
	SideBuy     Side = "BUY"
	SideSell    Side = "SELL"
	SideUnknown Side = "UNKNOWN"
)

type DealRole int

const (
	RoleEntry DealRole = iota
	RoleExit
)

// Terminal wire codes for deal type and entry direction (MT5 convention).
// DEAL_TYPE_BUY and ORDER_TYPE_BUY share code 0.
const (
	DealTypeBuy  = 0
	DealTypeSell = 1

	DealEntryIn  = 0
	DealEntryOut = 1
)

// RawDeal mirrors the terminal's wire format: numeric type/entry codes and
// broker-local epoch seconds. Normalization happens in the usecase layer.
type RawDeal struct {
	Ticket     int64   `json:"ticket"`
	OrderRef   int64   `json:"order"`
	PositionID int64   `json:"position_id"`
	Time       int64   `json:"time"`
	Type       int     `json:"type"`
	Entry      int     `json:"entry"`
	Symbol     string  `json:"symbol"`
	Volume     float64 `json:"volume"`
	Price      float64 `json:"price"`
	Profit     float64 `json:"profit"`
	StopLoss   float64 `json:"sl"`
	TakeProfit float64 `json:"tp"`
}

// Deal is a single fill (entry or exit) in canonical form: side resolved,
// timestamp corrected to UTC, stop/target backfilled where possible.
type Deal struct {
	PositionID int64     `json:"position_id"`
	Role       DealRole  `json:"role"`
	Side       Side      `json:"side"`
	Symbol     string    `json:"symbol"`
	Price      float64   `json:"price"`
	Volume     float64   `json:"volume"`
	Profit     float64   `json:"profit"`
	Time       time.Time `json:"time"`
	StopLoss   float64   `json:"sl"`
	TakeProfit float64   `json:"tp"`
}

// Position aggregates the deals sharing one position id, representing a
// logical trade from open to close. Positions are created on first reference
// and mutated additively; they are never deleted. Whether a position counts
// as closed is a read-time filter, not a state transition.
type Position struct {
	ID         int64
	Symbol     string
	Side       Side
	OpenTime   time.Time
	CloseTime  time.Time
	OpenPrice  float64
	ClosePrice float64
	Lot        float64 // total entry volume across partial entries
	VolumeOut  float64 // total exit volume across partial exits
	Profit     float64 // sum of exit-deal profits
	StopLoss   float64
	TakeProfit float64
	ExitDeals  []Deal // for volume-weighted point calculation
	DealCount  int    // source deals seen, for favorite-symbol counting
}
