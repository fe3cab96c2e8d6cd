package domain

import (
	"context"
	"time"
)

// Terminal is the market/account data source behind the terminal gateway.
// One account is active at a time; Login switches the session.
type Terminal interface {
	Login(ctx context.Context, account int64, password, server string) error
	AccountInfo(ctx context.Context) (*AccountInfo, error)
	HistoryDeals(ctx context.Context, from, to time.Time) ([]RawDeal, error)
	OpenPositionIDs(ctx context.Context) (map[int64]bool, error)
	PointSize(ctx context.Context, symbol string) (float64, error)
	OrderStops(ctx context.Context, orderRef int64) (sl, tp float64, err error)
	SelectSymbol(ctx context.Context, symbol string) (bool, error)
	Candles(ctx context.Context, symbol, timeframe string, count int) ([]Candle, error)
}

// ParticipantRepository defines storage operations for the registry.
type ParticipantRepository interface {
	UpsertParticipants(ctx context.Context, participants []*Participant) error
	ListParticipants(ctx context.Context) ([]*Participant, error)
}

// StatsRepository defines storage operations for daily statistics.
type StatsRepository interface {
	UpsertDailyStats(ctx context.Context, stats *DailyStats) error
	GetDailyStats(ctx context.Context, participantID int64, date time.Time) (*DailyStats, error)
	// GetEquityOn returns the persisted equity for a date, 0 when no row exists.
	GetEquityOn(ctx context.Context, participantID int64, date time.Time) (float64, error)
	ListLatestStats(ctx context.Context) ([]*DailyStats, error)
}

// TradeRepository defines storage operations for closed-trade records.
type TradeRepository interface {
	UpsertTrades(ctx context.Context, trades []*TradeRecord) error
	ListTrades(ctx context.Context, participantID int64, limit int) ([]*TradeRecord, error)
}

// EquityRepository defines storage operations for equity snapshots.
type EquityRepository interface {
	SaveSnapshot(ctx context.Context, snap *EquitySnapshot) error
	// LatestSnapshotTime returns the zero time when no snapshot exists yet.
	LatestSnapshotTime(ctx context.Context, participantID int64) (time.Time, error)
	// LastEquityBetween returns the most recent equity in [from, to), 0 when none.
	LastEquityBetween(ctx context.Context, participantID int64, from, to time.Time) (float64, error)
	ListSnapshots(ctx context.Context, participantID int64, since time.Time) ([]*EquitySnapshot, error)
	DeleteSnapshotsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// MarketDataRepository defines storage operations for OHLCV bars.
type MarketDataRepository interface {
	UpsertCandles(ctx context.Context, candles []Candle) error
	DeleteCandlesBefore(ctx context.Context, timeframe string, cutoff time.Time) (int64, error)
	ListCandles(ctx context.Context, symbol, timeframe string, limit int) ([]Candle, error)
}

// Notifier delivers operational alerts (cycle failures, service start/stop).
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
