package usecase_test

import (
	"context"
	"errors"
	"time"

	"github.com/vitos/trade_stats_bridge/internal/domain"
)

// MockTerminal
type MockTerminal struct {
	loggedIn   int64
	loginErr   error
	info       *domain.AccountInfo
	infoErr    error
	deals      []domain.RawDeal
	dealsErr   error
	openIDs    map[int64]bool
	openErr    error
	pointSizes map[string]float64
	symbols    map[string]bool
	candles    map[string][]domain.Candle
	candleErr  error
}

func (m *MockTerminal) Login(ctx context.Context, account int64, password, server string) error {
	if m.loginErr != nil {
		return m.loginErr
	}
	m.loggedIn = account
	return nil
}

func (m *MockTerminal) AccountInfo(ctx context.Context) (*domain.AccountInfo, error) {
	if m.infoErr != nil {
		return nil, m.infoErr
	}
	return m.info, nil
}

func (m *MockTerminal) HistoryDeals(ctx context.Context, from, to time.Time) ([]domain.RawDeal, error) {
	if m.dealsErr != nil {
		return nil, m.dealsErr
	}
	return m.deals, nil
}

func (m *MockTerminal) OpenPositionIDs(ctx context.Context) (map[int64]bool, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	return m.openIDs, nil
}

func (m *MockTerminal) PointSize(ctx context.Context, symbol string) (float64, error) {
	p, ok := m.pointSizes[symbol]
	if !ok {
		return 0, errors.New("unknown symbol")
	}
	return p, nil
}

func (m *MockTerminal) OrderStops(ctx context.Context, orderRef int64) (float64, float64, error) {
	return 0, 0, errors.New("no order history")
}

func (m *MockTerminal) SelectSymbol(ctx context.Context, symbol string) (bool, error) {
	return m.symbols[symbol], nil
}

func (m *MockTerminal) Candles(ctx context.Context, symbol, timeframe string, count int) ([]domain.Candle, error) {
	if m.candleErr != nil {
		return nil, m.candleErr
	}
	return m.candles[timeframe], nil
}

// MockParticipantRepo
type MockParticipantRepo struct {
	participants []*domain.Participant
	upserted     []*domain.Participant
	listErr      error
}

func (m *MockParticipantRepo) UpsertParticipants(ctx context.Context, participants []*domain.Participant) error {
	m.upserted = append(m.upserted, participants...)
	return nil
}

func (m *MockParticipantRepo) ListParticipants(ctx context.Context) ([]*domain.Participant, error) {
	return m.participants, m.listErr
}

// MockStatsRepo
type MockStatsRepo struct {
	saved    []*domain.DailyStats
	equityOn map[string]float64 // date (2006-01-02) -> equity
}

func (m *MockStatsRepo) UpsertDailyStats(ctx context.Context, stats *domain.DailyStats) error {
	m.saved = append(m.saved, stats)
	return nil
}

func (m *MockStatsRepo) GetDailyStats(ctx context.Context, participantID int64, date time.Time) (*domain.DailyStats, error) {
	for _, st := range m.saved {
		if st.ParticipantID == participantID && st.Date.Equal(date) {
			return st, nil
		}
	}
	return nil, nil
}

func (m *MockStatsRepo) GetEquityOn(ctx context.Context, participantID int64, date time.Time) (float64, error) {
	return m.equityOn[date.Format("2006-01-02")], nil
}

func (m *MockStatsRepo) ListLatestStats(ctx context.Context) ([]*domain.DailyStats, error) {
	return m.saved, nil
}

// MockTradeRepo
type MockTradeRepo struct {
	saved []*domain.TradeRecord
}

func (m *MockTradeRepo) UpsertTrades(ctx context.Context, trades []*domain.TradeRecord) error {
	m.saved = append(m.saved, trades...)
	return nil
}

func (m *MockTradeRepo) ListTrades(ctx context.Context, participantID int64, limit int) ([]*domain.TradeRecord, error) {
	return m.saved, nil
}

// MockEquityRepo
type MockEquityRepo struct {
	snapshots []*domain.EquitySnapshot
	deleted   int64
}

func (m *MockEquityRepo) SaveSnapshot(ctx context.Context, snap *domain.EquitySnapshot) error {
	m.snapshots = append(m.snapshots, snap)
	return nil
}

func (m *MockEquityRepo) LatestSnapshotTime(ctx context.Context, participantID int64) (time.Time, error) {
	var latest time.Time
	for _, s := range m.snapshots {
		if s.ParticipantID == participantID && s.Timestamp.After(latest) {
			latest = s.Timestamp
		}
	}
	return latest, nil
}

func (m *MockEquityRepo) LastEquityBetween(ctx context.Context, participantID int64, from, to time.Time) (float64, error) {
	var best *domain.EquitySnapshot
	for _, s := range m.snapshots {
		if s.ParticipantID != participantID || s.Timestamp.Before(from) || !s.Timestamp.Before(to) {
			continue
		}
		if best == nil || s.Timestamp.After(best.Timestamp) {
			best = s
		}
	}
	if best == nil {
		return 0, nil
	}
	return best.Equity, nil
}

func (m *MockEquityRepo) ListSnapshots(ctx context.Context, participantID int64, since time.Time) ([]*domain.EquitySnapshot, error) {
	return m.snapshots, nil
}

func (m *MockEquityRepo) DeleteSnapshotsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	kept := m.snapshots[:0]
	for _, s := range m.snapshots {
		if s.Timestamp.Before(cutoff) {
			m.deleted++
			continue
		}
		kept = append(kept, s)
	}
	m.snapshots = kept
	return m.deleted, nil
}

// MockMarketRepo
type MockMarketRepo struct {
	candles map[string][]domain.Candle // timeframe -> bars
	pruned  map[string]time.Time
}

func NewMockMarketRepo() *MockMarketRepo {
	return &MockMarketRepo{
		candles: make(map[string][]domain.Candle),
		pruned:  make(map[string]time.Time),
	}
}

func (m *MockMarketRepo) UpsertCandles(ctx context.Context, candles []domain.Candle) error {
	for _, c := range candles {
		m.candles[c.Timeframe] = append(m.candles[c.Timeframe], c)
	}
	return nil
}

func (m *MockMarketRepo) DeleteCandlesBefore(ctx context.Context, timeframe string, cutoff time.Time) (int64, error) {
	m.pruned[timeframe] = cutoff
	return 0, nil
}

func (m *MockMarketRepo) ListCandles(ctx context.Context, symbol, timeframe string, limit int) ([]domain.Candle, error) {
	return m.candles[timeframe], nil
}
