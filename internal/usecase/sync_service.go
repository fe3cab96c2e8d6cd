package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/vitos/trade_stats_bridge/internal/domain"
	"github.com/vitos/trade_stats_bridge/internal/metrics"
)

// SyncService drives the polling cycle: for every registered participant it
// logs into the terminal, pulls the deal history, rebuilds closed positions
// and upserts the daily statistics and trade records.
type SyncService struct {
	participants domain.ParticipantRepository
	statsRepo    domain.StatsRepository
	tradeRepo    domain.TradeRepository
	terminal     domain.Terminal
	equity       *EquityService
	logger       *zap.Logger

	brokerOffset time.Duration
	historyFrom  time.Time
}

func NewSyncService(
	participants domain.ParticipantRepository,
	statsRepo domain.StatsRepository,
	tradeRepo domain.TradeRepository,
	terminal domain.Terminal,
	equity *EquityService,
	logger *zap.Logger,
	brokerOffset time.Duration,
	historyFrom time.Time,
) *SyncService {
	return &SyncService{
		participants: participants,
		statsRepo:    statsRepo,
		tradeRepo:    tradeRepo,
		terminal:     terminal,
		equity:       equity,
		logger:       logger,
		brokerOffset: brokerOffset,
		historyFrom:  historyFrom,
	}
}

// SyncAll runs one cycle over every participant. A failing participant is
// logged and skipped; the cycle itself only fails when the registry cannot be
// read.
func (s *SyncService) SyncAll(ctx context.Context) error {
	started := time.Now()

	list, err := s.participants.ListParticipants(ctx)
	if err != nil {
		metrics.SyncErrors.WithLabelValues("registry").Inc()
		return fmt.Errorf("list participants: %w", err)
	}

	synced := 0
	for _, p := range list {
		if p.AccountID == "" || p.InvestorPassword == "" {
			s.logger.Warn("participant missing credentials, skipping",
				zap.Int64("participant_id", p.ID), zap.String("nickname", p.Nickname))
			continue
		}
		if err := s.SyncParticipant(ctx, p); err != nil {
			s.logger.Error("participant sync failed",
				zap.Int64("participant_id", p.ID),
				zap.String("nickname", p.Nickname),
				zap.Error(err))
			continue
		}
		synced++
	}

	metrics.SyncCycles.Inc()
	metrics.CycleDuration.Observe(time.Since(started).Seconds())
	s.logger.Info("sync cycle finished",
		zap.Int("participants", len(list)),
		zap.Int("synced", synced),
		zap.Duration("took", time.Since(started)))
	return nil
}

// SyncParticipant refreshes one account end to end. Deal-history and
// open-position failures degrade to empty data so a flaky terminal still
// produces a (possibly default) daily record; login and account-info
// failures abort, there is nothing meaningful to write without them.
func (s *SyncService) SyncParticipant(ctx context.Context, p *domain.Participant) error {
	account, err := strconv.ParseInt(p.AccountID, 10, 64)
	if err != nil {
		metrics.SyncErrors.WithLabelValues("account_id").Inc()
		return fmt.Errorf("bad account id %q: %w", p.AccountID, err)
	}

	if err := s.terminal.Login(ctx, account, p.InvestorPassword, p.Server); err != nil {
		metrics.SyncErrors.WithLabelValues("login").Inc()
		return fmt.Errorf("login account %d: %w", account, err)
	}

	info, err := s.terminal.AccountInfo(ctx)
	if err != nil {
		metrics.SyncErrors.WithLabelValues("account_info").Inc()
		return fmt.Errorf("account info: %w", err)
	}

	now := time.Now()

	if err := s.equity.MaybeRecordSnapshot(ctx, p.ID, info, now); err != nil {
		s.logger.Warn("equity snapshot failed",
			zap.Int64("participant_id", p.ID), zap.Error(err))
	}

	// The window extends a day past now so broker-local timestamps ahead of
	// UTC are not clipped.
	deals, err := s.terminal.HistoryDeals(ctx, s.historyFrom, now.Add(24*time.Hour))
	if err != nil {
		metrics.SyncErrors.WithLabelValues("history").Inc()
		s.logger.Warn("deal history unavailable, computing from empty history",
			zap.Int64("participant_id", p.ID), zap.Error(err))
		deals = nil
	}

	openIDs, err := s.terminal.OpenPositionIDs(ctx)
	if err != nil {
		metrics.SyncErrors.WithLabelValues("open_positions").Inc()
		s.logger.Warn("open position snapshot unavailable",
			zap.Int64("participant_id", p.ID), zap.Error(err))
		openIDs = map[int64]bool{}
	}

	stats, trades := s.computeStats(ctx, p.ID, info, deals, openIDs, now)

	if len(trades) > 0 {
		if err := s.tradeRepo.UpsertTrades(ctx, trades); err != nil {
			metrics.SyncErrors.WithLabelValues("trades_upsert").Inc()
			return fmt.Errorf("upsert trades: %w", err)
		}
		metrics.TradesSynced.Add(float64(len(trades)))
	}

	// The daily record is written even for an empty history: a participant
	// with no trades still appears on the leaderboard with live equity.
	if err := s.statsRepo.UpsertDailyStats(ctx, stats); err != nil {
		metrics.SyncErrors.WithLabelValues("stats_upsert").Inc()
		return fmt.Errorf("upsert daily stats: %w", err)
	}

	s.logger.Debug("participant synced",
		zap.Int64("participant_id", p.ID),
		zap.Int("closed_trades", len(trades)),
		zap.Float64("equity", info.Equity))
	return nil
}

func (s *SyncService) computeStats(
	ctx context.Context,
	participantID int64,
	info *domain.AccountInfo,
	deals []domain.RawDeal,
	openIDs map[int64]bool,
	now time.Time,
) (*domain.DailyStats, []*domain.TradeRecord) {
	normalizer := NewDealNormalizer(s.terminal, s.brokerOffset)
	builder := NewPositionBuilder()
	for _, raw := range deals {
		if d, ok := normalizer.Normalize(ctx, raw); ok {
			builder.Add(d)
		}
	}

	positions := builder.Positions()
	closedIDs := ClosedPositionIDs(positions, openIDs)

	agg := NewStatsAggregator(s.terminal)
	agg.Walk(ctx, positions, closedIDs)

	stats := agg.Finalize(info.Balance, info.Equity)
	stats.ParticipantID = participantID
	stats.Date = now.UTC().Truncate(24 * time.Hour)
	stats.TotalLots = TotalLots(positions)
	stats.EquityGrowthPercent = s.equity.GrowthPercent(ctx, participantID, info.Equity, now)

	trades := make([]*domain.TradeRecord, 0, len(closedIDs))
	for _, id := range closedIDs {
		pos := positions[id]
		trades = append(trades, &domain.TradeRecord{
			ParticipantID: participantID,
			PositionID:    pos.ID,
			Symbol:        pos.Symbol,
			Side:          pos.Side,
			Lot:           pos.Lot,
			OpenPrice:     pos.OpenPrice,
			ClosePrice:    pos.ClosePrice,
			StopLoss:      pos.StopLoss,
			TakeProfit:    pos.TakeProfit,
			OpenTime:      pos.OpenTime,
			CloseTime:     pos.CloseTime,
			Profit:        round2(pos.Profit),
		})
	}
	return stats, trades
}
