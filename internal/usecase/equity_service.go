package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vitos/trade_stats_bridge/internal/domain"
)

const (
	// Snapshots land on a five-minute grid; the retention window keeps
	// thirty days of curve per participant.
	snapshotInterval  = 5 * time.Minute
	snapshotRetention = 30 * 24 * time.Hour
)

// EquityService records equity-curve snapshots and derives the day-over-day
// growth figure shown on the leaderboard.
type EquityService struct {
	equityRepo domain.EquityRepository
	statsRepo  domain.StatsRepository
	logger     *zap.Logger
}

func NewEquityService(equityRepo domain.EquityRepository, statsRepo domain.StatsRepository, logger *zap.Logger) *EquityService {
	return &EquityService{
		equityRepo: equityRepo,
		statsRepo:  statsRepo,
		logger:     logger,
	}
}

// MaybeRecordSnapshot saves an equity point if the current grid slot has no
// snapshot yet. Sync cycles run more often than the grid spacing, so most
// calls are no-ops.
func (s *EquityService) MaybeRecordSnapshot(ctx context.Context, participantID int64, info *domain.AccountInfo, now time.Time) error {
	slot := now.UTC().Truncate(snapshotInterval)

	last, err := s.equityRepo.LatestSnapshotTime(ctx, participantID)
	if err != nil {
		return err
	}
	if !last.IsZero() && !last.UTC().Truncate(snapshotInterval).Before(slot) {
		return nil
	}

	snap := &domain.EquitySnapshot{
		ParticipantID: participantID,
		Timestamp:     slot,
		Balance:       info.Balance,
		Equity:        info.Equity,
		FloatingPL:    round2(info.Equity - info.Balance),
		MarginLevel:   info.MarginLevel,
	}
	return s.equityRepo.SaveSnapshot(ctx, snap)
}

// GrowthPercent compares current equity against the last snapshot of the
// previous UTC day, falling back to the stored daily record when the snapshot
// history does not reach back that far. Returns 0 when no baseline exists.
func (s *EquityService) GrowthPercent(ctx context.Context, participantID int64, equity float64, now time.Time) float64 {
	dayStart := now.UTC().Truncate(24 * time.Hour)
	prevStart := dayStart.Add(-24 * time.Hour)

	base, err := s.equityRepo.LastEquityBetween(ctx, participantID, prevStart, dayStart)
	if err != nil {
		s.logger.Warn("equity baseline lookup failed",
			zap.Int64("participant_id", participantID), zap.Error(err))
		return 0
	}
	if base == 0 {
		base, err = s.statsRepo.GetEquityOn(ctx, participantID, prevStart)
		if err != nil {
			s.logger.Warn("daily equity fallback lookup failed",
				zap.Int64("participant_id", participantID), zap.Error(err))
			return 0
		}
	}
	if base == 0 {
		return 0
	}
	return round2((equity - base) / base * 100)
}

// CleanupSnapshots drops snapshots older than the retention window.
func (s *EquityService) CleanupSnapshots(ctx context.Context, now time.Time) error {
	cutoff := now.UTC().Add(-snapshotRetention)
	n, err := s.equityRepo.DeleteSnapshotsBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("equity snapshots pruned", zap.Int64("deleted", n))
	}
	return nil
}
