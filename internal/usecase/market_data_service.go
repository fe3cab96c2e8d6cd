package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vitos/trade_stats_bridge/internal/domain"
	"github.com/vitos/trade_stats_bridge/internal/metrics"
)

// timeframeSpec fixes, per timeframe, how many bars one sync pulls and how
// long stored bars live. A zero retention means bars are kept forever.
type timeframeSpec struct {
	name      string
	fetch     int
	retention time.Duration
}

var timeframes = []timeframeSpec{
	{name: "M1", fetch: 4320, retention: 3 * 24 * time.Hour},
	{name: "M5", fetch: 4032, retention: 14 * 24 * time.Hour},
	{name: "M15", fetch: 2880, retention: 30 * 24 * time.Hour},
	{name: "H1", fetch: 2160, retention: 90 * 24 * time.Hour},
	{name: "H4", fetch: 1080, retention: 180 * 24 * time.Hour},
	{name: "D1", fetch: 365, retention: 0},
}

// MarketDataService mirrors the terminal's OHLCV history for one instrument
// into the store. Brokers list the same instrument under different names, so
// the service probes the configured variants and normalizes the stored
// symbol to the first one.
type MarketDataService struct {
	terminal     domain.Terminal
	repo         domain.MarketDataRepository
	logger       *zap.Logger
	brokerOffset time.Duration

	// Probe order; element 0 is the canonical stored name.
	symbolVariants []string
	activeSymbol   string
}

func NewMarketDataService(
	terminal domain.Terminal,
	repo domain.MarketDataRepository,
	logger *zap.Logger,
	brokerOffset time.Duration,
	symbolVariants []string,
) *MarketDataService {
	if len(symbolVariants) == 0 {
		symbolVariants = []string{"XAUUSD", "XAUUSD.s", "GOLD"}
	}
	return &MarketDataService{
		terminal:       terminal,
		repo:           repo,
		logger:         logger,
		brokerOffset:   brokerOffset,
		symbolVariants: symbolVariants,
	}
}

// Sync pulls every timeframe once and prunes expired bars. Timeframe
// failures are logged and skipped; only a missing symbol fails the run.
func (s *MarketDataService) Sync(ctx context.Context) error {
	symbol, err := s.selectSymbol(ctx)
	if err != nil {
		return err
	}

	for _, tf := range timeframes {
		if err := s.syncTimeframe(ctx, symbol, tf); err != nil {
			s.logger.Warn("timeframe sync failed",
				zap.String("symbol", symbol),
				zap.String("timeframe", tf.name),
				zap.Error(err))
			continue
		}
		if tf.retention > 0 {
			cutoff := time.Now().UTC().Add(-tf.retention)
			if _, err := s.repo.DeleteCandlesBefore(ctx, tf.name, cutoff); err != nil {
				s.logger.Warn("candle cleanup failed",
					zap.String("timeframe", tf.name), zap.Error(err))
			}
		}
	}
	return nil
}

// selectSymbol finds which variant this broker serves and pins it for the
// lifetime of the service.
func (s *MarketDataService) selectSymbol(ctx context.Context) (string, error) {
	if s.activeSymbol != "" {
		return s.activeSymbol, nil
	}
	for _, variant := range s.symbolVariants {
		ok, err := s.terminal.SelectSymbol(ctx, variant)
		if err != nil {
			s.logger.Debug("symbol probe failed",
				zap.String("symbol", variant), zap.Error(err))
			continue
		}
		if ok {
			s.activeSymbol = variant
			s.logger.Info("market data symbol selected", zap.String("symbol", variant))
			return variant, nil
		}
	}
	return "", fmt.Errorf("none of %v available on this terminal", s.symbolVariants)
}

func (s *MarketDataService) syncTimeframe(ctx context.Context, symbol string, tf timeframeSpec) error {
	candles, err := s.terminal.Candles(ctx, symbol, tf.name, tf.fetch)
	if err != nil {
		return err
	}
	if len(candles) == 0 {
		return nil
	}

	canonical := s.symbolVariants[0]
	for i := range candles {
		candles[i].Symbol = canonical
		candles[i].Timeframe = tf.name
		candles[i].Time = candles[i].Time.Add(-s.brokerOffset).UTC()
	}

	if err := s.repo.UpsertCandles(ctx, candles); err != nil {
		return err
	}
	metrics.CandlesSynced.WithLabelValues(tf.name).Add(float64(len(candles)))
	return nil
}
