package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SyncCycles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "sync",
		Name:      "cycles_total",
		Help:      "Completed sync cycles.",
	})

	SyncErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "sync",
		Name:      "errors_total",
		Help:      "Participant sync failures by stage.",
	}, []string{"stage"})

	TradesSynced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "sync",
		Name:      "trades_total",
		Help:      "Closed trades upserted.",
	})

	CandlesSynced = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "market_data",
		Name:      "candles_total",
		Help:      "OHLCV bars upserted by timeframe.",
	}, []string{"timeframe"})

	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bridge",
		Subsystem: "sync",
		Name:      "cycle_duration_seconds",
		Help:      "Wall time of a full sync cycle.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	})
)
