package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vitos/trade_stats_bridge/internal/domain"
)

// Server exposes the read-only API the leaderboard frontend consumes, plus
// health and metrics endpoints for the deployment.
type Server struct {
	router     *http.ServeMux
	server     *http.Server
	statsRepo  domain.StatsRepository
	tradeRepo  domain.TradeRepository
	equityRepo domain.EquityRepository
	marketRepo domain.MarketDataRepository
	logger     *zap.Logger
}

func NewServer(
	port int,
	statsRepo domain.StatsRepository,
	tradeRepo domain.TradeRepository,
	equityRepo domain.EquityRepository,
	marketRepo domain.MarketDataRepository,
	logger *zap.Logger,
) *Server {
	s := &Server{
		router:     http.NewServeMux(),
		statsRepo:  statsRepo,
		tradeRepo:  tradeRepo,
		equityRepo: equityRepo,
		marketRepo: marketRepo,
		logger:     logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("GET /healthz", s.handleHealth)

	s.router.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	s.router.HandleFunc("GET /api/stats/{id}", s.handleStats)
	s.router.HandleFunc("GET /api/trades/{id}", s.handleTrades)
	s.router.HandleFunc("GET /api/equity/{id}", s.handleEquity)
	s.router.HandleFunc("GET /api/candles", s.handleCandles)

	s.router.Handle("GET /metrics", promhttp.Handler())
}

func (s *Server) Start() error {
	s.logger.Info("Starting web server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
