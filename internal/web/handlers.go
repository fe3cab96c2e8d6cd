package web

import (
	"net/http"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/vitos/trade_stats_bridge/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// statsView wraps a daily record with the holding times rendered the way the
// frontend displays them.
type statsView struct {
	*domain.DailyStats
	AvgHoldingTimeText     string `json:"avg_holding_time_text"`
	AvgHoldingTimeWinText  string `json:"avg_holding_time_win_text"`
	AvgHoldingTimeLossText string `json:"avg_holding_time_loss_text"`
}

func newStatsView(st *domain.DailyStats) statsView {
	return statsView{
		DailyStats:             st,
		AvgHoldingTimeText:     domain.FormatHoldingTime(st.AvgHoldingTime),
		AvgHoldingTimeWinText:  domain.FormatHoldingTime(st.AvgHoldingTimeWin),
		AvgHoldingTimeLossText: domain.FormatHoldingTime(st.AvgHoldingTimeLoss),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) participantID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid participant id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statsRepo.ListLatestStats(r.Context())
	if err != nil {
		s.logger.Error("Failed to list leaderboard", zap.Error(err))
		http.Error(w, "Failed to list leaderboard", http.StatusInternalServerError)
		return
	}
	views := make([]statsView, 0, len(stats))
	for _, st := range stats {
		views = append(views, newStatsView(st))
	}
	s.writeJSON(w, views)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	id, ok := s.participantID(w, r)
	if !ok {
		return
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if q := r.URL.Query().Get("date"); q != "" {
		d, err := time.Parse("2006-01-02", q)
		if err != nil {
			http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = d
	}

	st, err := s.statsRepo.GetDailyStats(r.Context(), id, date)
	if err != nil {
		s.logger.Error("Failed to load stats", zap.Int64("participant_id", id), zap.Error(err))
		http.Error(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}
	if st == nil {
		http.Error(w, "no stats for that date", http.StatusNotFound)
		return
	}
	s.writeJSON(w, newStatsView(st))
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	id, ok := s.participantID(w, r)
	if !ok {
		return
	}

	limit := 100
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}

	trades, err := s.tradeRepo.ListTrades(r.Context(), id, limit)
	if err != nil {
		s.logger.Error("Failed to list trades", zap.Int64("participant_id", id), zap.Error(err))
		http.Error(w, "Failed to list trades", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, trades)
}

func (s *Server) handleEquity(w http.ResponseWriter, r *http.Request) {
	id, ok := s.participantID(w, r)
	if !ok {
		return
	}

	since := time.Now().UTC().Add(-7 * 24 * time.Hour)
	if q := r.URL.Query().Get("days"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			since = time.Now().UTC().Add(-time.Duration(n) * 24 * time.Hour)
		}
	}

	snaps, err := s.equityRepo.ListSnapshots(r.Context(), id, since)
	if err != nil {
		s.logger.Error("Failed to list equity snapshots", zap.Int64("participant_id", id), zap.Error(err))
		http.Error(w, "Failed to list equity snapshots", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, snaps)
}

func (s *Server) handleCandles(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	timeframe := r.URL.Query().Get("timeframe")
	if symbol == "" || timeframe == "" {
		http.Error(w, "symbol and timeframe are required", http.StatusBadRequest)
		return
	}

	limit := 500
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}

	candles, err := s.marketRepo.ListCandles(r.Context(), symbol, timeframe, limit)
	if err != nil {
		s.logger.Error("Failed to list candles",
			zap.String("symbol", symbol), zap.String("timeframe", timeframe), zap.Error(err))
		http.Error(w, "Failed to list candles", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, candles)
}
