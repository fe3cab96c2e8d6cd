package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/vitos/trade_stats_bridge/internal/domain"
)

// PostgresStore implements every repository interface on one shared
// connection pool. The schema is created on startup; the hosted database
// survives redeploys, so every statement is idempotent.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS participants (
			id BIGSERIAL PRIMARY KEY,
			nickname TEXT NOT NULL,
			account_id TEXT NOT NULL UNIQUE,
			investor_password TEXT NOT NULL DEFAULT '',
			server TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS daily_stats (
			participant_id BIGINT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			balance DOUBLE PRECISION NOT NULL DEFAULT 0,
			equity DOUBLE PRECISION NOT NULL DEFAULT 0,
			floating_pl DOUBLE PRECISION NOT NULL DEFAULT 0,
			profit DOUBLE PRECISION NOT NULL DEFAULT 0,
			points BIGINT NOT NULL DEFAULT 0,
			total_lots DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_trades INTEGER NOT NULL DEFAULT 0,
			wins INTEGER NOT NULL DEFAULT 0,
			losses INTEGER NOT NULL DEFAULT 0,
			buy_trades INTEGER NOT NULL DEFAULT 0,
			buy_wins INTEGER NOT NULL DEFAULT 0,
			sell_trades INTEGER NOT NULL DEFAULT 0,
			sell_wins INTEGER NOT NULL DEFAULT 0,
			gross_profit DOUBLE PRECISION NOT NULL DEFAULT 0,
			gross_loss DOUBLE PRECISION NOT NULL DEFAULT 0,
			best_trade DOUBLE PRECISION NOT NULL DEFAULT 0,
			worst_trade DOUBLE PRECISION NOT NULL DEFAULT 0,
			avg_win DOUBLE PRECISION NOT NULL DEFAULT 0,
			avg_loss DOUBLE PRECISION NOT NULL DEFAULT 0,
			win_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			win_rate_buy DOUBLE PRECISION NOT NULL DEFAULT 0,
			win_rate_sell DOUBLE PRECISION NOT NULL DEFAULT 0,
			profit_factor DOUBLE PRECISION NOT NULL DEFAULT 0,
			rr_ratio DOUBLE PRECISION NOT NULL DEFAULT 0,
			max_drawdown_value DOUBLE PRECISION NOT NULL DEFAULT 0,
			max_drawdown DOUBLE PRECISION NOT NULL DEFAULT 0,
			max_consecutive_wins INTEGER NOT NULL DEFAULT 0,
			max_consecutive_losses INTEGER NOT NULL DEFAULT 0,
			avg_holding_time_sec BIGINT NOT NULL DEFAULT 0,
			avg_holding_time_win_sec BIGINT NOT NULL DEFAULT 0,
			avg_holding_time_loss_sec BIGINT NOT NULL DEFAULT 0,
			trading_style TEXT NOT NULL DEFAULT 'Unknown',
			favorite_symbol TEXT NOT NULL DEFAULT '-',
			session_asian_profit DOUBLE PRECISION NOT NULL DEFAULT 0,
			session_asian_trades INTEGER NOT NULL DEFAULT 0,
			session_asian_wins INTEGER NOT NULL DEFAULT 0,
			session_asian_win_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			session_london_profit DOUBLE PRECISION NOT NULL DEFAULT 0,
			session_london_trades INTEGER NOT NULL DEFAULT 0,
			session_london_wins INTEGER NOT NULL DEFAULT 0,
			session_london_win_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			session_ny_profit DOUBLE PRECISION NOT NULL DEFAULT 0,
			session_ny_trades INTEGER NOT NULL DEFAULT 0,
			session_ny_wins INTEGER NOT NULL DEFAULT 0,
			session_ny_win_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			equity_growth_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (participant_id, date)
		);`,
		`CREATE TABLE IF NOT EXISTS trades (
			participant_id BIGINT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
			position_id BIGINT NOT NULL,
			symbol TEXT NOT NULL,
			type TEXT NOT NULL,
			lot_size DOUBLE PRECISION NOT NULL DEFAULT 0,
			open_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			close_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			sl DOUBLE PRECISION NOT NULL DEFAULT 0,
			tp DOUBLE PRECISION NOT NULL DEFAULT 0,
			open_time TIMESTAMPTZ,
			close_time TIMESTAMPTZ,
			profit DOUBLE PRECISION NOT NULL DEFAULT 0,
			PRIMARY KEY (participant_id, position_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_trades_close_time ON trades(participant_id, close_time DESC);`,
		`CREATE TABLE IF NOT EXISTS equity_snapshots (
			participant_id BIGINT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
			ts TIMESTAMPTZ NOT NULL,
			balance DOUBLE PRECISION NOT NULL DEFAULT 0,
			equity DOUBLE PRECISION NOT NULL DEFAULT 0,
			floating_pl DOUBLE PRECISION NOT NULL DEFAULT 0,
			margin_level DOUBLE PRECISION NOT NULL DEFAULT 0,
			PRIMARY KEY (participant_id, ts)
		);`,
		`CREATE TABLE IF NOT EXISTS market_data (
			symbol TEXT NOT NULL,
			timeframe TEXT NOT NULL,
			time TIMESTAMPTZ NOT NULL,
			open DOUBLE PRECISION NOT NULL,
			high DOUBLE PRECISION NOT NULL,
			low DOUBLE PRECISION NOT NULL,
			close DOUBLE PRECISION NOT NULL,
			volume BIGINT NOT NULL DEFAULT 0,
			PRIMARY KEY (symbol, timeframe, time)
		);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// ParticipantRepository

func (s *PostgresStore) UpsertParticipants(ctx context.Context, participants []*domain.Participant) error {
	query := `INSERT INTO participants (nickname, account_id, investor_password, server)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (account_id) DO UPDATE SET
				nickname = EXCLUDED.nickname,
				investor_password = EXCLUDED.investor_password,
				server = EXCLUDED.server`
	for _, p := range participants {
		if _, err := s.db.ExecContext(ctx, query, p.Nickname, p.AccountID, p.InvestorPassword, p.Server); err != nil {
			return fmt.Errorf("upsert participant %s: %w", p.AccountID, err)
		}
	}
	return nil
}

func (s *PostgresStore) ListParticipants(ctx context.Context) ([]*domain.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nickname, account_id, investor_password, server, created_at
		 FROM participants ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Participant
	for rows.Next() {
		p := &domain.Participant{}
		if err := rows.Scan(&p.ID, &p.Nickname, &p.AccountID, &p.InvestorPassword, &p.Server, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// StatsRepository

const dailyStatsColumns = `participant_id, date, balance, equity, floating_pl,
	profit, points, total_lots,
	total_trades, wins, losses, buy_trades, buy_wins, sell_trades, sell_wins,
	gross_profit, gross_loss, best_trade, worst_trade, avg_win, avg_loss,
	win_rate, win_rate_buy, win_rate_sell, profit_factor, rr_ratio,
	max_drawdown_value, max_drawdown, max_consecutive_wins, max_consecutive_losses,
	avg_holding_time_sec, avg_holding_time_win_sec, avg_holding_time_loss_sec,
	trading_style, favorite_symbol,
	session_asian_profit, session_asian_trades, session_asian_wins, session_asian_win_rate,
	session_london_profit, session_london_trades, session_london_wins, session_london_win_rate,
	session_ny_profit, session_ny_trades, session_ny_wins, session_ny_win_rate,
	equity_growth_percent`

func (s *PostgresStore) UpsertDailyStats(ctx context.Context, st *domain.DailyStats) error {
	query := `INSERT INTO daily_stats (` + dailyStatsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33, $34, $35, $36, $37, $38, $39, $40, $41, $42, $43, $44, $45,
			$46, $47, $48)
		ON CONFLICT (participant_id, date) DO UPDATE SET
			balance = EXCLUDED.balance, equity = EXCLUDED.equity, floating_pl = EXCLUDED.floating_pl,
			profit = EXCLUDED.profit, points = EXCLUDED.points, total_lots = EXCLUDED.total_lots,
			total_trades = EXCLUDED.total_trades, wins = EXCLUDED.wins, losses = EXCLUDED.losses,
			buy_trades = EXCLUDED.buy_trades, buy_wins = EXCLUDED.buy_wins,
			sell_trades = EXCLUDED.sell_trades, sell_wins = EXCLUDED.sell_wins,
			gross_profit = EXCLUDED.gross_profit, gross_loss = EXCLUDED.gross_loss,
			best_trade = EXCLUDED.best_trade, worst_trade = EXCLUDED.worst_trade,
			avg_win = EXCLUDED.avg_win, avg_loss = EXCLUDED.avg_loss,
			win_rate = EXCLUDED.win_rate, win_rate_buy = EXCLUDED.win_rate_buy,
			win_rate_sell = EXCLUDED.win_rate_sell, profit_factor = EXCLUDED.profit_factor,
			rr_ratio = EXCLUDED.rr_ratio,
			max_drawdown_value = EXCLUDED.max_drawdown_value, max_drawdown = EXCLUDED.max_drawdown,
			max_consecutive_wins = EXCLUDED.max_consecutive_wins,
			max_consecutive_losses = EXCLUDED.max_consecutive_losses,
			avg_holding_time_sec = EXCLUDED.avg_holding_time_sec,
			avg_holding_time_win_sec = EXCLUDED.avg_holding_time_win_sec,
			avg_holding_time_loss_sec = EXCLUDED.avg_holding_time_loss_sec,
			trading_style = EXCLUDED.trading_style, favorite_symbol = EXCLUDED.favorite_symbol,
			session_asian_profit = EXCLUDED.session_asian_profit,
			session_asian_trades = EXCLUDED.session_asian_trades,
			session_asian_wins = EXCLUDED.session_asian_wins,
			session_asian_win_rate = EXCLUDED.session_asian_win_rate,
			session_london_profit = EXCLUDED.session_london_profit,
			session_london_trades = EXCLUDED.session_london_trades,
			session_london_wins = EXCLUDED.session_london_wins,
			session_london_win_rate = EXCLUDED.session_london_win_rate,
			session_ny_profit = EXCLUDED.session_ny_profit,
			session_ny_trades = EXCLUDED.session_ny_trades,
			session_ny_wins = EXCLUDED.session_ny_wins,
			session_ny_win_rate = EXCLUDED.session_ny_win_rate,
			equity_growth_percent = EXCLUDED.equity_growth_percent,
			updated_at = now()`

	_, err := s.db.ExecContext(ctx, query,
		st.ParticipantID, st.Date, st.Balance, st.Equity, st.FloatingPL,
		st.TotalProfit, st.TotalPoints, st.TotalLots,
		st.TotalTrades, st.Wins, st.Losses, st.BuyTrades, st.BuyWins, st.SellTrades, st.SellWins,
		st.GrossProfit, st.GrossLoss, st.BestTrade, st.WorstTrade, st.AvgWin, st.AvgLoss,
		st.WinRate, st.WinRateBuy, st.WinRateSell, st.ProfitFactor, st.RiskReward,
		st.MaxDrawdownValue, st.MaxDrawdown, st.MaxConsecutiveWins, st.MaxConsecutiveLosses,
		int64(st.AvgHoldingTime.Seconds()), int64(st.AvgHoldingTimeWin.Seconds()), int64(st.AvgHoldingTimeLoss.Seconds()),
		st.TradingStyle, st.FavoriteSymbol,
		st.SessionAsian.Profit, st.SessionAsian.Trades, st.SessionAsian.Wins, st.SessionAsian.WinRate,
		st.SessionLondon.Profit, st.SessionLondon.Trades, st.SessionLondon.Wins, st.SessionLondon.WinRate,
		st.SessionNewYork.Profit, st.SessionNewYork.Trades, st.SessionNewYork.Wins, st.SessionNewYork.WinRate,
		st.EquityGrowthPercent)
	if err != nil {
		return fmt.Errorf("upsert daily stats: %w", err)
	}
	return nil
}

func scanDailyStats(row interface{ Scan(...interface{}) error }) (*domain.DailyStats, error) {
	st := &domain.DailyStats{}
	var holdSec, holdWinSec, holdLossSec int64
	err := row.Scan(
		&st.ParticipantID, &st.Date, &st.Balance, &st.Equity, &st.FloatingPL,
		&st.TotalProfit, &st.TotalPoints, &st.TotalLots,
		&st.TotalTrades, &st.Wins, &st.Losses, &st.BuyTrades, &st.BuyWins, &st.SellTrades, &st.SellWins,
		&st.GrossProfit, &st.GrossLoss, &st.BestTrade, &st.WorstTrade, &st.AvgWin, &st.AvgLoss,
		&st.WinRate, &st.WinRateBuy, &st.WinRateSell, &st.ProfitFactor, &st.RiskReward,
		&st.MaxDrawdownValue, &st.MaxDrawdown, &st.MaxConsecutiveWins, &st.MaxConsecutiveLosses,
		&holdSec, &holdWinSec, &holdLossSec,
		&st.TradingStyle, &st.FavoriteSymbol,
		&st.SessionAsian.Profit, &st.SessionAsian.Trades, &st.SessionAsian.Wins, &st.SessionAsian.WinRate,
		&st.SessionLondon.Profit, &st.SessionLondon.Trades, &st.SessionLondon.Wins, &st.SessionLondon.WinRate,
		&st.SessionNewYork.Profit, &st.SessionNewYork.Trades, &st.SessionNewYork.Wins, &st.SessionNewYork.WinRate,
		&st.EquityGrowthPercent)
	if err != nil {
		return nil, err
	}
	st.AvgHoldingTime = time.Duration(holdSec) * time.Second
	st.AvgHoldingTimeWin = time.Duration(holdWinSec) * time.Second
	st.AvgHoldingTimeLoss = time.Duration(holdLossSec) * time.Second
	return st, nil
}

func (s *PostgresStore) GetDailyStats(ctx context.Context, participantID int64, date time.Time) (*domain.DailyStats, error) {
	query := `SELECT ` + dailyStatsColumns + ` FROM daily_stats WHERE participant_id = $1 AND date = $2`
	st, err := scanDailyStats(s.db.QueryRowContext(ctx, query, participantID, date))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return st, err
}

func (s *PostgresStore) GetEquityOn(ctx context.Context, participantID int64, date time.Time) (float64, error) {
	var equity float64
	err := s.db.QueryRowContext(ctx,
		`SELECT equity FROM daily_stats WHERE participant_id = $1 AND date = $2`,
		participantID, date).Scan(&equity)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return equity, err
}

func (s *PostgresStore) ListLatestStats(ctx context.Context) ([]*domain.DailyStats, error) {
	query := `SELECT DISTINCT ON (participant_id) ` + dailyStatsColumns + `
		FROM daily_stats ORDER BY participant_id, date DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.DailyStats
	for rows.Next() {
		st, err := scanDailyStats(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// TradeRepository

func (s *PostgresStore) UpsertTrades(ctx context.Context, trades []*domain.TradeRecord) error {
	query := `INSERT INTO trades (participant_id, position_id, symbol, type, lot_size,
			open_price, close_price, sl, tp, open_time, close_time, profit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (participant_id, position_id) DO UPDATE SET
			symbol = EXCLUDED.symbol, type = EXCLUDED.type, lot_size = EXCLUDED.lot_size,
			open_price = EXCLUDED.open_price, close_price = EXCLUDED.close_price,
			sl = EXCLUDED.sl, tp = EXCLUDED.tp,
			open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time,
			profit = EXCLUDED.profit`
	for _, t := range trades {
		_, err := s.db.ExecContext(ctx, query,
			t.ParticipantID, t.PositionID, t.Symbol, string(t.Side), t.Lot,
			t.OpenPrice, t.ClosePrice, t.StopLoss, t.TakeProfit,
			t.OpenTime, t.CloseTime, t.Profit)
		if err != nil {
			return fmt.Errorf("upsert trade %d: %w", t.PositionID, err)
		}
	}
	return nil
}

func (s *PostgresStore) ListTrades(ctx context.Context, participantID int64, limit int) ([]*domain.TradeRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT participant_id, position_id, symbol, type, lot_size,
			open_price, close_price, sl, tp, open_time, close_time, profit
		 FROM trades WHERE participant_id = $1
		 ORDER BY close_time DESC LIMIT $2`,
		participantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.TradeRecord
	for rows.Next() {
		t := &domain.TradeRecord{}
		var side string
		if err := rows.Scan(&t.ParticipantID, &t.PositionID, &t.Symbol, &side, &t.Lot,
			&t.OpenPrice, &t.ClosePrice, &t.StopLoss, &t.TakeProfit,
			&t.OpenTime, &t.CloseTime, &t.Profit); err != nil {
			return nil, err
		}
		t.Side = domain.Side(side)
		out = append(out, t)
	}
	return out, rows.Err()
}

// EquityRepository

func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap *domain.EquitySnapshot) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO equity_snapshots (participant_id, ts, balance, equity, floating_pl, margin_level)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (participant_id, ts) DO UPDATE SET
			balance = EXCLUDED.balance, equity = EXCLUDED.equity,
			floating_pl = EXCLUDED.floating_pl, margin_level = EXCLUDED.margin_level`,
		snap.ParticipantID, snap.Timestamp, snap.Balance, snap.Equity, snap.FloatingPL, snap.MarginLevel)
	return err
}

func (s *PostgresStore) LatestSnapshotTime(ctx context.Context, participantID int64) (time.Time, error) {
	var ts time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT ts FROM equity_snapshots WHERE participant_id = $1 ORDER BY ts DESC LIMIT 1`,
		participantID).Scan(&ts)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	return ts, err
}

func (s *PostgresStore) LastEquityBetween(ctx context.Context, participantID int64, from, to time.Time) (float64, error) {
	var equity float64
	err := s.db.QueryRowContext(ctx,
		`SELECT equity FROM equity_snapshots
		 WHERE participant_id = $1 AND ts >= $2 AND ts < $3
		 ORDER BY ts DESC LIMIT 1`,
		participantID, from, to).Scan(&equity)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return equity, err
}

func (s *PostgresStore) ListSnapshots(ctx context.Context, participantID int64, since time.Time) ([]*domain.EquitySnapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT participant_id, ts, balance, equity, floating_pl, margin_level
		 FROM equity_snapshots WHERE participant_id = $1 AND ts >= $2 ORDER BY ts`,
		participantID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.EquitySnapshot
	for rows.Next() {
		snap := &domain.EquitySnapshot{}
		if err := rows.Scan(&snap.ParticipantID, &snap.Timestamp, &snap.Balance,
			&snap.Equity, &snap.FloatingPL, &snap.MarginLevel); err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteSnapshotsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM equity_snapshots WHERE ts < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MarketDataRepository

func (s *PostgresStore) UpsertCandles(ctx context.Context, candles []domain.Candle) error {
	query := `INSERT INTO market_data (symbol, timeframe, time, open, high, low, close, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (symbol, timeframe, time) DO UPDATE SET
			open = EXCLUDED.open, high = EXCLUDED.high,
			low = EXCLUDED.low, close = EXCLUDED.close, volume = EXCLUDED.volume`
	for _, c := range candles {
		_, err := s.db.ExecContext(ctx, query,
			c.Symbol, c.Timeframe, c.Time, c.Open, c.High, c.Low, c.Close, c.Volume)
		if err != nil {
			return fmt.Errorf("upsert candle %s %s %s: %w", c.Symbol, c.Timeframe, c.Time, err)
		}
	}
	return nil
}

func (s *PostgresStore) DeleteCandlesBefore(ctx context.Context, timeframe string, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM market_data WHERE timeframe = $1 AND time < $2`, timeframe, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *PostgresStore) ListCandles(ctx context.Context, symbol, timeframe string, limit int) ([]domain.Candle, error) {
	if limit <= 0 {
		limit = 500
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT symbol, timeframe, time, open, high, low, close, volume
		 FROM market_data WHERE symbol = $1 AND timeframe = $2
		 ORDER BY time DESC LIMIT $3`,
		symbol, timeframe, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Candle
	for rows.Next() {
		var c domain.Candle
		if err := rows.Scan(&c.Symbol, &c.Timeframe, &c.Time,
			&c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
