package domain

import (
	"fmt"
	"time"
)

const (
	StyleUnknown  = "Unknown"
	StyleScalping = "Scalping"
	StyleIntraday = "Intraday"
	StyleSwing    = "Swing"
)

// SessionStats is the per-session breakdown for one trading window.
type SessionStats struct {
	Profit  float64 `json:"profit"`
	Trades  int     `json:"trades"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

// DailyStats is the statistics record for one participant and date,
// upserted on (participant_id, date). Every ratio defaults to 0 when its
// denominator is 0; a record never carries NaN.
type DailyStats struct {
	ParticipantID int64     `json:"participant_id"`
	Date          time.Time `json:"date"`

	Balance    float64 `json:"balance"`
	Equity     float64 `json:"equity"`
	FloatingPL float64 `json:"floating_pl"`

	TotalProfit float64 `json:"profit"`
	TotalPoints int64   `json:"points"`
	TotalLots   float64 `json:"total_lots"`

	TotalTrades int `json:"total_trades"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	BuyTrades   int `json:"buy_trades"`
	BuyWins     int `json:"buy_wins"`
	SellTrades  int `json:"sell_trades"`
	SellWins    int `json:"sell_wins"`

	GrossProfit float64 `json:"gross_profit"`
	GrossLoss   float64 `json:"gross_loss"`
	BestTrade   float64 `json:"best_trade"`
	WorstTrade  float64 `json:"worst_trade"`
	AvgWin      float64 `json:"avg_win"`
	AvgLoss     float64 `json:"avg_loss"`

	WinRate      float64 `json:"win_rate"`
	WinRateBuy   float64 `json:"win_rate_buy"`
	WinRateSell  float64 `json:"win_rate_sell"`
	ProfitFactor float64 `json:"profit_factor"`
	RiskReward   float64 `json:"rr_ratio"`

	MaxDrawdownValue float64 `json:"max_drawdown_value"`
	MaxDrawdown      float64 `json:"max_drawdown"` // percent of peak balance

	MaxConsecutiveWins   int `json:"max_consecutive_wins"`
	MaxConsecutiveLosses int `json:"max_consecutive_losses"`

	AvgHoldingTime     time.Duration `json:"avg_holding_time"`
	AvgHoldingTimeWin  time.Duration `json:"avg_holding_time_win"`
	AvgHoldingTimeLoss time.Duration `json:"avg_holding_time_loss"`

	TradingStyle   string `json:"trading_style"`
	FavoriteSymbol string `json:"favorite_symbol"`

	SessionAsian   SessionStats `json:"session_asian"`
	SessionLondon  SessionStats `json:"session_london"`
	SessionNewYork SessionStats `json:"session_newyork"`

	EquityGrowthPercent float64 `json:"equity_growth_percent"`
}

// TradeRecord is one fully closed position as persisted for the frontend,
// upserted on (participant_id, position_id).
type TradeRecord struct {
	ParticipantID int64     `json:"participant_id"`
	PositionID    int64     `json:"position_id"`
	Symbol        string    `json:"symbol"`
	Side          Side      `json:"type"`
	Lot           float64   `json:"lot_size"`
	OpenPrice     float64   `json:"open_price"`
	ClosePrice    float64   `json:"close_price"`
	StopLoss      float64   `json:"sl"`
	TakeProfit    float64   `json:"tp"`
	OpenTime      time.Time `json:"open_time"`
	CloseTime     time.Time `json:"close_time"`
	Profit        float64   `json:"profit"`
}

// FormatHoldingTime renders a holding duration the way the leaderboard
// displays it: "{d}d {h}h" from one day up, "{h}h {m}m" from one hour up,
// "{m}m {s}s" below that.
func FormatHoldingTime(d time.Duration) string {
	secs := int64(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	days := secs / 86400
	hours := secs % 86400 / 3600
	mins := secs % 3600 / 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm %ds", mins, secs%60)
}
