package domain

import "time"

// Participant is a monitored trading account from the contest registry.
type Participant struct {
	ID               int64     `json:"id"`
	Nickname         string    `json:"nickname"`
	AccountID        string    `json:"account_id"`
	InvestorPassword string    `json:"-"`
	Server           string    `json:"server"`
	CreatedAt        time.Time `json:"created_at"`
}

// AccountInfo is the live account snapshot reported by the terminal.
type AccountInfo struct {
	Login       int64   `json:"login"`
	Balance     float64 `json:"balance"`
	Equity      float64 `json:"equity"`
	MarginLevel float64 `json:"margin_level"`
	Currency    string  `json:"currency"`
}

// EquitySnapshot is a MyFxBook-style equity data point, recorded on a
// five-minute grid and upserted on (participant_id, timestamp).
type EquitySnapshot struct {
	ParticipantID int64     `json:"participant_id"`
	Timestamp     time.Time `json:"timestamp"`
	Balance       float64   `json:"balance"`
	Equity        float64   `json:"equity"`
	FloatingPL    float64   `json:"floating_pl"`
	MarginLevel   float64   `json:"margin_level"`
}

// Candle is one OHLCV bar, upserted on (symbol, timeframe, time).
type Candle struct {
	Symbol    string    `json:"symbol"`
	Timeframe string    `json:"timeframe"`
	Time      time.Time `json:"time"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}
