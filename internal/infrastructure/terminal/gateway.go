package terminal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/vitos/trade_stats_bridge/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultCallTimeout = 15 * time.Second

type rpcRequest struct {
	ID     int64       `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("gateway error %d: %s", e.Code, e.Message)
}

type rpcResponse struct {
	ID     int64               `json:"id"`
	Result jsoniter.RawMessage `json:"result"`
	Error  *rpcError           `json:"error,omitempty"`
}

// Gateway talks JSON-RPC over a single websocket to the terminal bridge
// process that fronts the trading terminal. Requests carry correlation ids;
// one reader goroutine routes responses back to the waiting caller. Safe for
// concurrent use, though the terminal itself serializes account sessions via
// Login.
type Gateway struct {
	url    string
	logger *zap.Logger

	mu      sync.Mutex
	conn    *websocket.Conn
	pending map[int64]chan rpcResponse
	nextID  int64
	done    chan struct{}
}

func NewGateway(url string, logger *zap.Logger) *Gateway {
	return &Gateway{
		url:     url,
		logger:  logger,
		pending: make(map[int64]chan rpcResponse),
	}
}

func (g *Gateway) Connect(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.connectLocked(ctx)
}

func (g *Gateway) connectLocked(ctx context.Context) error {
	if g.conn != nil {
		return nil
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, g.url, nil)
	if err != nil {
		return fmt.Errorf("dial gateway %s: %w", g.url, err)
	}
	g.conn = conn
	g.done = make(chan struct{})
	go g.readLoop(conn, g.done)
	g.logger.Info("terminal gateway connected", zap.String("url", g.url))
	return nil
}

func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.conn == nil {
		return nil
	}
	err := g.conn.Close()
	g.conn = nil
	g.failPendingLocked(fmt.Errorf("gateway closed"))
	return err
}

func (g *Gateway) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			g.mu.Lock()
			if g.conn == conn {
				g.conn = nil
			}
			g.failPendingLocked(fmt.Errorf("gateway connection lost: %w", err))
			g.mu.Unlock()
			g.logger.Warn("terminal gateway read failed", zap.Error(err))
			return
		}

		var resp rpcResponse
		if err := json.Unmarshal(message, &resp); err != nil {
			g.logger.Warn("unparseable gateway frame", zap.Error(err))
			continue
		}

		g.mu.Lock()
		ch, ok := g.pending[resp.ID]
		if ok {
			delete(g.pending, resp.ID)
		}
		g.mu.Unlock()
		if ok {
			ch <- resp
		}
	}
}

// failPendingLocked wakes every in-flight caller with an error response.
// Callers must hold g.mu.
func (g *Gateway) failPendingLocked(err error) {
	for id, ch := range g.pending {
		ch <- rpcResponse{ID: id, Error: &rpcError{Message: err.Error()}}
		delete(g.pending, id)
	}
}

// call sends one request and blocks for its response. The connection is
// established lazily on the first call and re-established after a drop.
func (g *Gateway) call(ctx context.Context, method string, params, result interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, defaultCallTimeout)
	defer cancel()

	g.mu.Lock()
	if err := g.connectLocked(ctx); err != nil {
		g.mu.Unlock()
		return err
	}
	g.nextID++
	id := g.nextID
	ch := make(chan rpcResponse, 1)
	g.pending[id] = ch
	err := g.conn.WriteJSON(rpcRequest{ID: id, Method: method, Params: params})
	g.mu.Unlock()

	if err != nil {
		g.mu.Lock()
		delete(g.pending, id)
		g.mu.Unlock()
		return fmt.Errorf("send %s: %w", method, err)
	}

	select {
	case <-ctx.Done():
		g.mu.Lock()
		delete(g.pending, id)
		g.mu.Unlock()
		return fmt.Errorf("%s: %w", method, ctx.Err())
	case resp := <-ch:
		if resp.Error != nil {
			return fmt.Errorf("%s: %w", method, resp.Error)
		}
		if result != nil {
			if err := json.Unmarshal(resp.Result, result); err != nil {
				return fmt.Errorf("decode %s result: %w", method, err)
			}
		}
		return nil
	}
}

func (g *Gateway) Login(ctx context.Context, account int64, password, server string) error {
	params := map[string]interface{}{
		"login":    account,
		"password": password,
		"server":   server,
	}
	return g.call(ctx, "login", params, nil)
}

func (g *Gateway) AccountInfo(ctx context.Context) (*domain.AccountInfo, error) {
	var info domain.AccountInfo
	if err := g.call(ctx, "account_info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (g *Gateway) HistoryDeals(ctx context.Context, from, to time.Time) ([]domain.RawDeal, error) {
	params := map[string]interface{}{
		"from": from.Unix(),
		"to":   to.Unix(),
	}
	var deals []domain.RawDeal
	if err := g.call(ctx, "history_deals", params, &deals); err != nil {
		return nil, err
	}
	return deals, nil
}

func (g *Gateway) OpenPositionIDs(ctx context.Context) (map[int64]bool, error) {
	var ids []int64
	if err := g.call(ctx, "open_positions", nil, &ids); err != nil {
		return nil, err
	}
	open := make(map[int64]bool, len(ids))
	for _, id := range ids {
		open[id] = true
	}
	return open, nil
}

func (g *Gateway) PointSize(ctx context.Context, symbol string) (float64, error) {
	var result struct {
		Point float64 `json:"point"`
	}
	if err := g.call(ctx, "symbol_info", map[string]interface{}{"symbol": symbol}, &result); err != nil {
		return 0, err
	}
	return result.Point, nil
}

func (g *Gateway) OrderStops(ctx context.Context, orderRef int64) (float64, float64, error) {
	var result struct {
		StopLoss   float64 `json:"sl"`
		TakeProfit float64 `json:"tp"`
	}
	if err := g.call(ctx, "history_orders", map[string]interface{}{"order": orderRef}, &result); err != nil {
		return 0, 0, err
	}
	return result.StopLoss, result.TakeProfit, nil
}

func (g *Gateway) SelectSymbol(ctx context.Context, symbol string) (bool, error) {
	var result struct {
		Selected bool `json:"selected"`
	}
	if err := g.call(ctx, "symbol_select", map[string]interface{}{"symbol": symbol}, &result); err != nil {
		return false, err
	}
	return result.Selected, nil
}

// wireCandle carries broker-local epoch seconds; callers own the UTC shift.
type wireCandle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"tick_volume"`
}

func (g *Gateway) Candles(ctx context.Context, symbol, timeframe string, count int) ([]domain.Candle, error) {
	params := map[string]interface{}{
		"symbol":    symbol,
		"timeframe": timeframe,
		"count":     count,
	}
	var raw []wireCandle
	if err := g.call(ctx, "copy_rates", params, &raw); err != nil {
		return nil, err
	}
	candles := make([]domain.Candle, 0, len(raw))
	for _, c := range raw {
		candles = append(candles, domain.Candle{
			Symbol:    symbol,
			Timeframe: timeframe,
			Time:      time.Unix(c.Time, 0).UTC(),
			Open:      c.Open,
			High:      c.High,
			Low:       c.Low,
			Close:     c.Close,
			Volume:    c.Volume,
		})
	}
	return candles, nil
}
