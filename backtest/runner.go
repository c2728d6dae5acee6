package backtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/evdnx/gator/executor"
	"github.com/evdnx/gator/strategy"
	"github.com/evdnx/gator/types"
)

// Recorder wraps an executor and keeps every order that moved the
// position. Orders the executor dropped without an error are not kept.
type Recorder struct {
	executor.Executor
	start float64

	mu     sync.Mutex
	orders []types.Order
}

func NewRecorder(exec executor.Executor) *Recorder {
	return &Recorder{Executor: exec, start: exec.Equity()}
}

func (r *Recorder) Submit(o types.Order) error {
	before, _ := r.Executor.Position(o.Symbol)
	if err := r.Executor.Submit(o); err != nil {
		return err
	}
	if after, _ := r.Executor.Position(o.Symbol); after == before {
		return nil
	}
	r.mu.Lock()
	r.orders = append(r.orders, o)
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Orders() []types.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Order, len(r.orders))
	copy(out, r.orders)
	return out
}

// Report summarises a run. Equity is cash; Value marks the open position
// to the last price.
type Report struct {
	Symbol      string  `json:"symbol"`
	Events      int     `json:"events"`
	Orders      int     `json:"orders"`
	StartEquity float64 `json:"start_equity"`
	Equity      float64 `json:"equity"`
	Position    float64 `json:"position"`
	AvgPrice    float64 `json:"avg_price"`
	LastPrice   float64 `json:"last_price"`
	Value       float64 `json:"value"`
}

func (r Report) PnL() float64 { return r.Value - r.StartEquity }

func (r Report) String() string {
	return fmt.Sprintf("%s: %d events, %d orders, equity %.2f → %.2f, position %g @ %g, value %.2f (pnl %+.2f)",
		r.Symbol, r.Events, r.Orders, r.StartEquity, r.Equity, r.Position, r.AvgPrice, r.Value, r.PnL())
}

func (r *Recorder) report(symbol string, events int, last float64) Report {
	pos, avg := r.Position(symbol)
	eq := r.Equity()
	return Report{
		Symbol:      symbol,
		Events:      events,
		Orders:      len(r.Orders()),
		StartEquity: r.start,
		Equity:      eq,
		Position:    pos,
		AvgPrice:    avg,
		LastPrice:   last,
		Value:       eq + pos*last,
	}
}

// Run feeds bars to s in order. It stops early with ctx's error when ctx
// is cancelled; the report then covers the bars processed so far.
func Run(ctx context.Context, s strategy.Strategy, rec *Recorder, symbol string, bars []types.Bar) (Report, error) {
	last := 0.0
	for i, b := range bars {
		if err := ctx.Err(); err != nil {
			return rec.report(symbol, i, last), err
		}
		s.ProcessBar(b)
		last = b.Close
	}
	return rec.report(symbol, len(bars), last), nil
}

// RunTicks is Run for quotes; the position is marked at the last bid.
func RunTicks(ctx context.Context, s strategy.Strategy, rec *Recorder, symbol string, ticks []types.Tick) (Report, error) {
	last := 0.0
	for i, t := range ticks {
		if err := ctx.Err(); err != nil {
			return rec.report(symbol, i, last), err
		}
		s.ProcessTick(t)
		last = t.Bid
	}
	return rec.report(symbol, len(ticks), last), nil
}
