package executor

import (
	"sync"

	"github.com/evdnx/gator/logger"
	"github.com/evdnx/gator/metrics"
	"github.com/evdnx/gator/types"
	"github.com/google/uuid"
)

type Executor interface {
	Submit(o types.Order) error
	// For back‑testing we expose the portfolio state
	Equity() float64
	Position(symbol string) (qty float64, avgPrice float64)
}

// PaperExecutor is a simple paper‑trader – perfect fills, no slippage.
type PaperExecutor struct {
	mu        sync.Mutex
	log       logger.Logger
	equity    float64
	positions map[string]float64 // qty (positive = long, negative = short)
	avgPrice  map[string]float64
}

func NewPaperExecutor(startEquity float64, log logger.Logger) *PaperExecutor {
	if log == nil {
		log = logger.Nop()
	}
	metrics.EquityGauge.Set(startEquity)
	return &PaperExecutor{
		log:       log,
		equity:    startEquity,
		positions: make(map[string]float64),
		avgPrice:  make(map[string]float64),
	}
}

// Submit fills o at o.Price. A buy that would open or add to a long beyond
// the available cash is dropped with a warning, not an error.
func (p *PaperExecutor) Submit(o types.Order) error {
	if o.Qty == 0 {
		return nil
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	cost := o.Price * o.Qty
	delta := o.Qty
	if o.Side == types.Buy {
		if cost > p.equity && p.positions[o.Symbol] >= 0 {
			p.log.Warn("paper_insufficient_cash",
				logger.String("id", o.ID),
				logger.String("symbol", o.Symbol),
				logger.Float64("cost", cost),
				logger.Float64("equity", p.equity),
			)
			return nil
		}
		p.equity -= cost
	} else { // Sell / short
		p.equity += cost
		delta = -o.Qty
	}

	prev := p.positions[o.Symbol]
	next := prev + delta
	switch {
	case next == 0:
		p.avgPrice[o.Symbol] = 0
	case prev == 0 || (prev > 0) != (next > 0):
		// fresh position or flipped through zero
		p.avgPrice[o.Symbol] = o.Price
	case (prev > 0) == (delta > 0):
		// adding: volume weighted average
		p.avgPrice[o.Symbol] = (p.avgPrice[o.Symbol]*abs(prev) + cost) / abs(next)
	}
	p.positions[o.Symbol] = next
	metrics.EquityGauge.Set(p.equity)

	p.log.Info("paper_fill",
		logger.String("id", o.ID),
		logger.String("side", string(o.Side)),
		logger.String("symbol", o.Symbol),
		logger.Float64("qty", o.Qty),
		logger.Float64("price", o.Price),
		logger.Float64("equity", p.equity),
	)
	return nil
}

func (p *PaperExecutor) Equity() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.equity
}

func (p *PaperExecutor) Position(sym string) (float64, float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positions[sym], p.avgPrice[sym]
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
