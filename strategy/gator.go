package strategy

import (
	"fmt"
	"math"

	"github.com/evdnx/gator/catalog"
	"github.com/evdnx/gator/config"
	"github.com/evdnx/gator/executor"
	"github.com/evdnx/gator/indicator"
	"github.com/evdnx/gator/logger"
	"github.com/evdnx/gator/metrics"
	"github.com/evdnx/gator/risk"
	"github.com/evdnx/gator/types"
	"github.com/evdnx/goti"
)

// Gator opens with the alligator's mouth and closes when it turns. It is
// driven by bars, or by ticks which it aggregates into bars itself. Not
// safe for concurrent use.
type Gator struct {
	*BaseStrategy
	params  config.StrategyParams
	ind     *indicator.Gator
	spreads *series
	feed    *tickFeed
	stop    float64 // active protective level, 0 = none
}

// NewGator wires one indicator record and one strategy record of the same
// timeframe to an executor.
func NewGator(ind config.IndicatorParams, stg config.StrategyParams, cfg config.TradeConfig,
	exec executor.Executor, log logger.Logger) (*Gator, error) {

	if err := stg.Validate(); err != nil {
		return nil, fmt.Errorf("strategy params: %w", err)
	}
	if ind.Timeframe != stg.Timeframe {
		return nil, fmt.Errorf("indicator timeframe %s does not match strategy timeframe %s", ind.Timeframe, stg.Timeframe)
	}
	g, err := indicator.NewGator(ind)
	if err != nil {
		return nil, fmt.Errorf("indicator params: %w", err)
	}
	suiteFactory := func() (*goti.IndicatorSuite, error) {
		return goti.NewIndicatorSuiteWithConfig(goti.DefaultConfig())
	}
	base, err := NewBaseStrategy(stg.Symbol, cfg, exec, suiteFactory, log)
	if err != nil {
		return nil, err
	}
	return &Gator{
		BaseStrategy: base,
		params:       stg,
		ind:          g,
		spreads:      newSeries(4 * spreadMeanBars),
		feed:         newTickFeed(stg.Timeframe, stg.TickFilterMethod, cfg.PointSize),
	}, nil
}

// FromCatalog builds a Gator from the current-schema record of symbol and
// tf. Records kept only under the sets schema are not tradable.
func FromCatalog(c *catalog.Catalog, symbol string, tf types.Timeframe, cfg config.TradeConfig,
	exec executor.Executor, log logger.Logger) (*Gator, error) {

	ind, stg, err := c.Config(symbol, tf)
	if err != nil {
		return nil, err
	}
	return NewGator(ind, stg, cfg, exec, log)
}

func (g *Gator) Params() config.StrategyParams { return g.params }

// Stop returns the active stop level, 0 when none is set.
func (g *Gator) Stop() float64 { return g.stop }

// ProcessBar evaluates one completed bar.
func (g *Gator) ProcessBar(b types.Bar) {
	stopped := false
	if px, hit := g.stopHit(b); hit {
		g.closePosition(px, "gator_stop")
		g.stop = 0
		stopped = true
	}

	res, err := g.ind.Add(b)
	if err != nil {
		g.Log.Warn("indicator_add_error", logger.String("symbol", g.Symbol), logger.Err(err))
		return
	}
	if err := g.Suite.Add(b.High, b.Low, b.Close, b.Volume); err != nil {
		g.Log.Warn("suite_add_error", logger.String("symbol", g.Symbol), logger.Err(err))
	}
	shift := g.ind.Params().Shift
	v := view{res: res, shift: shift, close: b.Close, spreads: g.spreads}
	if evaluated, ok := g.ind.Bar(shift); ok {
		v.close = evaluated.Close
	}
	if t, ok := v.total(0); ok {
		g.spreads.Add(t)
	}
	if stopped || !res.Valid(shift+1) {
		return
	}

	pos, _ := g.Exec.Position(g.Symbol)
	if pos == 0 {
		g.stop = 0
	} else {
		g.trailStop(pos, v, b.Close)
	}

	switch {
	case pos > 0 && v.signal(types.Sell, g.params.SignalCloseMethod, g.params.SignalCloseLevel):
		g.signalled(types.Sell, "close")
		g.closePosition(b.Close, "gator_close_long")
		g.stop, pos = 0, 0
	case pos < 0 && v.signal(types.Buy, g.params.SignalCloseMethod, g.params.SignalCloseLevel):
		g.signalled(types.Buy, "close")
		g.closePosition(b.Close, "gator_close_short")
		g.stop, pos = 0, 0
	}

	switch {
	case pos <= 0 && v.signal(types.Buy, g.params.SignalOpenMethod, g.params.SignalOpenLevel):
		g.open(types.Buy, b, v, pos)
	case pos >= 0 && v.signal(types.Sell, g.params.SignalOpenMethod, g.params.SignalOpenLevel):
		g.open(types.Sell, b, v, pos)
	}
}

// ProcessTick filters t, completes bars as their time runs out and checks
// the active stop against the quote.
func (g *Gator) ProcessTick(t types.Tick) {
	if reason := g.feed.filter(t); reason != "" {
		metrics.TicksFiltered.WithLabelValues(g.Symbol, reason).Inc()
		return
	}
	if bar, done := g.feed.push(t); done {
		g.ProcessBar(bar)
	}
	pos, _ := g.Exec.Position(g.Symbol)
	switch {
	case g.stop == 0:
	case pos > 0 && t.Bid <= g.stop:
		g.closePosition(t.Bid, "gator_stop")
		g.stop = 0
	case pos < 0 && t.Ask >= g.stop:
		g.closePosition(t.Ask, "gator_stop")
		g.stop = 0
	}
}

func (g *Gator) open(side types.Side, b types.Bar, v view, pos float64) {
	g.signalled(side, "open")
	if pos != 0 && g.params.SignalOpenFilter&FilterFromFlat != 0 {
		return
	}
	if !g.filtersPass(side) {
		return
	}
	if g.params.MaxSpread > 0 && b.Spread > g.params.MaxSpread {
		g.Log.Warn("spread_too_wide",
			logger.String("symbol", g.Symbol),
			logger.Int("spread", b.Spread),
			logger.Int("max_spread", g.params.MaxSpread),
		)
		metrics.SpreadRejections.WithLabelValues(g.Symbol).Inc()
		return
	}
	if pos > 0 {
		g.closePosition(b.Close, "gator_close_long")
	} else if pos < 0 {
		g.closePosition(b.Close, "gator_close_short")
	}

	stop := g.initialStop(side, b.Close, v)
	qty := g.lot(b.Close, stop, v)
	if qty <= 0 {
		g.Log.Warn("lot_below_minimum", logger.String("symbol", g.Symbol), logger.Float64("price", b.Close))
		return
	}
	ctx := "gator_long"
	if side == types.Sell {
		ctx = "gator_short"
	}
	o := types.Order{
		Symbol:  g.Symbol,
		Side:    side,
		Qty:     qty,
		Price:   b.Close,
		Comment: fmt.Sprintf("Gator %s entry %s", g.params.Timeframe, side),
	}
	if err := g.submitOrder(o, ctx); err == nil {
		g.stop = stop
	}
}

func (g *Gator) filtersPass(side types.Side) bool {
	f := g.params.SignalOpenFilter
	if f&FilterRSI != 0 {
		// an RSI that cannot be computed yet does not block
		if rsi, err := g.Suite.GetRSI().Calculate(); err == nil {
			if side == types.Buy && rsi >= g.Cfg.RSIOverbought {
				return false
			}
			if side == types.Sell && rsi <= g.Cfg.RSIOversold {
				return false
			}
		}
	}
	if f&FilterHMA != 0 {
		var ok bool
		var err error
		if side == types.Buy {
			ok, err = g.Suite.GetHMA().IsBullishCrossover()
		} else {
			ok, err = g.Suite.GetHMA().IsBearishCrossover()
		}
		if err == nil && !ok {
			return false
		}
	}
	return true
}

// lot returns the order size: the fixed lot when set, otherwise risk based
// on the stop distance, scaled up by the boost on strong openings.
func (g *Gator) lot(price, stop float64, v view) float64 {
	qty := g.params.LotSize
	if qty <= 0 {
		dist := 0.0
		if stop > 0 {
			dist = math.Abs(price - stop)
		}
		qty = g.calcQty(price, dist)
	}
	level := g.params.SignalOpenLevel
	if g.params.SignalOpenBoost > 0 && level > 0 {
		if growth, ok := v.growth(); ok && growth >= 2*level {
			qty *= 1 + float64(g.params.SignalOpenBoost)/100
		}
	}
	return risk.RoundQty(qty, g.Cfg)
}

func (g *Gator) signalled(side types.Side, kind string) {
	metrics.Signals.WithLabelValues(g.Symbol, g.params.Timeframe.String(), string(side), kind).Inc()
}
