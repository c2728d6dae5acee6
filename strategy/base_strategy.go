package strategy

import (
	"math"

	"github.com/evdnx/gator/config"
	"github.com/evdnx/gator/executor"
	"github.com/evdnx/gator/logger"
	"github.com/evdnx/gator/metrics"
	"github.com/evdnx/gator/risk"
	"github.com/evdnx/gator/types"
	"github.com/evdnx/goti"
)

// BaseStrategy bundles the common dependencies and helpers.
type BaseStrategy struct {
	Exec   executor.Executor
	Log    logger.Logger
	Cfg    config.TradeConfig
	Suite  *goti.IndicatorSuite
	Symbol string
}

// NewBaseStrategy creates the indicator suite (using the supplied factory)
// and validates the config. A nil logger discards everything.
func NewBaseStrategy(symbol string, cfg config.TradeConfig,
	exec executor.Executor,
	suiteFactory func() (*goti.IndicatorSuite, error),
	log logger.Logger) (*BaseStrategy, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	suite, err := suiteFactory()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &BaseStrategy{
		Exec:   exec,
		Log:    log,
		Cfg:    cfg,
		Suite:  suite,
		Symbol: symbol,
	}, nil
}

// submitOrder is a thin wrapper that records metrics and logs.
func (b *BaseStrategy) submitOrder(o types.Order, ctx string) error {
	err := b.Exec.Submit(o)
	if err != nil {
		b.Log.Error("order_submit_failed",
			logger.String("symbol", o.Symbol),
			logger.String("side", string(o.Side)),
			logger.Float64("qty", o.Qty),
			logger.Err(err),
		)
		return err
	}
	b.Log.Info("order_submitted",
		logger.String("symbol", o.Symbol),
		logger.String("side", string(o.Side)),
		logger.Float64("qty", o.Qty),
		logger.Float64("price", o.Price),
		logger.String("ctx", ctx),
	)
	metrics.OrdersSubmitted.WithLabelValues(ctx).Inc()
	return nil
}

// calcQty sizes a position so that a stop stopDist away loses
// MaxRiskPerTrade of equity. Without a stop distance the configured
// StopLossPct is used.
func (b *BaseStrategy) calcQty(price, stopDist float64) float64 {
	if price <= 0 {
		return 0
	}
	pct := b.Cfg.StopLossPct
	if stopDist > 0 {
		pct = stopDist / price
	}
	return risk.CalcQty(b.Exec.Equity(), b.Cfg.MaxRiskPerTrade, pct, price, b.Cfg)
}

// closePosition flattens the current position at the supplied price.
func (b *BaseStrategy) closePosition(price float64, ctx string) {
	qty, _ := b.Exec.Position(b.Symbol)
	if qty == 0 {
		return
	}
	side := types.Sell
	if qty < 0 {
		side = types.Buy
	}
	o := types.Order{
		Symbol:  b.Symbol,
		Side:    side,
		Qty:     math.Abs(qty),
		Price:   price,
		Comment: ctx,
	}
	_ = b.submitOrder(o, ctx)
}
