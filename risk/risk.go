package risk

import (
	"github.com/evdnx/gator/config"
	"github.com/shopspring/decimal"
)

// CalcQty sizes a position so that hitting a stop stopLossPct away from
// price loses maxRisk of equity. The result is rounded down to the broker
// step and precision; anything under MinQty becomes 0.
func CalcQty(equity, maxRisk, stopLossPct, price float64, cfg config.TradeConfig) float64 {
	// Stop‑loss distance in account currency per unit
	slDist := decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(stopLossPct))
	if !slDist.IsPositive() {
		return 0
	}
	// Currency risk per trade
	riskAmt := decimal.NewFromFloat(equity).Mul(decimal.NewFromFloat(maxRisk))
	return roundQty(riskAmt.DivRound(slDist, 16), cfg)
}

// RoundQty applies the broker step, precision and minimum to qty.
func RoundQty(qty float64, cfg config.TradeConfig) float64 {
	return roundQty(decimal.NewFromFloat(qty), cfg)
}

func roundQty(qty decimal.Decimal, cfg config.TradeConfig) float64 {
	if !qty.IsPositive() {
		return 0
	}
	if cfg.StepSize > 0 {
		step := decimal.NewFromFloat(cfg.StepSize)
		qty = qty.Div(step).Floor().Mul(step)
	}
	qty = qty.Truncate(int32(cfg.QuantityPrecision))
	if qty.LessThan(decimal.NewFromFloat(cfg.MinQty)) {
		return 0
	}
	f, _ := qty.Float64()
	return f
}
