package config

import (
	"errors"
	"fmt"
)

// TradeConfig holds the execution side settings a strategy needs on top of
// its catalog record: open filter thresholds, risk sizing and broker
// constraints.
type TradeConfig struct {
	// RSI thresholds used by the RSI open filter.
	RSIOverbought float64 `yaml:"rsi_overbought" json:"rsi_overbought"` // default 70
	RSIOversold   float64 `yaml:"rsi_oversold" json:"rsi_oversold"`     // default 30

	// Risk parameters, used when the strategy record has lot_size 0.
	MaxRiskPerTrade float64 `yaml:"max_risk_per_trade" json:"max_risk_per_trade"` // e.g. 0.01 = 1 % of equity
	StopLossPct     float64 `yaml:"stop_loss_pct" json:"stop_loss_pct"`           // fallback stop distance, e.g. 0.015

	// QuantityPrecision defines the number of decimal places to round to.
	QuantityPrecision int `yaml:"quantity_precision" json:"quantity_precision"`

	// Minimum order size accepted by the broker.
	MinQty float64 `yaml:"min_qty" json:"min_qty"`

	// StepSize – the quantity increment allowed by the broker.
	StepSize float64 `yaml:"step_size" json:"step_size"`

	// PointSize is the price value of one point; spreads, stop levels and
	// max_spread are expressed in points.
	PointSize float64 `yaml:"point_size" json:"point_size"`
}

// DefaultTradeConfig suits a 5-digit FX major.
func DefaultTradeConfig() TradeConfig {
	return TradeConfig{
		RSIOverbought:     70,
		RSIOversold:       30,
		MaxRiskPerTrade:   0.01,
		StopLossPct:       0.01,
		QuantityPrecision: 0,
		MinQty:            1000,
		StepSize:          1000,
		PointSize:         0.00001,
	}
}

// Validate checks that all numeric fields are within sensible bounds.
// It returns the first encountered error so a configuration problem is
// surfaced before any trading starts.
func (c *TradeConfig) Validate() error {
	if c.RSIOverbought <= c.RSIOversold {
		return errors.New("RSIOverbought must be greater than RSIOversold")
	}
	if c.MaxRiskPerTrade <= 0 || c.MaxRiskPerTrade > 0.5 {
		return fmt.Errorf("MaxRiskPerTrade (%f) must be >0 and <=0.5", c.MaxRiskPerTrade)
	}
	if c.StopLossPct <= 0 || c.StopLossPct > 0.2 {
		return fmt.Errorf("StopLossPct (%f) must be >0 and <=0.2", c.StopLossPct)
	}
	if c.QuantityPrecision < 0 {
		return errors.New("QuantityPrecision cannot be negative")
	}
	if c.MinQty < 0 {
		return errors.New("MinQty cannot be negative")
	}
	if c.StepSize < 0 {
		return errors.New("StepSize cannot be negative")
	}
	if c.PointSize <= 0 {
		return errors.New("PointSize must be positive")
	}
	return nil
}
