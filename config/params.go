package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/evdnx/gator/types"
)

// IndicatorParams holds the inputs of the Gator oscillator: the price source,
// the moving average kind and a (period, shift) pair for each of the three
// alligator lines.
type IndicatorParams struct {
	Timeframe    types.Timeframe    `yaml:"timeframe" json:"timeframe" bson:"timeframe"`
	AppliedPrice types.AppliedPrice `yaml:"applied_price" json:"applied_price" bson:"applied_price"`
	MAMethod     types.MAMethod     `yaml:"ma_method" json:"ma_method" bson:"ma_method"`
	JawPeriod    int                `yaml:"jaw_period" json:"jaw_period" bson:"jaw_period"`
	JawShift     int                `yaml:"jaw_shift" json:"jaw_shift" bson:"jaw_shift"`
	TeethPeriod  int                `yaml:"teeth_period" json:"teeth_period" bson:"teeth_period"`
	TeethShift   int                `yaml:"teeth_shift" json:"teeth_shift" bson:"teeth_shift"`
	LipsPeriod   int                `yaml:"lips_period" json:"lips_period" bson:"lips_period"`
	LipsShift    int                `yaml:"lips_shift" json:"lips_shift" bson:"lips_shift"`
	Shift        int                `yaml:"shift" json:"shift" bson:"shift"` // bars back the indicator is read at
}

// DefaultIndicatorParams returns the shared defaults every timeframe starts
// from: the classical 13/8, 8/5, 5/3 smoothed alligator on the median price.
func DefaultIndicatorParams(tf types.Timeframe) IndicatorParams {
	return IndicatorParams{
		Timeframe:    tf,
		AppliedPrice: types.PriceMedian,
		MAMethod:     types.MASmoothed,
		JawPeriod:    13,
		JawShift:     8,
		TeethPeriod:  8,
		TeethShift:   5,
		LipsPeriod:   5,
		LipsShift:    3,
		Shift:        0,
	}
}

// Validate returns the first field outside its allowed range.
// The jaw >= teeth >= lips ordering is not required; see Ordered.
func (p IndicatorParams) Validate() error {
	if !p.Timeframe.Valid() {
		return fmt.Errorf("unknown timeframe %d", int(p.Timeframe))
	}
	if !p.AppliedPrice.Valid() {
		return fmt.Errorf("applied_price (%d) out of range", int(p.AppliedPrice))
	}
	if !p.MAMethod.Valid() {
		return fmt.Errorf("ma_method (%d) out of range", int(p.MAMethod))
	}
	if p.JawPeriod <= 0 {
		return errors.New("jaw_period must be positive")
	}
	if p.TeethPeriod <= 0 {
		return errors.New("teeth_period must be positive")
	}
	if p.LipsPeriod <= 0 {
		return errors.New("lips_period must be positive")
	}
	if p.JawShift < 0 || p.TeethShift < 0 || p.LipsShift < 0 {
		return errors.New("line shifts cannot be negative")
	}
	if p.Shift < 0 {
		return errors.New("shift cannot be negative")
	}
	return nil
}

// Ordered reports whether the periods follow the classical
// jaw >= teeth >= lips layout.
func (p IndicatorParams) Ordered() bool {
	return p.JawPeriod >= p.TeethPeriod && p.TeethPeriod >= p.LipsPeriod
}

// Lookback is the number of bars needed before every line has a value.
func (p IndicatorParams) Lookback() int {
	n := 0
	for _, v := range []int{
		p.JawPeriod + p.JawShift,
		p.TeethPeriod + p.TeethShift,
		p.LipsPeriod + p.LipsShift,
	} {
		if v > n {
			n = v
		}
	}
	return n + p.Shift
}

// Price stop methods.
const (
	StopIndicator = 0 // beyond the furthest alligator line, trailing
	StopFixed     = 1 // fixed distance in points from entry
	StopPercent   = 2 // percent of the entry price
)

// StrategyParams describes how the Gator strategy opens and closes
// positions for one symbol and timeframe.
type StrategyParams struct {
	Symbol            string          `yaml:"symbol" json:"symbol" bson:"symbol"`
	Timeframe         types.Timeframe `yaml:"timeframe" json:"timeframe" bson:"timeframe"`
	LotSize           float64         `yaml:"lot_size" json:"lot_size" bson:"lot_size"` // 0 = risk based
	SignalOpenMethod  int             `yaml:"signal_open_method" json:"signal_open_method" bson:"signal_open_method"`
	SignalOpenFilter  int             `yaml:"signal_open_filter" json:"signal_open_filter" bson:"signal_open_filter"`
	SignalOpenLevel   float64         `yaml:"signal_open_level" json:"signal_open_level" bson:"signal_open_level"`
	SignalOpenBoost   int             `yaml:"signal_open_boost" json:"signal_open_boost" bson:"signal_open_boost"`
	SignalCloseMethod int             `yaml:"signal_close_method" json:"signal_close_method" bson:"signal_close_method"`
	SignalCloseLevel  float64         `yaml:"signal_close_level" json:"signal_close_level" bson:"signal_close_level"`
	PriceStopMethod   int             `yaml:"price_stop_method" json:"price_stop_method" bson:"price_stop_method"`
	PriceStopLevel    float64         `yaml:"price_stop_level" json:"price_stop_level" bson:"price_stop_level"`
	TickFilterMethod  int             `yaml:"tick_filter_method" json:"tick_filter_method" bson:"tick_filter_method"`
	MaxSpread         int             `yaml:"max_spread" json:"max_spread" bson:"max_spread"` // points, 0 = unlimited
}

// DefaultStrategyParams returns the shared strategy defaults.
func DefaultStrategyParams(symbol string, tf types.Timeframe) StrategyParams {
	return StrategyParams{
		Symbol:           symbol,
		Timeframe:        tf,
		SignalOpenFilter: 1,
		TickFilterMethod: 1,
	}
}

func (p StrategyParams) Validate() error {
	if p.Symbol == "" {
		return errors.New("symbol is required")
	}
	if !p.Timeframe.Valid() {
		return fmt.Errorf("unknown timeframe %d", int(p.Timeframe))
	}
	if p.LotSize < 0 || math.IsNaN(p.LotSize) {
		return fmt.Errorf("lot_size (%f) cannot be negative", p.LotSize)
	}
	if !finite(p.SignalOpenLevel) || !finite(p.SignalCloseLevel) || !finite(p.PriceStopLevel) {
		return errors.New("signal and stop levels must be finite")
	}
	if p.SignalOpenBoost < 0 {
		return errors.New("signal_open_boost cannot be negative")
	}
	if p.PriceStopMethod < StopIndicator || p.PriceStopMethod > StopPercent {
		return fmt.Errorf("price_stop_method (%d) out of range", p.PriceStopMethod)
	}
	if p.PriceStopLevel < 0 {
		return errors.New("price_stop_level cannot be negative")
	}
	if p.TickFilterMethod < 0 {
		return errors.New("tick_filter_method cannot be negative")
	}
	if p.MaxSpread < 0 {
		return fmt.Errorf("max_spread (%d) cannot be negative", p.MaxSpread)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
