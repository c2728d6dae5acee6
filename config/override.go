package config

import (
	"sort"

	"github.com/evdnx/gator/types"
)

// IndicatorOverride is a partial IndicatorParams; only non-nil fields apply.
type IndicatorOverride struct {
	AppliedPrice *types.AppliedPrice `yaml:"applied_price,omitempty" json:"applied_price,omitempty"`
	MAMethod     *types.MAMethod     `yaml:"ma_method,omitempty" json:"ma_method,omitempty"`
	JawPeriod    *int                `yaml:"jaw_period,omitempty" json:"jaw_period,omitempty"`
	JawShift     *int                `yaml:"jaw_shift,omitempty" json:"jaw_shift,omitempty"`
	TeethPeriod  *int                `yaml:"teeth_period,omitempty" json:"teeth_period,omitempty"`
	TeethShift   *int                `yaml:"teeth_shift,omitempty" json:"teeth_shift,omitempty"`
	LipsPeriod   *int                `yaml:"lips_period,omitempty" json:"lips_period,omitempty"`
	LipsShift    *int                `yaml:"lips_shift,omitempty" json:"lips_shift,omitempty"`
	Shift        *int                `yaml:"shift,omitempty" json:"shift,omitempty"`
}

func (o IndicatorOverride) Apply(p IndicatorParams) IndicatorParams {
	if o.AppliedPrice != nil {
		p.AppliedPrice = *o.AppliedPrice
	}
	if o.MAMethod != nil {
		p.MAMethod = *o.MAMethod
	}
	setInt(&p.JawPeriod, o.JawPeriod)
	setInt(&p.JawShift, o.JawShift)
	setInt(&p.TeethPeriod, o.TeethPeriod)
	setInt(&p.TeethShift, o.TeethShift)
	setInt(&p.LipsPeriod, o.LipsPeriod)
	setInt(&p.LipsShift, o.LipsShift)
	setInt(&p.Shift, o.Shift)
	return p
}

// StrategyOverride is a partial StrategyParams; only non-nil fields apply.
type StrategyOverride struct {
	LotSize           *float64 `yaml:"lot_size,omitempty" json:"lot_size,omitempty"`
	SignalOpenMethod  *int     `yaml:"signal_open_method,omitempty" json:"signal_open_method,omitempty"`
	SignalOpenFilter  *int     `yaml:"signal_open_filter,omitempty" json:"signal_open_filter,omitempty"`
	SignalOpenLevel   *float64 `yaml:"signal_open_level,omitempty" json:"signal_open_level,omitempty"`
	SignalOpenBoost   *int     `yaml:"signal_open_boost,omitempty" json:"signal_open_boost,omitempty"`
	SignalCloseMethod *int     `yaml:"signal_close_method,omitempty" json:"signal_close_method,omitempty"`
	SignalCloseLevel  *float64 `yaml:"signal_close_level,omitempty" json:"signal_close_level,omitempty"`
	PriceStopMethod   *int     `yaml:"price_stop_method,omitempty" json:"price_stop_method,omitempty"`
	PriceStopLevel    *float64 `yaml:"price_stop_level,omitempty" json:"price_stop_level,omitempty"`
	TickFilterMethod  *int     `yaml:"tick_filter_method,omitempty" json:"tick_filter_method,omitempty"`
	MaxSpread         *int     `yaml:"max_spread,omitempty" json:"max_spread,omitempty"`
}

func (o StrategyOverride) Apply(p StrategyParams) StrategyParams {
	setFloat(&p.LotSize, o.LotSize)
	setInt(&p.SignalOpenMethod, o.SignalOpenMethod)
	setInt(&p.SignalOpenFilter, o.SignalOpenFilter)
	setFloat(&p.SignalOpenLevel, o.SignalOpenLevel)
	setInt(&p.SignalOpenBoost, o.SignalOpenBoost)
	setInt(&p.SignalCloseMethod, o.SignalCloseMethod)
	setFloat(&p.SignalCloseLevel, o.SignalCloseLevel)
	setInt(&p.PriceStopMethod, o.PriceStopMethod)
	setFloat(&p.PriceStopLevel, o.PriceStopLevel)
	setInt(&p.TickFilterMethod, o.TickFilterMethod)
	setInt(&p.MaxSpread, o.MaxSpread)
	return p
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// Layer is one step of the override chain. Its scope comes from which of
// Symbol and Timeframe are set: neither is global, Timeframe alone is per
// timeframe, Symbol (with or without Timeframe) is per symbol.
type Layer struct {
	Name      string            `yaml:"name,omitempty" json:"name,omitempty"`
	Symbol    string            `yaml:"symbol,omitempty" json:"symbol,omitempty"`
	Timeframe types.Timeframe   `yaml:"timeframe,omitempty" json:"timeframe,omitempty"`
	Indicator IndicatorOverride `yaml:"indicator,omitempty" json:"indicator,omitempty"`
	Strategy  StrategyOverride  `yaml:"strategy,omitempty" json:"strategy,omitempty"`
}

// rank orders layers global → timeframe → symbol → symbol+timeframe.
func (l Layer) rank() int {
	r := 0
	if l.Timeframe != 0 {
		r |= 1
	}
	if l.Symbol != "" {
		r |= 2
	}
	return r
}

func (l Layer) matches(symbol string, tf types.Timeframe) bool {
	if l.Symbol != "" && l.Symbol != symbol {
		return false
	}
	if l.Timeframe != 0 && l.Timeframe != tf {
		return false
	}
	return true
}

type Layers []Layer

// Resolve starts from the shared defaults and applies every matching layer,
// least specific first; layers of the same rank apply in declaration order.
func (ls Layers) Resolve(symbol string, tf types.Timeframe) (IndicatorParams, StrategyParams) {
	matched := make([]Layer, 0, len(ls))
	for _, l := range ls {
		if l.matches(symbol, tf) {
			matched = append(matched, l)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].rank() < matched[j].rank()
	})

	ind := DefaultIndicatorParams(tf)
	stg := DefaultStrategyParams(symbol, tf)
	for _, l := range matched {
		ind = l.Indicator.Apply(ind)
		stg = l.Strategy.Apply(stg)
	}
	return ind, stg
}

// Timeframes returns the distinct timeframes named by layers that apply to
// symbol, in ascending order.
func (ls Layers) Timeframes(symbol string) []types.Timeframe {
	seen := map[types.Timeframe]bool{}
	var out []types.Timeframe
	for _, l := range ls {
		if l.Timeframe == 0 || seen[l.Timeframe] {
			continue
		}
		if l.Symbol != "" && l.Symbol != symbol {
			continue
		}
		seen[l.Timeframe] = true
		out = append(out, l.Timeframe)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
