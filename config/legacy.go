package config

import (
	"errors"
	"fmt"

	"github.com/evdnx/gator/types"
)

// LegacyParams is the older flat per symbol+timeframe record. Each file of
// that convention sets a different subset of fields, so every numeric field
// is optional; nil means "not set by this record".
type LegacyParams struct {
	Symbol    string          `yaml:"symbol" json:"symbol" bson:"symbol"`
	Timeframe types.Timeframe `yaml:"timeframe" json:"timeframe" bson:"timeframe"`

	Period       *int                `yaml:"period,omitempty" json:"period,omitempty" bson:"period,omitempty"`
	AppliedPrice *types.AppliedPrice `yaml:"applied_price,omitempty" json:"applied_price,omitempty" bson:"applied_price,omitempty"`
	Shift        *int                `yaml:"shift,omitempty" json:"shift,omitempty" bson:"shift,omitempty"`
	MAMethod     *types.MAMethod     `yaml:"ma_method,omitempty" json:"ma_method,omitempty" bson:"ma_method,omitempty"`
	PeriodJaw    *int                `yaml:"period_jaw,omitempty" json:"period_jaw,omitempty" bson:"period_jaw,omitempty"`
	PeriodTeeth  *int                `yaml:"period_teeth,omitempty" json:"period_teeth,omitempty" bson:"period_teeth,omitempty"`
	PeriodLips   *int                `yaml:"period_lips,omitempty" json:"period_lips,omitempty" bson:"period_lips,omitempty"`
	ShiftJaw     *int                `yaml:"shift_jaw,omitempty" json:"shift_jaw,omitempty" bson:"shift_jaw,omitempty"`
	ShiftTeeth   *int                `yaml:"shift_teeth,omitempty" json:"shift_teeth,omitempty" bson:"shift_teeth,omitempty"`
	ShiftLips    *int                `yaml:"shift_lips,omitempty" json:"shift_lips,omitempty" bson:"shift_lips,omitempty"`

	TrailingStopMethod   *int `yaml:"trailing_stop_method,omitempty" json:"trailing_stop_method,omitempty" bson:"trailing_stop_method,omitempty"`
	TrailingProfitMethod *int `yaml:"trailing_profit_method,omitempty" json:"trailing_profit_method,omitempty" bson:"trailing_profit_method,omitempty"`

	SignalOpenLevel    *float64 `yaml:"signal_open_level,omitempty" json:"signal_open_level,omitempty" bson:"signal_open_level,omitempty"`
	SignalBaseMethod   *int     `yaml:"signal_base_method,omitempty" json:"signal_base_method,omitempty" bson:"signal_base_method,omitempty"`
	SignalOpenMethod   *int     `yaml:"signal_open_method,omitempty" json:"signal_open_method,omitempty" bson:"signal_open_method,omitempty"`
	SignalOpenMethod1  *int     `yaml:"signal_open_method1,omitempty" json:"signal_open_method1,omitempty" bson:"signal_open_method1,omitempty"`
	SignalOpenMethod2  *int     `yaml:"signal_open_method2,omitempty" json:"signal_open_method2,omitempty" bson:"signal_open_method2,omitempty"`
	SignalCloseLevel   *float64 `yaml:"signal_close_level,omitempty" json:"signal_close_level,omitempty" bson:"signal_close_level,omitempty"`
	SignalCloseMethod  *int     `yaml:"signal_close_method,omitempty" json:"signal_close_method,omitempty" bson:"signal_close_method,omitempty"`
	SignalCloseMethod1 *int     `yaml:"signal_close_method1,omitempty" json:"signal_close_method1,omitempty" bson:"signal_close_method1,omitempty"`
	SignalCloseMethod2 *int     `yaml:"signal_close_method2,omitempty" json:"signal_close_method2,omitempty" bson:"signal_close_method2,omitempty"`

	PriceLimitMethod *int     `yaml:"price_limit_method,omitempty" json:"price_limit_method,omitempty" bson:"price_limit_method,omitempty"`
	PriceLimitLevel  *float64 `yaml:"price_limit_level,omitempty" json:"price_limit_level,omitempty" bson:"price_limit_level,omitempty"`
	MaxSpread        *int     `yaml:"max_spread,omitempty" json:"max_spread,omitempty" bson:"max_spread,omitempty"`
}

// Validate applies the positivity and range rules to the fields that are set.
func (p LegacyParams) Validate() error {
	if p.Symbol == "" {
		return errors.New("symbol is required")
	}
	if !p.Timeframe.Valid() {
		return fmt.Errorf("unknown timeframe %d", int(p.Timeframe))
	}
	for _, f := range []struct {
		name string
		v    *int
	}{
		{"period", p.Period},
		{"period_jaw", p.PeriodJaw},
		{"period_teeth", p.PeriodTeeth},
		{"period_lips", p.PeriodLips},
	} {
		if f.v != nil && *f.v <= 0 {
			return fmt.Errorf("%s must be positive", f.name)
		}
	}
	for _, f := range []struct {
		name string
		v    *int
	}{
		{"shift", p.Shift},
		{"shift_jaw", p.ShiftJaw},
		{"shift_teeth", p.ShiftTeeth},
		{"shift_lips", p.ShiftLips},
		{"max_spread", p.MaxSpread},
	} {
		if f.v != nil && *f.v < 0 {
			return fmt.Errorf("%s cannot be negative", f.name)
		}
	}
	if p.AppliedPrice != nil && !p.AppliedPrice.Valid() {
		return fmt.Errorf("applied_price (%d) out of range", int(*p.AppliedPrice))
	}
	if p.MAMethod != nil && !p.MAMethod.Valid() {
		return fmt.Errorf("ma_method (%d) out of range", int(*p.MAMethod))
	}
	return nil
}

// Ptr returns a pointer to v; handy for literal override and legacy data.
func Ptr[T any](v T) *T { return &v }
