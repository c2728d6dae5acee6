package catalog

import (
	"github.com/evdnx/gator/config"
	"github.com/evdnx/gator/types"
)

// BuiltinSource is the Source of every record added by Builtin.
const BuiltinSource = "builtin"

// eurusdLayers returns the per-timeframe overrides of the EURUSD parameter
// set. Each call allocates, so built catalogs never share override values.
func eurusdLayers() config.Layers {
	return config.Layers{
		{
			Name:      "M1",
			Timeframe: types.M1,
			Indicator: config.IndicatorOverride{
				AppliedPrice: config.Ptr(types.PriceClose),
				JawPeriod:    config.Ptr(17),
				JawShift:     config.Ptr(8),
				TeethPeriod:  config.Ptr(10),
				TeethShift:   config.Ptr(7),
				LipsPeriod:   config.Ptr(7),
				LipsShift:    config.Ptr(3),
				MAMethod:     config.Ptr(types.MASmoothed),
				Shift:        config.Ptr(0),
			},
			Strategy: config.StrategyOverride{
				LotSize:           config.Ptr(0.0),
				SignalOpenMethod:  config.Ptr(0),
				SignalOpenFilter:  config.Ptr(1),
				SignalOpenLevel:   config.Ptr(0.0),
				SignalOpenBoost:   config.Ptr(0),
				SignalCloseMethod: config.Ptr(0),
				SignalCloseLevel:  config.Ptr(0.0),
				PriceStopMethod:   config.Ptr(0),
				PriceStopLevel:    config.Ptr(2.0),
				TickFilterMethod:  config.Ptr(1),
				MaxSpread:         config.Ptr(0),
			},
		},
		{
			Name:      "M5",
			Timeframe: types.M5,
			Indicator: config.IndicatorOverride{
				AppliedPrice: config.Ptr(types.PriceClose),
				JawPeriod:    config.Ptr(9),
				JawShift:     config.Ptr(10),
				LipsPeriod:   config.Ptr(3),
				LipsShift:    config.Ptr(1),
				MAMethod:     config.Ptr(types.MASmoothed),
				Shift:        config.Ptr(0),
				TeethPeriod:  config.Ptr(4),
				TeethShift:   config.Ptr(3),
			},
			Strategy: config.StrategyOverride{
				LotSize:           config.Ptr(0.0),
				SignalOpenMethod:  config.Ptr(0),
				SignalOpenFilter:  config.Ptr(1),
				SignalOpenLevel:   config.Ptr(0.0),
				SignalOpenBoost:   config.Ptr(0),
				SignalCloseMethod: config.Ptr(0),
				SignalCloseLevel:  config.Ptr(0.0),
				PriceStopMethod:   config.Ptr(0),
				PriceStopLevel:    config.Ptr(2.0),
				TickFilterMethod:  config.Ptr(1),
				MaxSpread:         config.Ptr(0),
			},
		},
		{
			Name:      "M15",
			Timeframe: types.M15,
			Indicator: config.IndicatorOverride{
				AppliedPrice: config.Ptr(types.PriceLow),
				JawPeriod:    config.Ptr(9),
				JawShift:     config.Ptr(8),
				LipsPeriod:   config.Ptr(9),
				LipsShift:    config.Ptr(4),
				MAMethod:     config.Ptr(types.MAExponential),
				Shift:        config.Ptr(0),
				TeethPeriod:  config.Ptr(8),
				TeethShift:   config.Ptr(3),
			},
			Strategy: config.StrategyOverride{
				LotSize:           config.Ptr(0.0),
				SignalOpenMethod:  config.Ptr(0),
				SignalOpenFilter:  config.Ptr(1),
				SignalOpenLevel:   config.Ptr(0.0),
				SignalOpenBoost:   config.Ptr(0),
				SignalCloseMethod: config.Ptr(0),
				SignalCloseLevel:  config.Ptr(0.0),
				PriceStopMethod:   config.Ptr(0),
				PriceStopLevel:    config.Ptr(1.0),
				TickFilterMethod:  config.Ptr(1),
				MaxSpread:         config.Ptr(0),
			},
		},
		{
			Name:      "M30",
			Timeframe: types.M30,
			Indicator: config.IndicatorOverride{
				AppliedPrice: config.Ptr(types.PriceLow),
				JawPeriod:    config.Ptr(17),
				JawShift:     config.Ptr(10),
				LipsPeriod:   config.Ptr(7),
				LipsShift:    config.Ptr(3),
				MAMethod:     config.Ptr(types.MASmoothed),
				Shift:        config.Ptr(0),
				TeethPeriod:  config.Ptr(8),
				TeethShift:   config.Ptr(7),
			},
			Strategy: config.StrategyOverride{
				LotSize:           config.Ptr(0.0),
				SignalOpenMethod:  config.Ptr(0),
				SignalOpenFilter:  config.Ptr(1),
				SignalOpenLevel:   config.Ptr(0.0),
				SignalOpenBoost:   config.Ptr(0),
				SignalCloseMethod: config.Ptr(0),
				SignalCloseLevel:  config.Ptr(0.0),
				PriceStopMethod:   config.Ptr(0),
				PriceStopLevel:    config.Ptr(2.0),
				TickFilterMethod:  config.Ptr(1),
				MaxSpread:         config.Ptr(0),
			},
		},
	}
}

// eurusdSets returns the flat records of the older convention. The two
// records do not even set the same fields.
func eurusdSets() []config.LegacyParams {
	return []config.LegacyParams{
		{
			Symbol:               "EURUSD",
			Timeframe:            types.H1,
			Period:               config.Ptr(2),
			AppliedPrice:         config.Ptr(types.PriceLow),
			Shift:                config.Ptr(0),
			TrailingStopMethod:   config.Ptr(6),
			TrailingProfitMethod: config.Ptr(11),
			SignalOpenLevel:      config.Ptr(36.0),
			SignalBaseMethod:     config.Ptr(0),
			SignalOpenMethod1:    config.Ptr(195),
			SignalOpenMethod2:    config.Ptr(0),
			SignalCloseLevel:     config.Ptr(36.0),
			SignalCloseMethod1:   config.Ptr(1),
			SignalCloseMethod2:   config.Ptr(0),
			MaxSpread:            config.Ptr(6),
		},
		{
			Symbol:            "EURUSD",
			Timeframe:         types.M15,
			Period:            config.Ptr(2),
			AppliedPrice:      config.Ptr(types.PriceLow),
			Shift:             config.Ptr(0),
			SignalOpenMethod:  config.Ptr(-63),
			SignalOpenLevel:   config.Ptr(36.0),
			SignalCloseMethod: config.Ptr(1),
			SignalCloseLevel:  config.Ptr(36.0),
			PriceLimitMethod:  config.Ptr(0),
			PriceLimitLevel:   config.Ptr(0.0),
			MaxSpread:         config.Ptr(4),
		},
	}
}

// Builtin returns a Builder holding the shipped EURUSD records: the
// current schema for M1, M5, M15 and M30 and the sets schema for H1 and
// M15. Callers may add more records before building.
func Builtin() *Builder {
	b := NewBuilder()
	b.AddLayers(BuiltinSource, "EURUSD", eurusdLayers())
	for _, p := range eurusdSets() {
		b.AddLegacy(BuiltinSource, p)
	}
	return b
}
