package catalog

import (
	"fmt"

	"github.com/evdnx/gator/types"
)

// FieldDiff is one shared concept whose value differs between schemas.
type FieldDiff struct {
	Field  string `json:"field"`
	Config string `json:"config"`
	Sets   string `json:"sets"`
}

func (d FieldDiff) String() string {
	return fmt.Sprintf("%s: config=%s sets=%s", d.Field, d.Config, d.Sets)
}

// Collision is a symbol+timeframe defined under more than one schema.
type Collision struct {
	Symbol    string          `json:"symbol"`
	Timeframe types.Timeframe `json:"timeframe"`
	Keys      []Key           `json:"keys"`
	Diffs     []FieldDiff     `json:"diffs"`
}

// Collisions reports every symbol+timeframe present under several schemas,
// whether or not their values drifted apart.
func (c *Catalog) Collisions() []Collision {
	type pair struct {
		symbol string
		tf     types.Timeframe
	}
	groups := map[pair][]Key{}
	var order []pair
	for _, k := range c.keys {
		p := pair{k.Symbol, k.Timeframe}
		if _, ok := groups[p]; !ok {
			order = append(order, p)
		}
		groups[p] = append(groups[p], k)
	}

	var out []Collision
	for _, p := range order {
		keys := groups[p]
		if len(keys) < 2 {
			continue
		}
		col := Collision{Symbol: p.symbol, Timeframe: p.tf, Keys: keys}
		cfg, okCfg := c.entries[Key{Symbol: p.symbol, Timeframe: p.tf, Schema: SchemaConfig}]
		set, okSet := c.entries[Key{Symbol: p.symbol, Timeframe: p.tf, Schema: SchemaSets}]
		if okCfg && okSet {
			col.Diffs = Drift(cfg, set)
		}
		out = append(out, col)
	}
	return out
}

// Drift compares the concepts both schemas share. Fields the sets record
// leaves unset are skipped; there is no mapping for the sets-only fields
// (period, base method, split open/close methods, trailing methods).
func Drift(cfg, set Entry) []FieldDiff {
	if cfg.Indicator == nil || cfg.Strategy == nil || set.Legacy == nil {
		return nil
	}
	ind, stg, leg := cfg.Indicator, cfg.Strategy, set.Legacy
	var diffs []FieldDiff

	cmpInt := func(field string, have int, want *int) {
		if want != nil && *want != have {
			diffs = append(diffs, FieldDiff{field, fmt.Sprint(have), fmt.Sprint(*want)})
		}
	}
	cmpFloat := func(field string, have float64, want *float64) {
		if want != nil && *want != have {
			diffs = append(diffs, FieldDiff{field, fmt.Sprint(have), fmt.Sprint(*want)})
		}
	}

	if leg.AppliedPrice != nil && *leg.AppliedPrice != ind.AppliedPrice {
		diffs = append(diffs, FieldDiff{"applied_price", ind.AppliedPrice.String(), leg.AppliedPrice.String()})
	}
	if leg.MAMethod != nil && *leg.MAMethod != ind.MAMethod {
		diffs = append(diffs, FieldDiff{"ma_method", ind.MAMethod.String(), leg.MAMethod.String()})
	}
	cmpInt("jaw_period", ind.JawPeriod, leg.PeriodJaw)
	cmpInt("teeth_period", ind.TeethPeriod, leg.PeriodTeeth)
	cmpInt("lips_period", ind.LipsPeriod, leg.PeriodLips)
	cmpInt("jaw_shift", ind.JawShift, leg.ShiftJaw)
	cmpInt("teeth_shift", ind.TeethShift, leg.ShiftTeeth)
	cmpInt("lips_shift", ind.LipsShift, leg.ShiftLips)
	cmpInt("shift", ind.Shift, leg.Shift)
	cmpInt("signal_open_method", stg.SignalOpenMethod, leg.SignalOpenMethod)
	cmpFloat("signal_open_level", stg.SignalOpenLevel, leg.SignalOpenLevel)
	cmpInt("signal_close_method", stg.SignalCloseMethod, leg.SignalCloseMethod)
	cmpFloat("signal_close_level", stg.SignalCloseLevel, leg.SignalCloseLevel)
	cmpInt("price_stop_method", stg.PriceStopMethod, leg.PriceLimitMethod)
	cmpFloat("price_stop_level", stg.PriceStopLevel, leg.PriceLimitLevel)
	cmpInt("max_spread", stg.MaxSpread, leg.MaxSpread)
	return diffs
}
