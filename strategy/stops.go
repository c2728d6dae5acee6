package strategy

import (
	"math"

	"github.com/evdnx/gator/config"
	"github.com/evdnx/gator/types"
)

// initialStop returns the protective level for a position opened at entry,
// or 0 when the configured method yields none.
func (g *Gator) initialStop(side types.Side, entry float64, v view) float64 {
	level := g.params.PriceStopLevel
	var stop float64
	switch g.params.PriceStopMethod {
	case config.StopIndicator:
		stop = g.indicatorStop(side, v)
	case config.StopFixed:
		if level <= 0 {
			return 0
		}
		stop = offset(side, entry, level*g.Cfg.PointSize)
	case config.StopPercent:
		if level <= 0 {
			return 0
		}
		stop = offset(side, entry, entry*level/100)
	}
	// a stop on the wrong side of the entry would fire at once
	if (side == types.Buy && stop >= entry) || (side == types.Sell && stop <= entry) || stop <= 0 {
		return 0
	}
	return stop
}

func offset(side types.Side, entry, dist float64) float64 {
	if side == types.Buy {
		return entry - dist
	}
	return entry + dist
}

// indicatorStop sits PriceStopLevel points beyond the line furthest from
// the trade.
func (g *Gator) indicatorStop(side types.Side, v view) float64 {
	jaw, teeth, lips, ok := v.lines(0)
	if !ok {
		return 0
	}
	pad := g.params.PriceStopLevel * g.Cfg.PointSize
	if side == types.Buy {
		return math.Min(jaw, math.Min(teeth, lips)) - pad
	}
	return math.Max(jaw, math.Max(teeth, lips)) + pad
}

// trailStop moves an indicator stop in the trade's favour only.
func (g *Gator) trailStop(pos float64, v view, price float64) {
	if g.stop == 0 || g.params.PriceStopMethod != config.StopIndicator {
		return
	}
	if pos > 0 {
		if next := g.indicatorStop(types.Buy, v); next > g.stop && next < price {
			g.stop = next
		}
		return
	}
	if next := g.indicatorStop(types.Sell, v); next > 0 && next < g.stop && next > price {
		g.stop = next
	}
}

// stopHit reports whether b reached the active stop and the fill price.
// A bar opening beyond the stop fills at its open.
func (g *Gator) stopHit(b types.Bar) (float64, bool) {
	if g.stop == 0 {
		return 0, false
	}
	pos, _ := g.Exec.Position(g.Symbol)
	switch {
	case pos > 0 && b.Low <= g.stop:
		if b.Open > 0 && b.Open < g.stop {
			return b.Open, true
		}
		return g.stop, true
	case pos < 0 && b.High >= g.stop:
		if b.Open > g.stop {
			return b.Open, true
		}
		return g.stop, true
	}
	return 0, false
}
