package strategy

import (
	"math"

	"github.com/evdnx/gator/indicator"
	"github.com/evdnx/gator/types"
)

// Signal method bits. A positive method requires every set bit on top of
// the base condition, a negative one requires at least one bit of its
// absolute value. Unknown bits are ignored.
const (
	SignalWidening        = 1 << iota // total spread widened three bars running
	SignalCloseBeyondLips             // close above lips for buys, below for sells
	SignalLipsSlope                   // lips moving with the trade
	SignalTeethSlope
	SignalJawSlope
	SignalFreshAlignment // previous bar was not aligned
	SignalJawTeethGap    // upper histogram taller than the lower one
	SignalAboveMean      // total spread above its recent mean
)

var signalBits = []int{
	SignalWidening,
	SignalCloseBeyondLips,
	SignalLipsSlope,
	SignalTeethSlope,
	SignalJawSlope,
	SignalFreshAlignment,
	SignalJawTeethGap,
	SignalAboveMean,
}

// Open filter bits.
const (
	FilterRSI      = 1 << iota // RSI not stretched against the trade
	FilterHMA                  // HMA crossover in the trade's direction
	FilterFromFlat             // never reverse an open position
)

const spreadMeanBars = 10

// view evaluates signals on one bar of the indicator, shift bars back.
type view struct {
	res     indicator.Result
	shift   int
	close   float64
	spreads *series
}

func (v view) at(l indicator.Line, k int) (float64, bool) {
	return v.res.Value(l, v.shift+k)
}

// total is the full width of the oscillator k bars before the evaluated one.
func (v view) total(k int) (float64, bool) {
	up, ok1 := v.at(indicator.LineUpper, k)
	lo, ok2 := v.at(indicator.LineLower, k)
	return up + math.Abs(lo), ok1 && ok2
}

func (v view) lines(k int) (jaw, teeth, lips float64, ok bool) {
	jaw, ok1 := v.at(indicator.LineJaw, k)
	teeth, ok2 := v.at(indicator.LineTeeth, k)
	lips, ok3 := v.at(indicator.LineLips, k)
	return jaw, teeth, lips, ok1 && ok2 && ok3
}

func (v view) aligned(side types.Side, k int) bool {
	jaw, teeth, lips, ok := v.lines(k)
	if !ok {
		return false
	}
	if side == types.Buy {
		return lips > teeth && teeth > jaw
	}
	return lips < teeth && teeth < jaw
}

// growth is the percent change of the total spread versus the previous bar.
func (v view) growth() (float64, bool) {
	t0, ok0 := v.total(0)
	t1, ok1 := v.total(1)
	if !ok0 || !ok1 {
		return 0, false
	}
	if t1 == 0 {
		if t0 == 0 {
			return 0, true
		}
		return math.Inf(1), true
	}
	return (t0 - t1) / t1 * 100, true
}

func (v view) base(side types.Side, level float64) bool {
	if !v.aligned(side, 0) {
		return false
	}
	g, ok := v.growth()
	return ok && g >= level
}

func (v view) sloping(l indicator.Line, side types.Side) bool {
	a0, ok0 := v.at(l, 0)
	a1, ok1 := v.at(l, 1)
	if !ok0 || !ok1 {
		return false
	}
	if side == types.Buy {
		return a0 > a1
	}
	return a0 < a1
}

func (v view) bit(side types.Side, bit int) bool {
	switch bit {
	case SignalWidening:
		prev, ok := v.total(0)
		if !ok {
			return false
		}
		for k := 1; k <= 3; k++ {
			t, ok := v.total(k)
			if !ok || t >= prev {
				return false
			}
			prev = t
		}
		return true
	case SignalCloseBeyondLips:
		lips, ok := v.at(indicator.LineLips, 0)
		if !ok {
			return false
		}
		if side == types.Buy {
			return v.close > lips
		}
		return v.close < lips
	case SignalLipsSlope:
		return v.sloping(indicator.LineLips, side)
	case SignalTeethSlope:
		return v.sloping(indicator.LineTeeth, side)
	case SignalJawSlope:
		return v.sloping(indicator.LineJaw, side)
	case SignalFreshAlignment:
		return !v.aligned(side, 1)
	case SignalJawTeethGap:
		up, ok1 := v.at(indicator.LineUpper, 0)
		lo, ok2 := v.at(indicator.LineLower, 0)
		return ok1 && ok2 && up > math.Abs(lo)
	case SignalAboveMean:
		if v.spreads == nil {
			return false
		}
		t0, ok := v.total(0)
		mean := v.spreads.MeanBefore(spreadMeanBars)
		return ok && !math.IsNaN(mean) && t0 > mean
	}
	return false
}

// signal reports whether side is signalled under method and level.
func (v view) signal(side types.Side, method int, level float64) bool {
	if !v.base(side, level) {
		return false
	}
	return methodHolds(method, func(bit int) bool { return v.bit(side, bit) })
}

func methodHolds(method int, check func(bit int) bool) bool {
	switch {
	case method == 0:
		return true
	case method > 0:
		for _, b := range signalBits {
			if method&b != 0 && !check(b) {
				return false
			}
		}
		return true
	}
	bits := -method
	for _, b := range signalBits {
		if bits&b != 0 && check(b) {
			return true
		}
	}
	return false
}
