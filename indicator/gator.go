// Package indicator computes the Gator oscillator: the three displaced
// moving averages of the alligator (jaw, teeth, lips) and the two
// histograms measuring the gaps between them.
package indicator

import (
	"math"

	"github.com/evdnx/gator/config"
	"github.com/evdnx/gator/types"
	"github.com/markcheno/go-talib"
)

// Line names one output series.
type Line int

const (
	LineJaw Line = iota
	LineTeeth
	LineLips
	LineUpper // |jaw - teeth|
	LineLower // -|teeth - lips|
)

// Result holds the output series aligned with the input bars. Values that
// are not yet defined (warm-up, displacement) are NaN.
type Result struct {
	Jaw   []float64
	Teeth []float64
	Lips  []float64
	Upper []float64
	Lower []float64
}

func (r Result) Len() int { return len(r.Jaw) }

func (r Result) series(l Line) []float64 {
	switch l {
	case LineJaw:
		return r.Jaw
	case LineTeeth:
		return r.Teeth
	case LineLips:
		return r.Lips
	case LineUpper:
		return r.Upper
	case LineLower:
		return r.Lower
	}
	return nil
}

// Value returns line l shift bars back from the last bar; ok is false when
// the value is out of range or undefined.
func (r Result) Value(l Line, shift int) (float64, bool) {
	s := r.series(l)
	i := len(s) - 1 - shift
	if shift < 0 || i < 0 {
		return math.NaN(), false
	}
	v := s[i]
	return v, !math.IsNaN(v)
}

// Valid reports whether every line is defined shift bars back.
func (r Result) Valid(shift int) bool {
	for _, l := range []Line{LineJaw, LineTeeth, LineLips} {
		if _, ok := r.Value(l, shift); !ok {
			return false
		}
	}
	return true
}

// Compute runs the indicator over bars.
func Compute(p config.IndicatorParams, bars []types.Bar) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	price := AppliedPrice(p.AppliedPrice, bars)

	res := Result{
		Jaw:   displace(movingAverage(p.MAMethod, price, p.JawPeriod), p.JawShift),
		Teeth: displace(movingAverage(p.MAMethod, price, p.TeethPeriod), p.TeethShift),
		Lips:  displace(movingAverage(p.MAMethod, price, p.LipsPeriod), p.LipsShift),
	}
	n := len(bars)
	res.Upper = make([]float64, n)
	res.Lower = make([]float64, n)
	for i := 0; i < n; i++ {
		res.Upper[i] = math.Abs(res.Jaw[i] - res.Teeth[i])
		res.Lower[i] = -math.Abs(res.Teeth[i] - res.Lips[i])
	}
	return res, nil
}

// AppliedPrice extracts the price series selected by ap.
func AppliedPrice(ap types.AppliedPrice, bars []types.Bar) []float64 {
	n := len(bars)
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	for i, b := range bars {
		open[i], high[i], low[i], closes[i] = b.Open, b.High, b.Low, b.Close
	}
	if n == 0 {
		return closes
	}
	switch ap {
	case types.PriceOpen:
		return open
	case types.PriceHigh:
		return high
	case types.PriceLow:
		return low
	case types.PriceMedian:
		return talib.MedPrice(high, low)
	case types.PriceTypical:
		return talib.TypPrice(high, low, closes)
	case types.PriceWeighted:
		return talib.WclPrice(high, low, closes)
	}
	return closes
}

// movingAverage returns a series aligned with in; the first period-1
// values are NaN.
func movingAverage(m types.MAMethod, in []float64, period int) []float64 {
	if len(in) < period {
		return nanSeries(len(in))
	}
	var out []float64
	switch m {
	case types.MAExponential:
		out = talib.Ema(in, period)
	case types.MASmoothed:
		return smma(in, period)
	case types.MALinearWeighted:
		out = talib.Wma(in, period)
	default:
		out = talib.Sma(in, period)
	}
	for i := 0; i < period-1 && i < len(out); i++ {
		out[i] = math.NaN()
	}
	return out
}

// smma is Wilder's smoothed moving average seeded with the simple average
// of the first period values.
func smma(in []float64, period int) []float64 {
	out := nanSeries(len(in))
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += in[i]
	}
	prev := sum / float64(period)
	out[period-1] = prev
	for i := period; i < len(in); i++ {
		prev = (prev*float64(period-1) + in[i]) / float64(period)
		out[i] = prev
	}
	return out
}

// displace moves a series shift bars forward in time.
func displace(in []float64, shift int) []float64 {
	if shift == 0 {
		return in
	}
	out := nanSeries(len(in))
	for i := shift; i < len(in); i++ {
		out[i] = in[i-shift]
	}
	return out
}

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
