package indicator

import (
	"math"
	"testing"

	"github.com/evdnx/gator/config"
	"github.com/evdnx/gator/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatBars(n int, price float64) []types.Bar {
	bars := make([]types.Bar, n)
	for i := range bars {
		bars[i] = types.Bar{Open: price, High: price + 1, Low: price - 1, Close: price}
	}
	return bars
}

func rampBars(n int) []types.Bar {
	bars := make([]types.Bar, n)
	for i := range bars {
		p := 100 * math.Pow(1.01, float64(i))
		bars[i] = types.Bar{Open: p, High: p * 1.001, Low: p * 0.999, Close: p}
	}
	return bars
}

func TestAppliedPrice(t *testing.T) {
	bars := []types.Bar{{Open: 1, High: 4, Low: 2, Close: 3}}
	cases := map[types.AppliedPrice]float64{
		types.PriceClose:    3,
		types.PriceOpen:     1,
		types.PriceHigh:     4,
		types.PriceLow:      2,
		types.PriceMedian:   3,
		types.PriceTypical:  3,
		types.PriceWeighted: 3,
	}
	for ap, want := range cases {
		got := AppliedPrice(ap, bars)
		require.Len(t, got, 1)
		assert.InDelta(t, want, got[0], 1e-12, ap.String())
	}
	assert.InDelta(t, 2.75, AppliedPrice(types.PriceWeighted, []types.Bar{{High: 4, Low: 1, Close: 3}})[0], 1e-12)
}

func TestSMMAMatchesWilder(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5}
	out := smma(in, 3)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2.0, out[2], 1e-12)
	assert.InDelta(t, (2.0*2+4)/3, out[3], 1e-12)
	assert.InDelta(t, ((2.0*2+4)/3*2+5)/3, out[4], 1e-12)
}

func TestMovingAverageWarmup(t *testing.T) {
	in := []float64{2, 2, 2, 2, 2, 2}
	for _, m := range []types.MAMethod{types.MASimple, types.MAExponential, types.MASmoothed, types.MALinearWeighted} {
		out := movingAverage(m, in, 3)
		require.Len(t, out, len(in), m.String())
		assert.True(t, math.IsNaN(out[1]), m.String())
		assert.InDelta(t, 2.0, out[5], 1e-9, m.String())
	}
	short := movingAverage(types.MAExponential, []float64{1, 2}, 5)
	assert.True(t, math.IsNaN(short[0]) && math.IsNaN(short[1]))
}

func TestComputeFlatMarketHasNoSpread(t *testing.T) {
	p := config.DefaultIndicatorParams(types.M5)
	res, err := Compute(p, flatBars(60, 1.1))
	require.NoError(t, err)
	require.Equal(t, 60, res.Len())
	require.True(t, res.Valid(0))

	up, ok := res.Value(LineUpper, 0)
	require.True(t, ok)
	assert.InDelta(t, 0, up, 1e-12)
	lo, ok := res.Value(LineLower, 0)
	require.True(t, ok)
	assert.InDelta(t, 0, lo, 1e-12)
}

func TestComputeDisplacement(t *testing.T) {
	p := config.DefaultIndicatorParams(types.M1)
	bars := rampBars(40)
	res, err := Compute(p, bars)
	require.NoError(t, err)

	// jaw: period 13, shift 8 → first value at index 12+8
	assert.True(t, math.IsNaN(res.Jaw[19]))
	assert.False(t, math.IsNaN(res.Jaw[20]))
	// lips: period 5, shift 3 → first value at index 4+3
	assert.True(t, math.IsNaN(res.Lips[6]))
	assert.False(t, math.IsNaN(res.Lips[7]))
	assert.False(t, res.Valid(40-20))
	assert.True(t, res.Valid(0))
}

func TestComputeUptrendAlignment(t *testing.T) {
	p := config.DefaultIndicatorParams(types.M15)
	res, err := Compute(p, rampBars(80))
	require.NoError(t, err)

	jaw, _ := res.Value(LineJaw, 0)
	teeth, _ := res.Value(LineTeeth, 0)
	lips, _ := res.Value(LineLips, 0)
	assert.Greater(t, lips, teeth)
	assert.Greater(t, teeth, jaw)

	up0, _ := res.Value(LineUpper, 0)
	up1, _ := res.Value(LineUpper, 1)
	lo0, _ := res.Value(LineLower, 0)
	assert.Greater(t, up0, up1, "spread should widen in an accelerating trend")
	assert.Less(t, lo0, 0.0)
}

func TestComputeRejectsInvalidParams(t *testing.T) {
	p := config.DefaultIndicatorParams(types.M5)
	p.JawPeriod = 0
	_, err := Compute(p, rampBars(10))
	require.Error(t, err)
	_, err = NewGator(p)
	require.Error(t, err)
}

func TestValueOutOfRange(t *testing.T) {
	res, err := Compute(config.DefaultIndicatorParams(types.M5), rampBars(3))
	require.NoError(t, err)
	_, ok := res.Value(LineJaw, 5)
	assert.False(t, ok)
	_, ok = res.Value(LineJaw, -1)
	assert.False(t, ok)
}

func TestStreamingMatchesBatch(t *testing.T) {
	p := config.DefaultIndicatorParams(types.H1)
	g, err := NewGator(p)
	require.NoError(t, err)

	bars := rampBars(50)
	var last Result
	for _, b := range bars {
		last, err = g.Add(b)
		require.NoError(t, err)
	}
	batch, err := Compute(p, bars)
	require.NoError(t, err)

	for _, l := range []Line{LineJaw, LineTeeth, LineLips, LineUpper, LineLower} {
		a, _ := last.Value(l, 0)
		b, _ := batch.Value(l, 0)
		assert.InDelta(t, b, a, 1e-9)
	}
	assert.Equal(t, 50, g.Len())
}

func TestStreamingWindowIsBounded(t *testing.T) {
	p := config.DefaultIndicatorParams(types.M1)
	g, err := NewGator(p)
	require.NoError(t, err)
	for _, b := range flatBars(500, 1.2) {
		_, err := g.Add(b)
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, g.Len(), 4*p.Lookback()+8)
	assert.True(t, g.Result().Valid(0))
}

func TestStreamingRejectsInvertedBar(t *testing.T) {
	g, err := NewGator(config.DefaultIndicatorParams(types.M5))
	require.NoError(t, err)
	bars := rampBars(30)
	for _, b := range bars[:29] {
		_, err := g.Add(b)
		require.NoError(t, err)
	}
	before := g.Result()

	bad := bars[29]
	bad.High, bad.Low = bad.Low-1, bad.High
	res, err := g.Add(bad)
	require.Error(t, err)
	assert.Equal(t, 29, g.Len())
	assert.Equal(t, before.Len(), res.Len())
	a, _ := before.Value(LineLips, 0)
	b, _ := res.Value(LineLips, 0)
	assert.Equal(t, a, b)
}
