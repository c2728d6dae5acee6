package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/evdnx/gator/config"
	"github.com/evdnx/gator/testutils"
	"github.com/evdnx/gator/types"
)

var t0 = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

// buildTradeConfig returns execution settings for a price around 100 with
// two-decimal quantities. RSI thresholds are the usual 70/30.
func buildTradeConfig() config.TradeConfig {
	return config.TradeConfig{
		RSIOverbought:     70,
		RSIOversold:       30,
		MaxRiskPerTrade:   0.01,  // 1 % of equity per trade
		StopLossPct:       0.015, // 1.5 %
		QuantityPrecision: 2,
		MinQty:            0.01,
		StepSize:          0.01,
		PointSize:         0.01,
	}
}

// buildParams returns the default indicator and a strategy record that
// trades one unit with no open filter and no tick filter.
func buildParams(tf types.Timeframe) (config.IndicatorParams, config.StrategyParams) {
	ind := config.DefaultIndicatorParams(tf)
	stg := config.DefaultStrategyParams("TEST", tf)
	stg.LotSize = 1
	stg.SignalOpenFilter = 0
	stg.TickFilterMethod = 0
	return ind, stg
}

// buildGator wires the strategy to a mock executor holding $100k and a
// recording logger.
func buildGator(t *testing.T, ind config.IndicatorParams, stg config.StrategyParams,
	cfg config.TradeConfig) (*Gator, *testutils.MockExecutor, *testutils.MockLogger) {

	mockExec := testutils.NewMockExecutor(100_000)
	mockLog := testutils.NewMockLogger()
	g, err := NewGator(ind, stg, cfg, mockExec, mockLog)
	if err != nil {
		t.Fatalf("NewGator failed: %v", err)
	}
	return g, mockExec, mockLog
}

func bar(i int, tf types.Timeframe, open, close float64) types.Bar {
	return types.Bar{
		Time:   t0.Add(time.Duration(i) * tf.Duration()),
		Open:   open,
		High:   math.Max(open, close) + 0.05,
		Low:    math.Min(open, close) - 0.05,
		Close:  close,
		Volume: 1000,
		Spread: 1,
	}
}

// priceBars turns a close series into bars opening at the previous close.
func priceBars(tf types.Timeframe, closes []float64) []types.Bar {
	out := make([]types.Bar, len(closes))
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		out[i] = bar(i, tf, open, c)
	}
	return out
}

// upCloses accelerates upwards, so the alligator opens bullish and keeps
// widening.
func upCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 * math.Pow(1.01, float64(i))
	}
	return out
}

// downCloses mirrors upCloses.
func downCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 500 - 100*math.Pow(1.01, float64(i))
	}
	return out
}

func feedBars(s Strategy, bars []types.Bar) {
	for _, b := range bars {
		s.ProcessBar(b)
	}
}
