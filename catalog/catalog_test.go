package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/evdnx/gator/config"
	"github.com/evdnx/gator/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtin(t *testing.T) *Catalog {
	t.Helper()
	c, err := Builtin().Build()
	require.NoError(t, err)
	return c
}

func TestBuiltinKeys(t *testing.T) {
	c := builtin(t)
	want := []string{
		"EURUSD:M1:config",
		"EURUSD:M5:config",
		"EURUSD:M15:config",
		"EURUSD:M15:sets",
		"EURUSD:M30:config",
		"EURUSD:H1:sets",
	}
	var got []string
	for _, k := range c.Keys() {
		got = append(got, k.String())
	}
	assert.Equal(t, want, got)
	assert.Equal(t, map[Schema]int{SchemaConfig: 4, SchemaSets: 2}, c.Count())
}

func TestBuiltinValues(t *testing.T) {
	c := builtin(t)

	ind, stg, err := c.Config("EURUSD", types.M5)
	require.NoError(t, err)
	assert.Equal(t, config.IndicatorParams{
		Timeframe:    types.M5,
		AppliedPrice: types.PriceClose,
		MAMethod:     types.MASmoothed,
		JawPeriod:    9,
		JawShift:     10,
		TeethPeriod:  4,
		TeethShift:   3,
		LipsPeriod:   3,
		LipsShift:    1,
	}, ind)
	assert.Equal(t, 1, stg.SignalOpenFilter)
	assert.Equal(t, 1, stg.TickFilterMethod)
	assert.Equal(t, 2.0, stg.PriceStopLevel)

	ind, stg, err = c.Config("EURUSD", types.M15)
	require.NoError(t, err)
	assert.Equal(t, types.PriceLow, ind.AppliedPrice)
	assert.Equal(t, types.MAExponential, ind.MAMethod)
	assert.False(t, ind.Ordered(), "lips 9 > teeth 8 is kept as shipped")
	assert.Equal(t, 1.0, stg.PriceStopLevel)

	h1, ok := c.Lookup(Key{"EURUSD", types.H1, SchemaSets})
	require.True(t, ok)
	require.NotNil(t, h1.Legacy)
	assert.Equal(t, 195, *h1.Legacy.SignalOpenMethod1)
	assert.Equal(t, 6, *h1.Legacy.MaxSpread)
	assert.Nil(t, h1.Legacy.PriceLimitMethod)
}

func TestBuiltinRecordsAreValid(t *testing.T) {
	for _, e := range builtin(t).Entries() {
		require.NoError(t, e.Validate(), e.Key.String())
		if e.Indicator != nil {
			assert.Greater(t, e.Indicator.JawPeriod, 0)
			assert.GreaterOrEqual(t, e.Indicator.Shift, 0)
			assert.True(t, e.Indicator.AppliedPrice.Valid())
			assert.True(t, e.Indicator.MAMethod.Valid())
		}
		if e.Strategy != nil {
			assert.GreaterOrEqual(t, e.Strategy.MaxSpread, 0)
			assert.GreaterOrEqual(t, e.Strategy.LotSize, 0.0)
		}
	}
}

func TestBuiltinCatalogsShareNoRecords(t *testing.T) {
	a := builtin(t)
	b := builtin(t)
	k := Key{Symbol: "EURUSD", Timeframe: types.M15, Schema: SchemaSets}

	ea, _ := a.Lookup(k)
	*ea.Legacy.MaxSpread = 99

	eb, _ := b.Lookup(k)
	assert.Equal(t, 4, *eb.Legacy.MaxSpread)
	ec, _ := builtin(t).Lookup(k)
	assert.Equal(t, 4, *ec.Legacy.MaxSpread)
	for _, e := range builtin(t).Entries() {
		assert.Equal(t, BuiltinSource, e.Source)
	}
}

func TestDuplicateKeyFailsBuild(t *testing.T) {
	b := Builtin()
	ind := config.DefaultIndicatorParams(types.M5)
	stg := config.DefaultStrategyParams("EURUSD", types.M5)
	b.AddConfig("extra.yaml", "EURUSD", ind, stg)

	c, err := b.Build()
	require.Error(t, err)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, ErrDuplicateKey))
	assert.Contains(t, err.Error(), "EURUSD:M5:config")
	assert.Contains(t, err.Error(), "extra.yaml")
}

func TestSameSymbolTimeframeUnderBothSchemasIsNotDuplicate(t *testing.T) {
	b := NewBuilder()
	ind := config.DefaultIndicatorParams(types.M5)
	ind.JawPeriod, ind.TeethPeriod = 9, 4
	b.AddConfig("a", "EURUSD", ind, config.DefaultStrategyParams("EURUSD", types.M5))
	b.AddLegacy("b", config.LegacyParams{
		Symbol:      "EURUSD",
		Timeframe:   types.M5,
		PeriodJaw:   config.Ptr(4),
		PeriodTeeth: config.Ptr(4),
	})
	c, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = c.Resolve("EURUSD", types.M5)
	assert.True(t, errors.Is(err, ErrAmbiguous))

	cols := c.Collisions()
	require.Len(t, cols, 1)
	assert.Equal(t, types.M5, cols[0].Timeframe)
	assert.Equal(t, []FieldDiff{
		{Field: "jaw_period", Config: "9", Sets: "4"},
	}, cols[0].Diffs, "teeth agrees at 4")
}

func TestInvalidEntriesAreAllReported(t *testing.T) {
	b := NewBuilder()
	bad := config.DefaultIndicatorParams(types.M1)
	bad.LipsPeriod = 0
	b.AddConfig("x", "EURUSD", bad, config.DefaultStrategyParams("EURUSD", types.M1))
	b.AddLegacy("y", config.LegacyParams{Symbol: "EURUSD", Timeframe: types.H1, MaxSpread: config.Ptr(-1)})
	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lips_period")
	assert.Contains(t, err.Error(), "max_spread")
}

func TestEntryIdentityMustMatchKey(t *testing.T) {
	ind := config.DefaultIndicatorParams(types.M1)
	stg := config.DefaultStrategyParams("GBPUSD", types.M1)
	e := Entry{Key: Key{"EURUSD", types.M1, SchemaConfig}, Indicator: &ind, Strategy: &stg}
	assert.Error(t, e.Validate())

	e = Entry{Key: Key{"EURUSD", types.M1, SchemaSets}, Indicator: &ind}
	assert.Error(t, e.Validate())
}

func TestResolve(t *testing.T) {
	c := builtin(t)

	e, err := c.Resolve("EURUSD", types.M30)
	require.NoError(t, err)
	assert.Equal(t, SchemaConfig, e.Key.Schema)

	e, err = c.Resolve("EURUSD", types.H1)
	require.NoError(t, err)
	assert.Equal(t, SchemaSets, e.Key.Schema)

	_, err = c.Resolve("EURUSD", types.M15)
	assert.True(t, errors.Is(err, ErrAmbiguous))

	_, err = c.Resolve("USDJPY", types.M15)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, _, err = c.Config("EURUSD", types.H1)
	assert.True(t, errors.Is(err, ErrNotFound), "sets records are never read as config")
}

func TestBuiltinM15Drift(t *testing.T) {
	cols := builtin(t).Collisions()
	require.Len(t, cols, 1)
	col := cols[0]
	assert.Equal(t, "EURUSD", col.Symbol)
	assert.Equal(t, types.M15, col.Timeframe)
	assert.Len(t, col.Keys, 2)

	var fields []string
	for _, d := range col.Diffs {
		fields = append(fields, d.Field)
	}
	assert.Equal(t, []string{
		"signal_open_method",
		"signal_open_level",
		"signal_close_method",
		"signal_close_level",
		"price_stop_level",
		"max_spread",
	}, fields)
	assert.Equal(t, "max_spread: config=0 sets=4", col.Diffs[5].String())
}

func TestParseSchema(t *testing.T) {
	s, err := ParseSchema(" Sets ")
	require.NoError(t, err)
	assert.Equal(t, SchemaSets, s)
	_, err = ParseSchema("ini")
	assert.Error(t, err)
}

const configYAML = `
schema: config
symbol: GBPUSD
layers:
  - name: base
    indicator: {applied_price: 0}
  - timeframe: M5
    indicator: {jaw_period: 21}
    strategy: {max_spread: 3}
  - symbol: GBPUSD
    timeframe: M5
    strategy: {max_spread: 2}
  - timeframe: H1
`

const setsYAML = `
schema: sets
records:
  - symbol: GBPUSD
    timeframe: M5
    period_jaw: 4
    period_teeth: 4
    max_spread: 5
`

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"params/gbpusd.yaml":      {Data: []byte(configYAML)},
		"params/sets/gbpusd.yaml": {Data: []byte(setsYAML)},
		"params/readme.txt":       {Data: []byte("ignored")},
	}
	b := NewBuilder()
	n, err := LoadFS(b, fsys, "**/*.yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	c, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	ind, stg, err := c.Config("GBPUSD", types.M5)
	require.NoError(t, err)
	assert.Equal(t, types.PriceClose, ind.AppliedPrice, "global layer")
	assert.Equal(t, 21, ind.JawPeriod, "timeframe layer")
	assert.Equal(t, 8, ind.TeethPeriod, "default")
	assert.Equal(t, 2, stg.MaxSpread, "symbol layer wins")

	ind, _, err = c.Config("GBPUSD", types.H1)
	require.NoError(t, err)
	assert.Equal(t, 13, ind.JawPeriod)

	e, ok := c.Lookup(Key{"GBPUSD", types.M5, SchemaSets})
	require.True(t, ok)
	assert.Equal(t, "params/sets/gbpusd.yaml", e.Source)
}

func TestLoadFSRejectsUnknownFields(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml": {Data: []byte("schema: sets\nrecords:\n  - {symbol: EURUSD, timeframe: M5, jaw_period: 4}\n")},
	}
	_, err := LoadFS(NewBuilder(), fsys, "*.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestDecodeFileShape(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"unknown schema": "schema: ini\n",
		"no symbol":      "schema: config\nlayers: [{timeframe: M5}]\n",
		"mixed":          "schema: sets\nsymbol: EURUSD\n",
		"bad timeframe":  "schema: config\nsymbol: EURUSD\nlayers: [{timeframe: M7}]\n",
	}
	for name, doc := range cases {
		_, err := DecodeFile(strings.NewReader(doc))
		assert.Error(t, err, name)
	}
}

func TestLoadDirDuplicatesBuiltin(t *testing.T) {
	dir := t.TempDir()
	doc := "schema: config\nsymbol: EURUSD\nlayers:\n  - timeframe: M1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "eurusd.yaml"), []byte(doc), 0o644))

	b := Builtin()
	n, err := LoadDir(b, dir, "*.yaml")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = b.Build()
	assert.True(t, errors.Is(err, ErrDuplicateKey))

	_, err = LoadDir(NewBuilder(), filepath.Join(dir, "missing"), "*.yaml")
	assert.Error(t, err)
}
