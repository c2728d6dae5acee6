package catalog

import (
	"fmt"

	"github.com/evdnx/gator/config"
	"github.com/evdnx/gator/metrics"
	"github.com/evdnx/gator/types"
	"go.uber.org/multierr"
)

// Builder collects entries before the catalog is frozen. It is meant to be
// owned by a single initialisation routine and is not safe for concurrent use.
type Builder struct {
	entries map[Key]Entry
	order   []Key
	err     error
}

func NewBuilder() *Builder {
	return &Builder{entries: make(map[Key]Entry)}
}

// AddEntry records e. Adding a key twice is an error reported by Build.
func (b *Builder) AddEntry(e Entry) {
	if prev, ok := b.entries[e.Key]; ok {
		b.err = multierr.Append(b.err,
			fmt.Errorf("%w %s (from %q and %q)", ErrDuplicateKey, e.Key, prev.Source, e.Source))
		return
	}
	b.entries[e.Key] = e
	b.order = append(b.order, e.Key)
}

// AddConfig records a current-schema pair for symbol.
func (b *Builder) AddConfig(source, symbol string, ind config.IndicatorParams, stg config.StrategyParams) {
	b.AddEntry(Entry{
		Key:       Key{Symbol: symbol, Timeframe: ind.Timeframe, Schema: SchemaConfig},
		Source:    source,
		Indicator: &ind,
		Strategy:  &stg,
	})
}

// AddLegacy records a sets-schema record.
func (b *Builder) AddLegacy(source string, p config.LegacyParams) {
	b.AddEntry(Entry{
		Key:    Key{Symbol: p.Symbol, Timeframe: p.Timeframe, Schema: SchemaSets},
		Source: source,
		Legacy: &p,
	})
}

// AddLayers resolves layers for symbol on each timeframe and records the
// results. With no timeframes given, the timeframes named by the layers are
// used.
func (b *Builder) AddLayers(source, symbol string, layers config.Layers, tfs ...types.Timeframe) {
	if len(tfs) == 0 {
		tfs = layers.Timeframes(symbol)
	}
	if len(tfs) == 0 {
		b.err = multierr.Append(b.err, fmt.Errorf("%s: no timeframe to resolve for %s", source, symbol))
		return
	}
	for _, tf := range tfs {
		ind, stg := layers.Resolve(symbol, tf)
		b.AddConfig(source, symbol, ind, stg)
	}
}

// Fail records an error that will make Build fail.
func (b *Builder) Fail(err error) {
	b.err = multierr.Append(b.err, err)
}

// Source reports which source added k, if any.
func (b *Builder) Source(k Key) (string, bool) {
	e, ok := b.entries[k]
	return e.Source, ok
}

// Len is the number of distinct keys added so far.
func (b *Builder) Len() int { return len(b.order) }

// Build validates every entry and freezes the catalog. All problems found
// are returned together.
func (b *Builder) Build() (*Catalog, error) {
	err := b.err
	for _, k := range b.order {
		err = multierr.Append(err, b.entries[k].Validate())
	}
	if err != nil {
		return nil, err
	}
	c := &Catalog{
		entries: make(map[Key]Entry, len(b.entries)),
		keys:    make([]Key, len(b.order)),
	}
	for k, e := range b.entries {
		c.entries[k] = e
	}
	copy(c.keys, b.order)
	sortKeys(c.keys)
	for s, n := range c.Count() {
		metrics.CatalogRecords.WithLabelValues(string(s)).Set(float64(n))
	}
	return c, nil
}
