// Package catalog holds every Gator parameter record known to the process.
// Records are keyed by symbol, timeframe and schema version; a Builder
// collects them once at startup and Build either fails on duplicate keys or
// returns an immutable Catalog.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/evdnx/gator/config"
	"github.com/evdnx/gator/types"
)

// Schema identifies the field convention a record was written in.
type Schema string

const (
	// SchemaConfig is the current convention: an indicator record paired
	// with a strategy record.
	SchemaConfig Schema = "config"
	// SchemaSets is the older flat Gator_ prefixed convention.
	SchemaSets Schema = "sets"
)

func (s Schema) Valid() bool { return s == SchemaConfig || s == SchemaSets }

func ParseSchema(s string) (Schema, error) {
	v := Schema(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("unknown schema %q", s)
	}
	return v, nil
}

var (
	ErrNotFound     = errors.New("catalog: no record")
	ErrAmbiguous    = errors.New("catalog: record defined under more than one schema")
	ErrDuplicateKey = errors.New("catalog: duplicate key")
)

type Key struct {
	Symbol    string          `json:"symbol" bson:"symbol"`
	Timeframe types.Timeframe `json:"timeframe" bson:"timeframe"`
	Schema    Schema          `json:"schema" bson:"schema"`
}

func (k Key) String() string {
	return k.Symbol + ":" + k.Timeframe.String() + ":" + string(k.Schema)
}

func (k Key) less(o Key) bool {
	if k.Symbol != o.Symbol {
		return k.Symbol < o.Symbol
	}
	if k.Timeframe != o.Timeframe {
		return k.Timeframe < o.Timeframe
	}
	return k.Schema < o.Schema
}

// Entry is one catalog record. Config entries carry Indicator and Strategy;
// sets entries carry Legacy.
type Entry struct {
	Key       Key                     `json:"key" bson:"key"`
	Source    string                  `json:"source" bson:"source"`
	Indicator *config.IndicatorParams `json:"indicator,omitempty" bson:"indicator,omitempty"`
	Strategy  *config.StrategyParams  `json:"strategy,omitempty" bson:"strategy,omitempty"`
	Legacy    *config.LegacyParams    `json:"legacy,omitempty" bson:"legacy,omitempty"`
}

// Validate checks that the entry matches its schema and that the payload
// agrees with the key.
func (e Entry) Validate() error {
	k := e.Key
	if k.Symbol == "" || !k.Timeframe.Valid() || !k.Schema.Valid() {
		return fmt.Errorf("invalid key %s", k)
	}
	switch k.Schema {
	case SchemaConfig:
		if e.Indicator == nil || e.Strategy == nil || e.Legacy != nil {
			return fmt.Errorf("%s: config entries need indicator and strategy records only", k)
		}
		if e.Indicator.Timeframe != k.Timeframe || e.Strategy.Timeframe != k.Timeframe || e.Strategy.Symbol != k.Symbol {
			return fmt.Errorf("%s: record identity does not match key", k)
		}
		if err := e.Indicator.Validate(); err != nil {
			return fmt.Errorf("%s: indicator: %w", k, err)
		}
		if err := e.Strategy.Validate(); err != nil {
			return fmt.Errorf("%s: strategy: %w", k, err)
		}
	case SchemaSets:
		if e.Legacy == nil || e.Indicator != nil || e.Strategy != nil {
			return fmt.Errorf("%s: sets entries need a legacy record only", k)
		}
		if e.Legacy.Timeframe != k.Timeframe || e.Legacy.Symbol != k.Symbol {
			return fmt.Errorf("%s: record identity does not match key", k)
		}
		if err := e.Legacy.Validate(); err != nil {
			return fmt.Errorf("%s: legacy: %w", k, err)
		}
	}
	return nil
}

// Catalog is read-only once built and safe for concurrent use. Entries
// handed out share their records with the catalog and must not be modified.
type Catalog struct {
	entries map[Key]Entry
	keys    []Key
}

func (c *Catalog) Len() int { return len(c.keys) }

// Keys returns every key sorted by symbol, timeframe and schema.
func (c *Catalog) Keys() []Key {
	out := make([]Key, len(c.keys))
	copy(out, c.keys)
	return out
}

// Entries returns every entry in key order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.entries[k])
	}
	return out
}

func (c *Catalog) Lookup(k Key) (Entry, bool) {
	e, ok := c.entries[k]
	return e, ok
}

// Config returns the current-schema records for symbol and tf.
func (c *Catalog) Config(symbol string, tf types.Timeframe) (config.IndicatorParams, config.StrategyParams, error) {
	e, ok := c.entries[Key{Symbol: symbol, Timeframe: tf, Schema: SchemaConfig}]
	if !ok {
		return config.IndicatorParams{}, config.StrategyParams{}, fmt.Errorf("%w for %s %s", ErrNotFound, symbol, tf)
	}
	return *e.Indicator, *e.Strategy, nil
}

// Resolve returns the single entry for symbol and tf regardless of schema.
// When the pair exists under several schemas it returns ErrAmbiguous rather
// than picking one.
func (c *Catalog) Resolve(symbol string, tf types.Timeframe) (Entry, error) {
	var found []Entry
	for _, s := range []Schema{SchemaConfig, SchemaSets} {
		if e, ok := c.entries[Key{Symbol: symbol, Timeframe: tf, Schema: s}]; ok {
			found = append(found, e)
		}
	}
	switch len(found) {
	case 0:
		return Entry{}, fmt.Errorf("%w for %s %s", ErrNotFound, symbol, tf)
	case 1:
		return found[0], nil
	}
	return Entry{}, fmt.Errorf("%w: %s %s", ErrAmbiguous, symbol, tf)
}

// Count returns the number of entries per schema.
func (c *Catalog) Count() map[Schema]int {
	out := map[Schema]int{SchemaConfig: 0, SchemaSets: 0}
	for _, k := range c.keys {
		out[k.Schema]++
	}
	return out
}

func sortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
}
