package catalog

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/evdnx/gator/config"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a parameter file. A config file names one
// symbol and a chain of override layers; a sets file lists flat records.
//
//	schema: config
//	symbol: EURUSD
//	layers:
//	  - timeframe: M5
//	    indicator: {jaw_period: 9, teeth_period: 4}
//
//	schema: sets
//	records:
//	  - {symbol: EURUSD, timeframe: M5, period_jaw: 4, period_teeth: 4}
type File struct {
	Schema  Schema                `yaml:"schema"`
	Symbol  string                `yaml:"symbol,omitempty"`
	Layers  config.Layers         `yaml:"layers,omitempty"`
	Records []config.LegacyParams `yaml:"records,omitempty"`
}

// DecodeFile reads one parameter file. Unknown fields are rejected so a
// record written for the other schema fails loudly.
func DecodeFile(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return f, errors.New("empty parameter file")
		}
		return f, err
	}
	switch f.Schema {
	case SchemaConfig:
		if f.Symbol == "" {
			return f, errors.New("config file needs a symbol")
		}
		if len(f.Records) > 0 {
			return f, errors.New("config file cannot carry sets records")
		}
	case SchemaSets:
		if len(f.Layers) > 0 || f.Symbol != "" {
			return f, errors.New("sets file carries records only")
		}
	default:
		return f, errors.Errorf("unknown schema %q", f.Schema)
	}
	return f, nil
}

// AddFile records the contents of f under source.
func (b *Builder) AddFile(source string, f File) {
	switch f.Schema {
	case SchemaConfig:
		b.AddLayers(source, f.Symbol, f.Layers)
	case SchemaSets:
		for _, p := range f.Records {
			b.AddLegacy(source, p)
		}
	}
}

// LoadFS adds every file of fsys matching pattern to b, in lexical order.
// It returns the number of files read.
func LoadFS(b *Builder, fsys fs.FS, pattern string) (int, error) {
	if !doublestar.ValidatePattern(pattern) {
		return 0, errors.Errorf("bad pattern %q", pattern)
	}
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return 0, errors.Wrapf(err, "glob %s", pattern)
	}
	sort.Strings(matches)
	n := 0
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return n, errors.Wrapf(err, "read %s", name)
		}
		f, err := DecodeFile(bytes.NewReader(data))
		if err != nil {
			return n, errors.Wrapf(err, "decode %s", name)
		}
		b.AddFile(path.Clean(name), f)
		n++
	}
	return n, nil
}

// LoadDir is LoadFS rooted at a directory on disk.
func LoadDir(b *Builder, root, pattern string) (int, error) {
	if _, err := os.Stat(root); err != nil {
		return 0, errors.Wrap(err, "catalog dir")
	}
	return LoadFS(b, os.DirFS(root), pattern)
}
