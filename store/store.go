// Package store persists catalog entries outside the process so records
// edited elsewhere can be loaded at startup.
package store

import (
	"context"
	"sort"

	"github.com/evdnx/gator/catalog"
)

// Store saves and loads catalog entries. Saving an entry whose key is
// already stored replaces it.
type Store interface {
	Save(ctx context.Context, entries []catalog.Entry) error
	Load(ctx context.Context) ([]catalog.Entry, error)
}

// LoadInto adds the stored entries to b and returns how many were added.
// A stored entry whose key b already holds from the same source is a copy
// of that record and is skipped; b's version wins. The same key from a
// different source is reported by Build as a duplicate.
func LoadInto(ctx context.Context, s Store, b *catalog.Builder) (int, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if src, ok := b.Source(e.Key); ok && src == e.Source {
			continue
		}
		b.AddEntry(e)
		n++
	}
	return n, nil
}

// Pushable returns the entries worth storing: everything except the
// records compiled into the binary.
func Pushable(entries []catalog.Entry) []catalog.Entry {
	out := make([]catalog.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Source != catalog.BuiltinSource {
			out = append(out, e)
		}
	}
	return out
}

func sortEntries(entries []catalog.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key.String() < entries[j].Key.String()
	})
}
