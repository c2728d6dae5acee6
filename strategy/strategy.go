// Package strategy trades the Gator oscillator from a catalog record.
package strategy

import "github.com/evdnx/gator/types"

// Strategy consumes market data for a single symbol.
type Strategy interface {
	ProcessBar(b types.Bar)
	ProcessTick(t types.Tick)
}

var _ Strategy = (*Gator)(nil)
