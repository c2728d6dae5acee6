package indicator

import (
	"fmt"
	"time"

	"github.com/evdnx/gator/config"
	"github.com/evdnx/gator/types"
)

// Gator keeps a bounded window of bars and recomputes the indicator as
// bars arrive. It is not safe for concurrent use.
type Gator struct {
	params config.IndicatorParams
	max    int
	bars   []types.Bar
	last   Result
}

// NewGator validates p and sizes the window to a few multiples of the
// lookback so smoothed averages settle.
func NewGator(p config.IndicatorParams) (*Gator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	max := 4*p.Lookback() + 8
	if max < 64 {
		max = 64
	}
	return &Gator{params: p, max: max}, nil
}

func (g *Gator) Params() config.IndicatorParams { return g.params }

// Add appends b and returns the refreshed result. A bar whose high is below
// its low is rejected and leaves the window unchanged.
func (g *Gator) Add(b types.Bar) (Result, error) {
	if b.High < b.Low {
		return g.last, fmt.Errorf("bar %s: high %v below low %v", b.Time.Format(time.RFC3339), b.High, b.Low)
	}
	g.bars = append(g.bars, b)
	if len(g.bars) > g.max {
		g.bars = append(g.bars[:0:0], g.bars[len(g.bars)-g.max:]...)
	}
	res, err := Compute(g.params, g.bars)
	if err != nil {
		return g.last, err
	}
	g.last = res
	return res, nil
}

// Result returns the latest computed output.
func (g *Gator) Result() Result { return g.last }

func (g *Gator) Len() int { return len(g.bars) }

// Bar returns the input bar shift bars back from the last one.
func (g *Gator) Bar(shift int) (types.Bar, bool) {
	i := len(g.bars) - 1 - shift
	if shift < 0 || i < 0 {
		return types.Bar{}, false
	}
	return g.bars[i], true
}
