package strategy

import (
	"math"

	"github.com/evdnx/gator/types"
)

// Tick filter bits.
const (
	TickSkipUnchanged = 1 << iota // drop quotes equal to the previous one
	TickFirstOfBar                // keep only the first tick of each bar
	TickInOrder                   // drop ticks older than the previous one
)

// tickFeed filters raw quotes and builds bid bars of one timeframe.
type tickFeed struct {
	tf     types.Timeframe
	method int
	point  float64

	last types.Tick
	seen bool
	bar  types.Bar
	open bool
}

func newTickFeed(tf types.Timeframe, method int, point float64) *tickFeed {
	return &tickFeed{tf: tf, method: method, point: point}
}

func (f *tickFeed) bucket(t types.Tick) int64 {
	return t.Time.Truncate(f.tf.Duration()).Unix()
}

// filter returns the reason t is dropped, or "" when it is accepted.
func (f *tickFeed) filter(t types.Tick) string {
	if !f.seen {
		return ""
	}
	if f.method&TickInOrder != 0 && t.Time.Before(f.last.Time) {
		return "out_of_order"
	}
	if f.method&TickSkipUnchanged != 0 && t.Bid == f.last.Bid && t.Ask == f.last.Ask {
		return "unchanged"
	}
	if f.method&TickFirstOfBar != 0 && f.open && f.bucket(t) == f.bar.Time.Unix() {
		return "same_bar"
	}
	return ""
}

// spreadPoints converts the quote spread of t to points.
func (f *tickFeed) spreadPoints(t types.Tick) int {
	if f.point <= 0 {
		return 0
	}
	return int(math.Round((t.Ask - t.Bid) / f.point))
}

// push adds an accepted tick. When t starts a new bar the previous one is
// returned complete, carrying the spread quoted by t.
func (f *tickFeed) push(t types.Tick) (types.Bar, bool) {
	f.last, f.seen = t, true
	start := f.bucket(t)
	if f.open && start == f.bar.Time.Unix() {
		f.bar.High = math.Max(f.bar.High, t.Bid)
		f.bar.Low = math.Min(f.bar.Low, t.Bid)
		f.bar.Close = t.Bid
		f.bar.Volume++
		f.bar.Spread = f.spreadPoints(t)
		return types.Bar{}, false
	}
	done, ok := f.bar, f.open
	if ok {
		done.Spread = f.spreadPoints(t)
	}
	f.bar = types.Bar{
		Time:   t.Time.Truncate(f.tf.Duration()),
		Open:   t.Bid,
		High:   t.Bid,
		Low:    t.Bid,
		Close:  t.Bid,
		Volume: 1,
		Spread: f.spreadPoints(t),
	}
	f.open = true
	return done, ok
}
