package types

import "time"

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

type Order struct {
	ID     string
	Symbol string
	Side   Side
	Qty    float64
	Price  float64 // limit price; 0 = market
	// meta
	Comment string
}

// Bar is one OHLCV candle. Spread is the quoted spread in points at the
// close of the bar.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
	Spread int
}

type Tick struct {
	Time time.Time
	Bid  float64
	Ask  float64
}
