package types

import (
	"fmt"
	"strings"
	"time"
)

// Timeframe is a bar aggregation interval, stored as its length in minutes.
type Timeframe int

const (
	M1  Timeframe = 1
	M5  Timeframe = 5
	M15 Timeframe = 15
	M30 Timeframe = 30
	H1  Timeframe = 60
	H4  Timeframe = 240
	D1  Timeframe = 1440
)

var timeframeNames = map[Timeframe]string{
	M1:  "M1",
	M5:  "M5",
	M15: "M15",
	M30: "M30",
	H1:  "H1",
	H4:  "H4",
	D1:  "D1",
}

// Timeframes lists every supported interval, shortest first.
func Timeframes() []Timeframe {
	return []Timeframe{M1, M5, M15, M30, H1, H4, D1}
}

func (tf Timeframe) String() string {
	if s, ok := timeframeNames[tf]; ok {
		return s
	}
	return fmt.Sprintf("TF(%d)", int(tf))
}

func (tf Timeframe) Valid() bool {
	_, ok := timeframeNames[tf]
	return ok
}

func (tf Timeframe) Duration() time.Duration {
	return time.Duration(tf) * time.Minute
}

// ParseTimeframe accepts the MetaTrader style labels ("M5", "h1").
func ParseTimeframe(s string) (Timeframe, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for tf, n := range timeframeNames {
		if n == name {
			return tf, nil
		}
	}
	return 0, fmt.Errorf("unknown timeframe %q", s)
}

func (tf Timeframe) MarshalText() ([]byte, error) {
	if !tf.Valid() {
		return nil, fmt.Errorf("unknown timeframe %d", int(tf))
	}
	return []byte(tf.String()), nil
}

func (tf *Timeframe) UnmarshalText(b []byte) error {
	v, err := ParseTimeframe(string(b))
	if err != nil {
		return err
	}
	*tf = v
	return nil
}

// AppliedPrice selects the price series fed to the moving averages.
// Values follow the MetaTrader 4 numbering.
type AppliedPrice int

const (
	PriceClose AppliedPrice = iota
	PriceOpen
	PriceHigh
	PriceLow
	PriceMedian   // (high+low)/2
	PriceTypical  // (high+low+close)/3
	PriceWeighted // (high+low+2*close)/4
)

func (p AppliedPrice) Valid() bool { return p >= PriceClose && p <= PriceWeighted }

func (p AppliedPrice) String() string {
	switch p {
	case PriceClose:
		return "close"
	case PriceOpen:
		return "open"
	case PriceHigh:
		return "high"
	case PriceLow:
		return "low"
	case PriceMedian:
		return "median"
	case PriceTypical:
		return "typical"
	case PriceWeighted:
		return "weighted"
	}
	return fmt.Sprintf("price(%d)", int(p))
}

// MAMethod selects the moving average kind.
type MAMethod int

const (
	MASimple MAMethod = iota
	MAExponential
	MASmoothed
	MALinearWeighted
)

func (m MAMethod) Valid() bool { return m >= MASimple && m <= MALinearWeighted }

func (m MAMethod) String() string {
	switch m {
	case MASimple:
		return "sma"
	case MAExponential:
		return "ema"
	case MASmoothed:
		return "smma"
	case MALinearWeighted:
		return "lwma"
	}
	return fmt.Sprintf("ma(%d)", int(m))
}
