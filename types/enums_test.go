package types

import (
	"testing"
	"time"
)

func TestParseTimeframe(t *testing.T) {
	tests := []struct {
		in   string
		want Timeframe
	}{
		{"M1", M1},
		{"m5", M5},
		{" M15 ", M15},
		{"M30", M30},
		{"H1", H1},
	}
	for _, tt := range tests {
		got, err := ParseTimeframe(tt.in)
		if err != nil {
			t.Errorf("ParseTimeframe(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeframe(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseTimeframe("M7"); err == nil {
		t.Fatal("expected error for unknown timeframe")
	}
}

func TestTimeframeDuration(t *testing.T) {
	if d := M15.Duration(); d != 15*time.Minute {
		t.Fatalf("M15 duration = %v", d)
	}
	if d := H1.Duration(); d != time.Hour {
		t.Fatalf("H1 duration = %v", d)
	}
}

func TestTimeframeText(t *testing.T) {
	b, err := H1.MarshalText()
	if err != nil || string(b) != "H1" {
		t.Fatalf("MarshalText = %q, %v", b, err)
	}
	var tf Timeframe
	if err := tf.UnmarshalText([]byte("M30")); err != nil || tf != M30 {
		t.Fatalf("UnmarshalText = %v, %v", tf, err)
	}
	if _, err := Timeframe(7).MarshalText(); err == nil {
		t.Fatal("expected error marshalling unknown timeframe")
	}
}

func TestEnumRanges(t *testing.T) {
	if !PriceWeighted.Valid() || AppliedPrice(7).Valid() || AppliedPrice(-1).Valid() {
		t.Fatal("applied price range wrong")
	}
	if !MALinearWeighted.Valid() || MAMethod(4).Valid() {
		t.Fatal("ma method range wrong")
	}
	if Buy.Opposite() != Sell || Sell.Opposite() != Buy {
		t.Fatal("Opposite broken")
	}
}
