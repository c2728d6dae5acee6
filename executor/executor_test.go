package executor

import (
	"testing"

	"github.com/evdnx/gator/testutils"
	"github.com/evdnx/gator/types"
)

func TestPaperExecutor_SubmitAndPosition(t *testing.T) {
	ex := NewPaperExecutor(10_000, nil)

	o := types.Order{
		Symbol: "EURUSD",
		Side:   types.Buy,
		Qty:    5_000,
		Price:  2,
	}
	if err := ex.Submit(o); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if eq := ex.Equity(); eq != 0 {
		t.Fatalf("expected equity 0 after buying 5000*2, got %v", eq)
	}
	qty, avg := ex.Position("EURUSD")
	if qty != 5_000 || avg != 2 {
		t.Fatalf("unexpected position: qty=%v avg=%v", qty, avg)
	}
}

func TestPaperExecutor_InsufficientCash(t *testing.T) {
	log := testutils.NewMockLogger()
	ex := NewPaperExecutor(1000, log)
	o := types.Order{
		Symbol: "EURUSD",
		Side:   types.Buy,
		Qty:    1000,
		Price:  1.1,
	}
	if err := ex.Submit(o); err != nil {
		t.Fatalf("expected graceful handling, got error %v", err)
	}
	if eq := ex.Equity(); eq != 1000 {
		t.Fatalf("equity should stay unchanged on insufficient cash")
	}
	if log.LastMessage() != "paper_insufficient_cash" {
		t.Fatalf("expected warning, got %q", log.LastMessage())
	}
}

func TestPaperExecutor_RoundTrip(t *testing.T) {
	ex := NewPaperExecutor(10_000, nil)
	_ = ex.Submit(types.Order{Symbol: "EURUSD", Side: types.Sell, Qty: 1000, Price: 1.2})
	qty, avg := ex.Position("EURUSD")
	if qty != -1000 || avg != 1.2 {
		t.Fatalf("short position wrong: qty=%v avg=%v", qty, avg)
	}
	_ = ex.Submit(types.Order{Symbol: "EURUSD", Side: types.Buy, Qty: 1000, Price: 1.1})
	qty, avg = ex.Position("EURUSD")
	if qty != 0 || avg != 0 {
		t.Fatalf("expected flat, got qty=%v avg=%v", qty, avg)
	}
	if eq := ex.Equity(); eq < 10_099.99 || eq > 10_100.01 {
		t.Fatalf("expected ~100 profit, equity=%v", eq)
	}
}
