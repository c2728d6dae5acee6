// Package backtest replays recorded bars or ticks through a strategy on a
// paper account.
package backtest

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/evdnx/gator/types"
	"github.com/pkg/errors"
)

// parseTime accepts RFC 3339 or a unix timestamp in seconds or
// milliseconds.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	return time.Parse(time.RFC3339, s)
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// readRecords reads every row and drops a leading header, recognised by a
// first column that is not a time.
func readRecords(r io.Reader, minFields int) ([][]string, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, errors.Wrap(err, "read csv")
	}
	first := 1
	if len(records) > 0 {
		if _, err := parseTime(records[0][0]); err != nil {
			records = records[1:]
			first = 2
		}
	}
	for i, rec := range records {
		if len(rec) < minFields {
			return nil, 0, errors.Errorf("line %d: want at least %d fields, got %d", i+first, minFields, len(rec))
		}
	}
	return records, first, nil
}

// ReadBarsCSV reads rows of time, open, high, low, close, volume and an
// optional spread in points.
func ReadBarsCSV(r io.Reader) ([]types.Bar, error) {
	records, first, err := readRecords(r, 6)
	if err != nil {
		return nil, err
	}
	bars := make([]types.Bar, 0, len(records))
	for i, rec := range records {
		ts, err := parseTime(rec[0])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: time", i+first)
		}
		v, err := parseFloats(rec[1:6])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+first)
		}
		b := types.Bar{Time: ts, Open: v[0], High: v[1], Low: v[2], Close: v[3], Volume: v[4]}
		if len(rec) > 6 && strings.TrimSpace(rec[6]) != "" {
			sp, err := strconv.Atoi(strings.TrimSpace(rec[6]))
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: spread", i+first)
			}
			b.Spread = sp
		}
		if b.High < b.Low {
			return nil, errors.Errorf("line %d: high %v below low %v", i+first, b.High, b.Low)
		}
		bars = append(bars, b)
	}
	return bars, nil
}

// ReadTicksCSV reads rows of time, bid, ask.
func ReadTicksCSV(r io.Reader) ([]types.Tick, error) {
	records, first, err := readRecords(r, 3)
	if err != nil {
		return nil, err
	}
	ticks := make([]types.Tick, 0, len(records))
	for i, rec := range records {
		ts, err := parseTime(rec[0])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: time", i+first)
		}
		v, err := parseFloats(rec[1:3])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+first)
		}
		ticks = append(ticks, types.Tick{Time: ts, Bid: v[0], Ask: v[1]})
	}
	return ticks, nil
}
