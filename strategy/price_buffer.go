package strategy

import "math"

// series keeps a rolling window of recent values. The Gator strategy feeds
// it the total oscillator spread of every evaluated bar.
type series struct {
	max int
	buf []float64
}

func newSeries(max int) *series {
	if max <= 0 {
		max = 16
	}
	return &series{max: max}
}

func (s *series) Add(v float64) {
	s.buf = append(s.buf, v)
	if len(s.buf) > s.max {
		s.buf = s.buf[len(s.buf)-s.max:]
	}
}

func (s *series) Values() []float64 {
	out := make([]float64, len(s.buf))
	copy(out, s.buf)
	return out
}

func (s *series) Len() int {
	return len(s.buf)
}

func (s *series) Last() float64 {
	if len(s.buf) == 0 {
		return 0
	}
	return s.buf[len(s.buf)-1]
}

// MeanBefore averages up to n values preceding the last one. It returns
// NaN when there are none.
func (s *series) MeanBefore(n int) float64 {
	end := len(s.buf) - 1
	start := end - n
	if start < 0 {
		start = 0
	}
	if end <= start {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range s.buf[start:end] {
		sum += v
	}
	return sum / float64(end-start)
}
