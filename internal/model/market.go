package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the raw bars of one ticker, oldest first, with null bars already removed.
type PriceSeries struct {
	Symbol    string
	Bars      []OHLCV
	Currency  string
	Exchange  string
	FetchedAt time.Time
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

func (s *PriceSeries) Closes() []float64  { return s.column(func(b OHLCV) float64 { return b.Close }) }
func (s *PriceSeries) Highs() []float64   { return s.column(func(b OHLCV) float64 { return b.High }) }
func (s *PriceSeries) Lows() []float64    { return s.column(func(b OHLCV) float64 { return b.Low }) }
func (s *PriceSeries) Volumes() []float64 { return s.column(func(b OHLCV) float64 { return b.Volume }) }

func (s *PriceSeries) column(pick func(OHLCV) float64) []float64 {
	out := make([]float64, s.Len())
	for i := range out {
		out[i] = pick(s.Bars[i])
	}
	return out
}
