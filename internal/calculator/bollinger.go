package calculator

import (
	talib "github.com/markcheno/go-talib"
)

// Bands is a Bollinger envelope.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// CalculateBollinger returns SMA(period) +/- k population standard deviations of the last
// `period` closes. The period is clamped to the series length.
func CalculateBollinger(closes []float64, period int, k float64) Bands {
	if len(closes) == 0 {
		return Bands{}
	}
	if period <= 0 || period > len(closes) {
		period = len(closes)
	}

	if period >= 2 {
		upper, middle, lower := talib.BBands(closes, period, k, k, talib.SMA)
		last := len(closes) - 1
		return Bands{Upper: upper[last], Middle: middle[last], Lower: lower[last]}
	}

	// A single close has no dispersion.
	mid := closes[len(closes)-1]
	return Bands{Upper: mid, Middle: mid, Lower: mid}
}
