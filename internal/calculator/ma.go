package calculator

import (
	talib "github.com/markcheno/go-talib"
)

// CalculateSMA returns the mean of the last `period` values. The period is clamped to the
// series length; an empty series yields 0.
func CalculateSMA(values []float64, period int) float64 {
	if len(values) == 0 {
		return 0
	}
	if period <= 0 || period > len(values) {
		period = len(values)
	}
	out := talib.Sma(values, period)
	return out[len(out)-1]
}

// CalculateEMA seeds with the simple average of the first `period` values and folds in every
// later value with multiplier 2/(period+1). A series shorter than the period returns its
// last value.
func CalculateEMA(values []float64, period int) float64 {
	if len(values) == 0 {
		return 0
	}
	if period <= 0 || len(values) < period {
		return values[len(values)-1]
	}
	out := talib.Ema(values, period)
	return out[len(out)-1]
}

// CalculateMACD returns EMA(12) - EMA(26). No signal line is derived.
func CalculateMACD(closes []float64) float64 {
	return CalculateEMA(closes, 12) - CalculateEMA(closes, 26)
}
