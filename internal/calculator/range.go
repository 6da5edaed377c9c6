package calculator

import "math"

// DefaultRangeLookback is the number of bars scanned for support and resistance.
const DefaultRangeLookback = 20

// SupportResistance scans the most recent `lookback` bars and returns the lowest low and the
// highest high. An empty series yields zeros.
func SupportResistance(highs, lows []float64, lookback int) (support, resistance float64) {
	if lookback <= 0 {
		lookback = DefaultRangeLookback
	}
	if len(highs) == 0 || len(lows) == 0 {
		return 0, 0
	}

	support = math.Inf(1)
	for i := max(0, len(lows)-lookback); i < len(lows); i++ {
		support = math.Min(support, lows[i])
	}
	resistance = math.Inf(-1)
	for i := max(0, len(highs)-lookback); i < len(highs); i++ {
		resistance = math.Max(resistance, highs[i])
	}
	return support, resistance
}
