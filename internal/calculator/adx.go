package calculator

import "math"

// DefaultADXPeriod is the look-back used for the snapshot ADX.
const DefaultADXPeriod = 14

// neutralADX is returned whenever directional movement cannot be measured.
const neutralADX = 25.0

// CalculateADX approximates the directional index over the last `period` bars:
// it sums +DM, -DM and true range, then DX = |DI+ - DI-| / (DI+ + DI-) * 100.
// Short input or an undefined (or zero) DX yields 25.
func CalculateADX(highs, lows, closes []float64, period int) float64 {
	if period <= 0 {
		period = DefaultADXPeriod
	}
	n := minLen(highs, lows, closes)
	if n < period+1 {
		return neutralADX
	}

	var dmPlus, dmMinus, tr float64
	for i := max(1, n-period); i < n; i++ {
		highDiff := highs[i] - highs[i-1]
		lowDiff := lows[i-1] - lows[i]

		if highDiff > lowDiff && highDiff > 0 {
			dmPlus += highDiff
		}
		if lowDiff > highDiff && lowDiff > 0 {
			dmMinus += lowDiff
		}

		tr += math.Max(highs[i]-lows[i], math.Max(
			math.Abs(highs[i]-closes[i-1]),
			math.Abs(lows[i]-closes[i-1]),
		))
	}

	diPlus := dmPlus / tr * 100
	diMinus := dmMinus / tr * 100
	dx := math.Abs(diPlus-diMinus) / (diPlus + diMinus) * 100
	if math.IsNaN(dx) || math.IsInf(dx, 0) || dx == 0 {
		return neutralADX
	}
	return dx
}

func minLen(series ...[]float64) int {
	n := math.MaxInt
	for _, s := range series {
		n = min(n, len(s))
	}
	return n
}
