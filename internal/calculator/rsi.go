package calculator

// DefaultRSIPeriod is the look-back used for the snapshot RSI.
const DefaultRSIPeriod = 14

// CalculateRSI averages gains and losses over the last `period` close-to-close changes.
// The period is clamped to the series length, so fewer than period+1 closes yields the
// neutral 50. A window without any loss yields 100.
func CalculateRSI(closes []float64, period int) float64 {
	if period <= 0 {
		period = DefaultRSIPeriod
	}
	if period > len(closes) {
		period = len(closes)
	}
	if len(closes) < period+1 {
		return 50.0 // default when data insufficient
	}

	var gains, losses float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change // make positive
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
