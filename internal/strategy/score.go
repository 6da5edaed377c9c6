package strategy

import "B3Radar/internal/model"

// Score rates a snapshot from 0 to 100 by summing fixed contributions of RSI, MACD, ADX,
// trend alignment and Bollinger position.
func Score(snap model.IndicatorSnapshot) int {
	score := scoreRSI(snap.RSI) + scoreMACD(snap.MACD) + scoreADX(snap.ADX) + scoreTrend(snap)
	if pos, ok := snap.BollingerPosition(); ok {
		score += scoreBollinger(pos)
	}
	return clampScore(score)
}

func scoreRSI(rsi float64) int {
	switch {
	case rsi >= 50 && rsi <= 70:
		return 30
	case rsi < 30:
		return 25
	case rsi > 70 && rsi < 85:
		return 15
	}
	return 0
}

func scoreMACD(macd float64) int {
	switch {
	case macd > 0.2:
		return 20
	case macd > 0:
		return 10
	}
	return 0
}

func scoreADX(adx float64) int {
	switch {
	case adx > 40:
		return 15
	case adx > 25:
		return 10
	}
	return 0
}

func scoreTrend(snap model.IndicatorSnapshot) int {
	switch {
	case snap.Price > snap.MA20 && snap.Price > snap.MA50:
		return 25
	case snap.Price > snap.MA20:
		return 15
	}
	return 0
}

// scoreBollinger rewards prices near the lower band and penalizes the upper band.
func scoreBollinger(pos float64) int {
	switch {
	case pos < 0.3:
		return 10
	case pos > 0.7:
		return -10
	}
	return 0
}

func clampScore(score int) int {
	return max(0, min(100, score))
}
