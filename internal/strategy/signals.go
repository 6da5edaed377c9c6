package strategy

import (
	"fmt"

	"B3Radar/internal/model"
)

// Classify turns a snapshot into entry, exit and warning messages using the thresholds of
// the timeframe. Each indicator family is a ladder where the first matching tier fires; the
// families themselves are independent, so a snapshot usually fires several of them.
func Classify(snap model.IndicatorSnapshot, tf model.Timeframe) model.Signals {
	cfg := tf.Config()
	sig := model.Signals{
		Entry:    []string{},
		Exit:     []string{},
		Warnings: []string{},
		Score:    Score(snap),
	}

	classifyRSI(&sig, snap, cfg)
	classifyMACD(&sig, snap, cfg)
	classifyADX(&sig, snap, cfg)

	if !snap.HasPrice() {
		sig.Warnings = append(sig.Warnings, "No price data yet - price-based signals skipped")
		return sig
	}

	classifyMovingAverages(&sig, snap)
	classifyBollinger(&sig, snap)
	classifySupportResistance(&sig, snap, cfg)
	classifyVolume(&sig, snap, cfg)
	return sig
}

func classifyRSI(sig *model.Signals, snap model.IndicatorSnapshot, cfg model.TimeframeConfig) {
	rsi := snap.RSI
	switch {
	case rsi > cfg.RSIOverbought+10:
		sig.Exit = append(sig.Exit, fmt.Sprintf("RSI extremely overbought (%.1f)", rsi))
	case rsi > cfg.RSIOverbought:
		sig.Warnings = append(sig.Warnings, fmt.Sprintf("RSI overbought (%.1f) - wait for a pullback", rsi))
	case rsi >= 50:
		sig.Entry = append(sig.Entry, fmt.Sprintf("RSI in buying zone (%.1f)", rsi))
	case rsi < cfg.RSIOversold:
		sig.Entry = append(sig.Entry, fmt.Sprintf("RSI oversold (%.1f) - buying opportunity", rsi))
	}
}

func classifyMACD(sig *model.Signals, snap model.IndicatorSnapshot, cfg model.TimeframeConfig) {
	macd := snap.MACD
	switch {
	case macd > cfg.MACDStrong:
		sig.Entry = append(sig.Entry, fmt.Sprintf("Strong positive MACD (%.3f) - upward momentum", macd))
	case macd > 0:
		sig.Entry = append(sig.Entry, fmt.Sprintf("Positive MACD (%.3f)", macd))
	case macd < -cfg.MACDStrong:
		sig.Exit = append(sig.Exit, fmt.Sprintf("Negative MACD (%.3f) - downward momentum", macd))
	case macd < 0:
		sig.Warnings = append(sig.Warnings, fmt.Sprintf("MACD below zero (%.3f)", macd))
	}
}

func classifyADX(sig *model.Signals, snap model.IndicatorSnapshot, cfg model.TimeframeConfig) {
	adx := snap.ADX
	switch {
	case adx > cfg.ADXStrong && snap.MACD < 0:
		sig.Exit = append(sig.Exit, fmt.Sprintf("Strong bearish trend (ADX %.1f, MACD %.3f)", adx, snap.MACD))
	case adx > cfg.ADXStrong:
		sig.Entry = append(sig.Entry, fmt.Sprintf("Strong trend established (ADX %.1f)", adx))
	case adx > cfg.ADXMin:
		sig.Entry = append(sig.Entry, fmt.Sprintf("Moderate trend (ADX %.1f)", adx))
	case adx < cfg.ADXMin-5:
		sig.Warnings = append(sig.Warnings, fmt.Sprintf("Weak trend - sideways market (ADX %.1f)", adx))
	}
}

func classifyMovingAverages(sig *model.Signals, snap model.IndicatorSnapshot) {
	switch {
	case snap.Price > snap.MA20 && snap.Price > snap.MA50:
		sig.Entry = append(sig.Entry, fmt.Sprintf("Price above MA20 (%.2f) and MA50 (%.2f) - uptrend", snap.MA20, snap.MA50))
	case snap.Price < snap.MA20 && snap.Price < snap.MA50:
		sig.Exit = append(sig.Exit, fmt.Sprintf("Price below MA20 (%.2f) and MA50 (%.2f) - downtrend", snap.MA20, snap.MA50))
	case snap.Price < snap.MA20:
		sig.Warnings = append(sig.Warnings, fmt.Sprintf("Price below MA20 (%.2f)", snap.MA20))
	}
}

func classifyBollinger(sig *model.Signals, snap model.IndicatorSnapshot) {
	pos, ok := snap.BollingerPosition()
	if !ok {
		return
	}
	switch {
	case pos >= 0.9:
		sig.Warnings = append(sig.Warnings, fmt.Sprintf("Price at the upper Bollinger band (R$ %.2f) - possible reversal", snap.BollingerUpper))
	case pos <= 0.1:
		sig.Entry = append(sig.Entry, fmt.Sprintf("Price at the lower Bollinger band (R$ %.2f) - buying opportunity", snap.BollingerLower))
	}
}

func classifySupportResistance(sig *model.Signals, snap model.IndicatorSnapshot, cfg model.TimeframeConfig) {
	if snap.Support > 0 {
		switch {
		case snap.Price < snap.Support:
			sig.Exit = append(sig.Exit, fmt.Sprintf("Support breached (R$ %.2f)", snap.Support))
		case (snap.Price-snap.Support)/snap.Support*100 <= cfg.ProximityPct:
			sig.Entry = append(sig.Entry, fmt.Sprintf("Price near support (R$ %.2f)", snap.Support))
		}
	}
	if snap.Resistance > 0 && snap.Price <= snap.Resistance &&
		(snap.Resistance-snap.Price)/snap.Resistance*100 <= cfg.ProximityPct {
		sig.Warnings = append(sig.Warnings, fmt.Sprintf("Price near resistance (R$ %.2f)", snap.Resistance))
	}
}

func classifyVolume(sig *model.Signals, snap model.IndicatorSnapshot, cfg model.TimeframeConfig) {
	if snap.AvgVolume > 0 && snap.Volume < cfg.LowVolumeRatio*snap.AvgVolume {
		sig.Warnings = append(sig.Warnings, fmt.Sprintf("Low volume (%.0f vs average %.0f)", snap.Volume, snap.AvgVolume))
	}
}
