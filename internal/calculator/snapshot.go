package calculator

import (
	"math"

	"B3Radar/internal/model"

	"github.com/shopspring/decimal"
)

const (
	priceDecimals = 2
	macdDecimals  = 3
)

// BuildSnapshot computes every indicator of the series. Rounding happens here only, after
// all chained calculations are done. An empty series produces neutral defaults.
func BuildSnapshot(ticker string, series *model.PriceSeries, liquidityRank int) model.IndicatorSnapshot {
	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()
	volumes := series.Volumes()

	snap := model.IndicatorSnapshot{
		Ticker:        ticker,
		LiquidityRank: liquidityRank,
		RSI:           CalculateRSI(closes, DefaultRSIPeriod),
		ADX:           CalculateADX(highs, lows, closes, DefaultADXPeriod),
	}
	if series != nil {
		snap.UpdatedAt = series.FetchedAt
	}
	if len(closes) == 0 {
		return snap
	}

	price := closes[len(closes)-1]
	previous := price
	if len(closes) > 1 {
		previous = closes[len(closes)-2]
	}
	if previous != 0 {
		snap.ChangePct = round((price-previous)/previous*100, priceDecimals)
	}

	bands := CalculateBollinger(closes, 20, 2)
	support, resistance := SupportResistance(highs, lows, DefaultRangeLookback)

	snap.Price = round(price, priceDecimals)
	snap.Volume = volumes[len(volumes)-1]
	snap.AvgVolume = round(CalculateSMA(volumes, 20), priceDecimals)
	snap.RSI = round(snap.RSI, priceDecimals)
	snap.ADX = round(snap.ADX, priceDecimals)
	snap.MACD = round(CalculateMACD(closes), macdDecimals)
	snap.MA20 = round(CalculateSMA(closes, 20), priceDecimals)
	snap.MA50 = round(CalculateSMA(closes, 50), priceDecimals)
	snap.BollingerUpper = round(bands.Upper, priceDecimals)
	snap.BollingerLower = round(bands.Lower, priceDecimals)
	snap.Support = round(support, priceDecimals)
	snap.Resistance = round(resistance, priceDecimals)
	return snap
}

func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
