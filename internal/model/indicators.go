package model

import (
	"math"
	"time"
)

// IndicatorSnapshot holds every computed indicator for one ticker at a point in time.
// Price-like fields carry 2 decimals, MACD carries 3.
type IndicatorSnapshot struct {
	Ticker         string    `json:"ticker"`
	Price          float64   `json:"price"`
	ChangePct      float64   `json:"change"`
	Volume         float64   `json:"volume"`
	AvgVolume      float64   `json:"avgVolume"`
	RSI            float64   `json:"rsi"`
	MACD           float64   `json:"macd"`
	ADX            float64   `json:"adx"`
	MA20           float64   `json:"ma20"`
	MA50           float64   `json:"ma50"`
	BollingerUpper float64   `json:"bollingerUpper"`
	BollingerLower float64   `json:"bollingerLower"`
	Support        float64   `json:"support"`
	Resistance     float64   `json:"resistance"`
	LiquidityRank  int       `json:"liquidityRank"`
	UpdatedAt      time.Time `json:"lastUpdate"`
}

// HasPrice reports whether the snapshot carries a usable current price.
func (s IndicatorSnapshot) HasPrice() bool {
	return s.Price > 0 && !math.IsInf(s.Price, 0)
}

// BollingerPosition returns where the price sits inside the bands (0 = lower, 1 = upper).
// ok is false when the band range is degenerate.
func (s IndicatorSnapshot) BollingerPosition() (pos float64, ok bool) {
	width := s.BollingerUpper - s.BollingerLower
	if width == 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return 0, false
	}
	pos = (s.Price - s.BollingerLower) / width
	if math.IsNaN(pos) || math.IsInf(pos, 0) {
		return 0, false
	}
	return pos, true
}
