package calculator

import (
	"math"
	"testing"
	"time"

	"B3Radar/internal/model"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func ramp(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func TestCalculateRSI_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   float64
	}{
		{"insufficient data", ramp(10, 1, 10), 50},
		{"empty", nil, 50},
		{"all gains", ramp(10, 0.5, 30), 100},
		{"all losses", ramp(30, -0.5, 30), 0},
		{"flat series hits zero-loss branch", ramp(10, 0, 30), 100},
	}
	for _, tt := range tests {
		got := CalculateRSI(tt.closes, 14)
		if got != tt.want {
			t.Errorf("%s: expected RSI %.2f, got %.2f", tt.name, tt.want, got)
		}
	}
}

func TestCalculateRSI_Mixed(t *testing.T) {
	// 14 alternating changes of +2 and -1 over the last window.
	closes := []float64{100}
	for i := 0; i < 20; i++ {
		last := closes[len(closes)-1]
		if i%2 == 0 {
			closes = append(closes, last+2)
		} else {
			closes = append(closes, last-1)
		}
	}
	got := CalculateRSI(closes, 14)
	// 7 gains of 2 and 7 losses of 1 -> rs = 2 -> rsi = 66.67
	if !almostEqual(got, 100-100.0/3, 1e-9) {
		t.Errorf("expected RSI 66.67, got %.4f", got)
	}
	if got < 0 || got > 100 {
		t.Errorf("RSI out of range: %.2f", got)
	}
}

func TestCalculateSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	if got := CalculateSMA(values, 3); !almostEqual(got, 5, 1e-12) {
		t.Errorf("expected SMA 5, got %.4f", got)
	}
	// Period longer than the series is clamped.
	if got := CalculateSMA(values, 50); !almostEqual(got, 3.5, 1e-12) {
		t.Errorf("expected clamped SMA 3.5, got %.4f", got)
	}
	if got := CalculateSMA(nil, 20); got != 0 {
		t.Errorf("expected 0 for empty series, got %.4f", got)
	}
}

func TestCalculateEMA(t *testing.T) {
	values := ramp(10, 1, 30)
	period := 12

	// Reference: SMA seed then fold.
	k := 2.0 / float64(period+1)
	want := 0.0
	for _, v := range values[:period] {
		want += v
	}
	want /= float64(period)
	for _, v := range values[period:] {
		want = (v-want)*k + want
	}

	if got := CalculateEMA(values, period); !almostEqual(got, want, 1e-9) {
		t.Errorf("expected EMA %.6f, got %.6f", want, got)
	}
	if got := CalculateEMA([]float64{4, 5, 6}, 12); got != 6 {
		t.Errorf("short series should return last value, got %.4f", got)
	}
}

func TestCalculateMACD_ShortSeriesIsZero(t *testing.T) {
	if got := CalculateMACD([]float64{10, 11, 12}); got != 0 {
		t.Errorf("expected MACD 0 when both EMAs fall back to last price, got %.4f", got)
	}
	if got := CalculateMACD(ramp(10, 0.5, 60)); got <= 0 {
		t.Errorf("expected positive MACD on rising series, got %.4f", got)
	}
}

func TestCalculateADX(t *testing.T) {
	if got := CalculateADX(ramp(10, 1, 5), ramp(9, 1, 5), ramp(9.5, 1, 5), 14); got != 25 {
		t.Errorf("insufficient data should yield 25, got %.2f", got)
	}

	flat := ramp(10, 0, 30)
	if got := CalculateADX(flat, flat, flat, 14); got != 25 {
		t.Errorf("zero range should yield 25, got %.2f", got)
	}

	// Steady uptrend: every bar has positive DM only, so DX = 100.
	highs := ramp(11, 1, 30)
	lows := ramp(9, 1, 30)
	closes := ramp(10, 1, 30)
	if got := CalculateADX(highs, lows, closes, 14); !almostEqual(got, 100, 1e-9) {
		t.Errorf("expected ADX 100 for pure uptrend, got %.4f", got)
	}
}

func TestCalculateBollinger(t *testing.T) {
	closes := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	bands := CalculateBollinger(closes, 20, 2)
	// mean 5, population stddev 2
	if !almostEqual(bands.Middle, 5, 1e-9) || !almostEqual(bands.Upper, 9, 1e-6) || !almostEqual(bands.Lower, 1, 1e-6) {
		t.Errorf("unexpected bands: %+v", bands)
	}

	single := CalculateBollinger([]float64{12.5}, 20, 2)
	if single.Upper != 12.5 || single.Lower != 12.5 {
		t.Errorf("single close should collapse the bands, got %+v", single)
	}
}

func TestSupportResistance(t *testing.T) {
	highs := ramp(100, 1, 40) // last 20: 120..139
	lows := ramp(50, 1, 40)   // last 20: 70..89
	support, resistance := SupportResistance(highs, lows, 20)
	if support != 70 || resistance != 139 {
		t.Errorf("expected 70/139, got %.2f/%.2f", support, resistance)
	}
	if s, r := SupportResistance(nil, nil, 20); s != 0 || r != 0 {
		t.Errorf("expected zeros for empty input, got %.2f/%.2f", s, r)
	}
}

func TestBuildSnapshot_EmptySeries(t *testing.T) {
	snap := BuildSnapshot("PETR4", &model.PriceSeries{Symbol: "PETR4"}, 1)
	if snap.RSI != 50 || snap.ADX != 25 {
		t.Errorf("expected neutral RSI/ADX, got %.2f/%.2f", snap.RSI, snap.ADX)
	}
	if snap.Price != 0 || snap.MACD != 0 || snap.MA20 != 0 || snap.Support != 0 {
		t.Errorf("expected zero price-like fields, got %+v", snap)
	}
	if snap.HasPrice() {
		t.Error("empty snapshot must not report a price")
	}

	nilSnap := BuildSnapshot("VALE3", nil, 2)
	if nilSnap.RSI != 50 || nilSnap.ADX != 25 {
		t.Errorf("nil series should yield neutral defaults, got %+v", nilSnap)
	}
}

func TestBuildSnapshot_RoundsAtBoundary(t *testing.T) {
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	series := &model.PriceSeries{Symbol: "ITUB4", FetchedAt: base}
	for i := 0; i < 60; i++ {
		c := 30 + float64(i)*0.137
		series.Bars = append(series.Bars, model.OHLCV{
			Time:   base.AddDate(0, 0, i-60),
			Open:   c - 0.05,
			High:   c + 0.211,
			Low:    c - 0.187,
			Close:  c,
			Volume: 1_000_000 + float64(i)*1000,
		})
	}

	snap := BuildSnapshot("ITUB4", series, 3)
	for name, v := range map[string]float64{
		"price": snap.Price, "ma20": snap.MA20, "ma50": snap.MA50,
		"upper": snap.BollingerUpper, "lower": snap.BollingerLower,
		"support": snap.Support, "resistance": snap.Resistance, "rsi": snap.RSI,
	} {
		if !almostEqual(v*100, math.Round(v*100), 1e-6) {
			t.Errorf("%s not rounded to 2 decimals: %v", name, v)
		}
	}
	if !almostEqual(snap.MACD*1000, math.Round(snap.MACD*1000), 1e-6) {
		t.Errorf("macd not rounded to 3 decimals: %v", snap.MACD)
	}
	if snap.LiquidityRank != 3 || !snap.UpdatedAt.Equal(base) {
		t.Errorf("unexpected metadata: %+v", snap)
	}
	if !(snap.BollingerLower <= snap.MA20 && snap.MA20 <= snap.BollingerUpper) {
		t.Errorf("expected lower <= ma20 <= upper, got %+v", snap)
	}
	if snap.Support > snap.Resistance {
		t.Errorf("expected support <= resistance, got %.2f > %.2f", snap.Support, snap.Resistance)
	}
	if snap.RSI != 100 {
		t.Errorf("monotonic series should have RSI 100, got %.2f", snap.RSI)
	}
}
