package strategy

import (
	"math"
	"testing"

	"B3Radar/internal/model"
)

func scenarioSnapshot() model.IndicatorSnapshot {
	return model.IndicatorSnapshot{
		Ticker:         "PETR4",
		Price:          18.00,
		RSI:            65,
		MACD:           0.25,
		ADX:            45,
		MA20:           17.50,
		MA50:           17.00,
		BollingerUpper: 19.50,
		BollingerLower: 16.50,
		Support:        17.20,
		Resistance:     19.00,
		LiquidityRank:  1,
	}
}

func TestScore_Scenario(t *testing.T) {
	// 30 (rsi) + 20 (macd) + 15 (adx) + 25 (trend); bollinger position 0.5 adds nothing.
	if got := Score(scenarioSnapshot()); got != 90 {
		t.Errorf("expected score 90, got %d", got)
	}
}

func TestScore_Tiers(t *testing.T) {
	base := model.IndicatorSnapshot{Price: 10, RSI: 40, MA20: 11, MA50: 11}
	tests := []struct {
		name   string
		mutate func(*model.IndicatorSnapshot)
		want   int
	}{
		{"nothing fires", func(s *model.IndicatorSnapshot) {}, 0},
		{"oversold rsi", func(s *model.IndicatorSnapshot) { s.RSI = 25 }, 25},
		{"rsi 70 is still favorable", func(s *model.IndicatorSnapshot) { s.RSI = 70 }, 30},
		{"rsi overbought tier", func(s *model.IndicatorSnapshot) { s.RSI = 80 }, 15},
		{"rsi 85 scores nothing", func(s *model.IndicatorSnapshot) { s.RSI = 85 }, 0},
		{"weak macd", func(s *model.IndicatorSnapshot) { s.MACD = 0.1 }, 10},
		{"strong macd", func(s *model.IndicatorSnapshot) { s.MACD = 0.21 }, 20},
		{"moderate adx", func(s *model.IndicatorSnapshot) { s.ADX = 30 }, 10},
		{"strong adx", func(s *model.IndicatorSnapshot) { s.ADX = 41 }, 15},
		{"above ma20 only", func(s *model.IndicatorSnapshot) { s.MA20 = 9 }, 15},
		{"above both", func(s *model.IndicatorSnapshot) { s.MA20, s.MA50 = 9, 9 }, 25},
		{"near lower band", func(s *model.IndicatorSnapshot) { s.BollingerLower, s.BollingerUpper = 9.5, 14 }, 10},
	}
	for _, tt := range tests {
		snap := base
		tt.mutate(&snap)
		if got := Score(snap); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestScore_Clamped(t *testing.T) {
	tests := []struct {
		name string
		snap model.IndicatorSnapshot
	}{
		{"upper band penalty alone", model.IndicatorSnapshot{Price: 20, RSI: 90, MACD: -1, ADX: 10, MA20: 25, MA50: 25, BollingerLower: 10, BollingerUpper: 21}},
		{"zero band width", model.IndicatorSnapshot{Price: 20, RSI: 60, BollingerLower: 20, BollingerUpper: 20}},
		{"nan bands", model.IndicatorSnapshot{Price: 20, RSI: 60, BollingerLower: math.NaN(), BollingerUpper: 21}},
		{"nan everything", model.IndicatorSnapshot{Price: math.NaN(), RSI: math.NaN(), MACD: math.NaN(), ADX: math.NaN()}},
		{"infinite bands", model.IndicatorSnapshot{Price: 20, BollingerLower: math.Inf(-1), BollingerUpper: math.Inf(1)}},
		{"empty", model.IndicatorSnapshot{}},
	}
	for _, tt := range tests {
		got := Score(tt.snap)
		if got < 0 || got > 100 {
			t.Errorf("%s: score %d out of [0,100]", tt.name, got)
		}
	}
	if got := Score(tests[0].snap); got != 0 {
		t.Errorf("expected negative total to clamp to 0, got %d", got)
	}
}
