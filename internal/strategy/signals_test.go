package strategy

import (
	"strings"
	"testing"

	"B3Radar/internal/model"
)

func containsPrefix(msgs []string, prefix string) bool {
	for _, m := range msgs {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}

func TestClassify_ScenarioDaily(t *testing.T) {
	sig := Classify(scenarioSnapshot(), model.Daily)
	if sig.Score != 90 {
		t.Errorf("expected score 90, got %d", sig.Score)
	}
	if len(sig.Entry) != 4 {
		t.Errorf("expected 4 entry signals, got %d: %v", len(sig.Entry), sig.Entry)
	}
	if len(sig.Exit) != 0 || len(sig.Warnings) != 0 {
		t.Errorf("expected no exits or warnings, got %v / %v", sig.Exit, sig.Warnings)
	}
	for _, prefix := range []string{"RSI in buying zone (65.0)", "Strong positive MACD (0.250)", "Strong trend established (ADX 45.0)", "Price above MA20"} {
		if !containsPrefix(sig.Entry, prefix) {
			t.Errorf("missing entry signal %q in %v", prefix, sig.Entry)
		}
	}
}

func TestClassify_TimeframeChangesSignals(t *testing.T) {
	daily := Classify(scenarioSnapshot(), model.Daily)
	yearly := Classify(scenarioSnapshot(), model.Yearly)

	// Support sits 4.65% below the price: outside the daily proximity band, inside the yearly one.
	if containsPrefix(daily.Entry, "Price near support") {
		t.Error("daily should not flag support proximity")
	}
	if !containsPrefix(yearly.Entry, "Price near support (R$ 17.20)") {
		t.Errorf("yearly should flag support proximity, got %v", yearly.Entry)
	}
}

func TestClassify_Bearish(t *testing.T) {
	snap := scenarioSnapshot()
	snap.Price = 15
	snap.RSI = 40
	snap.MACD = -0.3
	snap.BollingerLower = 14
	snap.BollingerUpper = 20

	sig := Classify(snap, model.Daily)
	want := []string{"Support breached", "Price below MA20", "Negative MACD", "Strong bearish trend"}
	for _, prefix := range want {
		if !containsPrefix(sig.Exit, prefix) {
			t.Errorf("missing exit signal %q in %v", prefix, sig.Exit)
		}
	}
	if len(sig.Exit) != len(want) {
		t.Errorf("expected %d exits, got %v", len(want), sig.Exit)
	}
	if containsPrefix(sig.Entry, "Strong trend established") {
		t.Error("a bearish ADX must not also produce a bullish trend entry")
	}
}

func TestClassify_Warnings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.IndicatorSnapshot)
		prefix string
	}{
		{"overbought", func(s *model.IndicatorSnapshot) { s.RSI = 80 }, "RSI overbought"},
		{"macd slightly negative", func(s *model.IndicatorSnapshot) { s.MACD = -0.05; s.ADX = 30 }, "MACD below zero"},
		{"sideways", func(s *model.IndicatorSnapshot) { s.ADX = 15 }, "Weak trend"},
		{"below ma20 only", func(s *model.IndicatorSnapshot) { s.MA20 = 18.5 }, "Price below MA20 (18.50)"},
		{"upper band", func(s *model.IndicatorSnapshot) { s.BollingerUpper = 18.1; s.BollingerLower = 16 }, "Price at the upper Bollinger band"},
		{"near resistance", func(s *model.IndicatorSnapshot) { s.Resistance = 18.2 }, "Price near resistance (R$ 18.20)"},
		{"low volume", func(s *model.IndicatorSnapshot) { s.Volume = 100; s.AvgVolume = 1000 }, "Low volume"},
	}
	for _, tt := range tests {
		snap := scenarioSnapshot()
		tt.mutate(&snap)
		sig := Classify(snap, model.Daily)
		if !containsPrefix(sig.Warnings, tt.prefix) {
			t.Errorf("%s: expected warning %q, got %v", tt.name, tt.prefix, sig.Warnings)
		}
	}
}

func TestClassify_ExtremeRSIExit(t *testing.T) {
	snap := scenarioSnapshot()
	snap.RSI = 86
	if sig := Classify(snap, model.Daily); !containsPrefix(sig.Exit, "RSI extremely overbought (86.0)") {
		t.Errorf("expected extreme RSI exit on daily, got %v", sig.Exit)
	}
	// Yearly overbought is 68, so 79 is already extreme there.
	snap.RSI = 79
	if sig := Classify(snap, model.Yearly); !containsPrefix(sig.Exit, "RSI extremely overbought") {
		t.Errorf("expected extreme RSI exit on yearly, got %v", sig.Exit)
	}
}

func TestClassify_NoPrice(t *testing.T) {
	sig := Classify(model.IndicatorSnapshot{Ticker: "VALE3", RSI: 50, ADX: 25}, model.Daily)
	if !containsPrefix(sig.Warnings, "No price data yet") {
		t.Errorf("expected missing price warning, got %v", sig.Warnings)
	}
	if len(sig.Exit) != 0 {
		t.Errorf("expected no exits without a price, got %v", sig.Exit)
	}
	if sig.Entry == nil || sig.Exit == nil || sig.Warnings == nil {
		t.Error("signal lists must never be nil")
	}
}
