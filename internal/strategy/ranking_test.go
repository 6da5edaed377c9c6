package strategy

import (
	"fmt"
	"math"
	"testing"

	"B3Radar/internal/model"
)

func TestComposite(t *testing.T) {
	tests := []struct {
		score, rank int
		want        float64
	}{
		{90, 1, 0.7*90 + 0.3*30},
		{50, 30, 0.7*50 + 0.3*1},
		{50, 0, 0.7 * 50},
		{50, 31, 0.7 * 50},
		{50, 99, 0.7 * 50},
	}
	for _, tt := range tests {
		if got := Composite(tt.score, tt.rank); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Composite(%d, %d) = %.2f, want %.2f", tt.score, tt.rank, got, tt.want)
		}
	}
}

func TestRank_BackfillsLowScores(t *testing.T) {
	universe := make(map[string]model.IndicatorSnapshot, 30)
	for i := 1; i <= 30; i++ {
		ticker := fmt.Sprintf("TST%02d", i)
		universe[ticker] = model.IndicatorSnapshot{Price: 10, RSI: 40, MA20: 11, MA50: 11, LiquidityRank: i}
	}

	top := Rank(universe)
	if len(top) != TopN {
		t.Fatalf("expected %d records, got %d", TopN, len(top))
	}
	for i, rec := range top {
		if rec.Score >= OpportunityScore {
			t.Errorf("unexpected score %d", rec.Score)
		}
		if want := fmt.Sprintf("TST%02d", i+1); rec.Ticker != want {
			t.Errorf("position %d: expected %s, got %s", i, want, rec.Ticker)
		}
	}
}

func TestRank_ThresholdBeforeComposite(t *testing.T) {
	// Score 65, very liquid: composite 45.5 + 0.3*(31-rank).
	mid := model.IndicatorSnapshot{Price: 10, RSI: 60, MACD: 0.1, ADX: 30, MA20: 9, MA50: 11}
	// Score 70, illiquid: composite 49.3.
	strong := model.IndicatorSnapshot{Price: 10, RSI: 60, MACD: 0.3, ADX: 30, MA20: 11, MA50: 11,
		BollingerLower: 9.5, BollingerUpper: 14, LiquidityRank: 30}

	universe := map[string]model.IndicatorSnapshot{"LATE3": strong}
	for i := 1; i <= 6; i++ {
		s := mid
		s.LiquidityRank = i
		universe[fmt.Sprintf("MIDS%d", i)] = s
	}
	if Score(mid) != 65 || Score(strong) != 70 {
		t.Fatalf("fixture scores drifted: %d / %d", Score(mid), Score(strong))
	}

	top := Rank(universe)
	want := []string{"LATE3", "MIDS1", "MIDS2", "MIDS3", "MIDS4"}
	if len(top) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(top))
	}
	for i, rec := range top {
		if rec.Ticker != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], rec.Ticker)
		}
	}
}

func TestRank_SmallUniverseAndTies(t *testing.T) {
	snap := scenarioSnapshot()
	snap.LiquidityRank = 0
	universe := map[string]model.IndicatorSnapshot{"VALE3": snap, "ABEV3": snap, "PETR4": snap}

	top := Rank(universe)
	if len(top) != 3 {
		t.Fatalf("expected 3 records, got %d", len(top))
	}
	for i, want := range []string{"ABEV3", "PETR4", "VALE3"} {
		if top[i].Ticker != want {
			t.Errorf("position %d: expected %s, got %s", i, want, top[i].Ticker)
		}
		if top[i].Score != 90 || math.Abs(top[i].Composite-63) > 1e-9 {
			t.Errorf("unexpected record %+v", top[i])
		}
	}
	if got := Rank(nil); len(got) != 0 {
		t.Errorf("expected empty ranking, got %d", len(got))
	}
}
