package universe

import (
	"errors"
	"reflect"
	"testing"
)

func TestTop30(t *testing.T) {
	if len(Top30) != 30 {
		t.Fatalf("expected 30 tickers, got %d", len(Top30))
	}
	seen := map[string]bool{}
	for _, ticker := range Top30 {
		if err := ValidateLookup(ticker); err != nil {
			t.Errorf("universe ticker %s rejected for lookup: %v", ticker, err)
		}
		if seen[ticker] {
			t.Errorf("duplicate ticker %s", ticker)
		}
		seen[ticker] = true
	}
}

func TestValidateLookup(t *testing.T) {
	tests := []struct {
		ticker string
		valid  bool
	}{
		{"B3SA3", true},
		{"PETR4", true},
		{"TAEE11", true},
		{"PETR", false},
		{"B4SA3", false},
		{"", false},
	}
	for _, tt := range tests {
		err := ValidateLookup(tt.ticker)
		if (err == nil) != tt.valid {
			t.Errorf("ValidateLookup(%q) = %v, want valid=%v", tt.ticker, err, tt.valid)
		}
		if err != nil && !errors.Is(err, ErrInvalidTicker) {
			t.Errorf("ValidateLookup(%q) error %v is not ErrInvalidTicker", tt.ticker, err)
		}
	}

	// The strict pattern still gates the watchlist.
	if err := ValidateTicker("B3SA3"); !errors.Is(err, ErrInvalidTicker) {
		t.Errorf("ValidateTicker(B3SA3) = %v, want ErrInvalidTicker", err)
	}
	if err := NewWatchlist().Add("B3SA3"); !errors.Is(err, ErrInvalidTicker) {
		t.Errorf("Watchlist.Add(B3SA3) = %v, want ErrInvalidTicker", err)
	}
}

func TestLiquidityRank(t *testing.T) {
	tests := []struct {
		ticker string
		want   int
	}{
		{"PETR4", 1},
		{"VALE3", 2},
		{"LREN3", 30},
		{"TAEE11", Unranked},
		{"", Unranked},
	}
	for _, tt := range tests {
		if got := LiquidityRank(tt.ticker); got != tt.want {
			t.Errorf("LiquidityRank(%q) = %d, want %d", tt.ticker, got, tt.want)
		}
	}
}

func TestValidateTicker(t *testing.T) {
	tests := []struct {
		ticker string
		valid  bool
	}{
		{"PETR4", true},
		{"TAEE11", true},
		{"petr4", false},
		{"PETR", false},
		{"PET4", false},
		{"PETR123", false},
		{"PETR4.SA", false},
		{"", false},
	}
	for _, tt := range tests {
		err := ValidateTicker(tt.ticker)
		if tt.valid && err != nil {
			t.Errorf("%q: unexpected error %v", tt.ticker, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidTicker) {
			t.Errorf("%q: expected ErrInvalidTicker, got %v", tt.ticker, err)
		}
	}
}

func TestWatchlist(t *testing.T) {
	w := NewWatchlist("PETR4", "bad", "petr4", " vale3 ")
	if got := w.List(); !reflect.DeepEqual(got, []string{"PETR4", "VALE3"}) {
		t.Fatalf("unexpected initial list %v", got)
	}

	if err := w.Add("PETR4"); !errors.Is(err, ErrDuplicateTicker) {
		t.Errorf("expected ErrDuplicateTicker, got %v", err)
	}
	if err := w.Add("X1"); !errors.Is(err, ErrInvalidTicker) {
		t.Errorf("expected ErrInvalidTicker, got %v", err)
	}
	if err := w.Add("taee11"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.Contains("TAEE11") {
		t.Error("expected TAEE11 to be watched")
	}

	if err := w.Remove("VALE3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Remove("VALE3"); !errors.Is(err, ErrNotInWatchlist) {
		t.Errorf("expected ErrNotInWatchlist, got %v", err)
	}

	got := w.Union([]string{"ITUB4", "PETR4", "WEGE3"})
	want := []string{"PETR4", "TAEE11", "ITUB4", "WEGE3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Union = %v, want %v", got, want)
	}

	list := w.List()
	list[0] = "ZZZZ9"
	if w.List()[0] != "PETR4" {
		t.Error("List must return a copy")
	}
}
