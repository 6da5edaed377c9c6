package universe

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrInvalidTicker   = errors.New("invalid ticker")
	ErrDuplicateTicker = errors.New("ticker already in watchlist")
	ErrNotInWatchlist  = errors.New("ticker not in watchlist")
)

// Top30 is the fixed liquidity universe, most liquid first.
var Top30 = []string{
	"PETR4", "VALE3", "ITUB4", "BBDC4", "ABEV3", "BBAS3", "B3SA3", "WEGE3", "RENT3", "MGLU3",
	"ITSA4", "HAPV3", "ELET3", "SUZB3", "RADL3", "RAIL3", "JBSS3", "EMBR3", "PRIO3", "UGPA3",
	"CSAN3", "GGBR4", "VIVT3", "GOAU4", "CSNA3", "ENBR3", "ENEV3", "CPLE6", "SBSP3", "LREN3",
}

// Unranked is the liquidity rank of tickers outside Top30.
const Unranked = 31

var tickerPattern = regexp.MustCompile(`^[A-Z]{4}\d{1,2}$`)

var liquidityRanks = func() map[string]int {
	m := make(map[string]int, len(Top30))
	for i, t := range Top30 {
		m[t] = i + 1
	}
	return m
}()

// LiquidityRank returns the 1-based position of the ticker in Top30, or Unranked.
func LiquidityRank(ticker string) int {
	if r, ok := liquidityRanks[ticker]; ok {
		return r
	}
	return Unranked
}

// Normalize upper-cases and trims a user-supplied ticker.
func Normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// ValidateTicker checks the B3 ticker format: four letters followed by one or two digits.
// It gates watchlist additions.
func ValidateTicker(ticker string) error {
	if !tickerPattern.MatchString(ticker) {
		return fmt.Errorf("%w: %q", ErrInvalidTicker, ticker)
	}
	return nil
}

// ValidateLookup accepts every Top30 ticker (B3SA3 has a digit in its root) and otherwise
// applies ValidateTicker.
func ValidateLookup(ticker string) error {
	if LiquidityRank(ticker) != Unranked {
		return nil
	}
	return ValidateTicker(ticker)
}
