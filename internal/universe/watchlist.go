package universe

import (
	"fmt"
	"slices"
	"sync"
)

// Watchlist is the ordered, de-duplicated set of tickers a user follows.
// It is safe for concurrent use.
type Watchlist struct {
	mu      sync.RWMutex
	tickers []string
}

// NewWatchlist builds a watchlist from the given tickers, skipping invalid or repeated ones.
func NewWatchlist(tickers ...string) *Watchlist {
	w := &Watchlist{}
	for _, t := range tickers {
		_ = w.Add(t)
	}
	return w
}

// Add appends a ticker after normalizing and validating it.
func (w *Watchlist) Add(ticker string) error {
	ticker = Normalize(ticker)
	if err := ValidateTicker(ticker); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if slices.Contains(w.tickers, ticker) {
		return fmt.Errorf("%w: %s", ErrDuplicateTicker, ticker)
	}
	w.tickers = append(w.tickers, ticker)
	return nil
}

// Remove deletes a ticker from the watchlist.
func (w *Watchlist) Remove(ticker string) error {
	ticker = Normalize(ticker)

	w.mu.Lock()
	defer w.mu.Unlock()
	i := slices.Index(w.tickers, ticker)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotInWatchlist, ticker)
	}
	w.tickers = slices.Delete(w.tickers, i, i+1)
	return nil
}

// Contains reports whether the ticker is watched.
func (w *Watchlist) Contains(ticker string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Contains(w.tickers, Normalize(ticker))
}

// Set replaces the watched tickers with a copy of tickers, unchecked.
func (w *Watchlist) Set(tickers []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tickers = slices.Clone(tickers)
}

// List returns a copy of the watched tickers in insertion order.
func (w *Watchlist) List() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.tickers)
}

// Union returns the watched tickers followed by any of extra not already present.
func (w *Watchlist) Union(extra []string) []string {
	out := w.List()
	for _, t := range extra {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
