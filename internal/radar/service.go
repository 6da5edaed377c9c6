package radar

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"B3Radar/internal/alert"
	"B3Radar/internal/collector"
	"B3Radar/internal/model"
	"B3Radar/internal/recorder"
	"B3Radar/internal/strategy"
	"B3Radar/internal/universe"

	"go.uber.org/zap"
)

// ErrNoSnapshots is returned when a refresh could not collect any ticker.
var ErrNoSnapshots = errors.New("no ticker could be collected")

// Update is published to listeners after every successful refresh.
type Update struct {
	At        time.Time                 `json:"at"`
	Timeframe model.Timeframe           `json:"timeframe"`
	Top       []model.OpportunityRecord `json:"top"`
	Alerts    []model.Alert             `json:"alerts"`
}

// Listener receives refresh updates. It must not block.
type Listener func(Update)

// Service owns the latest refresh results, the watchlist and the alert book.
// It is safe for concurrent use.
type Service struct {
	collector *collector.Collector
	recorder  recorder.Recorder
	alerts    *alert.Book
	watchlist *universe.Watchlist
	watchMu   sync.Mutex // serializes watchlist change + save
	timeframe model.Timeframe
	logger    *zap.Logger

	mu          sync.RWMutex
	snapshots   map[string]model.IndicatorSnapshot
	top         []model.OpportunityRecord
	lastRefresh time.Time
	listeners   []Listener
	now         func() time.Time
}

// NewService creates a Service, restoring the watchlist and recent alerts from the recorder.
func NewService(col *collector.Collector, rec recorder.Recorder, tf model.Timeframe, logger *zap.Logger) (*Service, error) {
	s := &Service{
		collector: col,
		recorder:  rec,
		alerts:    alert.NewBook(),
		watchlist: universe.NewWatchlist(),
		timeframe: tf,
		logger:    logger.With(zap.String("component", "radar")),
		snapshots: make(map[string]model.IndicatorSnapshot),
		now:       time.Now,
	}

	saved, err := rec.LoadWatchlist()
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	for _, t := range saved {
		if err := s.watchlist.Add(t); err != nil {
			s.logger.Warn("dropping stored watchlist ticker", zap.String("ticker", t), zap.Error(err))
		}
	}

	recent, err := rec.RecentAlerts(alert.DefaultHistory)
	if err != nil {
		return nil, fmt.Errorf("load alerts: %w", err)
	}
	s.alerts.Restore(recent)
	return s, nil
}

// Subscribe registers a listener for refresh updates.
func (s *Service) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Timeframe returns the default timeframe used for refreshes.
func (s *Service) Timeframe() model.Timeframe {
	return s.timeframe
}

// Refresh collects the universe plus the watchlist, ranks the universe, raises alerts for the
// top opportunities and publishes the result. A failed refresh keeps the previous results.
func (s *Service) Refresh(ctx context.Context) (Update, error) {
	tickers := mergeTickers(universe.Top30, s.watchlist.List())
	snaps, err := s.collector.Collect(ctx, tickers)
	if err != nil {
		return Update{}, fmt.Errorf("collect: %w", err)
	}
	if len(snaps) == 0 {
		return Update{}, ErrNoSnapshots
	}

	ranked := make(map[string]model.IndicatorSnapshot, len(universe.Top30))
	for _, t := range universe.Top30 {
		if snap, ok := snaps[t]; ok {
			ranked[t] = snap
		}
	}
	top := strategy.Rank(ranked)

	analyses := make([]model.Analysis, 0, len(top))
	for _, rec := range top {
		analyses = append(analyses, strategy.AnalyzeSnapshot(rec.IndicatorSnapshot, s.timeframe))
	}
	raised := s.alerts.Evaluate(analyses)

	now := s.now()
	s.mu.Lock()
	s.snapshots = snaps
	s.top = top
	s.lastRefresh = now
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	if err := s.recorder.RecordRefresh(&recorder.RefreshSnapshot{
		At: now, Timeframe: s.timeframe, Collected: len(snaps), Top: top,
	}); err != nil {
		s.logger.Error("record refresh", zap.Error(err))
	}
	if len(raised) > 0 {
		if err := s.recorder.RecordAlerts(raised); err != nil {
			s.logger.Error("record alerts", zap.Error(err))
		}
	}

	update := Update{At: now, Timeframe: s.timeframe, Top: top, Alerts: raised}
	for _, l := range listeners {
		l(update)
	}

	s.logger.Info("refresh done",
		zap.Int("collected", len(snaps)),
		zap.Int("top", len(top)),
		zap.Int("alerts", len(raised)))
	return update, nil
}

// Top returns the latest ranked opportunities.
func (s *Service) Top() []model.OpportunityRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.top)
}

// LastRefresh returns the time of the last successful refresh (zero before the first one).
func (s *Service) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}

// Snapshot returns the cached snapshot of a ticker from the last refresh.
func (s *Service) Snapshot(ticker string) (model.IndicatorSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[ticker]
	return snap, ok
}

// Analyze returns the full analysis of a ticker. The last refresh is reused when it covered
// the ticker; otherwise the series is fetched on demand.
func (s *Service) Analyze(ctx context.Context, ticker string, tf model.Timeframe) (model.Analysis, error) {
	ticker = universe.Normalize(ticker)
	if err := universe.ValidateLookup(ticker); err != nil {
		return model.Analysis{}, err
	}
	if snap, ok := s.Snapshot(ticker); ok {
		return strategy.AnalyzeSnapshot(snap, tf), nil
	}

	series, err := s.collector.CollectOne(ctx, ticker)
	if err != nil {
		return model.Analysis{}, fmt.Errorf("fetch %s: %w", ticker, err)
	}
	return strategy.Analyze(ticker, series, universe.LiquidityRank(ticker), tf), nil
}

// TopAnalyses analyzes the current top opportunities under the given timeframe.
func (s *Service) TopAnalyses(tf model.Timeframe) []model.Analysis {
	top := s.Top()
	out := make([]model.Analysis, 0, len(top))
	for _, rec := range top {
		out = append(out, strategy.AnalyzeSnapshot(rec.IndicatorSnapshot, tf))
	}
	return out
}

// Watchlist returns the user tickers followed by the current top opportunities.
func (s *Service) Watchlist() []string {
	top := s.Top()
	tickers := make([]string, 0, len(top))
	for _, rec := range top {
		tickers = append(tickers, rec.Ticker)
	}
	return s.watchlist.Union(tickers)
}

// UserWatchlist returns only the tickers the user added.
func (s *Service) UserWatchlist() []string {
	return s.watchlist.List()
}

// Watch adds a ticker to the user watchlist and persists it.
func (s *Service) Watch(ticker string) error {
	return s.updateWatchlist(func() error { return s.watchlist.Add(ticker) })
}

// Unwatch removes a ticker from the user watchlist and persists it.
func (s *Service) Unwatch(ticker string) error {
	return s.updateWatchlist(func() error { return s.watchlist.Remove(ticker) })
}

// updateWatchlist applies change and persists the result. A failed save restores the
// previous list so memory and storage agree.
func (s *Service) updateWatchlist(change func() error) error {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	prev := s.watchlist.List()
	if err := change(); err != nil {
		return err
	}
	if err := s.recorder.SaveWatchlist(s.watchlist.List()); err != nil {
		s.watchlist.Set(prev)
		return fmt.Errorf("save watchlist: %w", err)
	}
	return nil
}

// Alerts returns the retained alerts, newest first.
func (s *Service) Alerts() []model.Alert {
	return s.alerts.Recent()
}

func mergeTickers(lists ...[]string) []string {
	var out []string
	for _, list := range lists {
		for _, t := range list {
			if !slices.Contains(out, t) {
				out = append(out, t)
			}
		}
	}
	return out
}
