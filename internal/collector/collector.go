package collector

import (
	"context"
	"sync"
	"time"

	"B3Radar/internal/calculator"
	"B3Radar/internal/model"
	"B3Radar/internal/universe"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Collector fetches the universe and computes one snapshot per ticker.
type Collector struct {
	Fetcher     Fetcher
	Concurrency int
	Pacing      time.Duration
	logger      *zap.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, concurrency int, pacing time.Duration, logger *zap.Logger) *Collector {
	return &Collector{
		Fetcher:     fetcher,
		Concurrency: max(concurrency, 1),
		Pacing:      pacing,
		logger:      logger.With(zap.String("component", "collector")),
	}
}

// Collect fetches every ticker with bounded concurrency and returns the snapshots that could be
// built. A ticker whose fetch fails is logged and left out; only a cancelled context fails
// the whole call.
func (c *Collector) Collect(ctx context.Context, tickers []string) (map[string]model.IndicatorSnapshot, error) {
	var (
		mu    sync.Mutex
		snaps = make(map[string]model.IndicatorSnapshot, len(tickers))
	)

	var pace <-chan time.Time
	if c.Pacing > 0 {
		pacer := time.NewTicker(c.Pacing)
		defer pacer.Stop()
		pace = pacer.C
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Concurrency)
	for i, ticker := range tickers {
		if pace != nil && i > 0 {
			select {
			case <-pace:
			case <-gctx.Done():
			}
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			series, err := c.Fetcher.FetchSeries(gctx, ticker)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				c.logger.Warn("fetch failed, skipping ticker", zap.String("ticker", ticker), zap.Error(err))
				return nil
			}
			snap := calculator.BuildSnapshot(ticker, series, universe.LiquidityRank(ticker))
			mu.Lock()
			snaps[ticker] = snap
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.logger.Info("collection done", zap.Int("requested", len(tickers)), zap.Int("collected", len(snaps)))
	return snaps, nil
}

// CollectOne fetches a single ticker and returns its series.
func (c *Collector) CollectOne(ctx context.Context, ticker string) (*model.PriceSeries, error) {
	return c.Fetcher.FetchSeries(ctx, ticker)
}
