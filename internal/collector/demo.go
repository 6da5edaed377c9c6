package collector

import (
	"context"
	"hash/fnv"
	"math"
	"time"

	"B3Radar/internal/model"
)

// DemoFetcher generates deterministic synthetic bars for development and testing.
// The same ticker and anchor always produce the same series.
type DemoFetcher struct {
	Bars   int
	Anchor time.Time
	// Series overrides generation for specific tickers.
	Series map[string]*model.PriceSeries
	// Errors makes specific tickers fail.
	Errors map[string]error
}

func (m *DemoFetcher) Name() string { return "demo" }

func (m *DemoFetcher) FetchSeries(ctx context.Context, ticker string) (*model.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.Errors[ticker]; ok {
		return nil, err
	}
	if s, ok := m.Series[ticker]; ok {
		return s, nil
	}
	count := m.Bars
	if count <= 0 {
		count = 120
	}
	anchor := m.Anchor
	if anchor.IsZero() {
		anchor = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	}
	return &model.PriceSeries{
		Symbol:    ticker,
		Bars:      generateDemoBars(ticker, count, anchor),
		Currency:  "BRL",
		Exchange:  "SAO",
		FetchedAt: anchor,
	}, nil
}

// generateDemoBars builds a drifting sine wave whose base price, phase and trend are
// derived from the ticker hash.
func generateDemoBars(ticker string, count int, anchor time.Time) []model.OHLCV {
	h := fnv.New32a()
	h.Write([]byte(ticker))
	seed := h.Sum32()

	base := 10 + float64(seed%8000)/100 // 10..90
	phase := float64(seed%360) * math.Pi / 180
	drift := (float64(seed%21) - 10) / 10000 // -0.1%..+0.1% per bar
	volume := 1_000_000 + float64(seed%9_000_000)

	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		wave := 0.06 * math.Sin(phase+float64(i)/9)
		p := base * (1 + wave) * math.Pow(1+drift, float64(i))
		bars[i] = model.OHLCV{
			Time:   anchor.AddDate(0, 0, -(count - i)),
			Open:   p * 0.998,
			High:   p * 1.012,
			Low:    p * 0.988,
			Close:  p,
			Volume: volume * (1 + 0.3*math.Cos(phase+float64(i)/5)),
		}
	}
	return bars
}
