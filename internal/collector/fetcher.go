package collector

import (
	"context"
	"errors"

	"B3Radar/internal/model"
)

// ErrNoData is returned when the provider answers without any usable bar.
var ErrNoData = errors.New("no data returned")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchSeries(ctx context.Context, ticker string) (*model.PriceSeries, error)
	Name() string
}
