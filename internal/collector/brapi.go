package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"B3Radar/internal/model"

	"go.uber.org/zap"
)

// BrapiFetcher implements Fetcher using the brapi.dev quote API, a B3-native source.
type BrapiFetcher struct {
	BaseURL  string
	APIKey   string
	Range    string
	Interval string
	Client   *http.Client
	retry    retryPolicy
	logger   *zap.Logger
	now      func() time.Time
}

// NewBrapiFetcher creates a new fetcher with optional proxy support.
func NewBrapiFetcher(opts HTTPOptions, apiKey string, logger *zap.Logger) *BrapiFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &BrapiFetcher{
		BaseURL:  strings.TrimRight(opts.BaseURL, "/"),
		APIKey:   apiKey,
		Range:    opts.Range,
		Interval: opts.Interval,
		Client:   newHTTPClient(opts.Proxy, opts.Timeout),
		retry:    retryPolicy{MaxRetries: opts.MaxRetries, RetryInterval: opts.RetryInterval},
		logger:   logger.With(zap.String("component", "brapi")),
		now:      time.Now,
	}
}

func (f *BrapiFetcher) Name() string { return "brapi" }

// brapiBar is one entry of historicalDataPrice. Fields are nullable upstream.
type brapiBar struct {
	Date   int64    `json:"date"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume *float64 `json:"volume"`
}

type brapiQuote struct {
	Results []struct {
		Symbol              string     `json:"symbol"`
		Currency            string     `json:"currency"`
		HistoricalDataPrice []brapiBar `json:"historicalDataPrice"`
	} `json:"results"`
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func (f *BrapiFetcher) FetchSeries(ctx context.Context, ticker string) (*model.PriceSeries, error) {
	q := url.Values{}
	q.Set("range", f.Range)
	q.Set("interval", f.Interval)
	endpoint := fmt.Sprintf("%s/api/quote/%s?%s", f.BaseURL, url.PathEscape(ticker), q.Encode())

	header := http.Header{}
	if f.APIKey != "" {
		header.Set("Authorization", "Bearer "+f.APIKey)
	}

	var quote brapiQuote
	if err := getJSON(ctx, f.Client, f.retry, f.logger, endpoint, header, &quote); err != nil {
		return nil, fmt.Errorf("brapi %s: %w", ticker, err)
	}
	if quote.Error {
		return nil, fmt.Errorf("brapi api error: %s", quote.Message)
	}
	if len(quote.Results) == 0 {
		return nil, fmt.Errorf("brapi %s: %w", ticker, ErrNoData)
	}

	result := quote.Results[0]
	bars := make([]model.OHLCV, 0, len(result.HistoricalDataPrice))
	for _, b := range result.HistoricalDataPrice {
		if b.Close == nil {
			continue
		}
		c := *b.Close
		bar := model.OHLCV{Time: time.Unix(b.Date, 0).UTC(), Open: c, High: c, Low: c, Close: c}
		if b.Open != nil {
			bar.Open = *b.Open
		}
		if b.High != nil {
			bar.High = *b.High
		}
		if b.Low != nil {
			bar.Low = *b.Low
		}
		if b.Volume != nil {
			bar.Volume = *b.Volume
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("brapi %s: %w", ticker, ErrNoData)
	}

	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return &model.PriceSeries{
		Symbol:    ticker,
		Bars:      bars,
		Currency:  result.Currency,
		Exchange:  "BVMF",
		FetchedAt: f.now(),
	}, nil
}
