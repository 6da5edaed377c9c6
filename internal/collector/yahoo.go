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

// HTTPOptions configures the HTTP-backed fetchers.
type HTTPOptions struct {
	BaseURL       string
	Range         string
	Interval      string
	Proxy         string
	Timeout       time.Duration
	MaxRetries    int
	RetryInterval time.Duration
}

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	Client   *http.Client
	BaseURL  string
	Range    string
	Interval string
	retry    retryPolicy
	logger   *zap.Logger
	now      func() time.Time
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(opts HTTPOptions, logger *zap.Logger) *YahooFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &YahooFetcher{
		Client:   newHTTPClient(opts.Proxy, opts.Timeout),
		BaseURL:  strings.TrimRight(opts.BaseURL, "/"),
		Range:    opts.Range,
		Interval: opts.Interval,
		retry:    retryPolicy{MaxRetries: opts.MaxRetries, RetryInterval: opts.RetryInterval},
		logger:   logger.With(zap.String("component", "yahoo")),
		now:      time.Now,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooSymbol maps a B3 ticker to its Yahoo symbol.
func yahooSymbol(ticker string) string {
	return ticker + ".SA"
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency     string `json:"currency"`
				ExchangeName string `json:"exchangeName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// at returns the i-th value of a nullable column.
func at(col []*float64, i int) (float64, bool) {
	if i >= len(col) || col[i] == nil {
		return 0, false
	}
	return *col[i], true
}

// FetchSeries downloads daily bars for the ticker. Bars with a null close are dropped and
// other null fields fall back to the close (zero for volume).
func (f *YahooFetcher) FetchSeries(ctx context.Context, ticker string) (*model.PriceSeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(yahooSymbol(ticker)), url.QueryEscape(f.Interval), url.QueryEscape(f.Range))

	var chart yahooChart
	header := http.Header{"User-Agent": []string{"Mozilla/5.0"}}
	if err := getJSON(ctx, f.Client, f.retry, f.logger, u, header, &chart); err != nil {
		return nil, fmt.Errorf("yahoo %s: %w", ticker, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", ticker, ErrNoData)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c, ok := at(quote.Close, i)
		if !ok {
			continue // null bar (holidays, halted sessions)
		}
		bar := model.OHLCV{Time: time.Unix(ts, 0).UTC(), Open: c, High: c, Low: c, Close: c}
		if v, ok := at(quote.Open, i); ok {
			bar.Open = v
		}
		if v, ok := at(quote.High, i); ok {
			bar.High = v
		}
		if v, ok := at(quote.Low, i); ok {
			bar.Low = v
		}
		bar.Volume, _ = at(quote.Volume, i)
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", ticker, ErrNoData)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return &model.PriceSeries{
		Symbol:    ticker,
		Bars:      bars,
		Currency:  result.Meta.Currency,
		Exchange:  result.Meta.ExchangeName,
		FetchedAt: f.now(),
	}, nil
}
