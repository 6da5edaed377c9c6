package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// retryPolicy is shared by the HTTP fetchers.
type retryPolicy struct {
	MaxRetries    int
	RetryInterval time.Duration
}

func (p retryPolicy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if p.RetryInterval > 0 {
		b.InitialInterval = p.RetryInterval
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(max(p.MaxRetries, 0))), ctx)
}

// getJSON performs a GET with retries and decodes the body into out. Client errors (4xx)
// are not retried.
func getJSON(ctx context.Context, client *http.Client, policy retryPolicy, logger *zap.Logger,
	endpoint string, header http.Header, out any) error {
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("status %d, body: %s", resp.StatusCode, truncate(body, 200))
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			return err
		}
		if err := json.Unmarshal(body, out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode: %w", err))
		}
		return nil
	}

	notify := func(err error, wait time.Duration) {
		logger.Warn("request failed, retrying", zap.String("url", endpoint), zap.Duration("wait", wait), zap.Error(err))
	}
	return backoff.RetryNotify(op, policy.backOff(ctx), notify)
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
