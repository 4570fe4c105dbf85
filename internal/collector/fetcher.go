package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"CryptoPulse/internal/model"
)

// Fetcher defines the interface for fetching raw candles.
// Returned bars are ascending by time; undefined prices are NaN.
type Fetcher interface {
	FetchBars(ctx context.Context, symbol string, tf model.Timeframe) ([]model.OHLCV, error)
	Name() string
}

// newHTTPClient builds an HTTP client with optional proxy support.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
