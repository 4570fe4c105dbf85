package collector

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"CryptoPulse/internal/metrics"
	"CryptoPulse/internal/model"
	"CryptoPulse/internal/selector"

	"github.com/sirupsen/logrus"
)

// MockFetcher returns controllable data for development and testing.
// When Bars is nil it generates Count deterministic oscillating bars.
type MockFetcher struct {
	Bars      []model.OHLCV
	Err       error
	BasePrice float64
	Count     int
	Delay     time.Duration

	mu    sync.Mutex
	calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(ctx context.Context, _ string, tf model.Timeframe) ([]model.OHLCV, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", model.ErrFetch, ctx.Err())
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return cloneBars(m.Bars), nil
	}
	count := m.Count
	if count == 0 {
		count = tf.Lookback().Bars
	}
	base := m.BasePrice
	if base == 0 {
		base = 100
	}
	return GenerateBars(base, count, tf.Duration()), nil
}

// Calls reports how many times FetchBars was invoked.
func (m *MockFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// GenerateBars builds a valid, strictly ascending series that drifts upward
// while oscillating, ending at a fixed reference time.
func GenerateBars(basePrice float64, count int, step time.Duration) []model.OHLCV {
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + 0.05*math.Sin(float64(i)/6) + float64(i)*0.0005)
		open := p * (1 - 0.002*math.Cos(float64(i)/3))
		bars[i] = model.OHLCV{
			Time:   end.Add(-time.Duration(count-1-i) * step),
			Open:   open,
			High:   math.Max(open, p) * 1.004,
			Low:    math.Min(open, p) * 0.996,
			Close:  p,
			Volume: 1000 + float64(i%7)*150,
		}
	}
	return bars
}

// Collector loads bar series through a cache and computes indicator snapshots.
type Collector struct {
	Fetcher      Fetcher
	Cache        Cache
	Logger       *logrus.Logger
	Metrics      *metrics.Metrics
	FetchTimeout time.Duration

	now func() time.Time
}

// NewCollector creates a new Collector. A nil cache disables caching.
func NewCollector(fetcher Fetcher, cache Cache, logger *logrus.Logger, m *metrics.Metrics) *Collector {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Collector{
		Fetcher:      fetcher,
		Cache:        cache,
		Logger:       logger,
		Metrics:      m,
		FetchTimeout: 30 * time.Second,
		now:          time.Now,
	}
}

// Load returns at least minLen validated bars for symbol on tf.
func (c *Collector) Load(ctx context.Context, symbol string, tf model.Timeframe, minLen int) (*model.Series, error) {
	key := CacheKey(symbol, tf)
	log := c.Logger.WithFields(logrus.Fields{"symbol": symbol, "timeframe": tf, "source": c.Fetcher.Name()})

	raw, hit := c.cached(ctx, key)
	if hit {
		c.Metrics.CacheHit()
		log.Debug("bars served from cache")
	} else {
		c.Metrics.CacheMiss()

		fetchCtx, cancel := context.WithTimeout(ctx, c.FetchTimeout)
		start := c.now()
		fetched, err := c.Fetcher.FetchBars(fetchCtx, symbol, tf)
		cancel()
		c.Metrics.ObserveFetch(c.Fetcher.Name(), c.now().Sub(start))
		if err != nil {
			return nil, fmt.Errorf("fetch %s %s: %w", symbol, tf, err)
		}
		log.WithField("bars", len(fetched)).Info("bars fetched")

		raw = fetched
		if c.Cache != nil {
			if err := c.Cache.Set(ctx, key, raw); err != nil {
				log.WithError(err).Warn("cache write failed")
			}
		}
	}

	series, err := Normalize(symbol, tf, raw, minLen)
	if err != nil {
		return nil, err
	}
	series.FetchedAt = c.now().UTC()
	return series, nil
}

func (c *Collector) cached(ctx context.Context, key string) ([]model.OHLCV, bool) {
	if c.Cache == nil {
		return nil, false
	}
	return c.Cache.Get(ctx, key)
}

// Collect selects the indicator set for tf, loads enough history for it and
// computes every column of the set.
func (c *Collector) Collect(ctx context.Context, symbol string, tf model.Timeframe) (*model.Snapshot, error) {
	set, err := selector.ForTimeframe(tf)
	if err != nil {
		return nil, err
	}
	series, err := c.Load(ctx, symbol, tf, set.MinBars())
	if err != nil {
		return nil, err
	}
	derived, err := set.Compute(ctx, series)
	if err != nil {
		return nil, fmt.Errorf("compute %s indicators: %w", set.Class, err)
	}
	return &model.Snapshot{Series: series, Class: set.Class, Derived: derived}, nil
}
