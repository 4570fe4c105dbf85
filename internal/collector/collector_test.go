package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"CryptoPulse/internal/metrics"
	"CryptoPulse/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector(f Fetcher, cache Cache) (*Collector, *metrics.Metrics) {
	logger, _ := test.NewNullLogger()
	m := metrics.New(prometheus.NewRegistry())
	return NewCollector(f, cache, logger, m), m
}

func TestCollector_CollectEachClass(t *testing.T) {
	for _, tf := range model.Timeframes {
		t.Run(string(tf), func(t *testing.T) {
			c, _ := newTestCollector(&MockFetcher{}, nil)
			snap, err := c.Collect(context.Background(), "BTC-USD", tf)
			require.NoError(t, err)

			class, _ := tf.Class()
			assert.Equal(t, class, snap.Class)
			assert.Equal(t, tf.Lookback().Bars, snap.Series.Len())
			assert.Equal(t, snap.Series.Len(), snap.Derived.Len())
			assert.False(t, snap.Series.FetchedAt.IsZero())
			_, ok := snap.Derived.Last(model.RSIColumn(14))
			assert.True(t, ok)
		})
	}
}

func TestCollector_CacheHitAvoidsRefetch(t *testing.T) {
	f := &MockFetcher{Count: 60}
	c, m := newTestCollector(f, NewMemoryCache(time.Minute))
	ctx := context.Background()

	_, err := c.Load(ctx, "BTC-USD", model.Timeframe1h, 20)
	require.NoError(t, err)
	_, err = c.Load(ctx, "BTC-USD", model.Timeframe1h, 20)
	require.NoError(t, err)

	assert.Equal(t, 1, f.Calls())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMisses))

	_, err = c.Load(ctx, "ETH-USD", model.Timeframe1h, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Calls())
}

func TestCollector_FetchError(t *testing.T) {
	f := &MockFetcher{Err: errors.New("boom")}
	c, _ := newTestCollector(f, nil)
	_, err := c.Load(context.Background(), "BTC-USD", model.Timeframe1d, 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestCollector_FetchTimeout(t *testing.T) {
	f := &MockFetcher{Delay: time.Second}
	c, _ := newTestCollector(f, nil)
	c.FetchTimeout = 10 * time.Millisecond

	_, err := c.Load(context.Background(), "BTC-USD", model.Timeframe1d, 20)
	assert.ErrorIs(t, err, model.ErrFetch)
}

func TestCollector_InsufficientHistoryForSet(t *testing.T) {
	f := &MockFetcher{Count: 100}
	c, _ := newTestCollector(f, nil)
	_, err := c.Collect(context.Background(), "BTC-USD", model.Timeframe1d)
	assert.ErrorIs(t, err, model.ErrInsufficientData)
}

type failingCache struct{ *MemoryCache }

func (failingCache) Set(context.Context, string, []model.OHLCV) error {
	return errors.New("redis down")
}

func TestCollector_CacheWriteFailureIsLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	c := NewCollector(&MockFetcher{Count: 30}, failingCache{NewMemoryCache(time.Minute)}, logger, nil)

	_, err := c.Load(context.Background(), "BTC-USD", model.Timeframe5m, 20)
	require.NoError(t, err)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned)
}
