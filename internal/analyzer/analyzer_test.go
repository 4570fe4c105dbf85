package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"CryptoPulse/internal/collector"
	"CryptoPulse/internal/metrics"
	"CryptoPulse/internal/model"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSentiment struct {
	s   *model.Sentiment
	err error
}

func (s stubSentiment) Fetch(context.Context) (*model.Sentiment, error) { return s.s, s.err }

func newAnalyzer(f collector.Fetcher, sent SentimentSource) (*Analyzer, *metrics.Metrics) {
	logger, _ := test.NewNullLogger()
	m := metrics.New(prometheus.NewRegistry())
	col := collector.NewCollector(f, nil, logger, m)
	return New(col, sent, logger, m), m
}

func TestAnalyze(t *testing.T) {
	a, m := newAnalyzer(&collector.MockFetcher{}, stubSentiment{s: &model.Sentiment{Value: 55, Classification: "Greed"}})

	res, err := a.Analyze(context.Background(), "BTC-USD", "1h")
	require.NoError(t, err)

	_, err = ulid.Parse(res.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.Timeframe1h, res.Timeframe)
	assert.Equal(t, model.ClassMedium, res.Snapshot.Class)
	assert.Equal(t, res.Snapshot.Series.Last().Close, res.Signal.Close)
	assert.NotEmpty(t, res.Signal.SubSignals)
	require.NotNil(t, res.Sentiment)
	assert.Equal(t, 55, res.Sentiment.Value)
	assert.WithinDuration(t, time.Now(), res.EvaluatedAt, time.Minute)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evaluations.WithLabelValues("1h", string(res.Signal.Signal.Type))))
}

func TestAnalyze_IsRepeatable(t *testing.T) {
	a, _ := newAnalyzer(&collector.MockFetcher{}, nil)
	first, err := a.Analyze(context.Background(), "BTC-USD", "5m")
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), "BTC-USD", "5m")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Signal, second.Signal)
}

func TestAnalyze_SentimentFailureIsNotFatal(t *testing.T) {
	a, _ := newAnalyzer(&collector.MockFetcher{}, stubSentiment{err: errors.New("down")})
	res, err := a.Analyze(context.Background(), "BTC-USD", "1d")
	require.NoError(t, err)
	assert.Nil(t, res.Sentiment)
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name      string
		fetcher   collector.Fetcher
		timeframe string
		want      error
		category  string
	}{
		{"unknown timeframe", &collector.MockFetcher{}, "4h", model.ErrUnsupportedTimeframe, "UNSUPPORTED_TIMEFRAME"},
		{"fetch failure", &collector.MockFetcher{Err: model.ErrFetch}, "1h", model.ErrFetch, "FETCH_ERROR"},
		{"short history", &collector.MockFetcher{Count: 40}, "1d", model.ErrInsufficientData, "INSUFFICIENT_DATA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, m := newAnalyzer(tt.fetcher, nil)
			res, err := a.Analyze(context.Background(), "BTC-USD", tt.timeframe)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues(tt.category)))
		})
	}
}
