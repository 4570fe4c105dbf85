package analyzer

import (
	"context"
	"time"

	"CryptoPulse/internal/collector"
	"CryptoPulse/internal/metrics"
	"CryptoPulse/internal/model"
	"CryptoPulse/internal/strategy"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// SentimentSource provides the optional market-wide sentiment reading.
type SentimentSource interface {
	Fetch(ctx context.Context) (*model.Sentiment, error)
}

// Analyzer runs the full pipeline for one (symbol, timeframe) request:
// load bars, compute the indicator set, synthesize the signal.
// Nothing is carried over between calls apart from the collector's fetch cache.
type Analyzer struct {
	Collector *collector.Collector
	Sentiment SentimentSource // optional
	Logger    *logrus.Logger
	Metrics   *metrics.Metrics

	now func() time.Time
}

// New creates an Analyzer. sentiment and m may be nil.
func New(col *collector.Collector, sentiment SentimentSource, logger *logrus.Logger, m *metrics.Metrics) *Analyzer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Analyzer{Collector: col, Sentiment: sentiment, Logger: logger, Metrics: m, now: time.Now}
}

// Analyze evaluates symbol on the given timeframe string ("5m", "15m", "1h", "1d").
// Any core error aborts the evaluation; no partial result is returned.
func (a *Analyzer) Analyze(ctx context.Context, symbol, timeframe string) (*model.Analysis, error) {
	log := a.Logger.WithFields(logrus.Fields{"symbol": symbol, "timeframe": timeframe})

	res, err := a.analyze(ctx, symbol, timeframe)
	if err != nil {
		category := model.ErrorCategory(err)
		a.Metrics.Failure(category)
		log.WithError(err).WithField("category", category).Warn("evaluation failed")
		return nil, err
	}

	a.Metrics.Evaluation(string(res.Timeframe), string(res.Signal.Signal.Type))
	log.WithFields(logrus.Fields{
		"id":     res.ID,
		"signal": res.Signal.Signal.Type,
		"close":  res.Signal.Close,
		"rsi":    res.Signal.RSI,
	}).Info("evaluation complete")
	return res, nil
}

func (a *Analyzer) analyze(ctx context.Context, symbol, timeframe string) (*model.Analysis, error) {
	tf, err := model.ParseTimeframe(timeframe)
	if err != nil {
		return nil, err
	}
	snap, err := a.Collector.Collect(ctx, symbol, tf)
	if err != nil {
		return nil, err
	}
	sig, err := strategy.Evaluate(snap)
	if err != nil {
		return nil, err
	}

	return &model.Analysis{
		ID:          ulid.Make().String(),
		Symbol:      symbol,
		Timeframe:   tf,
		Snapshot:    snap,
		Signal:      sig,
		Sentiment:   a.sentiment(ctx),
		EvaluatedAt: a.now().UTC(),
	}, nil
}

func (a *Analyzer) sentiment(ctx context.Context) *model.Sentiment {
	if a.Sentiment == nil {
		return nil
	}
	s, err := a.Sentiment.Fetch(ctx)
	if err != nil {
		a.Logger.WithError(err).Warn("sentiment unavailable")
		return nil
	}
	return s
}
