package cmd

import (
	"context"
	"fmt"
	"time"

	"CryptoPulse/internal/analyzer"
	"CryptoPulse/internal/collector"
	"CryptoPulse/internal/config"
	"CryptoPulse/internal/metrics"
	"CryptoPulse/internal/recorder"
	"CryptoPulse/internal/sentiment"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// app holds the wired components shared by the commands.
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	analyzer *analyzer.Analyzer
	recorder recorder.Recorder

	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger, registry: prometheus.NewRegistry()}
	a.metrics = metrics.New(a.registry)

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, err
	}
	logger.WithField("source", fetcher.Name()).Info("data source selected")

	col := collector.NewCollector(fetcher, a.newCache(ctx), logger, a.metrics)
	col.FetchTimeout = time.Duration(cfg.DataSource.FetchTimeoutSeconds) * time.Second

	var sent analyzer.SentimentSource
	if cfg.Sentiment.Enabled {
		sent = sentiment.NewClient(cfg.Sentiment.URL, cfg.DataSource.Proxy)
	}
	a.analyzer = analyzer.New(col, sent, logger, a.metrics)

	a.recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.WithError(err).Warn("init sqlite recorder failed, using noop")
		} else {
			a.recorder = sr
			a.closers = append(a.closers, sr.Close)
		}
	}
	return a, nil
}

func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	switch cfg.DataSource.Provider {
	case "yahoo":
		return collector.NewYahooFetcher(cfg.DataSource.Proxy), nil
	case "binance":
		return collector.NewBinanceFetcher(cfg.DataSource.Proxy), nil
	case "mock":
		return &collector.MockFetcher{}, nil
	default:
		return nil, fmt.Errorf("unknown data provider %q", cfg.DataSource.Provider)
	}
}

// newCache prefers Redis when configured and reachable, otherwise keeps bars in memory.
func (a *app) newCache(ctx context.Context) collector.Cache {
	ttl := time.Duration(a.cfg.Cache.TTLSeconds) * time.Second
	if a.cfg.Cache.RedisAddr == "" {
		return collector.NewMemoryCache(ttl)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.Cache.RedisAddr,
		Password: a.cfg.Cache.RedisPassword,
		DB:       a.cfg.Cache.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		a.logger.WithError(err).WithField("addr", a.cfg.Cache.RedisAddr).Warn("redis unavailable, using in-memory cache")
		client.Close()
		return collector.NewMemoryCache(ttl)
	}
	a.closers = append(a.closers, client.Close)
	a.logger.WithField("addr", a.cfg.Cache.RedisAddr).Info("redis cache connected")
	return collector.NewRedisCache(client, ttl)
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.WithError(err).Warn("close")
		}
	}
}
