package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Metrics holds the Prometheus collectors for the analysis pipeline.
// All methods are safe on a nil receiver so components can run without metrics.
type Metrics struct {
	Evaluations   *prometheus.CounterVec   // labels: timeframe, signal
	Failures      *prometheus.CounterVec   // labels: category
	CacheHits     prometheus.Counter
	CacheMisses   prometheus.Counter
	FetchDuration *prometheus.HistogramVec // labels: source
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cryptopulse_evaluations_total",
			Help: "Completed signal evaluations",
		}, []string{"timeframe", "signal"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cryptopulse_evaluation_failures_total",
			Help: "Failed evaluations by error category",
		}, []string{"category"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cryptopulse_cache_hits_total",
			Help: "Bar requests served from cache",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cryptopulse_cache_misses_total",
			Help: "Bar requests that went to the data source",
		}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cryptopulse_fetch_duration_seconds",
			Help:    "Market data fetch latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
	}
	reg.MustRegister(m.Evaluations, m.Failures, m.CacheHits, m.CacheMisses, m.FetchDuration)
	return m
}

func (m *Metrics) ObserveFetch(source string, d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.WithLabelValues(source).Observe(d.Seconds())
}

func (m *Metrics) CacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

func (m *Metrics) CacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}

func (m *Metrics) Evaluation(timeframe, signal string) {
	if m != nil {
		m.Evaluations.WithLabelValues(timeframe, signal).Inc()
	}
}

func (m *Metrics) Failure(category string) {
	if m != nil {
		m.Failures.WithLabelValues(category).Inc()
	}
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, logger *logrus.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Infof("metrics listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
