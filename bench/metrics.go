package bench

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Metrics struct {
	Registry *prometheus.Registry

	RecordsInserted prometheus.Counter
	RecordsEmitted  prometheus.Counter
	TreesBuilt      prometheus.Counter
	TreeSize        prometheus.Gauge
	TreeHeight      prometheus.Gauge
	InsertDuration  prometheus.Histogram
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		RecordsInserted: factory.NewCounter(prometheus.CounterOpts{
			Name: "csz_records_inserted_total",
			Help: "Records inserted into a tree.",
		}),
		RecordsEmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "csz_records_emitted_total",
			Help: "Records emitted by in-order walks.",
		}),
		TreesBuilt: factory.NewCounter(prometheus.CounterOpts{
			Name: "csz_trees_built_total",
			Help: "Trees fully built from an input.",
		}),
		TreeSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "csz_tree_size",
			Help: "Records held by the most recently built tree.",
		}),
		TreeHeight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "csz_tree_height",
			Help: "Levels in the most recently built tree.",
		}),
		InsertDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "csz_tree_build_seconds",
			Help:    "Time to insert every record of one input into a tree.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
}

// Serve exposes the registry on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, log zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		log.Info().Str("addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}
