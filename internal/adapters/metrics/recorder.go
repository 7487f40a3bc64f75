// Package metrics exports task run metrics in the Prometheus format.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	namespace       = "bundle"
	shutdownTimeout = 5 * time.Second
)

var _ ports.Recorder = (*PrometheusRecorder)(nil)

// PrometheusRecorder implements ports.Recorder with a private Prometheus registry.
type PrometheusRecorder struct {
	registry *prom.Registry
	runs     *prom.CounterVec
	duration *prom.HistogramVec
}

// NewPrometheusRecorder constructs and registers the task metrics.
func NewPrometheusRecorder() *PrometheusRecorder {
	pr := &PrometheusRecorder{
		registry: prom.NewRegistry(),
		runs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "task_runs_total",
			Help:      "Task runs by task and outcome",
		}, []string{"task", "status"}),
		duration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "task_duration_seconds",
			Help:      "Duration of task runs",
			Buckets:   prom.DefBuckets,
		}, []string{"task"}),
	}
	pr.registry.MustRegister(pr.runs, pr.duration)
	pr.registry.MustRegister(promcollect.NewGoCollector())
	return pr
}

// ObserveRun implements ports.Recorder.
func (p *PrometheusRecorder) ObserveRun(task string, d time.Duration, failed bool) {
	status := "success"
	if failed {
		status = "failure"
	}
	p.runs.WithLabelValues(task, status).Inc()
	p.duration.WithLabelValues(task).Observe(d.Seconds())
}

// Handler implements ports.Recorder.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Serve exposes /metrics on addr until ctx is done. A bind failure is returned immediately.
func (p *PrometheusRecorder) Serve(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsServerFailed.Error()), "address", addr)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", p.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsServerFailed.Error()), "address", addr)
	}
}
