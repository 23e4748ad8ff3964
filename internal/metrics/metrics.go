// Package metrics exposes service metrics through OpenTelemetry with a
// Prometheus exporter, served on the diagnostics listener.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics holds the service instruments.
type Metrics struct {
	completed metric.Int64Counter
	duration  metric.Float64Histogram
	mutations metric.Int64Counter
}

// NewProvider returns a meter provider that exports into registry.
func NewProvider(registry prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prometheus exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)), nil
}

// New creates the instruments on meter.
func New(meter metric.Meter) (*Metrics, error) {
	completed, err := meter.Int64Counter(
		"http.server.completed_count",
		metric.WithDescription("Count of completed requests, by HTTP method and response status"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"http.server.duration",
		metric.WithDescription("Request latency, by HTTP method and route"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	mutations, err := meter.Int64Counter(
		"blog.article.mutations",
		metric.WithDescription("Article create, edit and delete calls, by operation and outcome"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{completed: completed, duration: duration, mutations: mutations}, nil
}

// RecordMutation counts one article mutation.
func (m *Metrics) RecordMutation(ctx context.Context, op, outcome string) {
	m.mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("outcome", outcome),
	))
}

// Middleware records request counts and latency. Routes are labeled by their
// chi pattern to keep cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		ctx := r.Context()
		m.completed.Add(ctx, 1, metric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.String("status", strconv.Itoa(status)),
		))
		m.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.String("route", route),
		))
	})
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
