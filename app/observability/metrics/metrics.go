package metrics

import (
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of every application instrument.
const MeterName = "go-itinerary-recommender"

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	RecommendationRequestsTotal   metric.Int64Counter
	RecommendationDurationSeconds metric.Float64Histogram
	RecommendationItemsReturned   metric.Int64Histogram
	CacheHitsTotal                metric.Int64Counter
	DbQueryDurationSeconds        metric.Float64Histogram
	DbQueryErrorsTotal            metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
	initErr    error
)

// InitAppMetrics creates the instruments once, using the globally configured
// MeterProvider. Later calls return the result of the first one.
func InitAppMetrics() error {
	once.Do(func() {
		m, err := newAppMetrics(otel.GetMeterProvider().Meter(MeterName))
		if err != nil {
			initErr = err
			return
		}
		slog.Debug("Application metrics instruments initialized")
		appMetrics = m
	})
	return initErr
}

func newAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.RecommendationRequestsTotal, err = meter.Int64Counter(
		"recommendation_requests_total",
		metric.WithDescription("Total number of recommendation requests by endpoint and outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create recommendation_requests_total: %w", err)
	}

	m.RecommendationDurationSeconds, err = meter.Float64Histogram(
		"recommendation_duration_seconds",
		metric.WithDescription("Duration of recommendation computations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create recommendation_duration_seconds: %w", err)
	}

	m.RecommendationItemsReturned, err = meter.Int64Histogram(
		"recommendation_items_returned",
		metric.WithDescription("Number of places or itinerary options returned per request"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create recommendation_items_returned: %w", err)
	}

	m.CacheHitsTotal, err = meter.Int64Counter(
		"recommendation_cache_hits_total",
		metric.WithDescription("Total number of recommendation responses served from cache"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create recommendation_cache_hits_total: %w", err)
	}

	m.DbQueryDurationSeconds, err = meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Duration of database queries in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create db_query_duration_seconds: %w", err)
	}

	m.DbQueryErrorsTotal, err = meter.Int64Counter(
		"db_query_errors_total",
		metric.WithDescription("Total number of database query errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create db_query_errors_total: %w", err)
	}
	return m, nil
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
