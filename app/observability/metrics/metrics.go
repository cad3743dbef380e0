package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ModelCallsTotal          metric.Int64Counter
	ModelCallDurationSeconds metric.Float64Histogram
	DayPlanFallbacksTotal    metric.Int64Counter
	RetrievalErrorsTotal     metric.Int64Counter
	DbQueryDurationSeconds   metric.Float64Histogram
	DbQueryErrorsTotal       metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments only once,
// using the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("TravelConcierge")
		var err error
		m := &AppMetrics{}

		m.ModelCallsTotal, err = meter.Int64Counter(
			"model_calls_total",
			metric.WithDescription("Total number of generative model invocations"),
			metric.WithUnit("{call}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create model_calls_total: %v", err)
		}

		m.ModelCallDurationSeconds, err = meter.Float64Histogram(
			"model_call_duration_seconds",
			metric.WithDescription("Duration of generative model invocations in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create model_call_duration_seconds: %v", err)
		}

		m.DayPlanFallbacksTotal, err = meter.Int64Counter(
			"day_plan_fallbacks_total",
			metric.WithDescription("Total number of day plans built from the deterministic template"),
			metric.WithUnit("{day}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create day_plan_fallbacks_total: %v", err)
		}

		m.RetrievalErrorsTotal, err = meter.Int64Counter(
			"retrieval_errors_total",
			metric.WithDescription("Total number of failed topic retrieval queries"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create retrieval_errors_total: %v", err)
		}

		m.DbQueryDurationSeconds, err = meter.Float64Histogram(
			"db_query_duration_seconds",
			metric.WithDescription("Duration of database queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_duration_seconds: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
