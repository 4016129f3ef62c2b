package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the domain collectors of the procurement service
type Metrics struct {
	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Business operations, labelled by entity and operation
	OperationsCounter *prometheus.CounterVec

	// Storage cleanups that failed during attachment deletion
	StorageCleanupFailures prometheus.Counter

	// Settings reads answered with hardcoded fallbacks
	SettingsFallbackCounter *prometheus.CounterVec

	// Suppliers by state, refreshed after lifecycle changes
	SuppliersGauge *prometheus.GaugeVec
}

// NewMetrics registers the domain metrics on reg with the configured prefix
func NewMetrics(prefix string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AuthAttemptsCounter: factory.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of session checks",
		}),
		AuthSuccessCounter: factory.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of accepted sessions",
		}),
		AuthErrorsCounter: factory.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of rejected sessions",
		}),
		DbOperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation_type"}),
		OperationsCounter: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_operations_total",
			Help: "Total number of business operations",
		}, []string{"entity", "operation", "outcome"}),
		StorageCleanupFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_storage_cleanup_failures_total",
			Help: "Stored files that could not be removed while deleting their record",
		}),
		SettingsFallbackCounter: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_settings_fallback_total",
			Help: "Settings reads answered with the hardcoded fallback",
		}, []string{"key"}),
		SuppliersGauge: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: prefix + "_suppliers",
			Help: "Number of suppliers by state",
		}, []string{"state"}),
	}
}

// NewNopMetrics returns metrics registered on a private registry
func NewNopMetrics() *Metrics {
	return NewMetrics("procurement", prometheus.NewRegistry())
}

// TrackDBOperation returns a function that records the duration of a database operation
func (m *Metrics) TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		m.DbOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordOperation counts one business operation and whether it succeeded
func (m *Metrics) RecordOperation(entity, operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.OperationsCounter.WithLabelValues(entity, operation, outcome).Inc()
}

// UpdateSupplierCounts sets the active/archived supplier gauges
func (m *Metrics) UpdateSupplierCounts(active, archived int64) {
	m.SuppliersGauge.WithLabelValues("active").Set(float64(active))
	m.SuppliersGauge.WithLabelValues("archived").Set(float64(archived))
}
