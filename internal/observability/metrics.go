package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ListingPagesServed counts rendered listing pages by view (index, group, profile).
	ListingPagesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_listing_pages_served_total",
		Help: "Total number of listing pages served by view",
	}, []string{"view"})

	// PageClamped counts page requests whose number was outside the valid range.
	PageClamped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yatube_page_clamped_total",
		Help: "Total number of page requests clamped into range",
	})

	// PostsWritten counts successful post writes by operation (create, update).
	PostsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_posts_written_total",
		Help: "Total number of posts written by operation",
	}, []string{"op"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "yatube_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// DatabaseMetrics records query latency for one table.
type DatabaseMetrics struct {
	table string
}

// NewDatabaseMetrics returns a DatabaseMetrics for table.
func NewDatabaseMetrics(table string) *DatabaseMetrics {
	return &DatabaseMetrics{table: table}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, m.table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, start)
	}
}
