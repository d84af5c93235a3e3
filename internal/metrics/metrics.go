// Package metrics defines the Prometheus instrumentation for the
// ledger. Collectors register themselves in the default registry via
// promauto and are exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExpensesWritten counts ledger mutations by operation
	// (create, update, delete).
	ExpensesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "housetab_expenses_written_total",
			Help: "Total number of expense mutations by operation",
		},
		[]string{"op"},
	)

	// SettlementsPerformed counts settlement operations by kind
	// (settle, unsettle, settle_all, settle_up).
	SettlementsPerformed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "housetab_settlements_total",
			Help: "Total number of settlement operations by kind",
		},
		[]string{"op"},
	)

	// SplitsSettled counts individual splits flipped to settled.
	SplitsSettled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "housetab_splits_settled_total",
			Help: "Total number of splits marked settled",
		},
	)

	// NotificationFailures counts notification sends that failed and
	// were swallowed.
	NotificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "housetab_notification_failures_total",
			Help: "Total number of failed notification deliveries",
		},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "housetab_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// HTTPMetrics returns a gin middleware that records request latency.
func HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpDuration.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
