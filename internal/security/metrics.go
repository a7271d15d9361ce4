package security

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// StoreLatency records latency of every CRUD engine operation.
	StoreLatency *prometheus.HistogramVec

	// StoreErrorsTotal counts failed CRUD engine operations by error kind.
	StoreErrorsTotal *prometheus.CounterVec

	// RPCCallsTotal counts JSON-RPC calls by method and outcome.
	RPCCallsTotal *prometheus.CounterVec
)

var validLabelKey = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ParseMetricsLabels parses a comma-separated list of key=value pairs into
// Prometheus labels. Values support ${VAR} / $VAR environment variable expansion.
// Label values may not contain commas. Returns nil for an empty string.
func ParseMetricsLabels(s string) (prometheus.Labels, error) {
	s = os.Expand(s, os.Getenv)
	if s == "" {
		return nil, nil
	}
	labels := prometheus.Labels{}
	for _, pair := range strings.Split(s, ",") {
		idx := strings.IndexByte(pair, '=')
		if idx < 0 {
			return nil, fmt.Errorf("invalid label %q: expected key=value", pair)
		}
		k, v := pair[:idx], pair[idx+1:]
		if !validLabelKey.MatchString(k) {
			return nil, fmt.Errorf("invalid label key %q: must match [a-zA-Z_][a-zA-Z0-9_]*", k)
		}
		labels[k] = v
	}
	return labels, nil
}

var initMetricsOnce sync.Once

// InitMetrics registers all Prometheus metrics with the given constant labels.
// Safe to call multiple times; only the first call registers. Until it is
// called the Observe/Count helpers are no-ops.
func InitMetrics(constLabels prometheus.Labels) {
	initMetricsOnce.Do(func() {
		initMetricsInner(constLabels)
	})
}

func initMetricsInner(constLabels prometheus.Labels) {
	reg := prometheus.WrapRegistererWith(constLabels, prometheus.DefaultRegisterer)
	f := promauto.With(reg)

	httpRequestsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docmodel_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	httpRequestDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "docmodel_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	StoreLatency = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "docmodel_store_latency_seconds",
			Help:    "Store operation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)

	StoreErrorsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docmodel_store_errors_total",
			Help: "Total failed store operations",
		},
		[]string{"operation", "kind"},
	)

	RPCCallsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docmodel_rpc_calls_total",
			Help: "Total JSON-RPC calls",
		},
		[]string{"method", "outcome"},
	)
}

// ObserveStore records the latency of a store operation started at start.
func ObserveStore(op, collection string, start time.Time) {
	if StoreLatency == nil {
		return
	}
	StoreLatency.WithLabelValues(op, collection).Observe(time.Since(start).Seconds())
}

// CountStoreError records a failed store operation.
func CountStoreError(op string, kind error) {
	if StoreErrorsTotal == nil || kind == nil {
		return
	}
	StoreErrorsTotal.WithLabelValues(op, kind.Error()).Inc()
}

// CountRPC records a JSON-RPC call outcome: "ok", an error kind, or "error"
// for failures that carry no kind.
func CountRPC(method, outcome string) {
	if RPCCallsTotal == nil {
		return
	}
	RPCCallsTotal.WithLabelValues(method, outcome).Inc()
}

// MetricsMiddleware records HTTP request metrics for Prometheus.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if httpRequestsTotal == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		httpRequestsTotal.WithLabelValues(c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method).Observe(duration.Seconds())
	}
}
