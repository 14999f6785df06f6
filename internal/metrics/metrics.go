// Package metrics holds the Prometheus collectors for the record store,
// query cache, commission liquidation and HTTP layer.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "backoffice"

var (
	StoreOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_operations_total",
		Help:      "Record store operations by table, operation and outcome.",
	}, []string{"table", "op", "outcome"})

	StoreDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Record store operation latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"table", "op"})

	CacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Query cache lookups by entity and result (hit or miss).",
	}, []string{"entity", "result"})

	CacheInvalidations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Query cache invalidations by entity.",
	}, []string{"entity"})

	CommissionLiquidations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commission_liquidations_total",
		Help:      "Commission liquidation attempts by outcome.",
	}, []string{"outcome"})

	Notifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "User notifications emitted by level.",
	}, []string{"level"})

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route pattern, method and status code.",
	}, []string{"route", "method", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
)

// Collectors returns every collector owned by this package
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		StoreOperations,
		StoreDuration,
		CacheLookups,
		CacheInvalidations,
		CommissionLiquidations,
		Notifications,
		HTTPRequests,
		HTTPDuration,
	}
}

// NewRegistry builds a registry with the process, Go runtime and application
// collectors.
func NewRegistry() (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Register adds the application collectors to reg, ignoring ones already present
func Register(reg prometheus.Registerer) error {
	all := append(Collectors(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, c := range all {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// Handler exposes the registry in the Prometheus text format
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// Outcome labels an operation result
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
