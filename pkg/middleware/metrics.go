package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/vroute/pkg/router"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vroute").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for handler and loader duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "vroute",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// Query status label values.
const (
	queryOK      = "ok"
	queryInvalid = "invalid"
	queryNone    = "none"
)

// metrics holds the Prometheus metrics for resolved routes.
type metrics struct {
	resolvesTotal   *prometheus.CounterVec
	handlerDuration *prometheus.HistogramVec
	queryIssues     *prometheus.CounterVec
	loadsTotal      *prometheus.CounterVec
	loadDuration    *prometheus.HistogramVec
	unmatchedTotal  prometheus.Counter
}

// globalMetrics is the singleton metrics instance.
// Created on first call to Prometheus().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		resolvesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolves_total",
			Help:        "Total resolved requests by route and query status",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "query"}),

		handlerDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "handler_duration_seconds",
			Help:        "Route handler duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		queryIssues: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "query_issues_total",
			Help:        "Total query validation issues by route",
			ConstLabels: config.ConstLabels,
		}, []string{"route"}),

		loadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "loads_total",
			Help:        "Total page loader runs by route and status",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "status"}),

		loadDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "load_duration_seconds",
			Help:        "Page loader duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		unmatchedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unmatched_total",
			Help:        "Total paths that matched no route",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for
// resolved routes.
//
// Metrics collected:
//   - vroute_resolves_total: Counter of resolves by route and query status
//   - vroute_handler_duration_seconds: Histogram of handler duration
//   - vroute_query_issues_total: Counter of query validation issues
//   - vroute_loads_total: Counter of loader runs by route and status
//   - vroute_load_duration_seconds: Histogram of loader duration
//   - vroute_unmatched_total: Counter of misses (when RecordUnmatched is called)
//
// Example:
//
//	r, err := router.Build(routes,
//	    router.Use(middleware.Prometheus(
//	        middleware.WithNamespace("myapp"),
//	    )),
//	)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
//
// The metrics are a process-wide singleton registered by the first call.
// Options passed to later calls are ignored and those middlewares record
// into the first registry.
func Prometheus(opts ...MetricsOption) router.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Initialize metrics once
	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next router.Handler) router.Handler {
		return func(ctx *router.RequestContext) router.Page {
			route := routeLabel(ctx)

			start := time.Now()
			page := next(ctx)
			m.handlerDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())

			status := queryStatus(ctx)
			m.resolvesTotal.WithLabelValues(route, status).Inc()
			if status == queryInvalid {
				m.queryIssues.WithLabelValues(route).Add(float64(len(ctx.QueryError.Issues)))
			}

			if page.Loader != nil {
				page.Loader = m.instrumentLoader(route, page.Loader)
			}
			return page
		}
	}
}

// instrumentLoader times the loader when the caller eventually runs it.
func (m *metrics) instrumentLoader(route string, load router.LoaderFunc) router.LoaderFunc {
	return func(ctx context.Context) (any, error) {
		start := time.Now()
		data, err := load(ctx)
		m.loadDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			if ctx.Err() != nil {
				status = "canceled"
			}
		}
		m.loadsTotal.WithLabelValues(route, status).Inc()
		return data, err
	}
}

// routeLabel uses the route name to keep label cardinality bounded.
func routeLabel(ctx *router.RequestContext) string {
	if name := ctx.RouteName(); name != "" {
		return name
	}
	return "unnamed"
}

func queryStatus(ctx *router.RequestContext) string {
	switch {
	case ctx.QueryError != nil:
		return queryInvalid
	case ctx.HasQuery():
		return queryOK
	default:
		return queryNone
	}
}

// =============================================================================
// Metrics Recording Functions
// =============================================================================

// RecordUnmatched records a path that matched no route.
// Call this when Resolve or Match reports no match.
func RecordUnmatched() {
	globalMetricsMu.Lock()
	m := globalMetrics
	globalMetricsMu.Unlock()

	if m != nil {
		m.unmatchedTotal.Inc()
	}
}

// =============================================================================
// Metrics Collector
// =============================================================================

// Collector exposes the route metrics for use in custom registrations.
type Collector struct {
	resolvesTotal   *prometheus.CounterVec
	handlerDuration *prometheus.HistogramVec
	queryIssues     *prometheus.CounterVec
	loadsTotal      *prometheus.CounterVec
	loadDuration    *prometheus.HistogramVec
	unmatchedTotal  prometheus.Counter
}

// GetMetrics returns the global metrics collector.
// Returns nil if Prometheus middleware has not been initialized.
func GetMetrics() *Collector {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	if globalMetrics == nil {
		return nil
	}
	return &Collector{
		resolvesTotal:   globalMetrics.resolvesTotal,
		handlerDuration: globalMetrics.handlerDuration,
		queryIssues:     globalMetrics.queryIssues,
		loadsTotal:      globalMetrics.loadsTotal,
		loadDuration:    globalMetrics.loadDuration,
		unmatchedTotal:  globalMetrics.unmatchedTotal,
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.resolvesTotal.Describe(ch)
	c.handlerDuration.Describe(ch)
	c.queryIssues.Describe(ch)
	c.loadsTotal.Describe(ch)
	c.loadDuration.Describe(ch)
	c.unmatchedTotal.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.resolvesTotal.Collect(ch)
	c.handlerDuration.Collect(ch)
	c.queryIssues.Collect(ch)
	c.loadsTotal.Collect(ch)
	c.loadDuration.Collect(ch)
	c.unmatchedTotal.Collect(ch)
}
