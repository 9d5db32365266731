package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Core request/hit/miss counters, labeled by TTL class
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Total number of cache requests",
		},
		[]string{"class"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"class", "level"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"class"},
	)

	// Fetcher activity
	Fetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetches_total",
			Help: "Total number of upstream fetch attempts",
		},
		[]string{"endpoint"},
	)

	FetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_failures_total",
			Help: "Total number of upstream fetch failures by kind",
		},
		[]string{"endpoint", "kind"},
	)

	// Degraded serving
	StaleServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stale_served_total",
			Help: "Responses served from stale entries after a transient fetch failure",
		},
	)

	OfflineServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "offline_served_total",
			Help: "Responses served from cache while offline mode was engaged",
		},
	)

	RefreshDeduplicated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "refresh_dedup_total",
			Help: "Requests that joined an already in-flight refresh instead of fetching",
		},
	)

	SweepRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sweep_removed_total",
			Help: "Entries removed by sweep for being past hard expiry",
		},
	)

	// Store tier errors
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_errors_total",
			Help: "Store tier errors by level and kind",
		},
		[]string{"level", "kind"},
	)

	// Get operation latency only
	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cache_operation_duration_seconds",
			Help:    "Duration of cache get operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "level"},
	)

	// L1 capacity metrics
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity_bytes",
			Help: "L1 cache capacity in bytes",
		},
		[]string{"level"},
	)

	CacheKeys = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_keys",
			Help: "Number of live keys per cache level",
		},
		[]string{"level"},
	)
)

// RecordCacheRequest records a cache request
func RecordCacheRequest(class string) {
	CacheRequests.WithLabelValues(class).Inc()
}

// RecordCacheHit records a cache hit at the given level
func RecordCacheHit(class, level string) {
	CacheHits.WithLabelValues(class, level).Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss(class string) {
	CacheMisses.WithLabelValues(class).Inc()
}

// RecordFetch records an upstream fetch attempt
func RecordFetch(endpoint string) {
	Fetches.WithLabelValues(endpoint).Inc()
}

// RecordFetchFailure records a classified upstream fetch failure
func RecordFetchFailure(endpoint, kind string) {
	FetchFailures.WithLabelValues(endpoint, kind).Inc()
}

// RecordStaleServed records a stale-after-error response
func RecordStaleServed() {
	StaleServed.Inc()
}

// RecordOfflineServed records a response served while offline
func RecordOfflineServed() {
	OfflineServed.Inc()
}

// RecordRefreshDeduplicated records a caller joining an in-flight refresh
func RecordRefreshDeduplicated() {
	RefreshDeduplicated.Inc()
}

// RecordSweepRemoved records entries removed by a sweep pass
func RecordSweepRemoved(count int) {
	SweepRemoved.Add(float64(count))
}

// RecordStoreError records a store tier error with level and kind
func RecordStoreError(level, kind string) {
	StoreErrors.WithLabelValues(level, kind).Inc()
}

// UpdateL1Capacity updates L1 cache capacity metrics
func UpdateL1Capacity(capacity int64) {
	CacheCapacity.WithLabelValues("l1").Set(float64(capacity))
}

// UpdateCacheKeys updates the number of live keys at a level
func UpdateCacheKeys(level string, count int64) {
	CacheKeys.WithLabelValues(level).Set(float64(count))
}

// TimeCacheGetOperation returns a timer function for measuring cache get operation duration
func TimeCacheGetOperation(level string) func() {
	timer := prometheus.NewTimer(CacheOperationDuration.WithLabelValues("get", level))
	return func() {
		timer.ObserveDuration()
	}
}
