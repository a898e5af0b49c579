package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts lookups served from a fresh entry.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookquest_cache_hits_total",
		Help: "Total number of response cache hits",
	})

	// CacheMisses counts lookups that had to call the loader, stale entries included.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookquest_cache_misses_total",
		Help: "Total number of response cache misses",
	})

	// CacheErrors counts store failures by operation ("get", "put").
	CacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookquest_cache_errors_total",
		Help: "Total number of response cache store errors",
	}, []string{"operation"})
)
