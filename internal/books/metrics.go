package books

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookquest_upstream_requests_total",
		Help: "Total Google Books requests by HTTP status (\"error\" when no response)",
	}, []string{"status"})

	upstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookquest_upstream_request_duration_seconds",
		Help:    "Google Books request duration in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	})
)
