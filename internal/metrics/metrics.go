// Package metrics holds the Prometheus collectors exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by route, method and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieshelf_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPRequestDuration observes request latency by route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movieshelf_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// HTTPRateLimitedTotal counts requests rejected by the rate limiter
	HTTPRateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movieshelf_http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// CatalogEntities reports stored entity counts by kind
	CatalogEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "movieshelf_catalog_entities",
			Help: "Number of entities stored in the catalog",
		},
		[]string{"kind"},
	)

	// ReferentialViolationsTotal counts reviews refused for a missing movie or user
	ReferentialViolationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movieshelf_referential_violations_total",
			Help: "Total number of reviews refused because the movie or user does not exist",
		},
	)

	// FeaturedRotationsTotal counts featured-movie rotations
	FeaturedRotationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movieshelf_featured_rotations_total",
			Help: "Total number of featured movie rotations",
		},
	)
)
