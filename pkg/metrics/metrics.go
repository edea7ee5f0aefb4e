// Package metrics holds the Prometheus collectors for the picker service.
// Everything is registered through promauto on the default registry and
// served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchesTotal counts search attempts by how they ended. Outcomes:
	// success, busy, no_genres, throttled, auth_required, no_connectivity,
	// timed_out, network, failed.
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviematch_searches_total",
			Help: "Search attempts by outcome",
		},
		[]string{"outcome"},
	)

	// RecommendDuration tracks upstream recommendation call latency,
	// failures included.
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moviematch_recommend_duration_seconds",
			Help:    "Latency of upstream recommendation calls",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ActiveSessions is the number of live picker sessions in the registry.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moviematch_active_sessions",
			Help: "Live picker sessions",
		},
	)

	// StreamClients is the number of websocket state streams currently
	// connected.
	StreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moviematch_stream_clients",
			Help: "Connected websocket state stream clients",
		},
	)
)
