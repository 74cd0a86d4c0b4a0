package metrics

import "github.com/prometheus/client_golang/prometheus"

// Vector search and tool call Prometheus metrics.
var (
	VectorSearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vector_search_requests_total",
			Help:      "Total number of vector index queries",
		},
		[]string{"driver", "status"},
	)

	VectorSearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "vector_search_duration_seconds",
			Help:      "Vector index query duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"driver"},
	)

	MalformedMatchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_matches_total",
			Help:      "Search hits skipped because their metadata did not fit the perfume schema",
		},
	)

	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Tool invocations by outcome",
		},
		[]string{"tool", "outcome"}, // outcome: success / no_results / error kind
	)
)
