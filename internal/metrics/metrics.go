package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LogQueryRequests counts log API page requests by source and outcome
	LogQueryRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swap_status_log_query_requests_total",
			Help: "Total number of log query page requests",
		},
		[]string{"source", "outcome"},
	)

	// LogQueryRetries counts retried log API requests
	LogQueryRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "swap_status_log_query_retries_total",
			Help: "Total number of retried log query requests",
		},
	)

	// LinesFetched counts unique log lines returned per source
	LinesFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swap_status_log_lines_fetched_total",
			Help: "Total number of unique log lines fetched",
		},
		[]string{"source"},
	)

	// FetchCapReached counts fetches stopped by the request cap rather than by data exhaustion
	FetchCapReached = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swap_status_log_fetch_cap_reached_total",
			Help: "Total number of fetches truncated by the request cap",
		},
		[]string{"source"},
	)

	// Narrations counts narrative summaries by outcome (llm, cached, empty, fallback)
	Narrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swap_status_narrations_total",
			Help: "Total number of narrative summaries by outcome",
		},
		[]string{"outcome"},
	)

	// MatchedOrderRequests counts matched-order API calls by outcome
	MatchedOrderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swap_status_matched_order_requests_total",
			Help: "Total number of matched-order API requests",
		},
		[]string{"outcome"},
	)

	// StatusChecks counts status checks by outcome (complete, partial, not_found, failed)
	StatusChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swap_status_checks_total",
			Help: "Total number of transaction status checks",
		},
		[]string{"outcome"},
	)

	// StatusCheckDuration tracks end-to-end status check time
	StatusCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "swap_status_check_duration_seconds",
			Help:    "Transaction status check duration in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	// SourceErrors counts per-source failures
	SourceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swap_status_source_errors_total",
			Help: "Total number of per-source failures",
		},
		[]string{"source"},
	)
)
