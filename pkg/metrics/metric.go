package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// DispatchRequestsTotal counts dispatch requests by outcome (ok, bad_request, unreachable, error)
	DispatchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ambulancex_dispatch_requests_total",
			Help: "Total number of dispatch requests",
		},
		[]string{"outcome"},
	)

	// CandidateSearchesTotal counts per-destination searches by result (reachable, no_path, limit_exceeded)
	CandidateSearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ambulancex_candidate_searches_total",
			Help: "Total number of searches towards a candidate destination",
		},
		[]string{"destination", "result"},
	)

	SearchSettledNodes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ambulancex_search_settled_nodes",
			Help:    "Number of vertices settled by one A* search",
			Buckets: prometheus.ExponentialBuckets(16, 4, 9),
		},
	)

	DispatchDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ambulancex_dispatch_duration_seconds",
			Help:    "Latency of dispatch requests",
			Buckets: prometheus.DefBuckets,
		},
	)
)

const (
	OutcomeOK          = "ok"
	OutcomeBadRequest  = "bad_request"
	OutcomeUnreachable = "unreachable"
	OutcomeError       = "error"

	ResultReachable     = "reachable"
	ResultNoPath        = "no_path"
	ResultLimitExceeded = "limit_exceeded"
)

func init() {
	// Register metrics with the default registry
	prometheus.MustRegister(DispatchRequestsTotal)
	prometheus.MustRegister(CandidateSearchesTotal)
	prometheus.MustRegister(SearchSettledNodes)
	prometheus.MustRegister(DispatchDurationSeconds)
}
