package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and route
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "osday_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "route"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "osday_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "route"},
	)

	// SubmissionsEvaluated counts evaluated submissions by verdict
	SubmissionsEvaluated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "osday_submissions_evaluated_total",
			Help: "Total number of submissions evaluated, labelled by verdict",
		},
		[]string{"status"},
	)

	// GitHubAPIRequests counts calls to the GitHub API by endpoint and outcome
	GitHubAPIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "osday_github_api_requests_total",
			Help: "Total number of GitHub API calls, labelled by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)
)
