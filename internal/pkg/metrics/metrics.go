package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "oath"

var (
	// FortuneDelivered выданные прогнозы по ступени деградации
	FortuneDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fortune_delivered_total",
		Help:      "Daily fortunes delivered, by fallback level.",
	}, []string{"level"})

	NatalComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "natal_compute_duration_seconds",
		Help:      "Natal chart fork-join duration.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	// NatalBranchFailures отказы ветвей натальной карты: astrology, bazi
	NatalBranchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "natal_branch_failures_total",
		Help:      "Natal chart branch failures.",
	}, []string{"branch"})

	SafetyTriggered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "safety_triggered_total",
		Help:      "Safety filter hits, by checked source.",
	}, []string{"source"})

	PolishRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "polish_requests_total",
		Help:      "LLM polish calls, by result.",
	}, []string{"result"})

	PolishTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "polish_tokens_total",
		Help:      "LLM tokens consumed.",
	}, []string{"direction"})

	PolishCostUSD = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "polish_cost_usd_total",
		Help:      "Estimated LLM spend in USD.",
	})

	CacheOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_operations_total",
		Help:      "Fortune cache lookups, by key kind and result.",
	}, []string{"kind", "result"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests, by route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter, by group.",
	}, []string{"group"})

	JobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_runs_total",
		Help:      "Scheduled job executions, by job and result.",
	}, []string{"job", "result"})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Domain events sent to Kafka, by type and result.",
	}, []string{"event", "result"})
)
