package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RiotRequests counts the outbound Riot API calls by endpoint and outcome.
	RiotRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tourneyhub",
		Subsystem: "riot",
		Name:      "requests_total",
		Help:      "Outbound Riot API requests by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	// RiotRequestDuration observes the outbound call latency.
	RiotRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tourneyhub",
		Subsystem: "riot",
		Name:      "request_duration_seconds",
		Help:      "Latency of outbound Riot API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	// RateLimitRejections counts the calls refused by the fixed window limiter.
	RateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tourneyhub",
		Subsystem: "riot",
		Name:      "rate_limit_rejections_total",
		Help:      "Outbound calls rejected by the rate limiter.",
	})

	// LeaderboardCache counts leaderboard cache lookups by result.
	LeaderboardCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tourneyhub",
		Subsystem: "leaderboard",
		Name:      "cache_lookups_total",
		Help:      "Leaderboard cache lookups by result.",
	}, []string{"result"})

	// StatsRefreshes counts the stats refreshes by outcome.
	StatsRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tourneyhub",
		Subsystem: "stats",
		Name:      "refreshes_total",
		Help:      "Linked account stats refreshes by outcome.",
	}, []string{"outcome"})
)
