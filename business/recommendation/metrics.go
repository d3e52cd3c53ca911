package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_results_total",
			Help: "Count of recommendation requests by outcome (cache_hit, hybrid, generic, fallback, empty, not_found).",
		},
		[]string{"outcome"},
	)

	SignalFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_signal_failures_total",
			Help: "Count of signal generator failures by signal name.",
		},
		[]string{"signal"},
	)

	CacheWriteFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_write_failures_total",
			Help: "Count of best-effort cache writes that failed.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RecommendationResultsTotal,
		SignalFailuresTotal,
		CacheWriteFailuresTotal,
	)
}
