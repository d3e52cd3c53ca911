package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation HTTP handler
	RecommendationLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommendation_handler_latency_seconds",
		Help:    "Latency of the product recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served over HTTP
	RecommendationRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommendation_handler_requests_total",
		Help: "Total number of recommendation HTTP requests",
	})

	// Total number of browsing-history tracking requests
	TrackingRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tracking_handler_requests_total",
		Help: "Total number of browsing history tracking requests",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendationLatency,
		RecommendationRequests,
		TrackingRequests,
	)
}
