package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repairs_gateway_requests_total",
		Help: "Calls issued to the remote API, by method and outcome.",
	}, []string{"method", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "repairs_gateway_request_duration_seconds",
		Help:    "Latency of calls to the remote API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

func observe(method string, err error, seconds float64) {
	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
	}
	requestsTotal.WithLabelValues(method, outcome).Inc()
	requestDuration.WithLabelValues(method).Observe(seconds)
}
