package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	BackendCallsTotal   *prometheus.CounterVec
	BackendCallDuration *prometheus.HistogramVec

	initOnce sync.Once
)

// Init registers the gateway collectors with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		)

		BackendCallsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_backend_calls_total",
				Help: "Total number of calls issued to the backend engine.",
			},
			[]string{"rpc", "code"}, // code: gRPC status code name
		)

		BackendCallDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_backend_call_duration_seconds",
				Help:    "Duration of backend engine calls.",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"rpc"},
		)
	})
}
