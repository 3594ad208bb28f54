package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(upstreamLatencyMs, upstreamUnauthorizedTotal) }

var upstreamLatencyMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "backend_request_latency_ms",
		Help:    "Latency of calls to the reseller backend in milliseconds.",
		Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
	},
	[]string{"endpoint", "success"},
)

var upstreamUnauthorizedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "backend_unauthorized_total",
		Help: "Backend responses that invalidated the local session (HTTP 401).",
	},
)

func ObserveBackendLatency(endpoint string, ms float64, success bool) {
	s := "false"
	if success {
		s = "true"
	}
	upstreamLatencyMs.WithLabelValues(endpoint, s).Observe(ms)
}

func IncBackendUnauthorized() { upstreamUnauthorizedTotal.Inc() }
