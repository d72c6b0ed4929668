package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EnvelopesTotal counts envelopes written through the gin sink, by status tag.
// Other JSON bodies on the same router are not counted.
var EnvelopesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "respfmt_envelopes_total",
		Help: "Total number of response envelopes written, by status tag",
	},
	[]string{"status"},
)

// HTTP request metrics
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "respfmt_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"path", "method", "code"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "respfmt_http_request_duration_seconds",
			Help:    "Latency in seconds to serve HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
)

func init() {
	prometheus.MustRegister(EnvelopesTotal)
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration)
}
