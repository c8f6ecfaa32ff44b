package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// HTTPRequestsTotal is labelled by route template, never by the raw path,
	// so short ids do not create new series.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shorturl_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shorturl_http_request_duration_seconds",
			Help:    "HTTP request latency distributions.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	CodecOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shorturl_codec_operations_total",
			Help: "Short id encode and decode operations by result.",
		},
		[]string{"op", "result"},
	)

	AccessesFlushedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shorturl_accesses_flushed_total",
			Help: "Accesses written to the access counters.",
		},
	)
)

// Init registers the collectors to the default registry. Calling it again is a no-op.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			CodecOperationsTotal,
			AccessesFlushedTotal,
		)
	})
}

// ObserveCodec counts one encode or decode.
func ObserveCodec(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	CodecOperationsTotal.WithLabelValues(op, result).Inc()
}
