package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request kinds, one per branch of the receiver.
const (
	KindAlertPayload  = "alert_payload"
	KindMissingLength = "missing_length"
	KindNonJSON       = "non_json"
	KindFailed        = "failed"
)

// ReceiverMonitor counts what the webhook receiver has seen.
type ReceiverMonitor struct {
	requests *prometheus.CounterVec
	alerts   prometheus.Counter
	duration prometheus.Histogram
}

// NewReceiverMonitor creates the receiver metrics and registers them.
func NewReceiverMonitor(registry prometheus.Registerer) *ReceiverMonitor {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_requests_total",
		Help: "Number of POST requests handled, by outcome",
	}, []string{"kind"})
	alerts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webhook_alerts_received_total",
		Help: "Number of alerts printed",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "webhook_request_duration_seconds",
		Help:    "Duration of POST request handling",
		Buckets: prometheus.DefBuckets,
	})
	registry.MustRegister(requests, alerts, duration)

	// Pre-create every kind so dashboards see zeros instead of gaps.
	for _, kind := range []string{KindAlertPayload, KindMissingLength, KindNonJSON, KindFailed} {
		requests.WithLabelValues(kind)
	}

	return &ReceiverMonitor{
		requests: requests,
		alerts:   alerts,
		duration: duration,
	}
}

// Observe records one handled request.
func (m *ReceiverMonitor) Observe(kind string, alerts int, elapsed time.Duration) {
	m.requests.WithLabelValues(kind).Inc()
	if alerts > 0 {
		m.alerts.Add(float64(alerts))
	}
	m.duration.Observe(elapsed.Seconds())
}
