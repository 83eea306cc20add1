package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiverMonitor(t *testing.T) {
	registry := prometheus.NewRegistry()
	monitor := NewReceiverMonitor(registry)

	monitor.Observe(KindAlertPayload, 3, 10*time.Millisecond)
	monitor.Observe(KindAlertPayload, 0, time.Millisecond)
	monitor.Observe(KindNonJSON, 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(monitor.requests.WithLabelValues(KindAlertPayload)))
	assert.Equal(t, 1.0, testutil.ToFloat64(monitor.requests.WithLabelValues(KindNonJSON)))
	assert.Equal(t, 0.0, testutil.ToFloat64(monitor.requests.WithLabelValues(KindFailed)))
	assert.Equal(t, 3.0, testutil.ToFloat64(monitor.alerts))

	expected := strings.NewReader(`
        # HELP webhook_requests_total Number of POST requests handled, by outcome
        # TYPE webhook_requests_total counter
        webhook_requests_total{kind="alert_payload"} 2
        webhook_requests_total{kind="failed"} 0
        webhook_requests_total{kind="missing_length"} 0
        webhook_requests_total{kind="non_json"} 1
    `)
	err := testutil.GatherAndCompare(registry, expected, "webhook_requests_total")
	require.NoError(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(monitor.duration))
}

func TestRegistryAddsLabels(t *testing.T) {
	registry := NewRegistry(map[string]string{"cluster": "e2e"})
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webhook_test_total",
		Help: "Test counter",
	})
	registry.MustRegister(counter)
	counter.Inc()

	expected := strings.NewReader(`
        # HELP webhook_test_total Test counter
        # TYPE webhook_test_total counter
        webhook_test_total{cluster="e2e"} 1
    `)
	err := testutil.GatherAndCompare(registry, expected, "webhook_test_total")
	require.NoError(t, err)
}

func TestRegistryLabelsAreSorted(t *testing.T) {
	registry := NewRegistry(map[string]string{"zone": "b", "cluster": "e2e"})
	monitor := NewReceiverMonitor(registry)
	monitor.Observe(KindNonJSON, 0, time.Millisecond)

	families, err := registry.Gather()
	require.NoError(t, err)

	var found bool
	for _, family := range families {
		if family.GetName() != "webhook_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			names := make([]string, 0, len(metric.GetLabel()))
			for _, label := range metric.GetLabel() {
				names = append(names, label.GetName())
			}
			assert.Equal(t, []string{"cluster", "kind", "zone"}, names)
			found = true
		}
	}
	assert.True(t, found)
}

func TestRegistryIncludesRuntimeCollectors(t *testing.T) {
	registry := NewRegistry(nil)

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
}
