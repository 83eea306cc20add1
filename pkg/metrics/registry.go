// Package metrics exposes Prometheus metrics for the webhook receiver.
package metrics

import (
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	dto "github.com/prometheus/client_model/go"
	"google.golang.org/protobuf/proto"
)

// Registry is a Prometheus registry that stamps a fixed set of labels onto
// every gathered metric.
type Registry struct {
	*prometheus.Registry
	labels map[string]string
}

// NewRegistry creates a registry with the Go and process collectors
// registered. labels may be nil.
func NewRegistry(labels map[string]string) *Registry {
	registry := &Registry{
		Registry: prometheus.NewRegistry(),
		labels:   labels,
	}
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return registry
}

// Gather stamps the configured labels onto every gathered metric, keeping
// each metric's labels sorted by name.
func (r *Registry) Gather() ([]*dto.MetricFamily, error) {
	families, err := r.Registry.Gather()
	if err != nil || len(r.labels) == 0 {
		return families, err
	}

	extra := make([]*dto.LabelPair, 0, len(r.labels))
	for name, value := range r.labels {
		extra = append(extra, &dto.LabelPair{Name: proto.String(name), Value: proto.String(value)})
	}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			metric.Label = append(metric.Label, extra...)
			slices.SortFunc(metric.Label, func(a, b *dto.LabelPair) int {
				return strings.Compare(a.GetName(), b.GetName())
			})
		}
	}
	return families, nil
}
