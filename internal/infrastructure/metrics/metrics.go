// Package metrics counts classifications with Prometheus collectors and
// exports them in the node_exporter textfile format.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/doeshing/vitals-go/internal/domain"
	"github.com/doeshing/vitals-go/internal/ports"
)

// Metrics records classification outcomes in a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	classifications *prometheus.CounterVec
	evaluations     *prometheus.CounterVec
}

// NewMetrics registers the vitals counters.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vitals_classifications_total",
			Help: "Total vital readings classified by vital and status.",
		}, []string{"vital", "status"}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vitals_evaluations_total",
			Help: "Total evaluations by whether every vital was ok.",
		}, []string{"all_ok"}),
	}
	m.registry.MustRegister(m.classifications, m.evaluations)
	return m
}

// ObserveClassification counts one classified reading.
func (m *Metrics) ObserveClassification(kind domain.VitalKind, status domain.VitalStatus) {
	m.classifications.WithLabelValues(string(kind), string(status)).Inc()
}

// ObserveEvaluation counts one evaluation by its all-ok outcome.
func (m *Metrics) ObserveEvaluation(allOk bool) {
	m.evaluations.WithLabelValues(strconv.FormatBool(allOk)).Inc()
}

// Registry exposes the private registry backing the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Totals sums every counter family by name.
func (m *Metrics) Totals() (map[string]float64, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}
	totals := make(map[string]float64, len(families))
	for _, mf := range families {
		totals[mf.GetName()] = sumCounters(mf)
	}
	return totals, nil
}

func sumCounters(mf *dto.MetricFamily) float64 {
	var total float64
	for _, metric := range mf.GetMetric() {
		total += metric.GetCounter().GetValue()
	}
	return total
}

// WriteTextfile writes the current values to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

var _ ports.MetricsRecorder = (*Metrics)(nil)
