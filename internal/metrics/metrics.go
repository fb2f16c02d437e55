package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace        = "roster"
	operationsMetric = namespace + "_store_operations_total"
)

// Recorder counts player store operations. A nil Recorder records nothing.
type Recorder struct {
	reg        *prometheus.Registry
	operations *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Player store operations by operation and result.",
	}, []string{"op", "result"})
	reg.MustRegister(
		operations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Recorder{
		reg:        reg,
		operations: operations,
	}
}

// RecordOperation increments the counter for op, labelled with result.
func (r *Recorder) RecordOperation(op string, result string) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(op, result).Inc()
}

// Count reads the current value of the op/result counter from the registry.
func (r *Recorder) Count(op string, result string) float64 {
	if r == nil {
		return 0
	}
	families, err := r.reg.Gather()
	if err != nil {
		return 0
	}
	for _, family := range families {
		if family.GetName() != operationsMetric {
			continue
		}
		for _, m := range family.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["op"] == op && labels["result"] == result {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
