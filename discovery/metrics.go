package discovery

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

type metrics struct {
	// initializations counts Initialize calls made by AddBinding.
	// Labels: result (success, failure)
	initializations *prometheus.CounterVec

	// bindings is the number of stored bindings.
	bindings prometheus.Gauge

	// types is the number of registered types.
	types prometheus.Gauge
}

func newMetrics() *metrics {
	return &metrics{
		initializations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "binding",
				Subsystem: "discovery",
				Name:      "initializations_total",
				Help:      "Total number of binding initializations by result",
			},
			[]string{"result"},
		),
		bindings: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "binding",
				Subsystem: "discovery",
				Name:      "bindings",
				Help:      "Number of bindings currently registered",
			},
		),
		types: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "binding",
				Subsystem: "discovery",
				Name:      "types",
				Help:      "Number of binding types currently registered",
			},
		),
	}
}

func (m *metrics) register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.initializations, m.bindings, m.types} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
