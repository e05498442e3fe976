/*
Package metrics declares the prometheus collectors exported on /metrics.
*/
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pinmap"

// Gate decision label values.
const (
	DecisionAllowed = "allowed"
	DecisionDenied  = "denied"
)

var (
	// GateDecisions counts authorization gate outcomes per operation.
	GateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Authorization gate decisions by operation and outcome.",
	}, []string{"operation", "decision"})

	// PinOperations counts repository operations by kind and result code.
	PinOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pin_operations_total",
		Help:      "Pin repository operations by operation and result.",
	}, []string{"operation", "result"})

	// StoredPins tracks the number of pins held by the in-memory repository.
	StoredPins = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stored_pins",
		Help:      "Pins currently held by the in-memory repository.",
	})
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
