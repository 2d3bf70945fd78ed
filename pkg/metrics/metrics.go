// Package metrics provides Prometheus instrumentation for protocol operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all metrics
	Namespace = "evss"

	// Label names
	LabelProtocol  = "protocol"
	LabelOperation = "operation"
	LabelStatus    = "status"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"
	StatusInvalid = "invalid"

	// Operation names
	OpSetup         = "setup"
	OpCommit        = "commit"
	OpShare         = "share"
	OpCheck         = "check"
	OpReconstruct   = "reconstruct"
	OpCreateWitness = "create_witness"
)

// Metrics holds the collectors of one registry. A nil *Metrics records nothing.
type Metrics struct {
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "operations_total",
				Help:      "Total number of protocol operations by protocol, operation, and status",
			},
			[]string{LabelProtocol, LabelOperation, LabelStatus},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of protocol operations in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{LabelProtocol, LabelOperation},
		),
	}
}

// RecordOperation records one operation with its status and duration.
func (m *Metrics) RecordOperation(protocol, operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.OperationsTotal.WithLabelValues(protocol, operation, status).Inc()
	m.OperationDuration.WithLabelValues(protocol, operation).Observe(duration.Seconds())
}

// Observe records operation as started at start, deriving the status from err.
//
//	defer m.Observe("evss", OpShare, time.Now(), &err)
func (m *Metrics) Observe(protocol, operation string, start time.Time, err *error) {
	status := StatusSuccess
	if err != nil && *err != nil {
		status = StatusError
	}
	m.RecordOperation(protocol, operation, status, time.Since(start))
}

// VerdictStatus maps the result of a verification to a status label.
func VerdictStatus(ok bool, err error) string {
	switch {
	case err != nil:
		return StatusError
	case !ok:
		return StatusInvalid
	}
	return StatusSuccess
}
