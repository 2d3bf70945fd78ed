package evss

import (
	"github.com/mr-shifu/evss/pkg/logging"
	"github.com/mr-shifu/evss/pkg/metrics"
)

type Option func(*EVSS)

// WithLogger sets the logger. Secret material is never logged.
func WithLogger(l *logging.Logger) Option {
	return func(e *EVSS) {
		if l != nil {
			e.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *EVSS) {
		e.metrics = m
	}
}
