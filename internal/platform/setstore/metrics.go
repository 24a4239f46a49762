package setstore

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	operationLoad = "load"
	operationSave = "save"

	resultOK      = "ok"
	resultMissing = "missing"
	resultCorrupt = "corrupt"
	resultError   = "error"
)

// Metrics counts snapshot loads and saves per storage key.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics registers the set store collectors with registerer. Registering
// twice against the same registerer reuses the existing collectors.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &Metrics{
		operations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "souvenirs_setstore_operations_total",
			Help: "Total number of snapshot loads and saves by outcome",
		}, []string{"key", "operation", "result"}),
		duration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "souvenirs_setstore_operation_duration_seconds",
			Help:    "Duration of snapshot loads and saves in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"key", "operation"}),
	}
}

func (m *Metrics) observe(key, operation, result string, started time.Time) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(key, operation, result).Inc()
	m.duration.WithLabelValues(key, operation).Observe(time.Since(started).Seconds())
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}
