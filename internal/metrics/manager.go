package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	CounterRequests           *prometheus.CounterVec
	CounterHandleRequestPanic prometheus.Counter
	// CounterWorkoutChanges counts committed mutations by kind (created, updated, deleted).
	CounterWorkoutChanges *prometheus.CounterVec
	// CounterPersistenceErrors counts failed store operations by operation name.
	CounterPersistenceErrors *prometheus.CounterVec

	GaugeRequests prometheus.Gauge

	HistogramRequestDuration *prometheus.HistogramVec
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("caley", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request",
			Help:      "The total number of incoming requests",
		}, []string{"method", "status"}),
		CounterHandleRequestPanic: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "handle_request_panic",
			Help:      "The total number of serve request panics",
		}),
		CounterWorkoutChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "workout_changes",
			Help:      "The total number of committed workout changes",
		}, []string{"kind"}),
		CounterPersistenceErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "persistence_errors",
			Help:      "The total number of failed workout store operations",
		}, []string{"op"}),
		GaugeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "current_requests",
			Help:      "Current number of requests served",
		}),
		HistogramRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Request duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"method"}),
	}
}

// PersistenceFailed records a failed store operation. It is safe to call on a nil Manager.
func (m *Manager) PersistenceFailed(op string) {
	if m == nil {
		return
	}
	m.CounterPersistenceErrors.WithLabelValues(op).Inc()
}
