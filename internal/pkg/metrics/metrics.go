// Package metrics exposes the work order lifecycle counters to Prometheus.
//
// Metrics:
//   - work_orders_created_total{initial_status}
//   - work_order_number_collisions_total
//   - work_order_status_transitions_total{from,to}
//   - work_orders_deleted_total
package metrics

import (
	"sync"

	"workorders/internal/core/domain/model/workorder"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	defaultMetrics *LifecycleMetrics
	defaultOnce    sync.Once
)

// LifecycleMetrics implements ports.LifecycleMetrics with Prometheus counters.
type LifecycleMetrics struct {
	created     *prometheus.CounterVec
	collisions  prometheus.Counter
	transitions *prometheus.CounterVec
	deleted     prometheus.Counter
}

// Default returns the metrics registered on the global Prometheus registry. Repeated
// calls return the same instance.
func Default() *LifecycleMetrics {
	defaultOnce.Do(func() {
		defaultMetrics = NewLifecycleMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// NewLifecycleMetrics registers the counters on reg. Registering twice on the same
// registry panics.
func NewLifecycleMetrics(reg prometheus.Registerer) *LifecycleMetrics {
	factory := promauto.With(reg)
	return &LifecycleMetrics{
		created: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "work_orders_created_total",
				Help: "Total number of work orders created",
			},
			[]string{"initial_status"},
		),
		collisions: factory.NewCounter(prometheus.CounterOpts{
			Name: "work_order_number_collisions_total",
			Help: "Total number of generated work order numbers that were already taken",
		}),
		transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "work_order_status_transitions_total",
				Help: "Total number of work order status changes",
			},
			[]string{"from", "to"},
		),
		deleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "work_orders_deleted_total",
			Help: "Total number of draft work orders deleted",
		}),
	}
}

func (m *LifecycleMetrics) WorkOrderCreated(initialStatus workorder.Status) {
	m.created.WithLabelValues(initialStatus.String()).Inc()
}

func (m *LifecycleMetrics) NumberCollision() {
	m.collisions.Inc()
}

func (m *LifecycleMetrics) StatusChanged(from, to workorder.Status) {
	m.transitions.WithLabelValues(from.String(), to.String()).Inc()
}

func (m *LifecycleMetrics) WorkOrderDeleted() {
	m.deleted.Inc()
}
