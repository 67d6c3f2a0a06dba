package ports

import "workorders/internal/core/domain/model/workorder"

// LifecycleMetrics receives the outcome of lifecycle operations. Implementations must
// be safe for concurrent use.
type LifecycleMetrics interface {
	WorkOrderCreated(initialStatus workorder.Status)
	NumberCollision()
	StatusChanged(from, to workorder.Status)
	WorkOrderDeleted()
}
