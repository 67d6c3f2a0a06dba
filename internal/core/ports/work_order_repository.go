// Package ports defines the contracts between the work order core and its
// collaborators: persistence, source orders and document numbering.
package ports

import (
	"context"
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
)

// ErrActiveWorkOrderExists is returned by WorkOrderRepository.Add when the store
// already holds a non-cancelled work order for the same order.
var ErrActiveWorkOrderExists = errors.New("order already has an active work order")

// WorkOrderFilter narrows WorkOrderReader.List. Empty fields do not filter.
type WorkOrderFilter struct {
	Status  *workorder.Status
	OrderID string
	// Search matches work order number, client name and order number,
	// case-insensitively.
	Search     string
	Pagination Pagination
}

// ItemChanges lists the item fields an update replaces. A nil field is left untouched;
// a non-nil empty collection clears it.
type ItemChanges struct {
	ProductDescription *string
	Observations       *string
	ProductionAreaIDs  *[]string
	Supplies           *[]workorder.SupplyAllocation
}

// IsEmpty reports whether no field is set.
func (c ItemChanges) IsEmpty() bool {
	return c.ProductDescription == nil && c.Observations == nil &&
		c.ProductionAreaIDs == nil && c.Supplies == nil
}

// WorkOrderReader is the read side of the work order store.
type WorkOrderReader interface {
	// List returns one page of work orders matching filter, newest first. The total
	// is counted with the same predicate as the page.
	List(ctx context.Context, filter WorkOrderFilter) (Page[*workorder.WorkOrder], error)

	// Get returns the work order with all items, areas and supplies.
	// Fails with errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error)
}

// WorkOrderRepository defines the persistence contract for work order aggregates.
type WorkOrderRepository interface {
	WorkOrderReader

	// FindActiveByOrder returns the non-cancelled work order of orderID, or nil.
	FindActiveByOrder(ctx context.Context, orderID string) (*workorder.WorkOrder, error)

	// Add inserts the work order with its items, production area links and supply
	// allocations in one call. Uniqueness violations are reported as
	// ErrWorkOrderNumberTaken or ErrActiveWorkOrderExists.
	Add(ctx context.Context, wo *workorder.WorkOrder) error

	// Update persists the header fields (designer, file name, observations).
	Update(ctx context.Context, wo *workorder.WorkOrder) error

	// UpdateStatus persists only the status.
	UpdateStatus(ctx context.Context, wo *workorder.WorkOrder) error

	// Delete removes the work order; items, links and allocations go with it.
	Delete(ctx context.Context, id kernel.UUID) error

	// GetItem returns the item only if it belongs to workOrderID.
	// Fails with errs.ErrObjectNotFound otherwise.
	GetItem(ctx context.Context, workOrderID, itemID kernel.UUID) (*workorder.Item, error)

	// UpdateItem replaces production areas and supplies (delete all, then insert) and
	// then applies scalar fields, atomically.
	UpdateItem(ctx context.Context, itemID kernel.UUID, changes ItemChanges) error

	// UpsertSupply creates or replaces the allocation keyed by (itemID, supply).
	UpsertSupply(ctx context.Context, itemID kernel.UUID, allocation workorder.SupplyAllocation) error

	// RemoveSupply deletes the allocation and reports whether it existed.
	RemoveSupply(ctx context.Context, itemID kernel.UUID, supplyID string) (bool, error)
}
