// Package commands holds the use cases that change work orders. Each handler validates
// its command, runs inside units of work it creates itself and reports domain errors
// from internal/pkg/errs unchanged.
package commands

import (
	"context"

	"workorders/internal/core/ports"
)

// Narrow views of ports.UnitOfWork, so each handler depends only on the stores it uses.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// WorkOrderRepoFactory provides access to the work order repository within a transaction.
	WorkOrderRepoFactory interface {
		WorkOrderRepository() ports.WorkOrderRepository
	}

	// OrderLookupFactory provides access to source orders within a transaction.
	OrderLookupFactory interface {
		OrderLookup() ports.OrderLookup
	}

	// WorkOrderUoW manages transactions for operations that only touch work orders.
	WorkOrderUoW interface {
		TxManager
		WorkOrderRepoFactory
	}

	// WorkOrderUoWFactory creates new work order unit of work instances.
	WorkOrderUoWFactory interface {
		Create() WorkOrderUoW
	}

	// UoW manages transactions for operations that also read source orders.
	//
	// Create and update read the source order through OrderLookup in the same
	// transaction that touches the work order.
	UoW interface {
		TxManager
		WorkOrderRepoFactory
		OrderLookupFactory
	}

	// UoWFactory creates new unit of work instances for order-aware operations.
	UoWFactory interface {
		Create() UoW
	}
)
