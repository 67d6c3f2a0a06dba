package ports

import (
	"context"

	"workorders/internal/core/domain/model/order"
)

// OrderLookup reads source orders owned by the order module.
type OrderLookup interface {
	// GetOrder returns the order with its status and line items.
	// Fails with errs.ErrObjectNotFound when no order has the given id.
	GetOrder(ctx context.Context, orderID string) (*order.Order, error)
}
