package services

import (
	"fmt"
	"strings"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"
)

// ItemSpec describes a work order item to be created from an order line.
// A nil or blank ProductDescription falls back to the order line's description.
type ItemSpec struct {
	OrderItemID        string
	ProductDescription *string
	Observations       string
	ProductionAreaIDs  []string
	Supplies           []workorder.SupplyAllocation
}

// ItemResolver ties work order items to the lines of their source order.
//
// Business rules:
//   - Every item must reference a line of the work order's own order
//   - Items without a product description take the description of their order line
//
// Example usage:
//
//	resolver := services.NewItemResolver()
//	items, err := resolver.BuildItems(o, []services.ItemSpec{{OrderItemID: "oi-1"}})
//	if errors.Is(err, errs.ErrValueIsInvalid) {
//	    // an item does not belong to the order
//	}
type ItemResolver struct{}

func NewItemResolver() ItemResolver {
	return ItemResolver{}
}

// Resolve returns the order line orderItemID refers to and the product description the
// work order item should carry. The first line that is not part of o fails with
// errs.ErrValueIsInvalid naming both the line and the order.
func (r ItemResolver) Resolve(o *order.Order, orderItemID string, description *string) (order.Item, string, error) {
	if err := o.Validate(); err != nil {
		return order.Item{}, "", err
	}

	line, ok := o.Item(orderItemID)
	if !ok {
		return order.Item{}, "", NewForeignOrderItemError(orderItemID, o.ID())
	}

	if description != nil && strings.TrimSpace(*description) != "" {
		return line, *description, nil
	}
	return line, line.Description(), nil
}

// BuildItems validates every spec against o and creates the work order items with fresh
// identifiers. An order line may back at most one item. Nothing is built if any spec is
// rejected.
func (r ItemResolver) BuildItems(o *order.Order, specs []ItemSpec) ([]*workorder.Item, error) {
	items := make([]*workorder.Item, 0, len(specs))
	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		line, description, err := r.Resolve(o, spec.OrderItemID, spec.ProductDescription)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[line.ID()]; dup {
			return nil, NewDuplicateOrderItemError(line.ID())
		}
		seen[line.ID()] = struct{}{}

		item, err := workorder.NewItem(
			kernel.NewUUID(),
			line.ID(),
			description,
			spec.Observations,
			spec.ProductionAreaIDs,
			spec.Supplies,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// NewForeignOrderItemError reports an order item that is not a line of the given order.
func NewForeignOrderItemError(orderItemID, orderID string) *errs.ValueIsInvalidError {
	return errs.NewValueIsInvalidErrorWithCause(
		"orderItemId",
		fmt.Errorf("order item %s does not belong to order %s", orderItemID, orderID),
	)
}

// NewDuplicateOrderItemError reports an order line referenced by more than one item.
func NewDuplicateOrderItemError(orderItemID string) *errs.ValueIsInvalidError {
	return errs.NewValueIsInvalidErrorWithCause(
		"items",
		fmt.Errorf("order item %s appears more than once", orderItemID),
	)
}
