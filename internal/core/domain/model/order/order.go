package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"workorders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via RestoreOrder constructor")
)

// Item is one line of a source order as seen by the work order service.
type Item struct {
	id          string
	description string
}

// NewItem creates an order line. The id is required; the description may be empty.
func NewItem(id, description string) (Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Item{}, errs.NewValueIsRequiredError("order item id")
	}
	return Item{id: id, description: description}, nil
}

func (i Item) ID() string {
	return i.id
}

func (i Item) Description() string {
	return i.description
}

// Order is a read-only snapshot of a client order owned by the order module. The work
// order service uses it to gate work order creation and to validate and default work
// order items. It has no behavior that changes its state.
//
// Order follows these invariants:
//   - Must have a non-empty identifier and a valid status
//   - Line item ids are unique within the order
//   - Can only be created through RestoreOrder
type Order struct {
	id          string
	orderNumber string
	clientName  string
	status      Status
	items       []Item

	isConstructed bool
}

// RestoreOrder rebuilds an order snapshot from the order module's records.
//
// Example:
//
//	item, _ := order.NewItem("oi-1", "Banner 2x1m")
//	o, err := order.RestoreOrder("order-1", "PED-2026-014", "ACME", order.Confirmed, []order.Item{item})
//	if err != nil {
//	    // Handle validation error
//	}
func RestoreOrder(id, orderNumber, clientName string, status Status, items []Item) (*Order, error) {
	o := &Order{
		orderNumber:   orderNumber,
		clientName:    clientName,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setStatus(status),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// ID returns the order's identifier.
func (o *Order) ID() string {
	return o.id
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// ClientName returns the name of the client that placed the order.
func (o *Order) ClientName() string {
	return o.clientName
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// Item returns the line item with the given id, if it belongs to this order.
func (o *Order) Item(itemID string) (Item, bool) {
	for _, item := range o.items {
		if item.id == itemID {
			return item, true
		}
	}
	return Item{}, false
}

// EnsureAcceptsWorkOrders fails validation unless the order is Confirmed, InProduction
// or Ready. The error names the order and its current status.
func (o *Order) EnsureAcceptsWorkOrders() error {
	if !o.status.AllowsWorkOrders() {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("order %s is %s, work orders can only be opened for orders in %v",
				o.id, o.status, WorkOrderableStatuses()),
		)
	}
	return nil
}

func (o *Order) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	o.id = id
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setItems(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.id == "" {
			return errs.NewValueIsRequiredError("order item id")
		}
		if _, dup := seen[item.id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("order items", fmt.Errorf("item %s appears more than once", item.id))
		}
		seen[item.id] = struct{}{}
	}
	o.items = slices.Clone(items)
	return nil
}
