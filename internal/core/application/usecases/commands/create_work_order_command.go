package commands

import (
	"errors"
	"strings"

	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/domain/services"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrCreateWorkOrderCommandIsNotConstructed = errors.New(
	"CreateWorkOrderCommand must be created via NewCreateWorkOrderCommand constructor",
)

// CreateWorkOrderCommand represents a request to open a work order for an order.
//
// Example:
//
//	cmd, err := NewCreateWorkOrderCommand("order-1", "user-1", workorder.Draft,
//	    []services.ItemSpec{{OrderItemID: "oi-1"}})
//	if err != nil {
//	    return fmt.Errorf("invalid work order data: %w", err)
//	}
//
//	wo, err := handler.Handle(ctx, cmd)
type CreateWorkOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       string
	callerID      string
	initialStatus workorder.Status
	items         []services.ItemSpec

	guard guard.ConstructorGuard
}

// NewCreateWorkOrderCommand validates the request. callerID becomes the advisor of the
// work order. An Unknown initialStatus selects Draft.
func NewCreateWorkOrderCommand(
	orderID string,
	callerID string,
	initialStatus workorder.Status,
	items []services.ItemSpec,
) (CreateWorkOrderCommand, error) {
	cmd := CreateWorkOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCallerID(callerID),
		cmd.setInitialStatus(initialStatus),
		cmd.setItems(items),
	); err != nil {
		return CreateWorkOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateWorkOrderCommandIsNotConstructed)
}

func (c CreateWorkOrderCommand) OrderID() string {
	return c.orderID
}

func (c CreateWorkOrderCommand) CallerID() string {
	return c.callerID
}

func (c CreateWorkOrderCommand) InitialStatus() workorder.Status {
	return c.initialStatus
}

func (c CreateWorkOrderCommand) Items() []services.ItemSpec {
	return c.items
}

func (c *CreateWorkOrderCommand) setOrderID(orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	c.orderID = orderID
	return nil
}

func (c *CreateWorkOrderCommand) setCallerID(callerID string) error {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return errs.NewValueIsRequiredError("callerId")
	}
	c.callerID = callerID
	return nil
}

func (c *CreateWorkOrderCommand) setInitialStatus(status workorder.Status) error {
	if status == workorder.Unknown {
		status = workorder.Draft
	}
	if err := status.ValidateInitial(); err != nil {
		return err
	}
	c.initialStatus = status
	return nil
}

func (c *CreateWorkOrderCommand) setItems(items []services.ItemSpec) error {
	for _, item := range items {
		if strings.TrimSpace(item.OrderItemID) == "" {
			return errs.NewValueIsRequiredError("orderItemId")
		}
	}
	c.items = items
	return nil
}
