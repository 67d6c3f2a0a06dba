package commands

import (
	"errors"
	"strings"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrUpdateWorkOrderCommandIsNotConstructed = errors.New(
	"UpdateWorkOrderCommand must be created via NewUpdateWorkOrderCommand constructor",
)

// ItemUpdate reconciles one existing work order item, matched by its order line.
// Nil fields are left untouched; an empty collection clears it. ProductDescription
// falls back to the order line description when nil or blank.
type ItemUpdate struct {
	OrderItemID        string
	ProductDescription *string
	Observations       *string
	ProductionAreaIDs  *[]string
	Supplies           *[]workorder.SupplyAllocation
}

// UpdateWorkOrderCommand edits the header of a work order and reconciles its items.
//
// Example:
//
//	fileName := "x.pdf"
//	cmd, err := NewUpdateWorkOrderCommand(id, workorder.HeaderChanges{FileName: &fileName}, nil)
type UpdateWorkOrderCommand struct { //nolint:recvcheck //using for validation
	workOrderID kernel.UUID
	header      workorder.HeaderChanges
	items       []ItemUpdate

	guard guard.ConstructorGuard
}

func NewUpdateWorkOrderCommand(
	workOrderID kernel.UUID,
	header workorder.HeaderChanges,
	items []ItemUpdate,
) (UpdateWorkOrderCommand, error) {
	cmd := UpdateWorkOrderCommand{
		header: header,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setWorkOrderID(workOrderID),
		cmd.setItems(items),
	); err != nil {
		return UpdateWorkOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateWorkOrderCommandIsNotConstructed)
}

func (c UpdateWorkOrderCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

func (c UpdateWorkOrderCommand) Header() workorder.HeaderChanges {
	return c.header
}

func (c UpdateWorkOrderCommand) Items() []ItemUpdate {
	return c.items
}

func (c *UpdateWorkOrderCommand) setWorkOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.workOrderID = id
	return nil
}

func (c *UpdateWorkOrderCommand) setItems(items []ItemUpdate) error {
	for _, item := range items {
		if strings.TrimSpace(item.OrderItemID) == "" {
			return errs.NewValueIsRequiredError("orderItemId")
		}
	}
	c.items = items
	return nil
}
