package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/guard"
)

var ErrAddSupplyToItemCommandIsNotConstructed = errors.New(
	"AddSupplyToItemCommand must be created via NewAddSupplyToItemCommand constructor",
)

// AddSupplyToItemCommand creates or replaces the allocation of one supply on a work
// order item.
type AddSupplyToItemCommand struct { //nolint:recvcheck //using for validation
	workOrderID kernel.UUID
	itemID      kernel.UUID
	allocation  workorder.SupplyAllocation

	guard guard.ConstructorGuard
}

func NewAddSupplyToItemCommand(
	workOrderID kernel.UUID,
	itemID kernel.UUID,
	allocation workorder.SupplyAllocation,
) (AddSupplyToItemCommand, error) {
	cmd := AddSupplyToItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setID(&cmd.workOrderID, workOrderID),
		setID(&cmd.itemID, itemID),
		cmd.setAllocation(allocation),
	); err != nil {
		return AddSupplyToItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddSupplyToItemCommand) Validate() error {
	return c.guard.Validate(ErrAddSupplyToItemCommandIsNotConstructed)
}

func (c AddSupplyToItemCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

func (c AddSupplyToItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c AddSupplyToItemCommand) Allocation() workorder.SupplyAllocation {
	return c.allocation
}

func (c *AddSupplyToItemCommand) setAllocation(allocation workorder.SupplyAllocation) error {
	if err := allocation.Validate(); err != nil {
		return err
	}
	c.allocation = allocation
	return nil
}

func setID(dst *kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	*dst = id
	return nil
}
