package commands

import (
	"errors"
	"strings"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrRemoveSupplyFromItemCommandIsNotConstructed = errors.New(
	"RemoveSupplyFromItemCommand must be created via NewRemoveSupplyFromItemCommand constructor",
)

// RemoveSupplyFromItemCommand drops the allocation of one supply from a work order item.
type RemoveSupplyFromItemCommand struct { //nolint:recvcheck //using for validation
	workOrderID kernel.UUID
	itemID      kernel.UUID
	supplyID    string

	guard guard.ConstructorGuard
}

func NewRemoveSupplyFromItemCommand(
	workOrderID kernel.UUID,
	itemID kernel.UUID,
	supplyID string,
) (RemoveSupplyFromItemCommand, error) {
	cmd := RemoveSupplyFromItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setID(&cmd.workOrderID, workOrderID),
		setID(&cmd.itemID, itemID),
		cmd.setSupplyID(supplyID),
	); err != nil {
		return RemoveSupplyFromItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveSupplyFromItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveSupplyFromItemCommandIsNotConstructed)
}

func (c RemoveSupplyFromItemCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

func (c RemoveSupplyFromItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c RemoveSupplyFromItemCommand) SupplyID() string {
	return c.supplyID
}

func (c *RemoveSupplyFromItemCommand) setSupplyID(supplyID string) error {
	supplyID = strings.TrimSpace(supplyID)
	if supplyID == "" {
		return errs.NewValueIsRequiredError("supplyId")
	}
	c.supplyID = supplyID
	return nil
}
