package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrDeleteWorkOrderCommandIsNotConstructed = errors.New(
	"DeleteWorkOrderCommand must be created via NewDeleteWorkOrderCommand constructor",
)

// DeleteWorkOrderCommand removes a draft work order.
type DeleteWorkOrderCommand struct { //nolint:recvcheck //using for validation
	workOrderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteWorkOrderCommand(workOrderID kernel.UUID) (DeleteWorkOrderCommand, error) {
	cmd := DeleteWorkOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := setID(&cmd.workOrderID, workOrderID); err != nil {
		return DeleteWorkOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteWorkOrderCommandIsNotConstructed)
}

func (c DeleteWorkOrderCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}
