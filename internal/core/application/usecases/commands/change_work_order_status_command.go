package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/guard"
)

var ErrChangeWorkOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeWorkOrderStatusCommand must be created via NewChangeWorkOrderStatusCommand constructor",
)

// ChangeWorkOrderStatusCommand moves a work order to another status.
type ChangeWorkOrderStatusCommand struct { //nolint:recvcheck //using for validation
	workOrderID kernel.UUID
	status      workorder.Status

	guard guard.ConstructorGuard
}

func NewChangeWorkOrderStatusCommand(workOrderID kernel.UUID, status workorder.Status) (ChangeWorkOrderStatusCommand, error) {
	cmd := ChangeWorkOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setWorkOrderID(workOrderID),
		cmd.setStatus(status),
	); err != nil {
		return ChangeWorkOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeWorkOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeWorkOrderStatusCommandIsNotConstructed)
}

func (c ChangeWorkOrderStatusCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

func (c ChangeWorkOrderStatusCommand) Status() workorder.Status {
	return c.status
}

func (c *ChangeWorkOrderStatusCommand) setWorkOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.workOrderID = id
	return nil
}

func (c *ChangeWorkOrderStatusCommand) setStatus(status workorder.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
