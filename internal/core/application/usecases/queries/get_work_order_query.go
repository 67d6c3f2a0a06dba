package queries

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrGetWorkOrderQueryIsNotConstructed = errors.New(
	"GetWorkOrderQuery must be created via NewGetWorkOrderQuery constructor",
)

// GetWorkOrderQuery selects a single work order with its items, production areas and
// supply allocations.
type GetWorkOrderQuery struct {
	workOrderID kernel.UUID
	guard       guard.ConstructorGuard
}

func NewGetWorkOrderQuery(workOrderID kernel.UUID) (GetWorkOrderQuery, error) {
	if err := workOrderID.Validate(); err != nil {
		return GetWorkOrderQuery{}, err
	}
	return GetWorkOrderQuery{workOrderID: workOrderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetWorkOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkOrderQueryIsNotConstructed)
}

func (q GetWorkOrderQuery) WorkOrderID() kernel.UUID {
	return q.workOrderID
}
