package queries

import (
	"context"

	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
)

// GetWorkOrderQueryHandler loads one work order. Absent ids fail with
// errs.ErrObjectNotFound.
type GetWorkOrderQueryHandler struct {
	reader ports.WorkOrderReader
}

func NewGetWorkOrderQueryHandler(reader ports.WorkOrderReader) GetWorkOrderQueryHandler {
	return GetWorkOrderQueryHandler{reader: reader}
}

func (h GetWorkOrderQueryHandler) Handle(ctx context.Context, query GetWorkOrderQuery) (*workorder.WorkOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.reader.Get(ctx, query.WorkOrderID())
}
