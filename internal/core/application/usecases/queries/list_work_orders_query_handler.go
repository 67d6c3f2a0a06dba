package queries

import (
	"context"

	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
)

// ListWorkOrdersQueryHandler returns a page of work orders, newest first.
type ListWorkOrdersQueryHandler struct {
	reader ports.WorkOrderReader
}

func NewListWorkOrdersQueryHandler(reader ports.WorkOrderReader) ListWorkOrdersQueryHandler {
	return ListWorkOrdersQueryHandler{reader: reader}
}

func (h ListWorkOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListWorkOrdersQuery,
) (ports.Page[*workorder.WorkOrder], error) {
	if err := query.Validate(); err != nil {
		return ports.Page[*workorder.WorkOrder]{}, err
	}

	return h.reader.List(ctx, query.Filter())
}
