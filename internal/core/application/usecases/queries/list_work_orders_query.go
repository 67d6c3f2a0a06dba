package queries

import (
	"errors"
	"strings"

	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/guard"
)

var ErrListWorkOrdersQueryIsNotConstructed = errors.New(
	"ListWorkOrdersQuery must be created via NewListWorkOrdersQuery constructor",
)

// ListWorkOrdersQuery selects one page of work orders.
//
// Example:
//
//	status := workorder.Confirmed
//	query, err := NewListWorkOrdersQuery(&status, "", "acme", 1, 20)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
type ListWorkOrdersQuery struct {
	filter ports.WorkOrderFilter
	guard  guard.ConstructorGuard
}

// NewListWorkOrdersQuery builds the filter. A nil status and empty orderID or search do
// not filter. Zero page and limit select the first page with ports.DefaultPageLimit.
func NewListWorkOrdersQuery(
	status *workorder.Status,
	orderID string,
	search string,
	page int,
	limit int,
) (ListWorkOrdersQuery, error) {
	pagination, err := ports.NewPagination(page, limit)
	if status != nil {
		err = errors.Join(err, status.Validate())
	}
	if err != nil {
		return ListWorkOrdersQuery{}, err
	}

	return ListWorkOrdersQuery{
		filter: ports.WorkOrderFilter{
			Status:     status,
			OrderID:    strings.TrimSpace(orderID),
			Search:     strings.TrimSpace(search),
			Pagination: pagination,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListWorkOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListWorkOrdersQueryIsNotConstructed)
}

func (q ListWorkOrdersQuery) Filter() ports.WorkOrderFilter {
	return q.filter
}
