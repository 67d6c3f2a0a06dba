package commands

import (
	"context"

	"workorders/internal/core/domain/model/order"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/domain/services"
	"workorders/internal/core/ports"

	"go.uber.org/zap"
)

// UpdateWorkOrderCommandHandler edits a work order that is still editable.
//
// Header fields present in the command are applied. Item updates are matched to
// existing items by order line; entries without a match are skipped. Each matched item
// is checked against the current source order before anything is written, then its
// description, observations, production areas and supplies are replaced through the
// repository's item update.
type UpdateWorkOrderCommandHandler struct {
	uowFactory UoWFactory
	resolver   services.ItemResolver
	logger     *zap.Logger
}

func NewUpdateWorkOrderCommandHandler(uowFactory UoWFactory, logger *zap.Logger) UpdateWorkOrderCommandHandler {
	return UpdateWorkOrderCommandHandler{
		uowFactory: uowFactory,
		resolver:   services.NewItemResolver(),
		logger:     logger.Named("update_work_order"),
	}
}

type itemPlan struct {
	item    *workorder.Item
	changes ports.ItemChanges
}

// Handle applies the update and returns the reloaded work order.
func (h *UpdateWorkOrderCommandHandler) Handle(ctx context.Context, cmd UpdateWorkOrderCommand) (*workorder.WorkOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WorkOrderRepository()
	wo, err := repo.Get(ctx, cmd.WorkOrderID())
	if err != nil {
		return nil, err
	}
	if err = wo.Edit(cmd.Header()); err != nil {
		return nil, err
	}

	var plans []itemPlan
	if len(cmd.Items()) > 0 {
		o, lookupErr := uow.OrderLookup().GetOrder(ctx, wo.OrderID())
		if lookupErr != nil {
			return nil, lookupErr
		}
		if plans, err = h.planItems(wo, o, cmd.Items()); err != nil {
			return nil, err
		}
	}

	if !cmd.Header().IsEmpty() {
		if err = repo.Update(ctx, wo); err != nil {
			return nil, err
		}
	}
	for _, plan := range plans {
		if err = repo.UpdateItem(ctx, plan.item.ID(), plan.changes); err != nil {
			return nil, err
		}
	}

	updated, err := repo.Get(ctx, wo.ID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Debug("work order updated",
		zap.String("work_order_id", wo.ID().String()),
		zap.Int("items", len(plans)),
	)
	return updated, nil
}

// planItems validates every item update against the aggregate and the source order and
// returns the repository changes to apply. It has no side effects outside wo.
func (h *UpdateWorkOrderCommandHandler) planItems(
	wo *workorder.WorkOrder,
	o *order.Order,
	updates []ItemUpdate,
) ([]itemPlan, error) {
	plans := make([]itemPlan, 0, len(updates))
	for _, u := range updates {
		item, ok := wo.ItemForOrderItem(u.OrderItemID)
		if !ok {
			h.logger.Debug("skipping item update without matching item",
				zap.String("work_order_id", wo.ID().String()),
				zap.String("order_item_id", u.OrderItemID),
			)
			continue
		}

		_, description, err := h.resolver.Resolve(o, u.OrderItemID, u.ProductDescription)
		if err != nil {
			return nil, err
		}

		changes := ports.ItemChanges{
			ProductDescription: &description,
			Observations:       u.Observations,
		}
		item.SetProductDescription(description)
		if u.Observations != nil {
			item.SetObservations(*u.Observations)
		}
		if u.ProductionAreaIDs != nil {
			if err = item.ReplaceProductionAreas(*u.ProductionAreaIDs); err != nil {
				return nil, err
			}
			areas := item.ProductionAreaIDs()
			changes.ProductionAreaIDs = &areas
		}
		if u.Supplies != nil {
			if err = item.ReplaceSupplies(*u.Supplies); err != nil {
				return nil, err
			}
			supplies := item.Supplies()
			changes.Supplies = &supplies
		}

		plans = append(plans, itemPlan{item: item, changes: changes})
	}
	return plans, nil
}
