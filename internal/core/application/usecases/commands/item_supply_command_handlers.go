package commands

import (
	"context"
	"fmt"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"

	"go.uber.org/zap"
)

// AddSupplyToItemCommandHandler upserts a supply allocation on an item of an editable
// work order. Repeating it for the same supply replaces quantity and notes.
type AddSupplyToItemCommandHandler struct {
	uowFactory WorkOrderUoWFactory
	logger     *zap.Logger
}

func NewAddSupplyToItemCommandHandler(uowFactory WorkOrderUoWFactory, logger *zap.Logger) AddSupplyToItemCommandHandler {
	return AddSupplyToItemCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.Named("add_supply_to_item"),
	}
}

// Handle returns the reloaded work order.
func (h *AddSupplyToItemCommandHandler) Handle(ctx context.Context, cmd AddSupplyToItemCommand) (*workorder.WorkOrder, error) {
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
	item, err := loadEditableItem(ctx, repo, cmd.WorkOrderID(), cmd.ItemID())
	if err != nil {
		return nil, err
	}

	if err = item.UpsertSupply(cmd.Allocation()); err != nil {
		return nil, err
	}
	if err = repo.UpsertSupply(ctx, item.ID(), cmd.Allocation()); err != nil {
		return nil, err
	}

	updated, err := repo.Get(ctx, cmd.WorkOrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Debug("supply allocated",
		zap.String("work_order_id", cmd.WorkOrderID().String()),
		zap.String("item_id", item.ID().String()),
		zap.String("supply_id", cmd.Allocation().SupplyID()),
	)
	return updated, nil
}

// RemoveSupplyFromItemCommandHandler deletes a supply allocation from an item of an
// editable work order. Removing an allocation that does not exist fails not-found.
type RemoveSupplyFromItemCommandHandler struct {
	uowFactory WorkOrderUoWFactory
	logger     *zap.Logger
}

func NewRemoveSupplyFromItemCommandHandler(
	uowFactory WorkOrderUoWFactory,
	logger *zap.Logger,
) RemoveSupplyFromItemCommandHandler {
	return RemoveSupplyFromItemCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.Named("remove_supply_from_item"),
	}
}

// Handle returns the reloaded work order.
func (h *RemoveSupplyFromItemCommandHandler) Handle(
	ctx context.Context,
	cmd RemoveSupplyFromItemCommand,
) (*workorder.WorkOrder, error) {
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
	item, err := loadEditableItem(ctx, repo, cmd.WorkOrderID(), cmd.ItemID())
	if err != nil {
		return nil, err
	}

	if !item.RemoveSupply(cmd.SupplyID()) {
		return nil, supplyNotAllocated(item.ID(), cmd.SupplyID())
	}

	removed, err := repo.RemoveSupply(ctx, item.ID(), cmd.SupplyID())
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, supplyNotAllocated(item.ID(), cmd.SupplyID())
	}

	updated, err := repo.Get(ctx, cmd.WorkOrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Debug("supply allocation removed",
		zap.String("work_order_id", cmd.WorkOrderID().String()),
		zap.String("item_id", item.ID().String()),
		zap.String("supply_id", cmd.SupplyID()),
	)
	return updated, nil
}

// loadEditableItem resolves the work order first and the item second so the two
// not-found cases stay distinguishable: "work order" vs "work order item".
func loadEditableItem(
	ctx context.Context,
	repo ports.WorkOrderRepository,
	workOrderID kernel.UUID,
	itemID kernel.UUID,
) (*workorder.Item, error) {
	wo, err := repo.Get(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	if err = wo.EnsureEditable(); err != nil {
		return nil, err
	}
	return repo.GetItem(ctx, workOrderID, itemID)
}

func supplyNotAllocated(itemID kernel.UUID, supplyID string) error {
	return errs.NewObjectNotFoundErrorWithCause(
		"supply allocation",
		supplyID,
		fmt.Errorf("supply is not allocated to item %s", itemID),
	)
}
