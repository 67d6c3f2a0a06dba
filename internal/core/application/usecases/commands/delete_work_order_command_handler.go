package commands

import (
	"context"

	"workorders/internal/core/ports"

	"go.uber.org/zap"
)

// DeleteWorkOrderCommandHandler hard-deletes a work order while it is a draft. Items,
// production area links and supply allocations are removed by the store cascade.
type DeleteWorkOrderCommandHandler struct {
	uowFactory WorkOrderUoWFactory
	metrics    ports.LifecycleMetrics
	logger     *zap.Logger
}

func NewDeleteWorkOrderCommandHandler(
	uowFactory WorkOrderUoWFactory,
	metrics ports.LifecycleMetrics,
	logger *zap.Logger,
) DeleteWorkOrderCommandHandler {
	return DeleteWorkOrderCommandHandler{
		uowFactory: uowFactory,
		metrics:    metrics,
		logger:     logger.Named("delete_work_order"),
	}
}

func (h *DeleteWorkOrderCommandHandler) Handle(ctx context.Context, cmd DeleteWorkOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WorkOrderRepository()
	wo, err := repo.Get(ctx, cmd.WorkOrderID())
	if err != nil {
		return err
	}
	if err = wo.EnsureDeletable(); err != nil {
		return err
	}

	if err = repo.Delete(ctx, wo.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.metrics.WorkOrderDeleted()
	h.logger.Info("work order deleted", zap.String("work_order_number", wo.Number()))
	return nil
}
