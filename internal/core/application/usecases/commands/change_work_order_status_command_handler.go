package commands

import (
	"context"

	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"

	"go.uber.org/zap"
)

// ChangeWorkOrderStatusCommandHandler applies a status transition. Only the status is
// persisted; transitions outside the table fail with a
// *workorder.InvalidTransitionError and leave the stored status unchanged.
type ChangeWorkOrderStatusCommandHandler struct {
	uowFactory WorkOrderUoWFactory
	metrics    ports.LifecycleMetrics
	logger     *zap.Logger
}

func NewChangeWorkOrderStatusCommandHandler(
	uowFactory WorkOrderUoWFactory,
	metrics ports.LifecycleMetrics,
	logger *zap.Logger,
) ChangeWorkOrderStatusCommandHandler {
	return ChangeWorkOrderStatusCommandHandler{
		uowFactory: uowFactory,
		metrics:    metrics,
		logger:     logger.Named("change_work_order_status"),
	}
}

func (h *ChangeWorkOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeWorkOrderStatusCommand,
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
	wo, err := repo.Get(ctx, cmd.WorkOrderID())
	if err != nil {
		return nil, err
	}

	from := wo.Status()
	if err = wo.ChangeStatus(cmd.Status()); err != nil {
		return nil, err
	}

	if err = repo.UpdateStatus(ctx, wo); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.StatusChanged(from, wo.Status())
	h.logger.Info("work order status changed",
		zap.String("work_order_number", wo.Number()),
		zap.Stringer("from", from),
		zap.Stringer("to", wo.Status()),
	)
	return wo, nil
}
