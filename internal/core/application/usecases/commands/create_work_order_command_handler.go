package commands

import (
	"context"
	"errors"
	"fmt"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/domain/services"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"

	"go.uber.org/zap"
)

// MaxNumberAttempts bounds how many numbers a single create may try before giving up.
const MaxNumberAttempts = 3

// CreateWorkOrderCommandHandler opens a work order for a committed order.
//
// All checks run before anything is written: the order must exist and accept work
// orders, it must not hold an active work order, and every item must reference one of
// its lines. The work order is then inserted with a freshly generated number. When the
// number turns out to be taken, the numbering counter is resynchronized and a new number
// is tried, up to MaxNumberAttempts in total. Every other failure is returned as is.
//
// Example:
//
//	handler := NewCreateWorkOrderCommandHandler(uowFactory, numbering, metrics, logger)
//	wo, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // the order already has an active work order
//	}
type CreateWorkOrderCommandHandler struct {
	uowFactory UoWFactory
	numbering  ports.NumberingAuthority
	resolver   services.ItemResolver
	metrics    ports.LifecycleMetrics
	logger     *zap.Logger
}

func NewCreateWorkOrderCommandHandler(
	uowFactory UoWFactory,
	numbering ports.NumberingAuthority,
	metrics ports.LifecycleMetrics,
	logger *zap.Logger,
) CreateWorkOrderCommandHandler {
	return CreateWorkOrderCommandHandler{
		uowFactory: uowFactory,
		numbering:  numbering,
		resolver:   services.NewItemResolver(),
		metrics:    metrics,
		logger:     logger.Named("create_work_order"),
	}
}

// Handle creates the work order and returns it as stored, with items, production areas
// and supplies.
func (h *CreateWorkOrderCommandHandler) Handle(ctx context.Context, cmd CreateWorkOrderCommand) (*workorder.WorkOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items, err := h.prepare(ctx, cmd)
	if err != nil {
		return nil, err
	}

	id := kernel.NewUUID()
	for attempt := 1; ; attempt++ {
		created, err := h.insert(ctx, id, cmd, items)
		if err == nil {
			h.metrics.WorkOrderCreated(created.Status())
			h.logger.Info("work order created",
				zap.String("work_order_id", created.ID().String()),
				zap.String("work_order_number", created.Number()),
				zap.String("order_id", created.OrderID()),
				zap.Stringer("status", created.Status()),
			)
			return created, nil
		}

		if errors.Is(err, ports.ErrActiveWorkOrderExists) {
			return nil, h.activeWorkOrderConflict(ctx, cmd.OrderID())
		}
		if !errors.Is(err, ports.ErrWorkOrderNumberTaken) {
			return nil, err
		}

		h.metrics.NumberCollision()
		h.logger.Warn("work order number collision",
			zap.Int("attempt", attempt),
			zap.String("order_id", cmd.OrderID()),
			zap.Error(err),
		)
		if attempt >= MaxNumberAttempts {
			return nil, fmt.Errorf("work order number allocation failed after %d attempts: %w", attempt, err)
		}
		if err = h.numbering.SyncCounter(ctx, workorder.NumberSeries); err != nil {
			return nil, err
		}
	}
}

// prepare runs every read-only check and builds the items. It writes nothing.
func (h *CreateWorkOrderCommandHandler) prepare(ctx context.Context, cmd CreateWorkOrderCommand) ([]*workorder.Item, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderLookup().GetOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = o.EnsureAcceptsWorkOrders(); err != nil {
		return nil, err
	}

	active, err := uow.WorkOrderRepository().FindActiveByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, workorder.NewActiveWorkOrderExistsError(o.ID(), active.Number())
	}

	return h.resolver.BuildItems(o, cmd.Items())
}

// insert draws a number and stores the work order in its own transaction.
func (h *CreateWorkOrderCommandHandler) insert(
	ctx context.Context,
	id kernel.UUID,
	cmd CreateWorkOrderCommand,
	items []*workorder.Item,
) (*workorder.WorkOrder, error) {
	number, err := h.numbering.GenerateNumber(ctx, workorder.NumberSeries)
	if err != nil {
		return nil, err
	}

	wo, err := workorder.NewWorkOrder(id, number, cmd.OrderID(), cmd.CallerID(), cmd.InitialStatus(), items)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WorkOrderRepository()
	if err = repo.Add(ctx, wo); err != nil {
		return nil, err
	}

	created, err := repo.Get(ctx, wo.ID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// activeWorkOrderConflict reports a concurrent create that won the race for the order,
// naming its number when it can still be read.
func (h *CreateWorkOrderCommandHandler) activeWorkOrderConflict(ctx context.Context, orderID string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	active, err := uow.WorkOrderRepository().FindActiveByOrder(ctx, orderID)
	if err != nil || active == nil {
		return errs.NewConflictError("order", orderID, ports.ErrActiveWorkOrderExists.Error())
	}
	return workorder.NewActiveWorkOrderExistsError(orderID, active.Number())
}
