package http_test

import (
	"context"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockCreateWorkOrderHandler struct{ mock.Mock }

func (m *MockCreateWorkOrderHandler) Handle(ctx context.Context, cmd commands.CreateWorkOrderCommand) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, cmd)
	return workOrderResult(args)
}

type MockUpdateWorkOrderHandler struct{ mock.Mock }

func (m *MockUpdateWorkOrderHandler) Handle(ctx context.Context, cmd commands.UpdateWorkOrderCommand) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, cmd)
	return workOrderResult(args)
}

type MockChangeWorkOrderStatusHandler struct{ mock.Mock }

func (m *MockChangeWorkOrderStatusHandler) Handle(ctx context.Context, cmd commands.ChangeWorkOrderStatusCommand) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, cmd)
	return workOrderResult(args)
}

type MockAddSupplyToItemHandler struct{ mock.Mock }

func (m *MockAddSupplyToItemHandler) Handle(ctx context.Context, cmd commands.AddSupplyToItemCommand) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, cmd)
	return workOrderResult(args)
}

type MockRemoveSupplyFromItemHandler struct{ mock.Mock }

func (m *MockRemoveSupplyFromItemHandler) Handle(ctx context.Context, cmd commands.RemoveSupplyFromItemCommand) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, cmd)
	return workOrderResult(args)
}

type MockDeleteWorkOrderHandler struct{ mock.Mock }

func (m *MockDeleteWorkOrderHandler) Handle(ctx context.Context, cmd commands.DeleteWorkOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockListWorkOrdersHandler struct{ mock.Mock }

func (m *MockListWorkOrdersHandler) Handle(ctx context.Context, query queries.ListWorkOrdersQuery) (ports.Page[*workorder.WorkOrder], error) {
	args := m.Called(ctx, query)
	return args.Get(0).(ports.Page[*workorder.WorkOrder]), args.Error(1)
}

type MockGetWorkOrderHandler struct{ mock.Mock }

func (m *MockGetWorkOrderHandler) Handle(ctx context.Context, query queries.GetWorkOrderQuery) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, query)
	return workOrderResult(args)
}

func workOrderResult(args mock.Arguments) (*workorder.WorkOrder, error) {
	if wo := args.Get(0); wo != nil {
		return wo.(*workorder.WorkOrder), args.Error(1)
	}
	return nil, args.Error(1)
}
