package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWorkOrderRepository struct{ mock.Mock }

func (m *MockWorkOrderRepository) List(
	ctx context.Context,
	filter ports.WorkOrderFilter,
) (ports.Page[*workorder.WorkOrder], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(ports.Page[*workorder.WorkOrder]), args.Error(1)
}

// Get also accepts a func(kernel.UUID) *workorder.WorkOrder as return value so a test
// can hand back whatever an earlier Add stored.
func (m *MockWorkOrderRepository) Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(kernel.UUID) *workorder.WorkOrder); ok {
		return fn(id), args.Error(1)
	}
	wo, _ := args.Get(0).(*workorder.WorkOrder)
	return wo, args.Error(1)
}

func (m *MockWorkOrderRepository) FindActiveByOrder(ctx context.Context, orderID string) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, orderID)
	wo, _ := args.Get(0).(*workorder.WorkOrder)
	return wo, args.Error(1)
}

func (m *MockWorkOrderRepository) Add(ctx context.Context, wo *workorder.WorkOrder) error {
	args := m.Called(ctx, wo)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) Update(ctx context.Context, wo *workorder.WorkOrder) error {
	args := m.Called(ctx, wo)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) UpdateStatus(ctx context.Context, wo *workorder.WorkOrder) error {
	args := m.Called(ctx, wo)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) GetItem(
	ctx context.Context,
	workOrderID kernel.UUID,
	itemID kernel.UUID,
) (*workorder.Item, error) {
	args := m.Called(ctx, workOrderID, itemID)
	item, _ := args.Get(0).(*workorder.Item)
	return item, args.Error(1)
}

func (m *MockWorkOrderRepository) UpdateItem(ctx context.Context, itemID kernel.UUID, changes ports.ItemChanges) error {
	args := m.Called(ctx, itemID, changes)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) UpsertSupply(
	ctx context.Context,
	itemID kernel.UUID,
	allocation workorder.SupplyAllocation,
) error {
	args := m.Called(ctx, itemID, allocation)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) RemoveSupply(ctx context.Context, itemID kernel.UUID, supplyID string) (bool, error) {
	args := m.Called(ctx, itemID, supplyID)
	return args.Bool(0), args.Error(1)
}

type MockOrderLookup struct{ mock.Mock }

func (m *MockOrderLookup) GetOrder(ctx context.Context, orderID string) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) WorkOrderRepository() ports.WorkOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkOrderRepository)
}

func (m *MockUoW) OrderLookup() ports.OrderLookup {
	args := m.Called()
	return args.Get(0).(ports.OrderLookup)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockWorkOrderUoWFactory struct{ mock.Mock }

func (m *MockWorkOrderUoWFactory) Create() commands.WorkOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.WorkOrderUoW)
}

type MockNumberingAuthority struct{ mock.Mock }

func (m *MockNumberingAuthority) GenerateNumber(ctx context.Context, series string) (string, error) {
	args := m.Called(ctx, series)
	return args.String(0), args.Error(1)
}

func (m *MockNumberingAuthority) SyncCounter(ctx context.Context, series string) error {
	args := m.Called(ctx, series)
	return args.Error(0)
}

// recordingMetrics counts lifecycle events.
type recordingMetrics struct {
	mu          sync.Mutex
	created     []workorder.Status
	collisions  int
	transitions [][2]workorder.Status
	deleted     int
}

func (r *recordingMetrics) WorkOrderCreated(initialStatus workorder.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, initialStatus)
}

func (r *recordingMetrics) NumberCollision() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collisions++
}

func (r *recordingMetrics) StatusChanged(from, to workorder.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, [2]workorder.Status{from, to})
}

func (r *recordingMetrics) WorkOrderDeleted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted++
}

func newOrder(t *testing.T, id string, status order.Status, lines ...string) *order.Order {
	t.Helper()
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		item, err := order.NewItem(line, "Description of "+line)
		require.NoError(t, err)
		items = append(items, item)
	}
	o, err := order.RestoreOrder(id, "PED-2026-014", "ACME", status, items)
	require.NoError(t, err)
	return o
}

func newWorkOrder(t *testing.T, number string, status workorder.Status, orderItemIDs ...string) *workorder.WorkOrder {
	t.Helper()
	items := make([]*workorder.Item, 0, len(orderItemIDs))
	for _, orderItemID := range orderItemIDs {
		item, err := workorder.NewItem(kernel.NewUUID(), orderItemID, "Description of "+orderItemID, "", nil, nil)
		require.NoError(t, err)
		items = append(items, item)
	}
	now := time.Now().UTC()
	wo, err := workorder.RestoreWorkOrder(
		kernel.NewUUID(), number, status, "order-1", "user-1", "", "", "", items, now, now,
	)
	require.NoError(t, err)
	return wo
}
