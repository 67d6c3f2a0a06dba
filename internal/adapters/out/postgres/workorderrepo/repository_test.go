package workorderrepo_test

import (
	"testing"
	"time"

	"workorders/internal/adapters/out/postgres/orderrepo"
	"workorders/internal/adapters/out/postgres/testdb"
	"workorders/internal/adapters/out/postgres/workorderrepo"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

func newRepository(t *testing.T) (*workorderrepo.GormWorkOrderRepository, *gorm.DB) {
	t.Helper()
	db := testdb.SQLite(t)
	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	return workorderrepo.NewGormWorkOrderRepository(db, tracker), db
}

func allocation(t *testing.T, supplyID string, quantity string, notes string) workorder.SupplyAllocation {
	t.Helper()
	var q *decimal.Decimal
	if quantity != "" {
		d := decimal.RequireFromString(quantity)
		q = &d
	}
	a, err := workorder.NewSupplyAllocation(supplyID, q, notes)
	require.NoError(t, err)
	return a
}

type workOrderSpec struct {
	number  string
	orderID string
	status  workorder.Status
	created time.Time
}

func buildWorkOrder(t *testing.T, spec workOrderSpec) *workorder.WorkOrder {
	t.Helper()
	first, err := workorder.NewItem(kernel.NewUUID(), spec.orderID+"-line-1", "Banner 2x1m", "matte",
		[]string{"pa-print", "pa-cut"},
		[]workorder.SupplyAllocation{allocation(t, "sup-vinyl", "2.5", "white"), allocation(t, "sup-ink", "", "")})
	require.NoError(t, err)
	second, err := workorder.NewItem(kernel.NewUUID(), spec.orderID+"-line-2", "Sticker pack", "", nil, nil)
	require.NoError(t, err)

	if spec.created.IsZero() {
		spec.created = time.Now().UTC()
	}
	wo, err := workorder.RestoreWorkOrder(kernel.NewUUID(), spec.number, spec.status, spec.orderID, "user-1",
		"", "", "", []*workorder.Item{first, second}, spec.created, spec.created)
	require.NoError(t, err)
	return wo
}

func TestGormWorkOrderRepository_AddAndGet(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := t.Context()
	wo := buildWorkOrder(t, workOrderSpec{number: "OT-2026-001", orderID: "order-1", status: workorder.Draft})

	require.NoError(t, repo.Add(ctx, wo))
	stored, err := repo.Get(ctx, wo.ID())

	require.NoError(t, err)
	assert.True(t, wo.ID().IsEqual(stored.ID()))
	assert.Equal(t, "OT-2026-001", stored.Number())
	assert.Equal(t, workorder.Draft, stored.Status())
	assert.Equal(t, "user-1", stored.AdvisorID())
	require.Len(t, stored.Items(), 2)

	first := stored.Items()[0]
	assert.Equal(t, "order-1-line-1", first.OrderItemID())
	assert.ElementsMatch(t, []string{"pa-print", "pa-cut"}, first.ProductionAreaIDs())
	require.Len(t, first.Supplies(), 2)
	vinyl, ok := first.Supply("sup-vinyl")
	require.True(t, ok)
	qty, hasQty := vinyl.Quantity()
	require.True(t, hasQty)
	assert.True(t, decimal.RequireFromString("2.5").Equal(qty))
	assert.Equal(t, "white", vinyl.Notes())
	ink, ok := first.Supply("sup-ink")
	require.True(t, ok)
	_, hasQty = ink.Quantity()
	assert.False(t, hasQty)

	assert.Equal(t, "order-1-line-2", stored.Items()[1].OrderItemID())
	assert.Empty(t, stored.Items()[1].ProductionAreaIDs())
}

func TestGormWorkOrderRepository_Get_NotFound(t *testing.T) {
	repo, _ := newRepository(t)

	_, err := repo.Get(t.Context(), kernel.NewUUID())

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "work order", notFound.ParamName)
}

func TestGormWorkOrderRepository_Add_TracksAggregate(t *testing.T) {
	db := testdb.SQLite(t)
	tracker := new(MockAggregateTracker)
	repo := workorderrepo.NewGormWorkOrderRepository(db, tracker)
	wo := buildWorkOrder(t, workOrderSpec{number: "OT-2026-001", orderID: "order-1", status: workorder.Draft})
	tracker.On("TrackAggregate", wo.ID(), wo).Once()

	require.NoError(t, repo.Add(t.Context(), wo))

	tracker.AssertExpectations(t)
}

func TestGormWorkOrderRepository_Add_UniquenessViolations(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := t.Context()
	require.NoError(t, repo.Add(ctx, buildWorkOrder(t, workOrderSpec{number: "OT-2026-001", orderID: "order-1", status: workorder.Draft})))

	err := repo.Add(ctx, buildWorkOrder(t, workOrderSpec{number: "OT-2026-001", orderID: "order-2", status: workorder.Draft}))
	require.ErrorIs(t, err, ports.ErrWorkOrderNumberTaken)

	err = repo.Add(ctx, buildWorkOrder(t, workOrderSpec{number: "OT-2026-002", orderID: "order-1", status: workorder.Confirmed}))
	require.ErrorIs(t, err, ports.ErrActiveWorkOrderExists)
}

func TestGormWorkOrderRepository_FindActiveByOrder(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := t.Context()

	active, err := repo.FindActiveByOrder(ctx, "order-1")
	require.NoError(t, err)
	assert.Nil(t, active)

	cancelled := buildWorkOrder(t, workOrderSpec{number: "OT-2026-001", orderID: "order-1", status: workorder.Cancelled})
	require.NoError(t, repo.Add(ctx, cancelled))
	active, err = repo.FindActiveByOrder(ctx, "order-1")
	require.NoError(t, err)
	assert.Nil(t, active)

	// a cancelled work order does not block a new one for the same order
	current := buildWorkOrder(t, workOrderSpec{number: "OT-2026-002", orderID: "order-1", status: workorder.Draft})
	require.NoError(t, repo.Add(ctx, current))
	active, err = repo.FindActiveByOrder(ctx, "order-1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "OT-2026-002", active.Number())
}

func TestGormWorkOrderRepository_UpdateAndUpdateStatus(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := t.Context()
	wo := buildWorkOrder(t, workOrderSpec{number: "OT-2026-001", orderID: "order-1", status: workorder.Draft})
	require.NoError(t, repo.Add(ctx, wo))

	designer, file, notes := "user-7", "banner.pdf", "rush"
	require.NoError(t, wo.Edit(workorder.HeaderChanges{DesignerID: &designer, FileName: &file, Observations: &notes}))
	require.NoError(t, repo.Update(ctx, wo))
	require.NoError(t, wo.ChangeStatus(workorder.Confirmed))
	require.NoError(t, repo.UpdateStatus(ctx, wo))

	stored, err := repo.Get(ctx, wo.ID())
	require.NoError(t, err)
	assert.Equal(t, "user-7", stored.DesignerID())
	assert.Equal(t, "banner.pdf", stored.FileName())
	assert.Equal(t, "rush", stored.Observations())
	assert.Equal(t, workorder.Confirmed, stored.Status())
	assert.Len(t, stored.Items(), 2)
}

func TestGormWorkOrderRepository_Update_NotFound(t *testing.T) {
	repo, _ := newRepository(t)
	wo := buildWorkOrder(t, workOrderSpec{number: "OT-2026-001", orderID: "order-1", status: workorder.Draft})

	err := repo.UpdateStatus(t.Context(), wo)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGormWorkOrderRepository_Delete_Cascades(t *testing.T) {
	repo, db := newRepository(t)
	ctx := t.Context()
	wo := buildWorkOrder(t, workOrderSpec{number: "OT-2026-001", orderID: "order-1", status: workorder.Draft})
	require.NoError(t, repo.Add(ctx, wo))

	require.NoError(t, repo.Delete(ctx, wo.ID()))

	for _, model := range workorderrepo.Models() {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
	require.ErrorIs(t, repo.Delete(ctx, wo.ID()), errs.ErrObjectNotFound)
}

func TestGormWorkOrderRepository_GetItem_IsScopedToWorkOrder(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := t.Context()
	first := buildWorkOrder(t, workOrderSpec{number: "OT-2026-001", orderID: "order-1", status: workorder.Draft})
	second := buildWorkOrder(t, workOrderSpec{number: "OT-2026-002", orderID: "order-2", status: workorder.Draft})
	require.NoError(t, repo.Add(ctx, first))
	require.NoError(t, repo.Add(ctx, second))

	item, err := repo.GetItem(ctx, first.ID(), first.Items()[0].ID())
	require.NoError(t, err)
	assert.Equal(t, "order-1-line-1", item.OrderItemID())
	assert.Len(t, item.Supplies(), 2)

	_, err = repo.GetItem(ctx, first.ID(), second.Items()[0].ID())
	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "work order item", notFound.ParamName)
}

func TestGormWorkOrderRepository_UpdateItem(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := t.Context()
	wo := buildWorkOrder(t, workOrderSpec{number: "OT-2026-001", orderID: "order-1", status: workorder.Draft})
	require.NoError(t, repo.Add(ctx, wo))
	itemID := wo.Items()[0].ID()

	description := "Banner 3x1m"
	areas := []string{"pa-weld"}
	supplies := []workorder.SupplyAllocation{allocation(t, "sup-frame", "1", "")}
	require.NoError(t, repo.UpdateItem(ctx, itemID, ports.ItemChanges{
		ProductDescription: &description,
		ProductionAreaIDs:  &areas,
		Supplies:           &supplies,
	}))

	item, err := repo.GetItem(ctx, wo.ID(), itemID)
	require.NoError(t, err)
	assert.Equal(t, "Banner 3x1m", item.ProductDescription())
	assert.Equal(t, "matte", item.Observations())
	assert.Equal(t, []string{"pa-weld"}, item.ProductionAreaIDs())
	require.Len(t, item.Supplies(), 1)
	assert.Equal(t, "sup-frame", item.Supplies()[0].SupplyID())

	empty := []string{}
	noSupplies := []workorder.SupplyAllocation{}
	require.NoError(t, repo.UpdateItem(ctx, itemID, ports.ItemChanges{
		ProductionAreaIDs: &empty,
		Supplies:          &noSupplies,
	}))
	item, err = repo.GetItem(ctx, wo.ID(), itemID)
	require.NoError(t, err)
	assert.Empty(t, item.ProductionAreaIDs())
	assert.Empty(t, item.Supplies())
	assert.Equal(t, "Banner 3x1m", item.ProductDescription())
}

func TestGormWorkOrderRepository_UpdateItem_KeepsPriorStateOnFailure(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := t.Context()
	wo := buildWorkOrder(t, workOrderSpec{number: "OT-2026-001", orderID: "order-1", status: workorder.Draft})
	require.NoError(t, repo.Add(ctx, wo))
	itemID := wo.Items()[0].ID()

	// the areas are replaced first; the duplicated supply then violates the primary key
	description := "Banner 3x1m"
	areas := []string{"pa-weld"}
	supplies := []workorder.SupplyAllocation{
		allocation(t, "sup-frame", "1", ""),
		allocation(t, "sup-frame", "2", ""),
	}
	err := repo.UpdateItem(ctx, itemID, ports.ItemChanges{
		ProductDescription: &description,
		ProductionAreaIDs:  &areas,
		Supplies:           &supplies,
	})
	require.Error(t, err)

	item, err := repo.GetItem(ctx, wo.ID(), itemID)
	require.NoError(t, err)
	assert.Equal(t, []string{"pa-cut", "pa-print"}, item.ProductionAreaIDs())
	assert.Equal(t, "Banner 2x1m", item.ProductDescription())
	require.Len(t, item.Supplies(), 2)
	supplyIDs := []string{item.Supplies()[0].SupplyID(), item.Supplies()[1].SupplyID()}
	assert.ElementsMatch(t, []string{"sup-vinyl", "sup-ink"}, supplyIDs)
}

func TestGormWorkOrderRepository_UpdateItem_NotFound(t *testing.T) {
	repo, _ := newRepository(t)

	err := repo.UpdateItem(t.Context(), kernel.NewUUID(), ports.ItemChanges{})

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGormWorkOrderRepository_Supplies(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := t.Context()
	wo := buildWorkOrder(t, workOrderSpec{number: "OT-2026-001", orderID: "order-1", status: workorder.Draft})
	require.NoError(t, repo.Add(ctx, wo))
	itemID := wo.Items()[1].ID()

	// upserting the same supply twice keeps one allocation with the latest values
	require.NoError(t, repo.UpsertSupply(ctx, itemID, allocation(t, "sup-glue", "1", "first")))
	require.NoError(t, repo.UpsertSupply(ctx, itemID, allocation(t, "sup-glue", "4.25", "second")))

	item, err := repo.GetItem(ctx, wo.ID(), itemID)
	require.NoError(t, err)
	require.Len(t, item.Supplies(), 1)
	qty, ok := item.Supplies()[0].Quantity()
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("4.25").Equal(qty))
	assert.Equal(t, "second", item.Supplies()[0].Notes())

	removed, err := repo.RemoveSupply(ctx, itemID, "sup-glue")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveSupply(ctx, itemID, "sup-glue")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestGormWorkOrderRepository_List(t *testing.T) {
	repo, db := newRepository(t)
	ctx := t.Context()

	client := orderrepo.ClientDTO{ID: "client-1", Name: "ACME Signs"}
	require.NoError(t, db.Create(&client).Error)
	require.NoError(t, db.Create(&orderrepo.OrderDTO{ID: "order-1", OrderNumber: "PED-2026-014", ClientID: &client.ID, Status: "CONFIRMED"}).Error)
	discounter := orderrepo.ClientDTO{ID: "client-2", Name: "50% Off_Prints"}
	require.NoError(t, db.Create(&discounter).Error)
	require.NoError(t, db.Create(&orderrepo.OrderDTO{ID: "order-2", OrderNumber: "PED-2026-015", ClientID: &discounter.ID, Status: "CONFIRMED"}).Error)
	require.NoError(t, db.Create(&orderrepo.OrderDTO{ID: "order-3", OrderNumber: "PED-2026-016", Status: "READY"}).Error)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Add(ctx, buildWorkOrder(t, workOrderSpec{number: "OT-2026-001", orderID: "order-1", status: workorder.Draft, created: base})))
	require.NoError(t, repo.Add(ctx, buildWorkOrder(t, workOrderSpec{number: "OT-2026-002", orderID: "order-2", status: workorder.Confirmed, created: base.Add(time.Hour)})))
	require.NoError(t, repo.Add(ctx, buildWorkOrder(t, workOrderSpec{number: "OT-2026-003", orderID: "order-3", status: workorder.Confirmed, created: base.Add(2 * time.Hour)})))

	pagination := func(page, limit int) ports.Pagination {
		p, err := ports.NewPagination(page, limit)
		require.NoError(t, err)
		return p
	}
	confirmed := workorder.Confirmed

	testCases := []struct {
		name     string
		filter   ports.WorkOrderFilter
		total    int64
		pages    int
		expected []string
	}{
		{
			name:     "newest first",
			filter:   ports.WorkOrderFilter{Pagination: pagination(1, 20)},
			total:    3,
			pages:    1,
			expected: []string{"OT-2026-003", "OT-2026-002", "OT-2026-001"},
		},
		{
			name:     "second page",
			filter:   ports.WorkOrderFilter{Pagination: pagination(2, 2)},
			total:    3,
			pages:    2,
			expected: []string{"OT-2026-001"},
		},
		{
			name:     "status",
			filter:   ports.WorkOrderFilter{Status: &confirmed, Pagination: pagination(1, 20)},
			total:    2,
			pages:    1,
			expected: []string{"OT-2026-003", "OT-2026-002"},
		},
		{
			name:     "order",
			filter:   ports.WorkOrderFilter{OrderID: "order-2", Pagination: pagination(1, 20)},
			total:    1,
			pages:    1,
			expected: []string{"OT-2026-002"},
		},
		{
			name:     "search by client name",
			filter:   ports.WorkOrderFilter{Search: "acme", Pagination: pagination(1, 20)},
			total:    1,
			pages:    1,
			expected: []string{"OT-2026-001"},
		},
		{
			name:     "search by order number",
			filter:   ports.WorkOrderFilter{Search: "ped-2026-016", Pagination: pagination(1, 20)},
			total:    1,
			pages:    1,
			expected: []string{"OT-2026-003"},
		},
		{
			name:     "search by work order number",
			filter:   ports.WorkOrderFilter{Search: "OT-2026-00", Status: &confirmed, Pagination: pagination(1, 1)},
			total:    2,
			pages:    2,
			expected: []string{"OT-2026-003"},
		},
		{
			name:     "search percent sign matches literally",
			filter:   ports.WorkOrderFilter{Search: "%", Pagination: pagination(1, 20)},
			total:    1,
			pages:    1,
			expected: []string{"OT-2026-002"},
		},
		{
			name:     "search underscore matches literally",
			filter:   ports.WorkOrderFilter{Search: "off_p", Pagination: pagination(1, 20)},
			total:    1,
			pages:    1,
			expected: []string{"OT-2026-002"},
		},
		{
			name:     "search lone underscore matches literally",
			filter:   ports.WorkOrderFilter{Search: "_", Pagination: pagination(1, 20)},
			total:    1,
			pages:    1,
			expected: []string{"OT-2026-002"},
		},
		{
			name:     "search backslash matches literally",
			filter:   ports.WorkOrderFilter{Search: `\`, Pagination: pagination(1, 20)},
			total:    0,
			pages:    0,
			expected: []string{},
		},
		{
			name:     "no match",
			filter:   ports.WorkOrderFilter{Search: "nothing", Pagination: pagination(1, 20)},
			total:    0,
			pages:    0,
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := repo.List(ctx, tc.filter)
			require.NoError(t, err)

			numbers := make([]string, 0, len(page.Items))
			for _, wo := range page.Items {
				numbers = append(numbers, wo.Number())
				assert.Len(t, wo.Items(), 2)
			}
			assert.Equal(t, tc.expected, numbers)
			assert.Equal(t, tc.total, page.Total)
			assert.Equal(t, tc.pages, page.TotalPages)
		})
	}
}
