package order_test

import (
	"testing"

	"workorders/internal/core/domain/model/order"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, id, description string) order.Item {
	t.Helper()
	item, err := order.NewItem(id, description)
	require.NoError(t, err)
	return item
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore order with items", func(t *testing.T) {
		items := []order.Item{mustItem(t, "oi-1", "Banner 2x1m"), mustItem(t, "oi-2", "")}

		o, err := order.RestoreOrder("order-1", "PED-2026-014", "ACME", order.Confirmed, items)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, "order-1", o.ID())
		assert.Equal(t, "PED-2026-014", o.OrderNumber())
		assert.Equal(t, "ACME", o.ClientName())
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Len(t, o.Items(), 2)
	})

	t.Run("should fail without id and status", func(t *testing.T) {
		o, err := order.RestoreOrder(" ", "", "", order.Unknown, nil)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject duplicated line items", func(t *testing.T) {
		items := []order.Item{mustItem(t, "oi-1", "a"), mustItem(t, "oi-1", "b")}

		_, err := order.RestoreOrder("order-1", "", "", order.Confirmed, items)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "oi-1")
	})

	t.Run("should reject zero value items", func(t *testing.T) {
		_, err := order.RestoreOrder("order-1", "", "", order.Confirmed, []order.Item{{}})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o *order.Order
		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
		assert.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Item(t *testing.T) {
	o, err := order.RestoreOrder("order-1", "", "", order.Confirmed, []order.Item{mustItem(t, "oi-1", "Banner")})
	require.NoError(t, err)

	item, ok := o.Item("oi-1")
	require.True(t, ok)
	assert.Equal(t, "Banner", item.Description())

	_, ok = o.Item("oi-INVALID")
	assert.False(t, ok)
}

func TestOrder_Items_ReturnsCopy(t *testing.T) {
	o, err := order.RestoreOrder("order-1", "", "", order.Confirmed, []order.Item{mustItem(t, "oi-1", "Banner")})
	require.NoError(t, err)

	items := o.Items()
	items[0] = mustItem(t, "oi-9", "changed")

	_, ok := o.Item("oi-1")
	assert.True(t, ok)
}

func TestOrder_EnsureAcceptsWorkOrders(t *testing.T) {
	testCases := []struct {
		status  order.Status
		allowed bool
	}{
		{order.Draft, false},
		{order.Confirmed, true},
		{order.InProduction, true},
		{order.Ready, true},
		{order.Delivered, false},
		{order.Cancelled, false},
	}

	for _, tc := range testCases {
		t.Run(tc.status.String(), func(t *testing.T) {
			o, err := order.RestoreOrder("order-1", "", "", tc.status, nil)
			require.NoError(t, err)

			err = o.EnsureAcceptsWorkOrders()

			if tc.allowed {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), "order-1")
			assert.Contains(t, err.Error(), tc.status.String())
		})
	}
}

func TestNewItem(t *testing.T) {
	item, err := order.NewItem(" oi-1 ", "Banner")
	require.NoError(t, err)
	assert.Equal(t, "oi-1", item.ID())

	_, err = order.NewItem("", "Banner")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
