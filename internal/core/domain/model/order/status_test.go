package order_test

import (
	"fmt"
	"testing"

	"workorders/internal/core/domain/model/order"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, order.Status(0), order.Unknown)
	assert.Equal(t, order.Status(1), order.Draft)
	assert.Equal(t, order.Status(2), order.Confirmed)
	assert.Equal(t, order.Status(3), order.InProduction)
	assert.Equal(t, order.Status(4), order.Ready)
	assert.Equal(t, order.Status(5), order.Delivered)
	assert.Equal(t, order.Status(6), order.Cancelled)
}

func TestParseStatus(t *testing.T) {
	testCases := []struct {
		input    string
		expected order.Status
	}{
		{"DRAFT", order.Draft},
		{"CONFIRMED", order.Confirmed},
		{"IN_PRODUCTION", order.InProduction},
		{"ready", order.Ready},
		{" Delivered ", order.Delivered},
		{"CANCELLED", order.Cancelled},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("parses %q", tc.input), func(t *testing.T) {
			status, err := order.ParseStatus(tc.input)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, status)
			assert.NoError(t, status.Validate())
		})
	}

	t.Run("rejects unknown values", func(t *testing.T) {
		for _, input := range []string{"", "UNKNOWN", "COMPLETED", "shipped"} {
			status, err := order.ParseStatus(input)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, input)
			assert.Equal(t, order.Unknown, status)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(7)} {
		t.Run(fmt.Sprintf("status %d", status), func(t *testing.T) {
			require.ErrorIs(t, status.Validate(), errs.ErrValueIsInvalid)
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "IN_PRODUCTION", order.InProduction.String())
	assert.Equal(t, "READY", order.Ready.String())
	assert.Equal(t, "UNKNOWN", order.Status(99).String())
}

func TestStatus_AllowsWorkOrders(t *testing.T) {
	for _, status := range order.WorkOrderableStatuses() {
		assert.True(t, status.AllowsWorkOrders(), status.String())
	}
	for _, status := range []order.Status{order.Unknown, order.Draft, order.Delivered, order.Cancelled} {
		assert.False(t, status.AllowsWorkOrders(), status.String())
	}
}
