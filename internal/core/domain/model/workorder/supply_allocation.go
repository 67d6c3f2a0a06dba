package workorder

import (
	"errors"
	"fmt"
	"strings"

	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSupplyAllocationIsNotConstructed = errors.New(
	"SupplyAllocation must be created via NewSupplyAllocation constructor",
)

// SupplyAllocation is the quantity of one supply consumed by a work order item.
// It is identified by its supply within the owning item; quantity is optional.
type SupplyAllocation struct {
	supplyID string
	quantity decimal.NullDecimal
	notes    string

	guard guard.ConstructorGuard
}

// NewSupplyAllocation validates that supplyID is set and quantity, when given, is not
// negative.
func NewSupplyAllocation(supplyID string, quantity *decimal.Decimal, notes string) (SupplyAllocation, error) {
	supplyID = strings.TrimSpace(supplyID)
	if supplyID == "" {
		return SupplyAllocation{}, errs.NewValueIsRequiredError("supplyId")
	}

	allocation := SupplyAllocation{
		supplyID: supplyID,
		notes:    notes,
		guard:    guard.NewConstructorGuard(),
	}

	if quantity != nil {
		if quantity.IsNegative() {
			return SupplyAllocation{}, errs.NewValueIsInvalidErrorWithCause(
				"quantity",
				fmt.Errorf("%s is negative", quantity.String()),
			)
		}
		allocation.quantity = decimal.NewNullDecimal(*quantity)
	}

	return allocation, nil
}

func (a SupplyAllocation) Validate() error {
	return a.guard.Validate(ErrSupplyAllocationIsNotConstructed)
}

func (a SupplyAllocation) SupplyID() string {
	return a.supplyID
}

// Quantity returns the allocated quantity, or false when none was recorded.
func (a SupplyAllocation) Quantity() (decimal.Decimal, bool) {
	return a.quantity.Decimal, a.quantity.Valid
}

func (a SupplyAllocation) Notes() string {
	return a.notes
}

// dedupeSupplies keeps the last allocation for each supply, preserving first-seen order.
func dedupeSupplies(supplies []SupplyAllocation) []SupplyAllocation {
	index := make(map[string]int, len(supplies))
	result := make([]SupplyAllocation, 0, len(supplies))
	for _, s := range supplies {
		if i, ok := index[s.supplyID]; ok {
			result[i] = s
			continue
		}
		index[s.supplyID] = len(result)
		result = append(result, s)
	}
	return result
}
