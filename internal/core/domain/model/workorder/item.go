package workorder

import (
	"errors"
	"slices"
	"strings"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one produced line of a work order. It always traces back to exactly one line
// of the source order (orderItemID) and carries the production areas it is routed
// through and the supplies it consumes.
type Item struct {
	id                 kernel.UUID
	orderItemID        string
	productDescription string
	observations       string
	productionAreaIDs  []string
	supplies           []SupplyAllocation

	isConstructed bool
}

// NewItem creates an item. Duplicate production areas are collapsed and duplicate
// supplies keep their last allocation.
func NewItem(
	id kernel.UUID,
	orderItemID string,
	productDescription string,
	observations string,
	productionAreaIDs []string,
	supplies []SupplyAllocation,
) (*Item, error) {
	item := &Item{
		productDescription: productDescription,
		observations:       observations,
		isConstructed:      true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setOrderItemID(orderItemID),
		item.ReplaceProductionAreas(productionAreaIDs),
		item.ReplaceSupplies(supplies),
	); err != nil {
		return nil, err
	}

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) OrderItemID() string {
	return i.orderItemID
}

func (i *Item) ProductDescription() string {
	return i.productDescription
}

func (i *Item) Observations() string {
	return i.observations
}

// ProductionAreaIDs returns a copy of the production area set.
func (i *Item) ProductionAreaIDs() []string {
	return slices.Clone(i.productionAreaIDs)
}

// Supplies returns a copy of the supply allocations.
func (i *Item) Supplies() []SupplyAllocation {
	return slices.Clone(i.supplies)
}

// Supply returns the allocation for supplyID, if any.
func (i *Item) Supply(supplyID string) (SupplyAllocation, bool) {
	for _, s := range i.supplies {
		if s.supplyID == supplyID {
			return s, true
		}
	}
	return SupplyAllocation{}, false
}

func (i *Item) SetProductDescription(description string) {
	i.productDescription = description
}

func (i *Item) SetObservations(observations string) {
	i.observations = observations
}

// ReplaceProductionAreas swaps the whole set. Blank ids are rejected.
func (i *Item) ReplaceProductionAreas(ids []string) error {
	areas := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return errs.NewValueIsRequiredError("productionAreaId")
		}
		if !slices.Contains(areas, id) {
			areas = append(areas, id)
		}
	}
	i.productionAreaIDs = areas
	return nil
}

// ReplaceSupplies swaps every allocation of the item.
func (i *Item) ReplaceSupplies(supplies []SupplyAllocation) error {
	for _, s := range supplies {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	i.supplies = dedupeSupplies(supplies)
	return nil
}

// UpsertSupply creates or replaces the allocation for the supply. Quantities are
// replaced, never accumulated.
func (i *Item) UpsertSupply(allocation SupplyAllocation) error {
	if err := allocation.Validate(); err != nil {
		return err
	}
	i.supplies = dedupeSupplies(append(i.supplies, allocation))
	return nil
}

// RemoveSupply drops the allocation for supplyID and reports whether one existed.
func (i *Item) RemoveSupply(supplyID string) bool {
	before := len(i.supplies)
	i.supplies = slices.DeleteFunc(i.supplies, func(s SupplyAllocation) bool {
		return s.supplyID == supplyID
	})
	return len(i.supplies) != before
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setOrderItemID(orderItemID string) error {
	orderItemID = strings.TrimSpace(orderItemID)
	if orderItemID == "" {
		return errs.NewValueIsRequiredError("orderItemId")
	}
	i.orderItemID = orderItemID
	return nil
}
