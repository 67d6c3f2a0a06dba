package workorder

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
)

// NumberSeries is the numbering series work order numbers are drawn from.
const NumberSeries = "WORK_ORDER"

var ErrWorkOrderIsNotConstructed = errors.New("WorkOrder must be created via NewWorkOrder constructor")

// WorkOrder is a production ticket derived from one order. It is the aggregate root for
// its items, their production-area routing and their supply allocations.
//
// WorkOrder follows these invariants:
//   - The source order and the advisor are set at creation and never change
//   - The work order number is assigned once and never changes
//   - Status changes follow the transition table in Status
//   - Header fields and items change only while the status is editable
//   - Deletion is allowed only in Draft
type WorkOrder struct {
	id           kernel.UUID
	number       string
	status       Status
	orderID      string
	advisorID    string
	designerID   string
	fileName     string
	observations string
	items        []*Item
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewWorkOrder creates a work order in initialStatus, which must be Draft or Confirmed.
// advisorID is the caller creating the work order.
//
// Example:
//
//	item, _ := workorder.NewItem(kernel.NewUUID(), "oi-1", "Banner 2x1m", "", nil, nil)
//	wo, err := workorder.NewWorkOrder(kernel.NewUUID(), "OT-2026-001", "order-1", "user-1",
//	    workorder.Draft, []*workorder.Item{item})
func NewWorkOrder(
	id kernel.UUID,
	number string,
	orderID string,
	advisorID string,
	initialStatus Status,
	items []*Item,
) (*WorkOrder, error) {
	now := time.Now().UTC()
	wo := &WorkOrder{
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		wo.setID(id),
		wo.setNumber(number),
		wo.setOrderID(orderID),
		wo.setAdvisorID(advisorID),
		initialStatus.ValidateInitial(),
		wo.setItems(items),
	); err != nil {
		return nil, err
	}
	wo.status = initialStatus

	return wo, nil
}

// RestoreWorkOrder rebuilds a work order from persistence without applying creation rules.
func RestoreWorkOrder(
	id kernel.UUID,
	number string,
	status Status,
	orderID string,
	advisorID string,
	designerID string,
	fileName string,
	observations string,
	items []*Item,
	createdAt time.Time,
	updatedAt time.Time,
) (*WorkOrder, error) {
	wo := &WorkOrder{
		designerID:    designerID,
		fileName:      fileName,
		observations:  observations,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		wo.setID(id),
		wo.setNumber(number),
		wo.setOrderID(orderID),
		wo.setAdvisorID(advisorID),
		status.Validate(),
		wo.setItems(items),
	); err != nil {
		return nil, err
	}
	wo.status = status

	return wo, nil
}

func (w *WorkOrder) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWorkOrderIsNotConstructed
	}
	return nil
}

func (w *WorkOrder) ID() kernel.UUID {
	return w.id
}

func (w *WorkOrder) Number() string {
	return w.number
}

func (w *WorkOrder) Status() Status {
	return w.status
}

func (w *WorkOrder) OrderID() string {
	return w.orderID
}

func (w *WorkOrder) AdvisorID() string {
	return w.advisorID
}

func (w *WorkOrder) DesignerID() string {
	return w.designerID
}

func (w *WorkOrder) FileName() string {
	return w.fileName
}

func (w *WorkOrder) Observations() string {
	return w.observations
}

func (w *WorkOrder) CreatedAt() time.Time {
	return w.createdAt
}

func (w *WorkOrder) UpdatedAt() time.Time {
	return w.updatedAt
}

// Items returns the items in their creation order.
func (w *WorkOrder) Items() []*Item {
	return slices.Clone(w.items)
}

// Item returns the item with the given id, scoped to this work order.
func (w *WorkOrder) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range w.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundErrorWithCause(
		"work order item",
		itemID.String(),
		fmt.Errorf("item is not part of work order %s", w.number),
	)
}

// ItemForOrderItem returns the item produced from the given order line, if any.
func (w *WorkOrder) ItemForOrderItem(orderItemID string) (*Item, bool) {
	for _, item := range w.items {
		if item.OrderItemID() == orderItemID {
			return item, true
		}
	}
	return nil, false
}

// EnsureEditable fails with a conflict error once the work order is completed or cancelled.
func (w *WorkOrder) EnsureEditable() error {
	if !w.status.IsEditable() {
		return NewNotEditableError(w.status)
	}
	return nil
}

// EnsureDeletable fails with a conflict error unless the work order is a draft.
func (w *WorkOrder) EnsureDeletable() error {
	if w.status != Draft {
		return NewNotDeletableError(w.status)
	}
	return nil
}

// ChangeStatus moves the work order to target if the transition table allows it.
// The status is left unchanged on error.
func (w *WorkOrder) ChangeStatus(target Status) error {
	next, err := w.status.TransitionTo(target)
	if err != nil {
		return err
	}
	w.status = next
	w.touch()
	return nil
}

// Edit applies the header changes that are present. Nil fields are left untouched and an
// empty designer id clears the designer.
func (w *WorkOrder) Edit(changes HeaderChanges) error {
	if err := w.EnsureEditable(); err != nil {
		return err
	}
	if changes.DesignerID != nil {
		w.designerID = strings.TrimSpace(*changes.DesignerID)
	}
	if changes.FileName != nil {
		w.fileName = *changes.FileName
	}
	if changes.Observations != nil {
		w.observations = *changes.Observations
	}
	w.touch()
	return nil
}

// HeaderChanges carries the scalar work order fields an update may set.
type HeaderChanges struct {
	DesignerID   *string
	FileName     *string
	Observations *string
}

// IsEmpty reports whether no field is set.
func (c HeaderChanges) IsEmpty() bool {
	return c.DesignerID == nil && c.FileName == nil && c.Observations == nil
}

func (w *WorkOrder) touch() {
	w.updatedAt = time.Now().UTC()
}

func (w *WorkOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *WorkOrder) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("workOrderNumber")
	}
	w.number = number
	return nil
}

func (w *WorkOrder) setOrderID(orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	w.orderID = orderID
	return nil
}

func (w *WorkOrder) setAdvisorID(advisorID string) error {
	advisorID = strings.TrimSpace(advisorID)
	if advisorID == "" {
		return errs.NewValueIsRequiredError("advisorId")
	}
	w.advisorID = advisorID
	return nil
}

func (w *WorkOrder) setItems(items []*Item) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.OrderItemID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"items",
				fmt.Errorf("order item %s appears more than once", item.OrderItemID()),
			)
		}
		seen[item.OrderItemID()] = struct{}{}
	}
	w.items = slices.Clone(items)
	return nil
}
