package workorder

import (
	"fmt"
	"strings"

	"workorders/internal/pkg/errs"
)

// InvalidTransitionError is returned when a status change is not in the transition table.
// It unwraps to errs.ErrValueIsInvalid.
type InvalidTransitionError struct {
	From    Status
	To      Status
	Allowed []Status
}

func (e *InvalidTransitionError) Error() string {
	allowed := make([]string, 0, len(e.Allowed))
	for _, s := range e.Allowed {
		allowed = append(allowed, s.String())
	}
	return fmt.Sprintf("%s: cannot change status from %s to %s (allowed: [%s])",
		errs.ErrValueIsInvalid, e.From, e.To, strings.Join(allowed, ", "))
}

func (e *InvalidTransitionError) Unwrap() error {
	return errs.ErrValueIsInvalid
}

// NewNotEditableError reports a mutation attempted on a completed or cancelled work order.
func NewNotEditableError(status Status) *errs.ConflictError {
	return errs.NewConflictError("status", status, "work order can no longer be modified")
}

// NewNotDeletableError reports a delete attempted outside Draft.
func NewNotDeletableError(status Status) *errs.ConflictError {
	return errs.NewConflictError("status", status, "only DRAFT work orders can be deleted")
}

// NewActiveWorkOrderExistsError reports that the order already has a non-cancelled work
// order; number identifies it.
func NewActiveWorkOrderExistsError(orderID, number string) *errs.ConflictError {
	return errs.NewConflictError(
		"work order number",
		number,
		fmt.Sprintf("order %s already has an active work order", orderID),
	)
}
