package order

import (
	"fmt"
	"strings"

	"workorders/internal/pkg/errs"
)

// Status represents the lifecycle state of a source order as reported by the order
// module. The work order service never changes it; it only reads it to decide whether
// a work order may be opened.
//
// Order lifecycle (owned by the order module):
//
//	Draft ──> Confirmed ──> InProduction ──> Ready ──> Delivered
//	  │           │              │             │
//	  └───────────┴──────────────┴─────────────┴──> Cancelled
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft orders are still being quoted and are not committed yet.
	Draft

	// Confirmed orders were accepted by the client and can go to production.
	Confirmed

	// InProduction orders have manufacturing under way.
	InProduction

	// Ready orders are finished and waiting for delivery.
	Ready

	// Delivered orders were handed over to the client.
	Delivered

	// Cancelled orders were withdrawn.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:      "UNKNOWN",
		Draft:        "DRAFT",
		Confirmed:    "CONFIRMED",
		InProduction: "IN_PRODUCTION",
		Ready:        "READY",
		Delivered:    "DELIVERED",
		Cancelled:    "CANCELLED",
	}
}

// getWorkOrderableStatuses returns the statuses a work order may be opened against.
func getWorkOrderableStatuses() map[Status]struct{} {
	//nolint:exhaustive // only committed, open orders qualify
	return map[Status]struct{}{
		Confirmed:    {},
		InProduction: {},
		Ready:        {},
	}
}

// ParseStatus converts the stored representation ("IN_PRODUCTION") to a Status.
// Unrecognized values yield Unknown and an error.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%q is not a valid order status", s))
}

// String returns the string representation of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the status is one of the defined values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// AllowsWorkOrders reports whether a work order may be opened against an order in
// this status: Confirmed, InProduction or Ready. Draft orders are not committed yet,
// Delivered and Cancelled ones are closed.
func (s Status) AllowsWorkOrders() bool {
	_, ok := getWorkOrderableStatuses()[s]
	return ok
}

// WorkOrderableStatuses lists the statuses accepted by AllowsWorkOrders in lifecycle order.
func WorkOrderableStatuses() []Status {
	return []Status{Confirmed, InProduction, Ready}
}
