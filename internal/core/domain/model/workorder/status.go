package workorder

import (
	"fmt"
	"slices"
	"strings"

	"workorders/internal/pkg/errs"
)

// Status represents the lifecycle state of a work order.
//
// State transitions:
//
//	Draft ──> Confirmed ──> InProduction ──> Completed
//	  │           │               │
//	  └───────────┴───────────────┴──> Cancelled
//
// Completed and Cancelled are terminal. Create may start a work order directly in
// Confirmed; that is an initial state, not a transition.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	Draft
	Confirmed
	InProduction
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:      "UNKNOWN",
		Draft:        "DRAFT",
		Confirmed:    "CONFIRMED",
		InProduction: "IN_PRODUCTION",
		Completed:    "COMPLETED",
		Cancelled:    "CANCELLED",
	}
}

// getTransitions returns the legal destinations for every status. A fresh map is built
// on each call so callers cannot mutate the table.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // Unknown has no transitions
	return map[Status][]Status{
		Draft:        {Confirmed, Cancelled},
		Confirmed:    {InProduction, Cancelled},
		InProduction: {Completed, Cancelled},
		Completed:    {},
		Cancelled:    {},
	}
}

// ParseStatus converts the persisted/API representation ("IN_PRODUCTION") to a Status.
// Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid work order status", s))
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Draft, Confirmed, InProduction, Completed, Cancelled}
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// AllowedTransitions returns the statuses reachable from s in one step.
func (s Status) AllowedTransitions() []Status {
	return slices.Clone(getTransitions()[s])
}

func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(getTransitions()[s], target)
}

// TransitionTo returns target if the table allows s -> target, otherwise an
// *InvalidTransitionError carrying the allowed set.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, &InvalidTransitionError{
			From:    s,
			To:      target,
			Allowed: s.AllowedTransitions(),
		}
	}
	return target, nil
}

// IsTerminal reports whether no further transitions exist.
func (s Status) IsTerminal() bool {
	return s.Validate() == nil && len(getTransitions()[s]) == 0
}

// IsEditable reports whether header fields and items may still change.
func (s Status) IsEditable() bool {
	return s.Validate() == nil && !s.IsTerminal()
}

// ValidateInitial accepts the two statuses a work order may be created in.
func (s Status) ValidateInitial() error {
	if s != Draft && s != Confirmed {
		return errs.NewValueIsInvalidErrorWithCause(
			"initial status",
			fmt.Errorf("%s is not a valid initial status, expected %s or %s", s, Draft, Confirmed),
		)
	}
	return nil
}
