package order

import (
	"fmt"

	"ordercart/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	new → validated → processing → paid → picking → packed → shipped → delivered
//	            │          ▲                            │
//	            └──────────┼────────── exception ◄──────┘
//	                       └──────────────┘ (resolution rejoins at processing)
//
// Any open (non-terminal) state may additionally transition to closed,
// which represents explicit abandonment. Delivered and closed are terminal.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and the wire format.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status assigned at construction, before the
	// intake sequence confirms the order.
	New

	// Validated indicates the order passed rule validation and duplicate
	// screening. This is the eligible status batch strategies read from.
	Validated

	// Processing indicates fulfillment work has started. Resolved
	// exceptions rejoin the chain here.
	Processing

	// Paid indicates payment has been captured.
	Paid

	// Picking indicates warehouse picking is in progress.
	Picking

	// Packed indicates the order is packed and awaiting carrier pickup.
	Packed

	// Shipped indicates the order has left the warehouse.
	Shipped

	// Delivered indicates successful delivery. Terminal.
	Delivered

	// Exception indicates the order was removed from normal flow due to a
	// detected problem and is pending resolution.
	Exception

	// Closed indicates explicit abandonment of an open order. Terminal.
	Closed
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		New:        "new",
		Validated:  "validated",
		Processing: "processing",
		Paid:       "paid",
		Picking:    "picking",
		Packed:     "packed",
		Shipped:    "shipped",
		Delivered:  "delivered",
		Exception:  "exception",
		Closed:     "closed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:        "new",
		Validated:  "validated",
		Processing: "processing",
		Paid:       "paid",
		Picking:    "picking",
		Packed:     "packed",
		Shipped:    "shipped",
		Delivered:  "delivered",
		Exception:  "exception",
		Closed:     "closed",
	}
}

// nextInChain maps each main-chain status to its single forward successor.
// Exception and terminal statuses have no chain successor.
func nextInChain() map[Status]Status {
	return map[Status]Status{
		New:        Validated,
		Validated:  Processing,
		Processing: Paid,
		Paid:       Picking,
		Picking:    Packed,
		Packed:     Shipped,
		Shipped:    Delivered,
	}
}

// StatusFromString parses the wire representation of a status.
// Returns an error for unrecognized or invalid values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Closed
}

// CanRaiseException reports whether an exception may be raised from this status.
// Exceptions are reachable from validated through packed only.
func (s Status) CanRaiseException() bool {
	switch s {
	case Validated, Processing, Paid, Picking, Packed:
		return true
	default:
		return false
	}
}

// AllowedTargets returns the set of statuses this status may transition to:
// one step forward along the main chain, exception where CanRaiseException
// holds, processing from exception, and closed from any open state.
// Terminal statuses return an empty set.
func (s Status) AllowedTargets() []Status {
	if s.Validate() != nil || s.IsTerminal() {
		return nil
	}

	if s == Exception {
		return []Status{Processing, Closed}
	}

	targets := []Status{nextInChain()[s]}
	if s.CanRaiseException() {
		targets = append(targets, Exception)
	}
	return append(targets, Closed)
}

// CanTransitionTo reports whether target is in the allowed-target set.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range s.AllowedTargets() {
		if t == target {
			return true
		}
	}
	return false
}

// Transition returns the new status after moving to target.
//
// Returns:
//   - (target, nil) when target is in the allowed-target set
//   - (0, InvalidTransitionError) otherwise
func (s Status) Transition(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(target) {
		return 0, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}
