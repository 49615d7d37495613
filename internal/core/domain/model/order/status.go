package order

import (
	"errors"
	"fmt"

	"munchies/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending ──> Preparing ──> Ready ──> OutForDelivery ──> Delivered
//	   │            │           │              │
//	   └────────────┴───────────┴──────────────┴──> Canceled
//
// Delivered and Canceled are terminal. Transitions are strictly progressive:
// a status never transitions to itself, so duplicate requests surface as
// errors instead of silently succeeding.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status set by the order-placement flow.
	// The restaurant has not accepted the order yet.
	Pending

	// Preparing indicates the restaurant accepted the order and the kitchen
	// is working on it.
	Preparing

	// Ready indicates the order is packed and waiting for pickup.
	Ready

	// OutForDelivery indicates a courier picked the order up and is en route.
	// Requires an active courier assignment.
	OutForDelivery

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Canceled indicates the order was abandoned at some point before
	// delivery. Terminal.
	Canceled
)

// ErrInvalidTransition is the unwrap target for every rejected status change.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a rejected status change, identifying the
// current state, the requested state, and which rule rejected it.
type InvalidTransitionError struct {
	From Status
	To   Status
	Rule string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s (%s)", ErrInvalidTransition, e.From, e.To, e.Rule)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// transitionTable returns the allowed successor sets per status. A status is
// never its own successor, and terminal states have empty sets.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Preparing, Canceled},
		Preparing:      {Ready, Canceled},
		Ready:          {OutForDelivery, Canceled},
		OutForDelivery: {Delivered, Canceled},
		Delivered:      {},
		Canceled:       {},
	}
}

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Preparing:      "preparing",
		Ready:          "ready",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Canceled:       "canceled",
	}
}

// StatusFromString parses the wire representation of a status.
// Returns an error for "unknown" and for anything not in the enumerated set.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value belongs to the enumerated set.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := transitionTable()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("pending", "out_for_delivery", ...).
// Safe to call on any value; invalid values yield "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler using the wire name.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := StatusFromString(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// CanTransitionTo reports bare table membership: whether next is in the
// successor set of s. Guards layered on top of the table live on the Order
// aggregate, which has the context they need.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitionTable()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no legal successor.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled
}
