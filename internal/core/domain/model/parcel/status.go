package parcel

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status is the lifecycle state of a parcel. Each value has exactly one string form.
type Status int

const (
	// Unknown catches uninitialized values. It is never persisted.
	Unknown Status = iota
	Requested
	Accepted
	Rejected
	Assigned
	PickedUp
	InTransit
	OutForDelivery
	Delivered
	Cancelled
)

var statusStrings = map[Status]string{
	Requested:      "requested",
	Accepted:       "accepted",
	Rejected:       "rejected",
	Assigned:       "assigned",
	PickedUp:       "picked_up",
	InTransit:      "in_transit",
	OutForDelivery: "out_for_delivery",
	Delivered:      "delivered",
	Cancelled:      "cancelled",
}

// ParseStatus accepts only the canonical snake_case names; "in-transit" is rejected.
func ParseStatus(s string) (Status, error) {
	for st, str := range statusStrings {
		if str == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Requested, Accepted, Rejected, Assigned, PickedUp, InTransit, OutForDelivery, Delivered, Cancelled}
}

// InFlightStatuses are the statuses in which a parcel holds its driver.
func InFlightStatuses() []Status {
	return []Status{Assigned, PickedUp, InTransit, OutForDelivery}
}

func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition is legal.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Rejected || s == Cancelled
}

func (s Status) IsInFlight() bool {
	switch s { //nolint:exhaustive // the remaining statuses are not in flight
	case Assigned, PickedUp, InTransit, OutForDelivery:
		return true
	default:
		return false
	}
}

// RequiresDriver reports whether a parcel in this status must reference a driver.
// Delivered parcels keep the driver who delivered them.
func (s Status) RequiresDriver() bool {
	return s.IsInFlight() || s == Delivered
}
