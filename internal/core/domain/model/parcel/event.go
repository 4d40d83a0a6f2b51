package parcel

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Event is a lifecycle trigger.
type Event int

const (
	EventUnknown Event = iota
	EventAccept
	EventReject
	EventAssign
	EventUnassign
	EventPickup
	EventTransit
	EventOutForDelivery
	EventDeliver
)

var eventStrings = map[Event]string{
	EventAccept:         "accept",
	EventReject:         "reject",
	EventAssign:         "assign",
	EventUnassign:       "unassign",
	EventPickup:         "pickup",
	EventTransit:        "transit",
	EventOutForDelivery: "out_for_delivery",
	EventDeliver:        "deliver",
}

func ParseEvent(s string) (Event, error) {
	for ev, str := range eventStrings {
		if str == s {
			return ev, nil
		}
	}
	return EventUnknown, errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%q is not a known event", s))
}

func (e Event) String() string {
	if str, ok := eventStrings[e]; ok {
		return str
	}
	return "unknown"
}

func (e Event) IsKnown() bool {
	_, ok := eventStrings[e]
	return ok
}
