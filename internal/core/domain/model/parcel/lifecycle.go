package parcel

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// Effects is the set of side effects a transition asks its caller to perform.
type Effects uint8

const (
	EffectNotifyClient Effects = 1 << iota
	EffectNotifyDriver
	EffectReserveDriver
	EffectReleaseDriver
)

func (e Effects) Has(flag Effects) bool {
	return e&flag != 0
}

// Transition is one row of the lifecycle table.
type Transition struct {
	From    Status
	Event   Event
	To      Status
	Role    kernel.Role
	Effects Effects
}

type transitionKey struct {
	from  Status
	event Event
}

var transitions = map[transitionKey]Transition{}

var eventRoles = map[Event]kernel.Role{}

func init() {
	for _, t := range []Transition{
		{Requested, EventAccept, Accepted, kernel.RoleAdmin, EffectNotifyClient},
		{Requested, EventReject, Rejected, kernel.RoleAdmin, EffectNotifyClient},
		{Accepted, EventAssign, Assigned, kernel.RoleAdmin, EffectReserveDriver | EffectNotifyClient | EffectNotifyDriver},
		{Assigned, EventUnassign, Accepted, kernel.RoleAdmin, EffectReleaseDriver | EffectNotifyClient | EffectNotifyDriver},
		{Assigned, EventPickup, PickedUp, kernel.RoleDriver, EffectNotifyClient},
		{PickedUp, EventTransit, InTransit, kernel.RoleDriver, EffectNotifyClient},
		{InTransit, EventOutForDelivery, OutForDelivery, kernel.RoleDriver, EffectNotifyClient},
		{OutForDelivery, EventDeliver, Delivered, kernel.RoleDriver, EffectReleaseDriver | EffectNotifyClient},
	} {
		transitions[transitionKey{t.From, t.Event}] = t
		eventRoles[t.Event] = t.Role
	}
}

// Transitions returns a copy of the lifecycle table.
func Transitions() []Transition {
	out := make([]Transition, 0, len(transitions))
	for _, t := range transitions {
		out = append(out, t)
	}
	return out
}

// Resolve is the pure transition function. Checks run in a fixed order:
// unknown event, terminal current status, role mismatch, missing table row.
func Resolve(current Status, event Event, role kernel.Role) (Transition, error) {
	expectedRole, ok := eventRoles[event]
	if !ok {
		return Transition{}, errs.NewInvalidTransitionError(current.String(), event.String())
	}

	if current.IsTerminal() {
		return Transition{}, errs.NewTerminalStateViolationError(current.String(), event.String())
	}

	if role != expectedRole {
		return Transition{}, errs.NewUnauthorizedError(role.String(), event.String())
	}

	t, ok := transitions[transitionKey{current, event}]
	if !ok {
		return Transition{}, errs.NewInvalidTransitionError(current.String(), event.String())
	}

	return t, nil
}

// NextDriverTransition returns the single driver transition leaving current, if any.
func NextDriverTransition(current Status) (Transition, bool) {
	for _, t := range transitions {
		if t.From == current && t.Role == kernel.RoleDriver {
			return t, true
		}
	}
	return Transition{}, false
}
