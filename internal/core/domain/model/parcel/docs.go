// Package parcel implements the Parcel aggregate and its lifecycle state machine.
//
// A parcel moves through a fixed sequence of statuses:
//
//	requested ──accept──> accepted ──assign──> assigned ──pickup──> picked_up
//	    │                    ^                    │
//	  reject                 └─────unassign───────┘
//	    v
//	rejected        picked_up ──transit──> in_transit ──out_for_delivery──> out_for_delivery ──deliver──> delivered
//
// Admins drive accept, reject, assign and unassign. The assigned driver drives the rest.
// delivered, rejected and cancelled are terminal.
//
// Resolve is the pure transition function over (status, event, role). The Parcel
// methods apply a resolved transition atomically: status, updatedAt, one history entry
// and one StatusChanged domain event change together or not at all.
package parcel
