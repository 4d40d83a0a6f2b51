package parcel

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
)

// HistoryEntry is one immutable record of the status ledger.
// Sequence numbers start at 1 and follow commit order.
type HistoryEntry struct {
	sequence  int
	status    Status
	location  string
	notes     string
	actorID   kernel.UUID
	actorRole kernel.Role
	at        time.Time
}

// RestoreHistoryEntry rebuilds an entry loaded from storage.
func RestoreHistoryEntry(sequence int, status Status, location, notes string,
	actorID kernel.UUID, actorRole kernel.Role, at time.Time,
) HistoryEntry {
	return HistoryEntry{
		sequence:  sequence,
		status:    status,
		location:  location,
		notes:     notes,
		actorID:   actorID,
		actorRole: actorRole,
		at:        at,
	}
}

func (h HistoryEntry) Sequence() int { return h.sequence }
func (h HistoryEntry) Status() Status { return h.status }
func (h HistoryEntry) Location() string { return h.location }
func (h HistoryEntry) Notes() string { return h.notes }
func (h HistoryEntry) ActorID() kernel.UUID { return h.actorID }
func (h HistoryEntry) ActorRole() kernel.Role { return h.actorRole }
func (h HistoryEntry) At() time.Time { return h.at }
