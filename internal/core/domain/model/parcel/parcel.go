package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const createdNotes = "Parcel created and awaiting admin acceptance"

// ErrParcelIsNotConstructed is returned when a Parcel was not created via NewParcel or RestoreParcel.
var ErrParcelIsNotConstructed = errors.New("parcel must be created via NewParcel or RestoreParcel")

// Parcel is the aggregate root of a delivery request.
//
// Invariants:
//   - the tracking number never changes
//   - weight is positive, price and distance are non-negative with two decimal places
//   - in-flight and delivered parcels reference a driver, others do not
//   - history is never empty and its last entry matches the current status
type Parcel struct {
	trackingNumber      kernel.TrackingNumber
	clientID            kernel.UUID
	pickup              Address
	drop                Address
	measurements        Measurements
	price               decimal.Decimal
	distanceKm          decimal.Decimal
	status              Status
	driverID            *int64
	description         string
	specialInstructions string
	createdAt           time.Time
	updatedAt           time.Time
	history             []HistoryEntry
	events              []StatusChanged
	isConstructed       bool
}

// NewParcel creates a parcel in the requested status with the first history entry.
// Price and distance come from the pricing engine and are stored rounded to two places.
func NewParcel(
	trackingNumber kernel.TrackingNumber,
	clientID kernel.UUID,
	pickup, drop Address,
	measurements Measurements,
	price, distanceKm decimal.Decimal,
	description, specialInstructions string,
	now time.Time,
) (*Parcel, error) {
	p := &Parcel{
		status:              Requested,
		description:         strings.TrimSpace(description),
		specialInstructions: strings.TrimSpace(specialInstructions),
		createdAt:           now,
		updatedAt:           now,
		isConstructed:       true,
	}

	if err := errors.Join(
		p.setTrackingNumber(trackingNumber),
		p.setClientID(clientID),
		p.setAddresses(pickup, drop),
		p.setMeasurements(measurements),
		p.setPricing(price, distanceKm),
	); err != nil {
		return nil, err
	}

	p.history = []HistoryEntry{{
		sequence:  1,
		status:    Requested,
		location:  pickup.Text(),
		notes:     createdNotes,
		actorID:   clientID,
		actorRole: kernel.RoleClient,
		at:        now,
	}}
	p.record(Unknown, EventUnknown, EffectNotifyClient, nil, kernel.RoleClient, "", now)

	return p, nil
}

// RestoreParams carries the persisted state of a parcel.
type RestoreParams struct {
	TrackingNumber      kernel.TrackingNumber
	ClientID            kernel.UUID
	Pickup              Address
	Drop                Address
	Measurements        Measurements
	Price               decimal.Decimal
	DistanceKm          decimal.Decimal
	Status              Status
	DriverID            *int64
	Description         string
	SpecialInstructions string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	History             []HistoryEntry
}

// RestoreParcel rebuilds a parcel from storage without recording domain events.
func RestoreParcel(params RestoreParams) (*Parcel, error) {
	p := &Parcel{
		status:              params.Status,
		driverID:            copyInt(params.DriverID),
		description:         params.Description,
		specialInstructions: params.SpecialInstructions,
		createdAt:           params.CreatedAt,
		updatedAt:           params.UpdatedAt,
		history:             append([]HistoryEntry(nil), params.History...),
		isConstructed:       true,
	}

	if err := errors.Join(
		p.setTrackingNumber(params.TrackingNumber),
		p.setClientID(params.ClientID),
		p.setAddresses(params.Pickup, params.Drop),
		p.setMeasurements(params.Measurements),
		p.setPricing(params.Price, params.DistanceKm),
		params.Status.Validate(),
		p.validateDriverConsistency(),
		p.validateHistory(),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

func (p *Parcel) TrackingNumber() kernel.TrackingNumber { return p.trackingNumber }

func (p *Parcel) ClientID() kernel.UUID { return p.clientID }

func (p *Parcel) Pickup() Address { return p.pickup }

func (p *Parcel) Drop() Address { return p.drop }

func (p *Parcel) Measurements() Measurements { return p.measurements }

func (p *Parcel) Price() decimal.Decimal { return p.price }

func (p *Parcel) DistanceKm() decimal.Decimal { return p.distanceKm }

func (p *Parcel) Status() Status { return p.status }

// DriverID returns the assigned driver, or nil.
func (p *Parcel) DriverID() *int64 { return copyInt(p.driverID) }

func (p *Parcel) Description() string { return p.description }

func (p *Parcel) SpecialInstructions() string { return p.specialInstructions }

func (p *Parcel) CreatedAt() time.Time { return p.createdAt }

func (p *Parcel) UpdatedAt() time.Time { return p.updatedAt }

// History returns the status ledger ordered oldest to newest.
func (p *Parcel) History() []HistoryEntry {
	return append([]HistoryEntry(nil), p.history...)
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (p *Parcel) DomainEvents() []StatusChanged {
	return append([]StatusChanged(nil), p.events...)
}

func (p *Parcel) ClearDomainEvents() {
	p.events = nil
}

// IsVisibleTo reports whether the actor may read the parcel: admins see all,
// clients their own, drivers the parcels assigned to them.
func (p *Parcel) IsVisibleTo(actor kernel.Actor) bool {
	switch actor.Role() {
	case kernel.RoleAdmin:
		return true
	case kernel.RoleClient:
		return p.clientID.IsEqual(actor.UserID())
	case kernel.RoleDriver:
		return p.driverID != nil && *p.driverID == actor.DriverID()
	default:
		return false
	}
}

// Accept moves a requested parcel to accepted.
func (p *Parcel) Accept(actor kernel.Actor, now time.Time) error {
	return p.apply(EventAccept, actor, "", "", now, nil)
}

// Reject moves a requested parcel to rejected. The reason reaches the client.
func (p *Parcel) Reject(actor kernel.Actor, reason string, now time.Time) error {
	return p.apply(EventReject, actor, "", strings.TrimSpace(reason), now, nil)
}

// Assign binds the driver. Driver availability is handled by the AssignmentCoordinator.
func (p *Parcel) Assign(actor kernel.Actor, driverID int64, now time.Time) error {
	if driverID <= 0 {
		return errs.NewValueIsInvalidError("driverID")
	}
	return p.apply(EventAssign, actor, "", "", now, func() {
		p.driverID = &driverID
	})
}

// Unassign revokes the assignment and returns the parcel to accepted.
func (p *Parcel) Unassign(actor kernel.Actor, reason string, now time.Time) error {
	return p.apply(EventUnassign, actor, "", strings.TrimSpace(reason), now, func() {
		p.driverID = nil
	})
}

// AdvanceTo performs the driver's one-step-forward update. target must be the
// destination of the only driver transition leaving the current status.
func (p *Parcel) AdvanceTo(actor kernel.Actor, target Status, location, notes string, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.status.IsTerminal() {
		return errs.NewTerminalStateViolationError(p.status.String(), "advance to "+target.String())
	}

	next, ok := NextDriverTransition(p.status)
	if !ok || next.To != target {
		return errs.NewInvalidTransitionError(p.status.String(), "advance to "+target.String())
	}

	location = strings.TrimSpace(location)
	if location == "" {
		location = p.pickup.Text()
		if target == Delivered {
			location = p.drop.Text()
		}
	}
	notes = strings.TrimSpace(notes)
	if notes == "" {
		notes = fmt.Sprintf("Status changed from %s to %s by driver", p.status, target)
	}

	return p.apply(next.Event, actor, location, notes, now, nil)
}

// apply resolves the event and, only if every check passes, mutates the aggregate.
func (p *Parcel) apply(event Event, actor kernel.Actor, location, notes string, now time.Time, mutate func()) error {
	if err := errors.Join(p.Validate(), actor.Validate()); err != nil {
		return err
	}

	t, err := Resolve(p.status, event, actor.Role())
	if err != nil {
		return err
	}

	if t.Role == kernel.RoleDriver && (p.driverID == nil || *p.driverID != actor.DriverID()) {
		return errs.NewUnauthorizedErrorWithCause(actor.Role().String(), event.String(),
			fmt.Errorf("driver %d is not assigned to %s", actor.DriverID(), p.trackingNumber))
	}

	// unassign clears the driver, but the released driver must still be notified
	eventDriver := copyInt(p.driverID)
	from := p.status

	if mutate != nil {
		mutate()
	}
	p.status = t.To
	p.updatedAt = now
	p.history = append(p.history, HistoryEntry{
		sequence:  len(p.history) + 1,
		status:    t.To,
		location:  location,
		notes:     notes,
		actorID:   actor.UserID(),
		actorRole: actor.Role(),
		at:        now,
	})
	if p.driverID != nil {
		eventDriver = copyInt(p.driverID)
	}
	p.record(from, event, t.Effects, eventDriver, actor.Role(), notes, now)

	return nil
}

func (p *Parcel) record(from Status, event Event, effects Effects, driverID *int64,
	role kernel.Role, notes string, now time.Time,
) {
	p.events = append(p.events, StatusChanged{
		TrackingNumber: p.trackingNumber,
		ClientID:       p.clientID,
		DriverID:       driverID,
		From:           from,
		To:             p.status,
		Event:          event,
		Effects:        effects,
		Notes:          notes,
		PickupAddress:  p.pickup.Text(),
		DropAddress:    p.drop.Text(),
		Price:          p.price,
		Actor:          role,
		At:             now,
	})
}

func (p *Parcel) setTrackingNumber(tn kernel.TrackingNumber) error {
	if err := tn.Validate(); err != nil {
		return err
	}
	p.trackingNumber = tn
	return nil
}

func (p *Parcel) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientID", err)
	}
	p.clientID = id
	return nil
}

func (p *Parcel) setAddresses(pickup, drop Address) error {
	var pickupErr, dropErr error
	if err := pickup.Validate(); err != nil {
		pickupErr = errs.NewValueIsRequiredErrorWithCause("pickup", err)
	}
	if err := drop.Validate(); err != nil {
		dropErr = errs.NewValueIsRequiredErrorWithCause("drop", err)
	}
	if err := errors.Join(pickupErr, dropErr); err != nil {
		return err
	}

	p.pickup = pickup
	p.drop = drop
	return nil
}

func (p *Parcel) setMeasurements(m Measurements) error {
	if m.WeightKg() <= 0 {
		return errs.NewValueIsRequiredError("measurements")
	}
	p.measurements = m
	return nil
}

func (p *Parcel) setPricing(price, distanceKm decimal.Decimal) error {
	var priceErr, distanceErr error
	if price.IsNegative() {
		priceErr = errs.NewInvalidInputError("price", price)
	}
	if distanceKm.IsNegative() {
		distanceErr = errs.NewInvalidInputError("distanceKm", distanceKm)
	}
	if err := errors.Join(priceErr, distanceErr); err != nil {
		return err
	}

	p.price = price.Round(2)
	p.distanceKm = distanceKm.Round(2)
	return nil
}

func (p *Parcel) validateDriverConsistency() error {
	if p.status.RequiresDriver() && p.driverID == nil {
		return errs.NewValueIsInvalidErrorWithCause("driverID",
			fmt.Errorf("%s parcel must reference a driver", p.status))
	}
	if !p.status.RequiresDriver() && p.driverID != nil {
		return errs.NewValueIsInvalidErrorWithCause("driverID",
			fmt.Errorf("%s parcel must not reference a driver", p.status))
	}
	return nil
}

func (p *Parcel) validateHistory() error {
	if len(p.history) == 0 {
		return errs.NewValueIsRequiredError("history")
	}
	for i, h := range p.history {
		if h.sequence != i+1 {
			return errs.NewValueIsInvalidErrorWithCause("history",
				fmt.Errorf("entry %d has sequence %d", i+1, h.sequence))
		}
	}
	if last := p.history[len(p.history)-1]; last.status != p.status {
		return errs.NewValueIsInvalidErrorWithCause("history",
			fmt.Errorf("last entry is %s, parcel is %s", last.status, p.status))
	}
	return nil
}

func copyInt(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
