package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"
)

// ErrNoDriverAvailable is returned by SuggestDriver when the roster has no available driver.
var ErrNoDriverAvailable = errs.NewDriverUnavailableErrorWithCause(0, errors.New("no available driver"))

// AssignmentCoordinator keeps parcels and driver availability in step.
// A driver holds at most one in-flight parcel; it is unavailable exactly while it does.
//
// Example usage:
//
//	coordinator := services.NewAssignmentCoordinator()
//	if err := coordinator.Assign(p, d, admin, time.Now()); errors.Is(err, errs.ErrDriverUnavailable) {
//	    // re-fetch the roster and pick another driver
//	}
type AssignmentCoordinator struct{}

func NewAssignmentCoordinator() AssignmentCoordinator {
	return AssignmentCoordinator{}
}

// Assign reserves the driver and moves the parcel to assigned. On error neither
// aggregate changes. The parcel transition is checked before availability, so a
// parcel that is not accepted reports InvalidTransition even for a busy driver.
func (c AssignmentCoordinator) Assign(p *parcel.Parcel, d *driver.Driver, actor kernel.Actor, now time.Time) error {
	if err := errors.Join(p.Validate(), d.Validate(), actor.Validate()); err != nil {
		return err
	}

	if _, err := parcel.Resolve(p.Status(), parcel.EventAssign, actor.Role()); err != nil {
		return err
	}

	if err := d.Reserve(p.TrackingNumber()); err != nil {
		return err
	}

	if err := p.Assign(actor, d.ID(), now); err != nil {
		// Reserve just succeeded for this parcel, so Release cannot fail.
		_ = d.Release(p.TrackingNumber())
		return err
	}

	return nil
}

// Unassign revokes the assignment: the parcel returns to accepted and the driver is released.
func (c AssignmentCoordinator) Unassign(p *parcel.Parcel, d *driver.Driver, actor kernel.Actor, reason string, now time.Time) error {
	if err := errors.Join(p.Validate(), d.Validate(), actor.Validate()); err != nil {
		return err
	}
	if _, err := parcel.Resolve(p.Status(), parcel.EventUnassign, actor.Role()); err != nil {
		return err
	}
	if err := c.ensureHolds(p, d); err != nil {
		return err
	}

	if err := p.Unassign(actor, reason, now); err != nil {
		return err
	}

	return c.Release(p, d)
}

// Advance applies the driver's one-step-forward update. d may be nil unless the
// step releases the driver (deliver), in which case it must be the assigned driver.
func (c AssignmentCoordinator) Advance(
	p *parcel.Parcel,
	d *driver.Driver,
	actor kernel.Actor,
	target parcel.Status,
	location, notes string,
	now time.Time,
) error {
	if err := p.Validate(); err != nil {
		return err
	}

	next, ok := parcel.NextDriverTransition(p.Status())
	releases := ok && next.To == target && next.Effects.Has(parcel.EffectReleaseDriver)
	if releases {
		if d == nil {
			return errs.NewValueIsRequiredError("driver")
		}
		if err := c.ensureHolds(p, d); err != nil {
			return err
		}
	}

	if err := p.AdvanceTo(actor, target, location, notes, now); err != nil {
		return err
	}

	if releases {
		return c.Release(p, d)
	}
	return nil
}

// Release puts the driver of p back on the roster.
func (c AssignmentCoordinator) Release(p *parcel.Parcel, d *driver.Driver) error {
	if err := errors.Join(p.Validate(), d.Validate()); err != nil {
		return err
	}
	return d.Release(p.TrackingNumber())
}

// SuggestDriver returns the available driver nearest to the pickup point.
// Drivers without coordinates rank after every located driver; ties keep input order.
func (c AssignmentCoordinator) SuggestDriver(p *parcel.Parcel, drivers []*driver.Driver) (*driver.Driver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var (
		best     *driver.Driver
		bestDist = math.Inf(1)
		fallback *driver.Driver
	)

	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if !d.IsAvailable() {
			continue
		}

		dist, located := d.DistanceTo(p.Pickup().Location())
		if !located {
			if fallback == nil {
				fallback = d
			}
			continue
		}

		if dist < bestDist {
			bestDist = dist
			best = d
		}
	}

	switch {
	case best != nil:
		return best, nil
	case fallback != nil:
		return fallback, nil
	default:
		return nil, ErrNoDriverAvailable
	}
}

func (c AssignmentCoordinator) ensureHolds(p *parcel.Parcel, d *driver.Driver) error {
	if err := d.Validate(); err != nil {
		return err
	}
	assigned := p.DriverID()
	active := d.ActiveParcel()
	if assigned == nil || *assigned != d.ID() || active == nil || !active.IsEqual(p.TrackingNumber()) {
		return errs.NewValueIsInvalidErrorWithCause("driver",
			fmt.Errorf("driver %d does not hold %s", d.ID(), p.TrackingNumber()))
	}
	return nil
}
