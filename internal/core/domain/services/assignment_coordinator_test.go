package services_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestAssignmentCoordinator_Assign(t *testing.T) {
	coordinator := services.NewAssignmentCoordinator()
	admin := newActor(t, kernel.RoleAdmin)

	t.Run("reserves driver and assigns parcel", func(t *testing.T) {
		p := acceptedParcel(t)
		d := newDriver(t, 1, nil)

		require.NoError(t, coordinator.Assign(p, d, admin, now))

		assert.Equal(t, parcel.Assigned, p.Status())
		assert.Equal(t, int64(1), *p.DriverID())
		assert.False(t, d.IsAvailable())
		assert.True(t, d.ActiveParcel().IsEqual(p.TrackingNumber()))
	})

	t.Run("second parcel for the same driver fails", func(t *testing.T) {
		a := acceptedParcel(t)
		b := acceptedParcel(t)
		d := newDriver(t, 2, nil)
		require.NoError(t, coordinator.Assign(a, d, admin, now))

		err := coordinator.Assign(b, d, admin, now)

		require.ErrorIs(t, err, errs.ErrDriverUnavailable)
		assert.Equal(t, parcel.Accepted, b.Status())
		assert.Nil(t, b.DriverID())
		assert.True(t, d.ActiveParcel().IsEqual(a.TrackingNumber()))
	})

	t.Run("parcel not accepted leaves driver untouched", func(t *testing.T) {
		p := requestedParcel(t)
		d := newDriver(t, 3, nil)

		err := coordinator.Assign(p, d, admin, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.True(t, d.IsAvailable())
		assert.Equal(t, parcel.Requested, p.Status())
	})

	t.Run("non-admin cannot assign", func(t *testing.T) {
		p := acceptedParcel(t)
		d := newDriver(t, 4, nil)

		err := coordinator.Assign(p, d, newActor(t, kernel.RoleClient), now)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.True(t, d.IsAvailable())
	})

	t.Run("driver becomes available again after delivery", func(t *testing.T) {
		p := acceptedParcel(t)
		d := newDriver(t, 5, nil)
		require.NoError(t, coordinator.Assign(p, d, admin, now))
		driverActor := newDriverActor(t, 5)

		for _, target := range []parcel.Status{parcel.PickedUp, parcel.InTransit, parcel.OutForDelivery} {
			require.NoError(t, coordinator.Advance(p, nil, driverActor, target, "", "", now))
			assert.False(t, d.IsAvailable(), "driver must stay reserved at %s", target)
		}
		require.NoError(t, coordinator.Advance(p, d, driverActor, parcel.Delivered, "", "", now))

		assert.Equal(t, parcel.Delivered, p.Status())
		assert.True(t, d.IsAvailable())
		assert.Nil(t, d.ActiveParcel())

		next := acceptedParcel(t)
		require.NoError(t, coordinator.Assign(next, d, admin, now))
	})
}

func TestAssignmentCoordinator_Advance(t *testing.T) {
	coordinator := services.NewAssignmentCoordinator()
	admin := newActor(t, kernel.RoleAdmin)

	t.Run("deliver without the driver aggregate", func(t *testing.T) {
		p := acceptedParcel(t)
		d := newDriver(t, 6, nil)
		require.NoError(t, coordinator.Assign(p, d, admin, now))
		da := newDriverActor(t, 6)
		for _, target := range []parcel.Status{parcel.PickedUp, parcel.InTransit, parcel.OutForDelivery} {
			require.NoError(t, coordinator.Advance(p, nil, da, target, "", "", now))
		}

		err := coordinator.Advance(p, nil, da, parcel.Delivered, "", "", now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, parcel.OutForDelivery, p.Status())
	})

	t.Run("wrong driver aggregate", func(t *testing.T) {
		p := acceptedParcel(t)
		d := newDriver(t, 7, nil)
		other := newDriver(t, 8, nil)
		require.NoError(t, coordinator.Assign(p, d, admin, now))
		da := newDriverActor(t, 7)
		for _, target := range []parcel.Status{parcel.PickedUp, parcel.InTransit, parcel.OutForDelivery} {
			require.NoError(t, coordinator.Advance(p, nil, da, target, "", "", now))
		}

		err := coordinator.Advance(p, other, da, parcel.Delivered, "", "", now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, parcel.OutForDelivery, p.Status())
		assert.False(t, d.IsAvailable())
	})
}

func TestAssignmentCoordinator_Unassign(t *testing.T) {
	coordinator := services.NewAssignmentCoordinator()
	admin := newActor(t, kernel.RoleAdmin)

	p := acceptedParcel(t)
	d := newDriver(t, 9, nil)
	require.NoError(t, coordinator.Assign(p, d, admin, now))

	require.NoError(t, coordinator.Unassign(p, d, admin, "reassigning", now))

	assert.Equal(t, parcel.Accepted, p.Status())
	assert.Nil(t, p.DriverID())
	assert.True(t, d.IsAvailable())

	t.Run("unassign of an unassigned parcel", func(t *testing.T) {
		err := coordinator.Unassign(p, d, admin, "", now)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestAssignmentCoordinator_SuggestDriver(t *testing.T) {
	coordinator := services.NewAssignmentCoordinator()
	p := acceptedParcel(t) // pickup at (12.9716, 77.5946)

	far := newDriver(t, 1, location(t, 13.0827, 80.2707))
	near := newDriver(t, 2, location(t, 12.98, 77.60))
	nearBusy := newDriver(t, 3, location(t, 12.9716, 77.5946))
	require.NoError(t, nearBusy.Reserve(kernel.NewTrackingNumber()))
	unlocated := newDriver(t, 4, nil)

	t.Run("nearest available driver", func(t *testing.T) {
		got, err := coordinator.SuggestDriver(p, []*driver.Driver{unlocated, far, nearBusy, near})
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.ID())
	})

	t.Run("unlocated drivers rank last", func(t *testing.T) {
		got, err := coordinator.SuggestDriver(p, []*driver.Driver{unlocated, nearBusy})
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.ID())
	})

	t.Run("ties keep input order", func(t *testing.T) {
		twinA := newDriver(t, 10, location(t, 12.98, 77.60))
		twinB := newDriver(t, 11, location(t, 12.98, 77.60))
		got, err := coordinator.SuggestDriver(p, []*driver.Driver{twinA, twinB})
		require.NoError(t, err)
		assert.Equal(t, int64(10), got.ID())
	})

	t.Run("nobody available", func(t *testing.T) {
		_, err := coordinator.SuggestDriver(p, []*driver.Driver{nearBusy})
		assert.ErrorIs(t, err, errs.ErrDriverUnavailable)

		_, err = coordinator.SuggestDriver(p, nil)
		assert.ErrorIs(t, err, errs.ErrDriverUnavailable)
	})
}

func requestedParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	pickup, err := parcel.NewAddress("MG Road, Bengaluru", *location(t, 12.9716, 77.5946))
	require.NoError(t, err)
	drop, err := parcel.NewAddress("Anna Salai, Chennai", *location(t, 13.0827, 80.2707))
	require.NoError(t, err)
	m, err := parcel.NewMeasurements(5, nil, nil, nil)
	require.NoError(t, err)

	p, err := parcel.NewParcel(kernel.NewTrackingNumber(), kernel.NewUUID(), pickup, drop, m,
		decimal.NewFromInt(175), decimal.NewFromInt(10), "", "", now)
	require.NoError(t, err)
	return p
}

func acceptedParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	p := requestedParcel(t)
	require.NoError(t, p.Accept(newActor(t, kernel.RoleAdmin), now))
	return p
}

func newDriver(t *testing.T, id int64, loc *kernel.Location) *driver.Driver {
	t.Helper()
	d, err := driver.RestoreDriver(id, driver.Profile{
		Name:          "Driver",
		Email:         "driver@example.com",
		VehicleType:   driver.VehicleBike,
		VehicleNumber: "KA-01",
		Rating:        4,
	}, "", loc, true, nil)
	require.NoError(t, err)
	return d
}

func location(t *testing.T, lat, lng float64) *kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return &loc
}

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func newDriverActor(t *testing.T, driverID int64) kernel.Actor {
	t.Helper()
	a, err := kernel.NewDriverActor(kernel.NewUUID(), driverID)
	require.NoError(t, err)
	return a
}
