package commands_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, tn kernel.TrackingNumber) (*parcel.Parcel, error) {
	args := m.Called(ctx, tn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetForUpdate(ctx context.Context, tn kernel.TrackingNumber) (*parcel.Parcel, error) {
	args := m.Called(ctx, tn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) SaveAvailability(ctx context.Context, d *driver.Driver, wasAvailable bool) error {
	args := m.Called(ctx, d, wasAvailable)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id int64) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetForUpdate(ctx context.Context, id int64) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllAvailable(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id kernel.UUID, r notification.Recipient) error {
	args := m.Called(ctx, id, r)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, r notification.Recipient) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW satisfies every narrowed unit of work interface.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

type MockAssignmentUoWFactory struct{ mock.Mock }

func (m *MockAssignmentUoWFactory) Create() commands.AssignmentUoW {
	args := m.Called()
	return args.Get(0).(commands.AssignmentUoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

var clientID = kernel.NewUUID()

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func newClient(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(clientID, kernel.RoleClient)
	require.NoError(t, err)
	return actor
}

func newDriverActor(t *testing.T, driverID int64) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewDriverActor(kernel.NewUUID(), driverID)
	require.NoError(t, err)
	return actor
}

func newAddress(t *testing.T, text string, lat, lng float64) parcel.Address {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	addr, err := parcel.NewAddress(text, loc)
	require.NoError(t, err)
	return addr
}

func newRequestedParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	m, err := parcel.NewMeasurements(2, nil, nil, nil)
	require.NoError(t, err)
	p, err := parcel.NewParcel(
		kernel.NewTrackingNumber(),
		clientID,
		newAddress(t, "MG Road, Bengaluru", 12.9716, 77.5946),
		newAddress(t, "Anna Salai, Chennai", 13.0827, 80.2707),
		m,
		decimal.RequireFromString("3011.72"),
		decimal.RequireFromString("290.17"),
		"books",
		"",
		time.Now(),
	)
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func newAcceptedParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	p := newRequestedParcel(t)
	require.NoError(t, p.Accept(newActor(t, kernel.RoleAdmin), time.Now()))
	p.ClearDomainEvents()
	return p
}

func newDriver(t *testing.T, id int64) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(driver.Profile{
		Name:          "Ravi Kumar",
		Email:         "ravi@example.com",
		Phone:         "+91 98450 00000",
		VehicleType:   driver.VehicleBike,
		VehicleNumber: "ka-01-ab-1234",
		Rating:        4.5,
	})
	require.NoError(t, err)
	require.NoError(t, d.AssignID(id))
	return d
}

// newAssignedPair returns an assigned parcel and the driver holding it.
func newAssignedPair(t *testing.T, driverID int64) (*parcel.Parcel, *driver.Driver) {
	t.Helper()
	p := newAcceptedParcel(t)
	d := newDriver(t, driverID)
	require.NoError(t, d.Reserve(p.TrackingNumber()))
	require.NoError(t, p.Assign(newActor(t, kernel.RoleAdmin), driverID, time.Now()))
	p.ClearDomainEvents()
	return p, d
}
