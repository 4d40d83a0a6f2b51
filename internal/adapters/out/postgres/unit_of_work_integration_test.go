package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events []parcel.StatusChanged) {
	m.Called(ctx, events)
}

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database    *pgtest.Database
	publisher   *MockEventPublisher
	factory     *postgres.GormUnitOfWorkFactory
	coordinator services.AssignmentCoordinator
	admin       kernel.Actor
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pgtest.SkipWithoutDocker(suite.T())
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.coordinator = services.NewAssignmentCoordinator()

	admin, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)
	suite.Require().NoError(err)
	suite.admin = admin
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.publisher = new(MockEventPublisher)
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.database.DB, suite.publisher)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.database == nil {
		return
	}
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackAfterCommitIsNoop() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PublishesEventsOfTrackedParcels() {
	ctx := context.Background()
	p := suite.newParcel()

	suite.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []parcel.StatusChanged) bool {
		return len(events) == 2 &&
			events[0].IsCreation() &&
			events[1].To == parcel.Accepted &&
			events[1].TrackingNumber.IsEqual(p.TrackingNumber())
	})).Return().Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(p.Accept(suite.admin, time.Now().UTC()))
	suite.Require().NoError(uow.ParcelRepository().Update(ctx, p))
	suite.Require().NoError(uow.Commit(ctx))

	suite.publisher.AssertExpectations(suite.T())
	suite.Empty(p.DomainEvents())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWritesAndEvents() {
	ctx := context.Background()
	p := suite.newParcel()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
	suite.Empty(p.DomainEvents())

	_, err := suite.factory.Create().ParcelRepository().Get(ctx, p.TrackingNumber())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignment_SpansBothAggregates() {
	ctx := context.Background()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return()

	p := suite.storeAcceptedParcel()
	d := suite.storeDriver("ravi@example.com", "KA01AB1234")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	lockedParcel, err := uow.ParcelRepository().GetForUpdate(ctx, p.TrackingNumber())
	suite.Require().NoError(err)
	lockedDriver, err := uow.DriverRepository().GetForUpdate(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.coordinator.Assign(lockedParcel, lockedDriver, suite.admin, time.Now().UTC()))
	suite.Require().NoError(uow.DriverRepository().SaveAvailability(ctx, lockedDriver, true))
	suite.Require().NoError(uow.ParcelRepository().Update(ctx, lockedParcel))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	gotParcel, err := reader.ParcelRepository().Get(ctx, p.TrackingNumber())
	suite.Require().NoError(err)
	gotDriver, err := reader.DriverRepository().Get(ctx, d.ID())
	suite.Require().NoError(err)

	suite.Equal(parcel.Assigned, gotParcel.Status())
	suite.Require().NotNil(gotParcel.DriverID())
	suite.Equal(d.ID(), *gotParcel.DriverID())
	suite.False(gotDriver.IsAvailable())
	suite.Require().NotNil(gotDriver.ActiveParcel())
	suite.True(gotDriver.ActiveParcel().IsEqual(p.TrackingNumber()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentAssignment_OneDriverWinsOnce() {
	ctx := context.Background()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return()

	parcels := []*parcel.Parcel{suite.storeAcceptedParcel(), suite.storeAcceptedParcel()}
	d := suite.storeDriver("meena@example.com", "TN09XY0001")

	var wg sync.WaitGroup
	results := make([]error, len(parcels))
	for i, p := range parcels {
		wg.Add(1)
		go func(i int, tn kernel.TrackingNumber) {
			defer wg.Done()
			results[i] = suite.assign(ctx, tn, d.ID())
		}(i, p.TrackingNumber())
	}
	wg.Wait()

	var succeeded, unavailable int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrDriverUnavailable):
			unavailable++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(1, unavailable)

	var assigned int64
	suite.Require().NoError(suite.database.DB.Table("parcels").
		Where("driver_id = ?", d.ID()).Count(&assigned).Error)
	suite.Equal(int64(1), assigned)
}

func (suite *UnitOfWorkIntegrationTestSuite) assign(ctx context.Context, tn kernel.TrackingNumber, driverID int64) error {
	uow := suite.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	p, err := uow.ParcelRepository().GetForUpdate(ctx, tn)
	if err != nil {
		return err
	}
	d, err := uow.DriverRepository().GetForUpdate(ctx, driverID)
	if err != nil {
		return err
	}
	wasAvailable := d.IsAvailable()
	if err = suite.coordinator.Assign(p, d, suite.admin, time.Now().UTC()); err != nil {
		return err
	}
	if err = uow.DriverRepository().SaveAvailability(ctx, d, wasAvailable); err != nil {
		return err
	}
	if err = uow.ParcelRepository().Update(ctx, p); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (suite *UnitOfWorkIntegrationTestSuite) storeAcceptedParcel() *parcel.Parcel {
	ctx := context.Background()
	p := suite.newParcel()
	repo := suite.factory.Create().ParcelRepository()
	suite.Require().NoError(repo.Add(ctx, p))
	suite.Require().NoError(p.Accept(suite.admin, time.Now().UTC()))
	suite.Require().NoError(repo.Update(ctx, p))
	p.ClearDomainEvents()
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) storeDriver(email, vehicleNumber string) *driver.Driver {
	d, err := driver.NewDriver(driver.Profile{
		Name:          "Test Driver",
		Email:         email,
		Phone:         "+91 98450 00000",
		VehicleType:   driver.VehicleBike,
		VehicleNumber: vehicleNumber,
		Rating:        4.5,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().DriverRepository().Add(context.Background(), d))
	return d
}

func (suite *UnitOfWorkIntegrationTestSuite) newParcel() *parcel.Parcel {
	pickupLoc, err := kernel.NewLocation(12.9716, 77.5946)
	suite.Require().NoError(err)
	dropLoc, err := kernel.NewLocation(12.9352, 77.6245)
	suite.Require().NoError(err)
	pickup, err := parcel.NewAddress("MG Road, Bengaluru", pickupLoc)
	suite.Require().NoError(err)
	drop, err := parcel.NewAddress("Koramangala, Bengaluru", dropLoc)
	suite.Require().NoError(err)
	m, err := parcel.NewMeasurements(1, nil, nil, nil)
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(
		kernel.NewTrackingNumber(),
		kernel.NewUUID(),
		pickup,
		drop,
		m,
		decimal.RequireFromString("100.00"),
		decimal.RequireFromString("5.20"),
		"books",
		"",
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return p
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
